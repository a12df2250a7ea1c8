package hardship

import (
	"bytes"
	"io/fs"
	"testing"
)

func TestTemplatesFSContainsScreens(t *testing.T) {
	fsys := TemplatesFS()
	for _, name := range []string{"layout.tpl", "home.tpl", "list.tpl", "entries.tpl", "lookup.tpl", "form.tpl"} {
		if _, err := fs.Stat(fsys, name); err != nil {
			t.Fatalf("expected %s in embedded templates: %v", name, err)
		}
	}
}

func TestContractDocumentIsCopied(t *testing.T) {
	doc := ContractDocument()
	if !bytes.HasPrefix(doc, []byte("openapi:")) {
		t.Fatalf("unexpected contract prefix: %q", doc[:16])
	}
	doc[0] = 'X'
	if ContractDocument()[0] != 'o' {
		t.Fatalf("callers must not be able to mutate the embedded document")
	}
}
