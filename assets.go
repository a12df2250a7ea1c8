package hardship

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed openapi/hardships.yaml
var contractDocument []byte

// ContractPath is the name of the embedded record service description.
const ContractPath = "openapi/hardships.yaml"

// TemplatesFS exposes the screen templates rooted at the templates directory
// so names resolve as "home.tpl", "form.tpl", and so on.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// ContractDocument returns a copy of the embedded OpenAPI document.
func ContractDocument() []byte {
	return append([]byte(nil), contractDocument...)
}
