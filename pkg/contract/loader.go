package contract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation IDs the record service document must declare.
const (
	OperationList   = "listHardships"
	OperationGet    = "getHardship"
	OperationCreate = "createHardship"
	OperationUpdate = "updateHardship"

	mediaTypeJSON = "application/json"
)

var (
	// ErrEmptyDocument is returned when no document bytes are supplied.
	ErrEmptyDocument = errors.New("contract: document is empty")
	// ErrMissingOperation signals that a required operation is absent.
	ErrMissingOperation = errors.New("contract: operation not declared")
)

// Operation describes one declared endpoint.
type Operation struct {
	ID     string
	Method string
	Path   string
}

// Load parses and validates raw OpenAPI bytes (YAML or JSON).
func Load(ctx context.Context, raw []byte) (*Validator, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrEmptyDocument
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: parse document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}
	return newValidator(doc)
}

// LoadFS reads name from fsys and delegates to Load.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (*Validator, error) {
	if fsys == nil {
		return nil, errors.New("contract: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("contract: fs path is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("contract: read %s: %w", name, err)
	}
	return Load(ctx, data)
}

func collectOperations(doc *openapi3.T) map[string]Operation {
	out := make(map[string]Operation)
	if doc == nil || doc.Paths == nil {
		return out
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" {
				continue
			}
			out[op.OperationID] = Operation{
				ID:     op.OperationID,
				Method: strings.ToUpper(method),
				Path:   path,
			}
		}
	}
	return out
}

func requestSchema(doc *openapi3.T, method, path string) *openapi3.Schema {
	item := doc.Paths.Find(path)
	if item == nil {
		return nil
	}
	op := item.GetOperation(method)
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get(mediaTypeJSON)
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

func sortedOperations(ops map[string]Operation) []Operation {
	out := make([]Operation, 0, len(ops))
	for _, op := range ops {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return methodRank(out[i].Method) < methodRank(out[j].Method)
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func methodRank(method string) int {
	switch method {
	case http.MethodGet:
		return 0
	case http.MethodPost:
		return 1
	case http.MethodPut:
		return 2
	default:
		return 3
	}
}
