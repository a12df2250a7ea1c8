package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-hardship/pkg/model"
	"github.com/goliatone/go-hardship/pkg/records"
)

// Validator checks payloads against the request schemas of the create and
// update operations. It satisfies records.PayloadChecker.
type Validator struct {
	doc        *openapi3.T
	operations map[string]Operation
	create     *openapi3.Schema
	update     *openapi3.Schema
}

var _ records.PayloadChecker = (*Validator)(nil)

func newValidator(doc *openapi3.T) (*Validator, error) {
	ops := collectOperations(doc)
	for _, id := range []string{OperationList, OperationGet, OperationCreate, OperationUpdate} {
		if _, ok := ops[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingOperation, id)
		}
	}

	v := &Validator{doc: doc, operations: ops}
	create := ops[OperationCreate]
	if v.create = requestSchema(doc, create.Method, create.Path); v.create == nil {
		return nil, fmt.Errorf("contract: %s declares no %s request body", OperationCreate, mediaTypeJSON)
	}
	update := ops[OperationUpdate]
	if v.update = requestSchema(doc, update.Method, update.Path); v.update == nil {
		return nil, fmt.Errorf("contract: %s declares no %s request body", OperationUpdate, mediaTypeJSON)
	}
	return v, nil
}

// Title reports the document title.
func (v *Validator) Title() string {
	if v == nil || v.doc == nil || v.doc.Info == nil {
		return ""
	}
	return v.doc.Info.Title
}

// Operations lists the declared operations ordered by path then method.
func (v *Validator) Operations() []Operation {
	if v == nil {
		return nil
	}
	return sortedOperations(v.operations)
}

// Routes derives the record client's route table from the document.
func (v *Validator) Routes() records.Routes {
	return records.Routes{
		List:   v.operations[OperationList].Path,
		Get:    v.operations[OperationGet].Path,
		Create: v.operations[OperationCreate].Path,
		Update: v.operations[OperationUpdate].Path,
	}
}

// CheckCreate validates a create body.
func (v *Validator) CheckCreate(payload model.CreatePayload) error {
	return v.check(OperationCreate, v.create, payload)
}

// CheckUpdate validates an update body.
func (v *Validator) CheckUpdate(payload model.UpdatePayload) error {
	return v.check(OperationUpdate, v.update, payload)
}

func (v *Validator) check(operation string, schema *openapi3.Schema, payload any) error {
	if v == nil || schema == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("contract: encode %s payload: %w", operation, err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("contract: decode %s payload: %w", operation, err)
	}
	if err := schema.VisitJSON(value); err != nil {
		return newViolation(operation, err)
	}
	return nil
}

// ViolationError reports a payload rejected by the document.
type ViolationError struct {
	Operation string
	Field     string
	Reason    string
	Err       error
}

func newViolation(operation string, err error) *ViolationError {
	out := &ViolationError{Operation: operation, Reason: err.Error(), Err: err}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		out.Reason = schemaErr.Reason
		out.Field = strings.Join(schemaErr.JSONPointer(), ".")
	}
	return out
}

func (e *ViolationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("contract: %s payload field %q: %s", e.Operation, e.Field, e.Reason)
	}
	return fmt.Sprintf("contract: %s payload: %s", e.Operation, e.Reason)
}

func (e *ViolationError) Unwrap() error { return e.Err }

// UserMessage implements records.UserMessager.
func (e *ViolationError) UserMessage() string {
	if e.Field != "" {
		return fmt.Sprintf("Invalid %s: %s", e.Field, e.Reason)
	}
	return "Invalid request: " + e.Reason
}
