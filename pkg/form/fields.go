package form

import (
	"github.com/goliatone/go-hardship/pkg/validation"
)

// FieldID names a form field. Values match the JSON keys of the payload.
type FieldID string

const (
	FieldDebtID   FieldID = "debtID"
	FieldCategory FieldID = "hardshipTypeID"
	FieldName     FieldID = "name"
	FieldDOB      FieldID = "dob"
	FieldIncome   FieldID = "income"
	FieldExpenses FieldID = "expenses"
	FieldComments FieldID = "comments"
)

// Fields lists every field in display order.
func Fields() []FieldID {
	return []FieldID{
		FieldDebtID,
		FieldCategory,
		FieldName,
		FieldDOB,
		FieldIncome,
		FieldExpenses,
		FieldComments,
	}
}

// ParseFieldID resolves a field name received from a client.
func ParseFieldID(raw string) (FieldID, bool) {
	for _, id := range Fields() {
		if string(id) == raw {
			return id, true
		}
	}
	return "", false
}

// Label is the display label of the field.
func (id FieldID) Label() string {
	switch id {
	case FieldDebtID:
		return "Debt ID"
	case FieldCategory:
		return "Hardship Type"
	case FieldName:
		return "Customer Name"
	case FieldDOB:
		return "Date of Birth"
	case FieldIncome:
		return "Income"
	case FieldExpenses:
		return "Expenses"
	case FieldComments:
		return "Comments"
	default:
		return string(id)
	}
}

// Required reports whether the submit pass rejects an empty value.
func (id FieldID) Required() bool {
	return id != FieldComments && id != ""
}

// RequiredMessage is the error shown when a required field is empty at
// submit time.
func (id FieldID) RequiredMessage() string {
	switch id {
	case FieldCategory:
		return MsgSelectCategory
	default:
		return id.Label() + " is required"
	}
}

// Validator returns the rule applied to the field on every change.
func (id FieldID) Validator() validation.Validator {
	switch id {
	case FieldDebtID:
		return validation.DebtID
	case FieldCategory:
		return validation.Category
	case FieldName:
		return validation.Name
	case FieldDOB:
		return validation.DateOfBirth
	case FieldIncome:
		return validation.Income
	case FieldExpenses:
		return validation.Expenses
	case FieldComments:
		return validation.Comments
	default:
		return func(raw string) validation.Verdict {
			return validation.Verdict{Value: raw}
		}
	}
}

// Validate runs the field's validator against raw.
func Validate(id FieldID, raw string) validation.Verdict {
	return id.Validator()(raw)
}
