package form

import "github.com/goliatone/go-hardship/pkg/model"

// Mode tells whether the form creates a new record or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// ResolveMode returns ModeEdit when the seed carries an identifier.
func ResolveMode(seed *model.Record) Mode {
	if seed != nil && seed.DebtID > 0 {
		return ModeEdit
	}
	return ModeCreate
}

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Title is the screen heading.
func (m Mode) Title() string {
	if m == ModeEdit {
		return "Edit Hardship"
	}
	return "Create Hardship"
}

// SubmitLabel is the submit control caption.
func (m Mode) SubmitLabel() string {
	if m == ModeEdit {
		return "Update Hardship"
	}
	return "Create Hardship"
}

// IdentifierEditable reports whether the debt ID accepts changes.
func (m Mode) IdentifierEditable() bool {
	return m != ModeEdit
}

// SuccessMessage is the status shown after the service accepts the record.
func (m Mode) SuccessMessage() string {
	if m == ModeEdit {
		return "Hardship updated successfully!"
	}
	return "Hardship created successfully!"
}
