package view

import (
	"strconv"

	"github.com/goliatone/go-hardship/pkg/form"
	"github.com/goliatone/go-hardship/pkg/model"
	"github.com/goliatone/go-hardship/pkg/records"
	"github.com/goliatone/go-hardship/pkg/validation"
)

// MsgNoRecords is shown when the service returns an empty list.
const MsgNoRecords = "No records"

// ListState tags the list screen variant.
type ListState string

const (
	ListLoading ListState = "loading"
	ListEmpty   ListState = "empty"
	ListLoaded  ListState = "loaded"
	ListFailed  ListState = "failed"
)

// Entry is one expandable list row.
type Entry struct {
	DebtID   int64  `json:"debtID"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	DOB      string `json:"dob"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Comment  string `json:"comment"`
}

// NewEntry formats a record for display. Missing comments render as "None".
func NewEntry(r model.Record) Entry {
	comment := PlainText(r.Comments)
	if comment == "" {
		comment = "None"
	}
	return Entry{
		DebtID:   r.DebtID,
		Name:     r.Name,
		Type:     r.TypeLabel(),
		DOB:      r.DateOfBirth(),
		Income:   strconv.FormatFloat(r.Income, 'f', -1, 64),
		Expenses: strconv.FormatFloat(r.Expenses, 'f', -1, 64),
		Comment:  comment,
	}
}

// ListView is the state of the list screen.
type ListView struct {
	State   ListState `json:"state"`
	Message string    `json:"message,omitempty"`
	Entries []Entry   `json:"entries,omitempty"`
}

// LoadingList is the state shown before the fetch completes.
func LoadingList() ListView { return ListView{State: ListLoading} }

// NewListView interprets the outcome of a fetch-all.
func NewListView(items []model.Record, err error) ListView {
	if err != nil {
		return ListView{State: ListFailed, Message: records.Message(err)}
	}
	if len(items) == 0 {
		return ListView{State: ListEmpty, Message: MsgNoRecords}
	}
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, NewEntry(item))
	}
	return ListView{State: ListLoaded, Entries: entries}
}

// LookupView is the edit-lookup screen.
type LookupView struct {
	DebtID  string `json:"debtID"`
	Message string `json:"message,omitempty"`
}

// Choice is a selectable category.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FieldView describes one rendered input.
type FieldView struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Value    string   `json:"value"`
	Error    string   `json:"error,omitempty"`
	Required bool     `json:"required"`
	ReadOnly bool     `json:"readOnly"`
	Choices  []Choice `json:"choices,omitempty"`
}

// StatusView is the rendered submission status.
type StatusView struct {
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

// FormView is the create/edit screen.
type FormView struct {
	Mode        string      `json:"mode"`
	Title       string      `json:"title"`
	SubmitLabel string      `json:"submitLabel"`
	Action      string      `json:"action"`
	StateToken  string      `json:"stateToken,omitempty"`
	SubmitToken string      `json:"submitToken,omitempty"`
	MaxWords    int         `json:"maxWords"`
	Fields      []FieldView `json:"fields"`
	Status      StatusView  `json:"status"`
}

// NewFormView projects state onto the form screen. action is the POST target.
func NewFormView(state form.State, action string) FormView {
	v := FormView{
		Mode:        state.Mode.String(),
		Title:       state.Mode.Title(),
		SubmitLabel: state.Mode.SubmitLabel(),
		Action:      action,
		MaxWords:    validation.MaxCommentWords,
		Status:      StatusView{Kind: state.Status.Kind.String(), Message: state.Status.Message},
	}
	for _, id := range form.Fields() {
		field := state.Field(id)
		fv := FieldView{
			ID:       string(id),
			Label:    id.Label(),
			Kind:     fieldKind(id),
			Value:    field.Value,
			Error:    field.Error,
			Required: id.Required(),
		}
		switch id {
		case form.FieldDebtID:
			fv.ReadOnly = !state.Mode.IdentifierEditable()
		case form.FieldCategory:
			for _, c := range model.Categories() {
				fv.Choices = append(fv.Choices, Choice{
					Value:    c.String(),
					Label:    c.Label(),
					Selected: c.String() == field.Value,
				})
			}
		}
		v.Fields = append(v.Fields, fv)
	}
	return v
}

func fieldKind(id form.FieldID) string {
	switch id {
	case form.FieldCategory:
		return "radio"
	case form.FieldDOB:
		return "date"
	case form.FieldComments:
		return "textarea"
	case form.FieldDebtID, form.FieldIncome, form.FieldExpenses:
		return "numeric"
	default:
		return "text"
	}
}
