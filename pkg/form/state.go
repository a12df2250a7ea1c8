package form

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-hardship/pkg/model"
	"github.com/goliatone/go-hardship/pkg/validation"
)

const (
	MsgSelectCategory = "Please select a hardship type"
	MsgFixErrors      = "Please fix validation errors before submitting."
	MsgUnknownError   = "An unknown error has occurred"
	MsgInFlight       = "A submission is already in progress."
)

// Field is the value/error pair of a single input.
type Field struct {
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

// StatusKind tags the submission status variant.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusAborted
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (k StatusKind) String() string {
	switch k {
	case StatusAborted:
		return "aborted"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Status is the single terminal message slot of the form.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

func Idle() Status                  { return Status{Kind: StatusIdle} }
func Submitting() Status            { return Status{Kind: StatusSubmitting} }
func Aborted(message string) Status { return Status{Kind: StatusAborted, Message: message} }
func Succeeded(message string) Status {
	return Status{Kind: StatusSucceeded, Message: message}
}
func Failed(message string) Status {
	if strings.TrimSpace(message) == "" {
		message = MsgUnknownError
	}
	return Status{Kind: StatusFailed, Message: message}
}

// Terminal reports whether the status ends a submission attempt.
func (s Status) Terminal() bool {
	switch s.Kind {
	case StatusAborted, StatusSucceeded, StatusFailed:
		return true
	default:
		return false
	}
}

// State is the complete form snapshot. Setters return modified copies.
type State struct {
	Mode     Mode
	DebtID   Field
	Category Field
	Name     Field
	DOB      Field
	Income   Field
	Expenses Field
	Comments Field
	Status   Status
}

// NewState builds an empty create-mode state, or one pre-populated from seed.
func NewState(seed *model.Record) State {
	state := State{Mode: ResolveMode(seed)}
	if seed == nil {
		return state
	}
	if seed.DebtID > 0 {
		state.DebtID.Value = strconv.FormatInt(seed.DebtID, 10)
	}
	state.Category.Value = seed.Category().String()
	state.Name.Value = seed.Name
	state.DOB.Value = seed.DateOfBirth()
	state.Income.Value = formatAmount(seed.Income)
	state.Expenses.Value = formatAmount(seed.Expenses)
	state.Comments.Value = seed.Comments
	return state
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *State) slot(id FieldID) *Field {
	switch id {
	case FieldDebtID:
		return &s.DebtID
	case FieldCategory:
		return &s.Category
	case FieldName:
		return &s.Name
	case FieldDOB:
		return &s.DOB
	case FieldIncome:
		return &s.Income
	case FieldExpenses:
		return &s.Expenses
	case FieldComments:
		return &s.Comments
	default:
		return nil
	}
}

// Field returns the pair stored for id.
func (s State) Field(id FieldID) Field {
	if f := s.slot(id); f != nil {
		return *f
	}
	return Field{}
}

// WithField replaces the pair stored for id.
func (s State) WithField(id FieldID, field Field) State {
	if f := s.slot(id); f != nil {
		*f = field
	}
	return s
}

// WithValue replaces the value of id, keeping its error.
func (s State) WithValue(id FieldID, value string) State {
	if f := s.slot(id); f != nil {
		f.Value = value
	}
	return s
}

// WithError replaces the error of id.
func (s State) WithError(id FieldID, message string) State {
	if f := s.slot(id); f != nil {
		f.Error = message
	}
	return s
}

// WithStatus replaces the status slot.
func (s State) WithStatus(status Status) State {
	s.Status = status
	return s
}

// HasErrors reports whether any field carries an error.
func (s State) HasErrors() bool {
	for _, id := range Fields() {
		if s.Field(id).Error != "" {
			return true
		}
	}
	return false
}

// Errors returns the non-empty field errors keyed by field id.
func (s State) Errors() map[FieldID]string {
	out := make(map[FieldID]string)
	for _, id := range Fields() {
		if msg := s.Field(id).Error; msg != "" {
			out[id] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CommentWords counts the words currently typed into the comment.
func (s State) CommentWords() int {
	return validation.WordCount(s.Comments.Value)
}

// Change applies a user edit: the value is stored, its validator re-run, and
// a terminal status cleared. The identifier is immutable in edit mode.
func (s State) Change(id FieldID, value string) State {
	if id == FieldDebtID && !s.Mode.IdentifierEditable() {
		return s
	}
	if s.slot(id) == nil {
		return s
	}
	verdict := Validate(id, value)
	s = s.WithField(id, Field{Value: value, Error: verdict.Reason})
	if s.Status.Terminal() {
		s = s.WithStatus(Idle())
	}
	return s
}

// ValidateForSubmit runs the submit pass: required fields left empty get a
// required error, everything else is re-validated. The status is not touched.
func ValidateForSubmit(s State) State {
	for _, id := range Fields() {
		field := s.Field(id)
		if id.Required() && strings.TrimSpace(field.Value) == "" {
			s = s.WithError(id, id.RequiredMessage())
			continue
		}
		s = s.WithError(id, Validate(id, field.Value).Reason)
	}
	return s
}
