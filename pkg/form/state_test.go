package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hardship/pkg/model"
)

func TestResolveMode(t *testing.T) {
	if got := ResolveMode(nil); got != ModeCreate {
		t.Fatalf("nil seed should resolve to create, got %v", got)
	}
	if got := ResolveMode(&model.Record{Name: "No id"}); got != ModeCreate {
		t.Fatalf("seed without identifier should resolve to create, got %v", got)
	}
	if got := ResolveMode(&model.Record{DebtID: 42}); got != ModeEdit {
		t.Fatalf("seed with identifier should resolve to edit, got %v", got)
	}
}

func TestModeLabels(t *testing.T) {
	if ModeCreate.Title() != "Create Hardship" || ModeEdit.Title() != "Edit Hardship" {
		t.Fatalf("unexpected titles")
	}
	if ModeCreate.SubmitLabel() != "Create Hardship" || ModeEdit.SubmitLabel() != "Update Hardship" {
		t.Fatalf("unexpected submit labels")
	}
	if !ModeCreate.IdentifierEditable() || ModeEdit.IdentifierEditable() {
		t.Fatalf("identifier must be read-only in edit mode only")
	}
}

func TestNewStateFromSeed(t *testing.T) {
	seed := &model.Record{
		DebtID:           42,
		HardshipTypeName: "Medical",
		Name:             "Jane Doe",
		DOB:              "1990-02-03T00:00:00",
		Income:           50000,
		Expenses:         1250.5,
		Comments:         "hospital stay",
	}
	got := NewState(seed)
	want := State{
		Mode:     ModeEdit,
		DebtID:   Field{Value: "42"},
		Category: Field{Value: "2"},
		Name:     Field{Value: "Jane Doe"},
		DOB:      Field{Value: "1990-02-03"},
		Income:   Field{Value: "50000"},
		Expenses: Field{Value: "1250.5"},
		Comments: Field{Value: "hospital stay"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("seeded state mismatch (-want +got):\n%s", diff)
	}
}

func TestSettersReturnCopies(t *testing.T) {
	base := NewState(nil)
	next := base.WithValue(FieldName, "Jane").WithError(FieldIncome, "bad")
	if base.Name.Value != "" || base.Income.Error != "" {
		t.Fatalf("setters must not mutate the receiver: %+v", base)
	}
	if next.Name.Value != "Jane" || next.Income.Error != "bad" {
		t.Fatalf("setters did not apply: %+v", next)
	}
}

func TestChangeRoutesErrorsToOwnField(t *testing.T) {
	s := NewState(nil)
	s = s.Change(FieldIncome, "123456789")
	s = s.Change(FieldExpenses, "999999999")
	if s.DebtID.Error != "" {
		t.Fatalf("amount overflow must not touch the debt id slot, got %q", s.DebtID.Error)
	}
	if s.Income.Error != "Maximum digits for income is 8" {
		t.Fatalf("unexpected income error %q", s.Income.Error)
	}
	if s.Expenses.Error != "Maximum digits for expenses is 8" {
		t.Fatalf("unexpected expenses error %q", s.Expenses.Error)
	}
	s = s.Change(FieldIncome, "100")
	if s.Income.Error != "" || s.Income.Value != "100" {
		t.Fatalf("valid change should clear the error: %+v", s.Income)
	}
}

func TestChangeClearsTerminalStatus(t *testing.T) {
	for _, status := range []Status{Aborted(MsgFixErrors), Succeeded("ok"), Failed("nope")} {
		s := NewState(nil).WithStatus(status).Change(FieldName, "J")
		if s.Status.Kind != StatusIdle {
			t.Fatalf("change after %v should reset status, got %v", status.Kind, s.Status.Kind)
		}
	}
	s := NewState(nil).WithStatus(Submitting()).Change(FieldName, "J")
	if s.Status.Kind != StatusSubmitting {
		t.Fatalf("change must not clear an outstanding submission")
	}
}

func TestChangeIgnoresIdentifierInEditMode(t *testing.T) {
	s := NewState(&model.Record{DebtID: 42})
	s = s.Change(FieldDebtID, "99")
	if s.DebtID.Value != "42" {
		t.Fatalf("identifier must stay immutable in edit mode, got %q", s.DebtID.Value)
	}
}

func TestValidateForSubmitRequiredMessages(t *testing.T) {
	s := ValidateForSubmit(NewState(nil))
	want := map[FieldID]string{
		FieldDebtID:   "Debt ID is required",
		FieldCategory: MsgSelectCategory,
		FieldName:     "Customer Name is required",
		FieldDOB:      "Date of Birth is required",
		FieldIncome:   "Income is required",
		FieldExpenses: "Expenses is required",
	}
	if diff := cmp.Diff(want, s.Errors()); diff != "" {
		t.Fatalf("required errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateForSubmitSurfacesInvalidValues(t *testing.T) {
	s := NewState(nil).
		WithValue(FieldDebtID, "12x").
		WithValue(FieldCategory, "1").
		WithValue(FieldName, "Jane").
		WithValue(FieldDOB, "2030-01-01").
		WithValue(FieldIncome, "10").
		WithValue(FieldExpenses, "10")
	s = ValidateForSubmit(s)
	want := map[FieldID]string{
		FieldDebtID: "Debt ID must be a valid number",
		FieldDOB:    "Year cannot exceed 2025.",
	}
	if diff := cmp.Diff(want, s.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
