// Package submit turns a validated form state into a record service call.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/goliatone/go-hardship/pkg/form"
	"github.com/goliatone/go-hardship/pkg/model"
	"github.com/goliatone/go-hardship/pkg/records"
)

// ErrInvalidState is returned by BuildPayload when a field fails validation.
var ErrInvalidState = errors.New("submit: form state is not valid")

// Writer is the subset of records.Service used for submissions.
type Writer interface {
	Create(ctx context.Context, payload model.CreatePayload) error
	Update(ctx context.Context, debtID int64, payload model.UpdatePayload) error
}

// Dispatcher implements form.Dispatcher on top of the record service.
type Dispatcher struct {
	writer Writer
	logger *slog.Logger
}

var _ form.Dispatcher = (*Dispatcher)(nil)

// New builds a Dispatcher writing through w.
func New(w Writer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{writer: w, logger: logger}
}

// BuildPayload converts a state into the create payload using each field's
// normalized value. Edit submissions use CreatePayload.Update to drop the
// identifier from the body.
func BuildPayload(state form.State) (model.CreatePayload, error) {
	var (
		payload model.CreatePayload
		err     error
	)
	value := func(id form.FieldID) string {
		verdict := form.Validate(id, state.Field(id).Value)
		if !verdict.Valid() && err == nil {
			err = fmt.Errorf("%w: %s: %s", ErrInvalidState, id, verdict.Reason)
		}
		return verdict.Value
	}

	debtID := value(form.FieldDebtID)
	category := value(form.FieldCategory)
	payload.Name = value(form.FieldName)
	payload.DOB = value(form.FieldDOB)
	income := value(form.FieldIncome)
	expenses := value(form.FieldExpenses)
	payload.Comments = value(form.FieldComments)
	if err != nil {
		return model.CreatePayload{}, err
	}

	if payload.DebtID, err = strconv.ParseInt(debtID, 10, 64); err != nil {
		return model.CreatePayload{}, fmt.Errorf("%w: debtID: %v", ErrInvalidState, err)
	}
	if payload.HardshipTypeID, err = strconv.Atoi(category); err != nil {
		return model.CreatePayload{}, fmt.Errorf("%w: hardshipTypeID: %v", ErrInvalidState, err)
	}
	if payload.Income, err = strconv.ParseFloat(income, 64); err != nil {
		return model.CreatePayload{}, fmt.Errorf("%w: income: %v", ErrInvalidState, err)
	}
	if payload.Expenses, err = strconv.ParseFloat(expenses, 64); err != nil {
		return model.CreatePayload{}, fmt.Errorf("%w: expenses: %v", ErrInvalidState, err)
	}
	return payload, nil
}

// Dispatch sends exactly one request for state and reports the outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, state form.State) form.Status {
	payload, err := BuildPayload(state)
	if err != nil {
		d.logger.Error("refusing to dispatch invalid form", "error", err)
		return form.Failed(form.MsgFixErrors)
	}

	switch state.Mode {
	case form.ModeEdit:
		err = d.writer.Update(ctx, payload.DebtID, payload.Update())
	default:
		err = d.writer.Create(ctx, payload)
	}
	if err != nil {
		d.logger.Warn("record service call failed", "mode", state.Mode.String(), "debt_id", payload.DebtID, "error", err)
		return form.Failed(records.Message(err))
	}
	return form.Succeeded(state.Mode.SuccessMessage())
}
