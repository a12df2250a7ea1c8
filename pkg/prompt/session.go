package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-hardship/pkg/form"
	"github.com/goliatone/go-hardship/pkg/model"
	"github.com/goliatone/go-hardship/pkg/records"
	"github.com/goliatone/go-hardship/pkg/submit"
	"github.com/goliatone/go-hardship/pkg/validation"
	"github.com/goliatone/go-hardship/pkg/view"
)

// Session runs the create, edit, and list flows against a record service.
type Session struct {
	driver     PromptDriver
	service    records.Service
	dispatcher form.Dispatcher
	observer   form.Observer
	logger     *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithDriver overrides the survey driver.
func WithDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithObserver receives submission outcomes.
func WithObserver(o form.Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession builds a session over service.
func NewSession(service records.Service, options ...Option) *Session {
	s := &Session{service: service, logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	s.dispatcher = submit.New(service, s.logger)
	return s
}

// Create collects a new record and submits it.
func (s *Session) Create(ctx context.Context) (form.State, error) {
	return s.RunForm(ctx, nil)
}

// Edit looks a record up by debt ID and runs the form seeded with it.
func (s *Session) Edit(ctx context.Context) (form.State, error) {
	record, err := s.Lookup(ctx)
	if err != nil {
		return form.State{}, err
	}
	return s.RunForm(ctx, &record)
}

// Lookup asks for a debt ID and fetches its record. Service failures are
// reported to the user and returned.
func (s *Session) Lookup(ctx context.Context) (model.Record, error) {
	raw, err := s.driver.Input(ctx, InputConfig{
		Message:   "DebtID",
		Validator: verdictError(validation.LookupID),
	})
	if err != nil {
		return model.Record{}, err
	}
	verdict := validation.LookupID(raw)
	if !verdict.Valid() {
		_ = s.driver.Info(ctx, verdict.Reason)
		return model.Record{}, errors.New(verdict.Reason)
	}
	id, err := strconv.ParseInt(verdict.Value, 10, 64)
	if err != nil {
		return model.Record{}, fmt.Errorf("prompt: parse debt id: %w", err)
	}

	record, err := s.service.Get(ctx, id)
	if err != nil {
		_ = s.driver.Info(ctx, records.Message(err))
		return model.Record{}, err
	}
	if record.DebtID <= 0 {
		record.DebtID = id
	}
	return record, nil
}

// RunForm asks every editable field, submits, and offers to correct fields
// when validation aborts the submission.
func (s *Session) RunForm(ctx context.Context, seed *model.Record) (form.State, error) {
	controller := form.NewController(seed,
		form.WithDispatcher(s.dispatcher),
		form.WithLogger(s.logger),
		form.WithObserver(s.observer),
	)
	mode := controller.Mode()
	if err := s.driver.Info(ctx, mode.Title()); err != nil {
		return controller.State(), err
	}
	if mode == form.ModeEdit {
		_ = s.driver.Info(ctx, fmt.Sprintf("%s: %s", form.FieldDebtID.Label(), controller.State().DebtID.Value))
	}

	pending := editableFields(mode)
	for {
		for _, id := range pending {
			value, err := s.ask(ctx, id, controller.State())
			if err != nil {
				return controller.State(), err
			}
			controller.Change(id, value)
		}

		state, err := controller.Submit(ctx)
		if err != nil {
			return state, err
		}
		if state.Status.Kind != form.StatusAborted {
			_ = s.driver.Info(ctx, state.Status.Message)
			return state, nil
		}

		_ = s.driver.Info(ctx, state.Status.Message)
		pending = pending[:0]
		for _, id := range editableFields(mode) {
			if msg := state.Field(id).Error; msg != "" {
				_ = s.driver.Info(ctx, fmt.Sprintf("  %s: %s", id.Label(), msg))
				pending = append(pending, id)
			}
		}
		retry, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Correct the highlighted fields?", Default: true})
		if err != nil {
			return state, err
		}
		if !retry {
			return state, nil
		}
	}
}

// List prints every record returned by the service.
func (s *Session) List(ctx context.Context) (view.ListView, error) {
	items, err := s.service.List(ctx)
	list := view.NewListView(items, err)
	switch list.State {
	case view.ListFailed, view.ListEmpty:
		_ = s.driver.Info(ctx, list.Message)
		return list, err
	}
	_ = s.driver.Info(ctx, "List of hardships")
	for _, e := range list.Entries {
		lines := []string{
			fmt.Sprintf("Debt ID: %d", e.DebtID),
			"  Name: " + e.Name,
			"  Hardship Type: " + e.Type,
			"  Date of Birth: " + e.DOB,
			"  Income: " + e.Income,
			"  Expenses: " + e.Expenses,
			"  Comment: " + e.Comment,
		}
		if err := s.driver.Info(ctx, strings.Join(lines, "\n")); err != nil {
			return list, err
		}
	}
	return list, nil
}

func (s *Session) ask(ctx context.Context, id form.FieldID, state form.State) (string, error) {
	current := state.Field(id).Value
	validator := fieldValidator(id)

	switch id {
	case form.FieldCategory:
		categories := model.Categories()
		options := make([]string, len(categories))
		def := 0
		for i, c := range categories {
			options[i] = c.Label()
			if c.String() == current {
				def = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: id.Label(), Options: options, DefaultIndex: def})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(categories) {
			return "", nil
		}
		return categories[idx].String(), nil
	case form.FieldComments:
		return s.driver.TextArea(ctx, TextAreaConfig{
			Message:   id.Label(),
			Default:   current,
			Help:      fmt.Sprintf("%d/%d words", validation.WordCount(current), validation.MaxCommentWords),
			Validator: validator,
		})
	default:
		return s.driver.Input(ctx, InputConfig{
			Message:   id.Label(),
			Default:   current,
			Help:      inputHelp(id),
			Validator: validator,
		})
	}
}

func editableFields(mode form.Mode) []form.FieldID {
	var out []form.FieldID
	for _, id := range form.Fields() {
		if id == form.FieldDebtID && !mode.IdentifierEditable() {
			continue
		}
		out = append(out, id)
	}
	return out
}

func fieldValidator(id form.FieldID) func(string) error {
	return func(raw string) error {
		if id.Required() && strings.TrimSpace(raw) == "" {
			return errors.New(id.RequiredMessage())
		}
		return verdictError(id.Validator())(raw)
	}
}

func verdictError(v validation.Validator) func(string) error {
	return func(raw string) error {
		if verdict := v(raw); !verdict.Valid() {
			return errors.New(verdict.Reason)
		}
		return nil
	}
}

func inputHelp(id form.FieldID) string {
	switch id {
	case form.FieldDOB:
		return "YYYY-MM-DD or DD/MM/YYYY"
	case form.FieldIncome, form.FieldExpenses:
		return "Up to 8 digits"
	default:
		return ""
	}
}
