package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hardship/pkg/form"
	"github.com/goliatone/go-hardship/pkg/model"
	"github.com/goliatone/go-hardship/pkg/records"
	"github.com/goliatone/go-hardship/pkg/view"
)

// scriptedDriver answers prompts from per-message queues. Answers rejected by
// a validator are recorded and the next answer is tried, as survey re-asks.
type scriptedDriver struct {
	answers  map[string][]string
	selects  map[string]int
	confirms []bool
	rejected []string
	infos    []string
	asked    []string
}

func (d *scriptedDriver) next(message string) (string, error) {
	queue := d.answers[message]
	if len(queue) == 0 {
		return "", fmt.Errorf("unexpected prompt %q", message)
	}
	d.answers[message] = queue[1:]
	return queue[0], nil
}

func (d *scriptedDriver) answer(message string, validator func(string) error) (string, error) {
	d.asked = append(d.asked, message)
	for {
		value, err := d.next(message)
		if err != nil {
			return "", err
		}
		if validator != nil {
			if verr := validator(value); verr != nil {
				d.rejected = append(d.rejected, verr.Error())
				continue
			}
		}
		return value, nil
	}
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	return d.answer(cfg.Message, cfg.Validator)
}

func (d *scriptedDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	return d.answer(cfg.Message, cfg.Validator)
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	idx, ok := d.selects[cfg.Message]
	if !ok {
		return cfg.DefaultIndex, nil
	}
	return idx, nil
}

func (d *scriptedDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type memService struct {
	records map[int64]model.Record
	created []model.CreatePayload
	updated map[int64]model.UpdatePayload
	err     error
}

func (m *memService) List(context.Context) ([]model.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Record
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *memService) Get(_ context.Context, id int64) (model.Record, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return model.Record{}, &records.ServiceError{Operation: records.OperationGet, StatusCode: http.StatusNotFound, Body: []byte(`"Debt not found"`)}
}

func (m *memService) Create(_ context.Context, p model.CreatePayload) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, p)
	return nil
}

func (m *memService) Update(_ context.Context, id int64, p model.UpdatePayload) error {
	if m.updated == nil {
		m.updated = make(map[int64]model.UpdatePayload)
	}
	m.updated[id] = p
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (d *scriptedDriver) saw(msg string) bool {
	for _, info := range d.infos {
		if strings.Contains(info, msg) {
			return true
		}
	}
	return false
}

func TestCreateFlow(t *testing.T) {
	driver := &scriptedDriver{
		answers: map[string][]string{
			"Debt ID":       {"12a", "123"},
			"Customer Name": {"J4ne", "Jane Doe"},
			"Date of Birth": {"2030-01-01", "2000-01-01"},
			"Income":        {"50000"},
			"Expenses":      {"20000"},
			"Comments":      {""},
		},
		selects: map[string]int{"Hardship Type": 0},
	}
	service := &memService{}
	session := NewSession(service, WithDriver(driver), WithLogger(quietLogger()))

	state, err := session.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if state.Status != form.Succeeded("Hardship created successfully!") {
		t.Fatalf("unexpected status %+v", state.Status)
	}

	want := []model.CreatePayload{{DebtID: 123, HardshipTypeID: 1, Name: "Jane Doe", DOB: "2000-01-01", Income: 50000, Expenses: 20000}}
	if diff := cmp.Diff(want, service.created); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	wantRejected := []string{"Debt ID must be a valid number", "No special characters allowed.", "Year cannot exceed 2025."}
	if diff := cmp.Diff(wantRejected, driver.rejected); diff != "" {
		t.Fatalf("rejections mismatch (-want +got):\n%s", diff)
	}
	if !driver.saw("Hardship created successfully!") {
		t.Fatalf("success message not shown: %v", driver.infos)
	}
}

func TestEditFlowSkipsIdentifier(t *testing.T) {
	service := &memService{records: map[int64]model.Record{
		42: {DebtID: 42, HardshipTypeName: "Medical", Name: "Jane Doe", DOB: "1985-07-04T00:00:00", Income: 50000, Expenses: 20000, Comments: "lost job"},
	}}
	driver := &scriptedDriver{
		answers: map[string][]string{
			"DebtID":        {"", "42"},
			"Customer Name": {"Jane Doe"},
			"Date of Birth": {"04/07/1985"},
			"Income":        {"60000"},
			"Expenses":      {"20000"},
			"Comments":      {"lost job"},
		},
	}
	session := NewSession(service, WithDriver(driver), WithLogger(quietLogger()))

	state, err := session.Edit(context.Background())
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if state.Status.Kind != form.StatusSucceeded {
		t.Fatalf("unexpected status %+v", state.Status)
	}
	for _, asked := range driver.asked {
		if asked == "Debt ID" {
			t.Fatalf("identifier must not be prompted in edit mode")
		}
	}
	want := map[int64]model.UpdatePayload{42: {HardshipTypeID: 2, Name: "Jane Doe", DOB: "1985-07-04", Income: 60000, Expenses: 20000, Comments: "lost job"}}
	if diff := cmp.Diff(want, service.updated); diff != "" {
		t.Fatalf("update mismatch (-want +got):\n%s", diff)
	}
	if len(driver.rejected) != 1 || driver.rejected[0] != "Please enter a valid DebtID." {
		t.Fatalf("expected empty lookup to be rejected, got %v", driver.rejected)
	}
}

func TestLookupNotFound(t *testing.T) {
	driver := &scriptedDriver{answers: map[string][]string{"DebtID": {"7"}}}
	session := NewSession(&memService{}, WithDriver(driver), WithLogger(quietLogger()))

	if _, err := session.Edit(context.Background()); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !driver.saw("Debt not found") {
		t.Fatalf("service message not shown: %v", driver.infos)
	}
}

func TestCreateFailureShowsServiceMessage(t *testing.T) {
	driver := &scriptedDriver{
		answers: map[string][]string{
			"Debt ID":       {"123"},
			"Customer Name": {"Jane Doe"},
			"Date of Birth": {"2000-01-01"},
			"Income":        {"1"},
			"Expenses":      {"1"},
			"Comments":      {""},
		},
	}
	service := &memService{err: errors.New("dial tcp: connection refused")}
	session := NewSession(service, WithDriver(driver), WithLogger(quietLogger()))

	state, err := session.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if state.Status != form.Failed(records.FallbackMessage) {
		t.Fatalf("unexpected status %+v", state.Status)
	}
	if !driver.saw(records.FallbackMessage) {
		t.Fatalf("fallback message not shown: %v", driver.infos)
	}
}

func TestList(t *testing.T) {
	service := &memService{records: map[int64]model.Record{
		9: {DebtID: 9, HardshipTypeID: 3, Name: "Ann", DOB: "1990-01-01", Income: 1, Expenses: 2},
	}}
	driver := &scriptedDriver{}
	session := NewSession(service, WithDriver(driver), WithLogger(quietLogger()))

	list, err := session.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.State != view.ListLoaded || len(list.Entries) != 1 {
		t.Fatalf("unexpected list %+v", list)
	}
	if !driver.saw("Debt ID: 9") || !driver.saw("Hardship Type: Economic") || !driver.saw("Comment: None") {
		t.Fatalf("entry not printed: %v", driver.infos)
	}

	empty := &scriptedDriver{}
	if _, err := NewSession(&memService{}, WithDriver(empty)).List(context.Background()); err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if !empty.saw(view.MsgNoRecords) {
		t.Fatalf("expected %q, got %v", view.MsgNoRecords, empty.infos)
	}
}
