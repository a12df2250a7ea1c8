package web

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-hardship/pkg/form"
	"github.com/goliatone/go-hardship/pkg/model"
	"github.com/goliatone/go-hardship/pkg/navstate"
	"github.com/goliatone/go-hardship/pkg/records"
	"github.com/goliatone/go-hardship/pkg/submit"
	"github.com/goliatone/go-hardship/pkg/validation"
	"github.com/goliatone/go-hardship/pkg/view"
)

const (
	fieldSubmitToken = "submitToken"
	fieldStateToken  = "state"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.screens.Home)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, func(out io.Writer) error {
		return s.screens.List(out, PathEntries)
	})
}

// handleEntries performs the single fetch-all backing the list screen.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.List(r.Context())
	if err != nil {
		s.logger.Warn("list hardships failed", "error", err)
	}
	list := view.NewListView(items, err)
	s.render(w, r, http.StatusOK, func(out io.Writer) error {
		return s.screens.Entries(out, list)
	})
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, form.NewState(nil), PathCreate, "")
}

func (s *Server) handleCreateSubmit(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, nil, PathCreate, "")
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	s.renderLookup(w, r, http.StatusOK, view.LookupView{})
}

// handleLookupSubmit fetches the record and hands it to the form screen
// through the navigation store.
func (s *Server) handleLookupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	verdict := validation.LookupID(r.PostForm.Get("debtID"))
	if !verdict.Valid() {
		s.renderLookup(w, r, http.StatusUnprocessableEntity, view.LookupView{DebtID: verdict.Value, Message: verdict.Reason})
		return
	}
	id, err := strconv.ParseInt(verdict.Value, 10, 64)
	if err != nil {
		s.renderLookup(w, r, http.StatusUnprocessableEntity, view.LookupView{DebtID: verdict.Value, Message: validation.MsgDebtIDNumber})
		return
	}

	record, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.logger.Warn("fetch hardship failed", "debt_id", id, "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, records.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.renderLookup(w, r, status, view.LookupView{DebtID: verdict.Value, Message: records.Message(err)})
		return
	}
	if record.DebtID <= 0 {
		record.DebtID = id
	}

	token, err := s.nav.Put(r.Context(), record)
	if err != nil {
		s.logger.Error("store navigation state failed", "error", err)
		s.renderLookup(w, r, http.StatusInternalServerError, view.LookupView{DebtID: verdict.Value, Message: form.MsgUnknownError})
		return
	}
	http.Redirect(w, r, PathForm+"?"+url.Values{fieldStateToken: {token}}.Encode(), http.StatusSeeOther)
}

// handleForm renders the form seeded from a navigation token, or an empty
// create form when no token is present.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(fieldStateToken)
	if token == "" {
		s.renderForm(w, r, http.StatusOK, form.NewState(nil), PathForm, "")
		return
	}
	seed, ok := s.loadSeed(w, r, token)
	if !ok {
		return
	}
	s.renderForm(w, r, http.StatusOK, form.NewState(&seed), PathForm, token)
}

func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	token := r.PostForm.Get(fieldStateToken)
	if token == "" {
		s.submit(w, r, nil, PathForm, "")
		return
	}
	seed, ok := s.loadSeed(w, r, token)
	if !ok {
		return
	}
	s.submit(w, r, &seed, PathForm, token)
}

func (s *Server) loadSeed(w http.ResponseWriter, r *http.Request, token string) (model.Record, bool) {
	seed, err := s.nav.Get(r.Context(), token)
	if err == nil {
		return seed, true
	}
	if errors.Is(err, navstate.ErrNotFound) || errors.Is(err, navstate.ErrInvalidToken) {
		http.Redirect(w, r, PathEdit, http.StatusSeeOther)
		return model.Record{}, false
	}
	s.logger.Error("load navigation state failed", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	return model.Record{}, false
}

// submit runs one controller pass over the posted fields.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, seed *model.Record, action, stateToken string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var observer form.Observer
	if s.metrics != nil {
		observer = s.metrics
	}
	controller := form.NewController(seed,
		form.WithDispatcher(s.dispatcher),
		form.WithLogger(s.logger),
		form.WithObserver(observer),
	)
	for _, id := range form.Fields() {
		if id == form.FieldDebtID && !controller.Mode().IdentifierEditable() {
			continue
		}
		controller.Change(id, r.PostForm.Get(string(id)))
	}

	submitToken := r.PostForm.Get(fieldSubmitToken)
	if !s.guard.acquire(submitToken) {
		state := controller.State().WithStatus(form.Aborted(form.MsgInFlight))
		s.renderForm(w, r, http.StatusConflict, state, action, stateToken)
		return
	}
	defer s.guard.release(submitToken)

	state, err := controller.Submit(r.Context())
	if err != nil {
		s.logger.Error("form submission failed", "error", err)
		state = state.WithStatus(form.Failed(form.MsgUnknownError))
	}

	status := http.StatusOK
	switch state.Status.Kind {
	case form.StatusAborted:
		status = http.StatusUnprocessableEntity
	case form.StatusFailed:
		status = http.StatusBadGateway
	case form.StatusSucceeded:
		if stateToken != "" {
			s.refreshSeed(r, stateToken, state)
		}
	}
	s.renderForm(w, r, status, state, action, stateToken)
}

func (s *Server) refreshSeed(r *http.Request, token string, state form.State) {
	payload, err := submit.BuildPayload(state)
	if err != nil {
		return
	}
	if err := s.nav.Replace(r.Context(), token, payload.Record()); err != nil {
		s.logger.Warn("refresh navigation state failed", "error", err)
	}
}

type validateResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

// handleValidate runs a single field validator for inline feedback.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form body"})
		return
	}
	id, ok := form.ParseFieldID(r.PostForm.Get("field"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown field"})
		return
	}

	state := form.NewState(nil)
	if r.PostForm.Get("mode") == form.ModeEdit.String() {
		state.Mode = form.ModeEdit
	}
	field := state.Change(id, r.PostForm.Get("value")).Field(id)
	writeJSON(w, http.StatusOK, validateResponse{Field: string(id), Value: field.Value, Error: field.Error})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleContract(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(s.contract)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, state form.State, action, stateToken string) {
	v := view.NewFormView(state, action)
	v.StateToken = stateToken
	v.SubmitToken = s.tokens()
	s.render(w, r, status, func(out io.Writer) error {
		return s.screens.Form(out, v)
	})
}

func (s *Server) renderLookup(w http.ResponseWriter, r *http.Request, status int, v view.LookupView) {
	s.render(w, r, status, func(out io.Writer) error {
		return s.screens.Lookup(out, v)
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.logger.Error("render screen failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
