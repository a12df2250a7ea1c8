// Package web serves the hardship screens over HTTP with a chi router.
package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-hardship/components/hardshiptypes"
	"github.com/goliatone/go-hardship/pkg/form"
	"github.com/goliatone/go-hardship/pkg/metrics"
	"github.com/goliatone/go-hardship/pkg/navstate"
	"github.com/goliatone/go-hardship/pkg/records"
	"github.com/goliatone/go-hardship/pkg/submit"
	"github.com/goliatone/go-hardship/pkg/view"
)

// Route paths.
const (
	PathHome     = "/"
	PathList     = "/debts"
	PathEntries  = "/debts/entries"
	PathCreate   = "/hardship/create"
	PathEdit     = "/hardship/edit"
	PathForm     = "/hardship/form"
	PathValidate = "/hardship/validate"
	PathTypes    = hardshiptypes.DefaultRoutePath
	PathMetrics  = "/metrics"
	PathHealth   = "/healthz"
	PathContract = "/openapi.yaml"
)

// Server wires screens, the record service, and navigation state together.
type Server struct {
	service    records.Service
	screens    *view.Screens
	nav        *navstate.Store
	dispatcher form.Dispatcher
	logger     *slog.Logger
	metrics    *metrics.Collector
	contract   []byte
	guard      *submitGuard
	tokens     func() string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and submission logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNavStore overrides the in-memory navigation store.
func WithNavStore(store *navstate.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.nav = store
		}
	}
}

// WithMetrics records request and submission metrics and serves PathMetrics.
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Server) {
		s.metrics = collector
	}
}

// WithContractDocument serves doc at PathContract.
func WithContractDocument(doc []byte) Option {
	return func(s *Server) {
		s.contract = doc
	}
}

// WithDispatcher replaces the default record service dispatcher.
func WithDispatcher(d form.Dispatcher) Option {
	return func(s *Server) {
		if d != nil {
			s.dispatcher = d
		}
	}
}

// New constructs a Server.
func New(service records.Service, screens *view.Screens, options ...Option) *Server {
	s := &Server{
		service: service,
		screens: screens,
		logger:  slog.Default(),
		guard:   newSubmitGuard(),
		tokens:  newToken,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.nav == nil {
		s.nav = navstate.New(navstate.NewMemoryBackend(0))
	}
	if s.dispatcher == nil {
		s.dispatcher = submit.New(service, s.logger)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get(PathHome, s.handleHome)
	r.Get(PathList, s.handleList)
	r.Get(PathEntries, s.handleEntries)

	r.Route("/hardship", func(r chi.Router) {
		r.Get("/create", s.handleCreateForm)
		r.Post("/create", s.handleCreateSubmit)
		r.Get("/edit", s.handleLookup)
		r.Post("/edit", s.handleLookupSubmit)
		r.Get("/form", s.handleForm)
		r.Post("/form", s.handleFormSubmit)
		r.Post("/validate", s.handleValidate)
	})
	r.Method(http.MethodGet, PathTypes, hardshiptypes.Handler())
	r.Method(http.MethodHead, PathTypes, hardshiptypes.Handler())

	r.Get(PathHealth, s.handleHealth)
	if len(s.contract) > 0 {
		r.Get(PathContract, s.handleContract)
	}
	if s.metrics != nil {
		r.Method(http.MethodGet, PathMetrics, s.metrics.Handler())
	}
	return r
}
