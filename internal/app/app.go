// Package app assembles the record client, contract checker, metrics,
// navigation store, and screens described by a config.Config.
package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"go.opentelemetry.io/otel"

	hardship "github.com/goliatone/go-hardship"
	"github.com/goliatone/go-hardship/internal/config"
	"github.com/goliatone/go-hardship/internal/web"
	"github.com/goliatone/go-hardship/pkg/contract"
	"github.com/goliatone/go-hardship/pkg/metrics"
	"github.com/goliatone/go-hardship/pkg/navstate"
	navredis "github.com/goliatone/go-hardship/pkg/navstate/redis"
	"github.com/goliatone/go-hardship/pkg/prompt"
	"github.com/goliatone/go-hardship/pkg/records"
	"github.com/goliatone/go-hardship/pkg/theme"
	"github.com/goliatone/go-hardship/pkg/view"
)

// App holds the assembled components.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Client   *records.Client
	Contract *contract.Validator
	Document []byte
	Metrics  *metrics.Collector

	closers []io.Closer
}

// New builds the components shared by every command.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	doc, err := loadDocument(cfg.Contract.Path)
	if err != nil {
		return nil, err
	}
	checker, err := contract.Load(ctx, doc)
	if err != nil {
		return nil, err
	}
	a.Document = doc
	a.Contract = checker

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
	}

	routes := cfg.Service.Routes
	if cfg.Contract.Routes {
		routes = checker.Routes()
	}
	options := []records.Option{
		records.WithBaseURL(cfg.Service.BaseURL),
		records.WithHTTPClient(newHTTPClient(cfg.Service)),
		records.WithRoutes(routes),
		records.WithLogger(logger),
		records.WithTracerProvider(otel.GetTracerProvider()),
	}
	if cfg.Contract.Enforce {
		options = append(options, records.WithPayloadChecker(checker))
	}
	if a.Metrics != nil {
		options = append(options, records.WithObserver(a.Metrics))
	}
	a.Client = records.New(options...)
	return a, nil
}

// Handler assembles the web front-end.
func (a *App) Handler(ctx context.Context) (http.Handler, error) {
	engineOpts := []view.Option{view.WithFS(hardship.TemplatesFS())}
	if dir := a.Config.Theme.Templates; dir != "" {
		engineOpts = append(engineOpts, view.WithBaseDir(dir))
	}
	engine, err := view.New(engineOpts...)
	if err != nil {
		return nil, err
	}
	provider, err := theme.NewProvider()
	if err != nil {
		return nil, err
	}
	themeCfg, err := provider.Resolve(a.Config.Theme.Name, a.Config.Theme.Variant)
	if err != nil {
		return nil, err
	}
	screens, err := view.NewScreens(engine, themeCfg)
	if err != nil {
		return nil, err
	}

	nav, err := a.navStore(ctx)
	if err != nil {
		return nil, err
	}

	server := web.New(a.Client, screens,
		web.WithLogger(a.Logger),
		web.WithNavStore(nav),
		web.WithMetrics(a.Metrics),
		web.WithContractDocument(a.Document),
	)
	return server.Handler(), nil
}

// Session builds a terminal session. driver may be nil for the survey driver.
func (a *App) Session(driver prompt.PromptDriver) *prompt.Session {
	options := []prompt.Option{prompt.WithLogger(a.Logger), prompt.WithDriver(driver)}
	if a.Metrics != nil {
		options = append(options, prompt.WithObserver(a.Metrics))
	}
	return prompt.NewSession(a.Client, options...)
}

// Close releases backends opened by Handler.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) navStore(ctx context.Context) (*navstate.Store, error) {
	cfg := a.Config.NavState
	var backend navstate.Backend
	switch cfg.Backend {
	case config.BackendRedis:
		rb, err := navredis.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("app: connect navigation store: %w", err)
		}
		a.closers = append(a.closers, rb)
		backend = rb
	default:
		mb := navstate.NewMemoryBackend(cfg.TTL)
		a.closers = append(a.closers, mb)
		backend = mb
	}
	return navstate.New(backend, navstate.WithTTL(cfg.TTL)), nil
}

func loadDocument(path string) ([]byte, error) {
	if path == "" {
		return hardship.ContractDocument(), nil
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("app: read contract %s: %w", path, err)
	}
	return doc, nil
}

func newHTTPClient(cfg config.ServiceConfig) *http.Client {
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.InsecureSkipVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // development certificates
		client.Transport = transport
	}
	return client
}
