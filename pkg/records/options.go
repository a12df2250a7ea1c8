package records

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-hardship/pkg/model"
)

const (
	// DefaultBaseURL is the development address of the record service.
	DefaultBaseURL = "https://localhost:7241"
	// DefaultTimeout bounds each request when the caller supplies no client.
	DefaultTimeout = 15 * time.Second
)

// Routes holds the record service paths. {id} is replaced by the debt ID.
type Routes struct {
	List   string `yaml:"list"`
	Get    string `yaml:"get"`
	Create string `yaml:"create"`
	Update string `yaml:"update"`
}

// DefaultRoutes returns the paths served by the hardship API.
func DefaultRoutes() Routes {
	return Routes{
		List:   "/Hardships",
		Get:    "/Hardships/get-debt/{id}",
		Create: "/Hardships",
		Update: "/Hardships/edit/{id}",
	}
}

func (r Routes) withDefaults() Routes {
	def := DefaultRoutes()
	if strings.TrimSpace(r.List) == "" {
		r.List = def.List
	}
	if strings.TrimSpace(r.Get) == "" {
		r.Get = def.Get
	}
	if strings.TrimSpace(r.Create) == "" {
		r.Create = def.Create
	}
	if strings.TrimSpace(r.Update) == "" {
		r.Update = def.Update
	}
	return r
}

// PayloadChecker validates outbound bodies before they are sent.
type PayloadChecker interface {
	CheckCreate(payload model.CreatePayload) error
	CheckUpdate(payload model.UpdatePayload) error
}

// Observer is notified after every round trip. status is 0 when no response
// was received.
type Observer interface {
	ObserveRequest(operation string, status int, elapsed time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient supplies the HTTP client. When the client has no timeout the
// configured timeout is applied to a copy.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRoutes overrides individual endpoint paths; empty entries keep their
// defaults.
func WithRoutes(routes Routes) Option {
	return func(c *Client) {
		c.routes = routes.withDefaults()
	}
}

// WithPayloadChecker validates bodies before create and update requests.
func WithPayloadChecker(checker PayloadChecker) Option {
	return func(c *Client) {
		c.checker = checker
	}
}

// WithObserver registers a round-trip observer.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Client) {
		if provider != nil {
			c.tracer = provider.Tracer(tracerName)
		}
	}
}

// WithLogger overrides the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
