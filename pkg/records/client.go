package records

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-hardship/pkg/model"
)

const (
	tracerName = "github.com/goliatone/go-hardship/pkg/records"

	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"

	maxErrorBody = 64 << 10
)

// Service is the record service contract consumed by screens and the
// submission dispatcher.
type Service interface {
	List(ctx context.Context) ([]model.Record, error)
	Get(ctx context.Context, debtID int64) (model.Record, error)
	Create(ctx context.Context, payload model.CreatePayload) error
	Update(ctx context.Context, debtID int64, payload model.UpdatePayload) error
}

// Client implements Service over HTTP.
type Client struct {
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	routes   Routes
	checker  PayloadChecker
	observer Observer
	tracer   trace.Tracer
	logger   *slog.Logger
}

var _ Service = (*Client)(nil)

// New constructs a Client.
func New(options ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		routes:  DefaultRoutes(),
		tracer:  otel.Tracer(tracerName),
		logger:  slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	switch {
	case c.http == nil:
		c.http = &http.Client{Timeout: c.timeout}
	case c.http.Timeout == 0:
		clone := *c.http
		clone.Timeout = c.timeout
		c.http = &clone
	}
	return c
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every record.
func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	var out []model.Record
	if err := c.do(ctx, OperationList, http.MethodGet, c.routes.List, 0, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Record{}
	}
	return out, nil
}

// Get fetches a single record by debt ID.
func (c *Client) Get(ctx context.Context, debtID int64) (model.Record, error) {
	var out model.Record
	if err := c.do(ctx, OperationGet, http.MethodGet, c.routes.Get, debtID, nil, &out); err != nil {
		return model.Record{}, err
	}
	return out, nil
}

// Create inserts a new record.
func (c *Client) Create(ctx context.Context, payload model.CreatePayload) error {
	if c.checker != nil {
		if err := c.checker.CheckCreate(payload); err != nil {
			return fmt.Errorf("records: %s: %w", OperationCreate, err)
		}
	}
	return c.do(ctx, OperationCreate, http.MethodPost, c.routes.Create, 0, payload, nil)
}

// Update replaces the record addressed by debtID.
func (c *Client) Update(ctx context.Context, debtID int64, payload model.UpdatePayload) error {
	if c.checker != nil {
		if err := c.checker.CheckUpdate(payload); err != nil {
			return fmt.Errorf("records: %s: %w", OperationUpdate, err)
		}
	}
	return c.do(ctx, OperationUpdate, http.MethodPut, c.routes.Update, debtID, payload, nil)
}

func (c *Client) endpoint(route string, debtID int64) string {
	path := route
	if strings.Contains(path, "{id}") {
		path = strings.ReplaceAll(path, "{id}", strconv.FormatInt(debtID, 10))
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) do(ctx context.Context, operation, method, route string, debtID int64, body, out any) (err error) {
	url := c.endpoint(route, debtID)

	ctx, span := c.tracer.Start(ctx, "records."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", url),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		encoded, encErr := json.Marshal(body)
		if encErr != nil {
			return fmt.Errorf("records: %s: encode body: %w", operation, encErr)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("records: %s: build request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(operation, 0, time.Since(started))
		c.logger.Warn("record service unreachable", "operation", operation, "url", url, "error", err)
		return fmt.Errorf("records: %s: %w", operation, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.observe(operation, resp.StatusCode, time.Since(started))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("record service rejected request", "operation", operation, "status", resp.StatusCode)
		return &ServiceError{Operation: operation, StatusCode: resp.StatusCode, Body: data}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("records: %s: decode response: %w", operation, err)
	}
	return nil
}

func (c *Client) observe(operation string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(operation, status, elapsed)
	}
}
