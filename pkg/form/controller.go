package form

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-hardship/pkg/model"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a previous
	// submission is still waiting on the record service.
	ErrSubmissionInFlight = errors.New("form: submission already in flight")
	// ErrNoDispatcher signals a controller built without a dispatcher.
	ErrNoDispatcher = errors.New("form: dispatcher is not configured")
)

// Dispatcher sends a fully validated state to the record service and reports
// the resulting terminal status (Succeeded or Failed).
type Dispatcher interface {
	Dispatch(ctx context.Context, state State) Status
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, state State) Status

// Dispatch implements Dispatcher.
func (f DispatcherFunc) Dispatch(ctx context.Context, state State) Status {
	return f(ctx, state)
}

// Observer receives submission outcomes, e.g. for metrics.
type Observer interface {
	SubmissionFinished(mode Mode, status Status)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDispatcher sets the dispatcher used by Submit.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Controller) {
		c.dispatcher = d
	}
}

// WithLogger overrides the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers an outcome observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithState replaces the initial state, e.g. when rebuilding a form from a
// posted request.
func WithState(state State) Option {
	return func(c *Controller) {
		c.state = state
	}
}

// Controller owns a form State and serializes changes and submissions.
type Controller struct {
	mu         sync.Mutex
	state      State
	dispatcher Dispatcher
	observer   Observer
	logger     *slog.Logger
	inFlight   atomic.Bool
}

// NewController builds a controller seeded from an optional record snapshot.
// A nil seed yields an empty create-mode form.
func NewController(seed *model.Record, options ...Option) *Controller {
	c := &Controller{
		state:  NewState(seed),
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the resolved form mode.
func (c *Controller) Mode() Mode {
	return c.State().Mode
}

// Submitting reports whether a submission is outstanding. Views use it to
// disable the submit control.
func (c *Controller) Submitting() bool {
	return c.inFlight.Load()
}

// Change stores value for id and re-validates that field.
func (c *Controller) Change(id FieldID, value string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Change(id, value)
	return c.state
}

// Submit validates every field and, when the form is clean, dispatches it.
// Validation failures end in an Aborted status without a network call.
// Exactly one dispatch happens per successful validation pass.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return c.State(), ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	c.mu.Lock()
	state := ValidateForSubmit(c.state.WithStatus(Idle()))
	if state.HasErrors() {
		state = state.WithStatus(Aborted(MsgFixErrors))
		c.state = state
		c.mu.Unlock()
		c.logger.Debug("form submission aborted", "mode", state.Mode.String(), "errors", len(state.Errors()))
		c.observe(state)
		return state, nil
	}
	if c.dispatcher == nil {
		c.state = state
		c.mu.Unlock()
		return state, ErrNoDispatcher
	}
	state = state.WithStatus(Submitting())
	c.state = state
	c.mu.Unlock()

	status := c.dispatcher.Dispatch(ctx, state)
	if !status.Terminal() {
		status = Failed(MsgUnknownError)
	}

	c.mu.Lock()
	c.state = c.state.WithStatus(status)
	state = c.state
	c.mu.Unlock()

	if status.Kind == StatusSucceeded {
		c.logger.Info("form submitted", "mode", state.Mode.String(), "debt_id", state.DebtID.Value)
	} else {
		c.logger.Warn("form submission failed", "mode", state.Mode.String(), "message", status.Message)
	}
	c.observe(state)
	return state, nil
}

func (c *Controller) observe(state State) {
	if c.observer != nil {
		c.observer.SubmissionFinished(state.Mode, state.Status)
	}
}
