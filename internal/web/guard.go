package web

import (
	"sync"

	"github.com/google/uuid"
)

// submitGuard tracks submission tokens with a request outstanding so a double
// POST of the same rendered form is refused instead of dispatched twice.
type submitGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func newSubmitGuard() *submitGuard {
	return &submitGuard{inFlight: make(map[string]struct{})}
}

// acquire marks token busy. Empty tokens are never guarded.
func (g *submitGuard) acquire(token string) bool {
	if token == "" {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[token]; busy {
		return false
	}
	g.inFlight[token] = struct{}{}
	return true
}

func (g *submitGuard) release(token string) {
	if token == "" {
		return
	}
	g.mu.Lock()
	delete(g.inFlight, token)
	g.mu.Unlock()
}

func newToken() string {
	return uuid.NewString()
}
