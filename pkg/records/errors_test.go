package records

import (
	"errors"
	"fmt"
	"testing"
)

func TestExtractMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "Debt already exists", "Debt already exists"},
		{"json string", `"Debt already exists"`, "Debt already exists"},
		{"detail wins", `{"title":"Bad Request","detail":"Debt 12 already has a hardship"}`, "Debt 12 already has a hardship"},
		{
			"validation problem",
			`{"title":"One or more validation errors occurred.","status":400,"errors":{"Name":["The Name field is required."],"Dob":["Invalid date.","Invalid date."]}}`,
			"One or more validation errors occurred. Invalid date. The Name field is required.",
		},
		{"nested error", `{"error":{"message":"upstream failed"}}`, "upstream failed"},
		{"markup stripped", "<html><body><h1>Server Error</h1> <p>it's broken</p></body></html>", "Server Error it's broken"},
		{"json number", `42`, ""},
		{"object without message", `{"status":500}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractMessage([]byte(tc.body)); got != tc.want {
				t.Fatalf("ExtractMessage(%q) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

func TestMessageFallback(t *testing.T) {
	if got := Message(nil); got != "" {
		t.Fatalf("nil error should have no message, got %q", got)
	}
	if got := Message(errors.New("dial tcp: refused")); got != FallbackMessage {
		t.Fatalf("unexpected message %q", got)
	}
	wrapped := fmt.Errorf("submit: %w", &ServiceError{Operation: OperationCreate, StatusCode: 500})
	if got := Message(wrapped); got != FallbackMessage {
		t.Fatalf("empty body should fall back, got %q", got)
	}
	wrapped = fmt.Errorf("submit: %w", &ServiceError{Operation: OperationCreate, StatusCode: 409, Body: []byte("duplicate")})
	if got := Message(wrapped); got != "duplicate" {
		t.Fatalf("unexpected message %q", got)
	}
}
