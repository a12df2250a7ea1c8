package records

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"
)

// FallbackMessage is shown when no message can be extracted from a failure.
const FallbackMessage = "An unknown error has occurred"

const maxMessageLength = 500

var (
	// ErrNotFound is matched by ServiceErrors carrying a 404 status.
	ErrNotFound = errors.New("records: not found")

	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// UserMessager is implemented by errors that carry text meant for end users.
type UserMessager interface {
	UserMessage() string
}

// ServiceError describes a non-success response from the record service.
type ServiceError struct {
	Operation  string
	StatusCode int
	Body       []byte
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("records: %s: unexpected status %d", e.Operation, e.StatusCode)
}

// Status returns the response status, defaulting to 502 when unknown.
func (e *ServiceError) Status() int {
	if e.StatusCode <= 0 {
		return http.StatusBadGateway
	}
	return e.StatusCode
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *ServiceError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// UserMessage extracts the message carried by the response body.
func (e *ServiceError) UserMessage() string {
	return ExtractMessage(e.Body)
}

// Message returns the best human readable text for err, or FallbackMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var messager UserMessager
	if errors.As(err, &messager) {
		if msg := strings.TrimSpace(messager.UserMessage()); msg != "" {
			return msg
		}
	}
	return FallbackMessage
}

// ExtractMessage pulls a message out of an error body. JSON problem details
// contribute detail (or message, or title) followed by their field errors; a
// JSON string is used verbatim; anything else is treated as plain text. Markup
// is stripped. An empty result means nothing usable was found.
func ExtractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		switch typed := decoded.(type) {
		case string:
			return clean(typed)
		case map[string]any:
			return clean(problemMessage(typed))
		default:
			return ""
		}
	}
	return clean(trimmed)
}

func problemMessage(payload map[string]any) string {
	var parts []string
	for _, key := range []string{"detail", "message", "title"} {
		if text, ok := payload[key].(string); ok && strings.TrimSpace(text) != "" {
			parts = append(parts, text)
			break
		}
	}
	if nested, ok := payload["error"].(map[string]any); ok && len(parts) == 0 {
		if text, ok := nested["message"].(string); ok {
			parts = append(parts, text)
		}
	} else if text, ok := payload["error"].(string); ok && len(parts) == 0 {
		parts = append(parts, text)
	}
	parts = append(parts, fieldMessages(payload["errors"])...)
	return strings.Join(normalizeMessages(parts), " ")
}

// fieldMessages flattens the errors member of a problem-details payload,
// which is either a map of field to messages or a plain list.
func fieldMessages(raw any) []string {
	switch typed := raw.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var out []string
		for _, key := range keys {
			out = append(out, stringsOf(typed[key])...)
		}
		return out
	default:
		return stringsOf(typed)
	}
}

func stringsOf(raw any) []string {
	switch typed := raw.(type) {
	case string:
		return []string{typed}
	case []any:
		var out []string
		for _, item := range typed {
			if text, ok := item.(string); ok {
				out = append(out, text)
			} else if obj, ok := item.(map[string]any); ok {
				if text, ok := obj["message"].(string); ok {
					out = append(out, text)
				}
			}
		}
		return out
	default:
		return nil
	}
}

// normalizeMessages trims, drops empties and removes duplicates while keeping
// order.
func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func clean(message string) string {
	stripped := html.UnescapeString(sanitizer().Sanitize(message))
	stripped = strings.Join(strings.Fields(stripped), " ")
	if runes := []rune(stripped); len(runes) > maxMessageLength {
		stripped = strings.TrimSpace(string(runes[:maxMessageLength])) + "…"
	}
	return stripped
}

func sanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}
