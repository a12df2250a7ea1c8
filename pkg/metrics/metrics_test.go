package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-hardship/pkg/form"
)

func TestSubmissionFinished(t *testing.T) {
	c := New(WithRegistry(prometheus.NewRegistry()))
	c.SubmissionFinished(form.ModeCreate, form.Succeeded("ok"))
	c.SubmissionFinished(form.ModeCreate, form.Succeeded("ok"))
	c.SubmissionFinished(form.ModeEdit, form.Failed(""))

	if got := testutil.ToFloat64(c.submissions.WithLabelValues("create", "succeeded")); got != 2 {
		t.Fatalf("create/succeeded = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.submissions.WithLabelValues("edit", "failed")); got != 1 {
		t.Fatalf("edit/failed = %v, want 1", got)
	}
}

func TestObserveRequest(t *testing.T) {
	c := New(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
	c.ObserveRequest("create", 201, 20*time.Millisecond)
	c.ObserveRequest("list", 0, time.Millisecond)

	if n := testutil.CollectAndCount(c.serviceRequests); n != 2 {
		t.Fatalf("expected two series, got %d", n)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.ObserveHTTP("/debts", http.MethodGet, 200, time.Millisecond)
	c.ObserveHTTP("", http.MethodGet, 404, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`hardship_http_requests_total{method="GET",route="/debts",status="200"} 1`,
		`route="unmatched"`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %q in exposition\n%s", want, body)
		}
	}
}
