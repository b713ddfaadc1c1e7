package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kouma-root/polly-go"
)

// counterValue gathers the registry and returns the counter with the given
// label pairs, or -1 if no such series exists.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			if len(m.GetLabel()) != len(labels) {
				continue
			}
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metric
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return -1
}

func TestRecorder_CountsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	client, err := polly.New(
		polly.WithBaseURL(server.URL),
		polly.WithObserver(rec.Observe),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	for i := 0; i < 3; i++ {
		if _, err := client.Polls(context.Background(), 0, 10); err != nil {
			t.Fatalf("Polls() error = %v", err)
		}
	}

	got := counterValue(t, reg, "polly_client_requests_total", map[string]string{
		"operation": "polls",
		"code":      "200",
	})
	if got != 3 {
		t.Errorf("requests_total{operation=polls,code=200} = %v, want 3", got)
	}
}

func TestRecorder_LabelsFailuresByCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Poll not found"}`))
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	client, err := polly.New(
		polly.WithBaseURL(server.URL),
		polly.WithObserver(rec.Observe),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	if _, err := client.Results(context.Background(), 9); err == nil {
		t.Fatal("Results() expected error, got nil")
	}

	got := counterValue(t, reg, "polly_client_requests_total", map[string]string{
		"operation": "results",
		"code":      "404",
	})
	if got != 1 {
		t.Errorf("requests_total{operation=results,code=404} = %v, want 1", got)
	}
}

func TestRecorder_TransportErrorsUseErrorCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	// nothing listens on port 1
	client, err := polly.New(
		polly.WithBaseURL("http://localhost:1"),
		polly.WithTimeout(time.Second),
		polly.WithObserver(rec.Observe),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	if _, err := client.Polls(context.Background(), 0, 10); err == nil {
		t.Fatal("Polls() expected connection error, got nil")
	}

	got := counterValue(t, reg, "polly_client_requests_total", map[string]string{
		"operation": "polls",
		"code":      "error",
	})
	if got != 1 {
		t.Errorf("requests_total{operation=polls,code=error} = %v, want 1", got)
	}
}

func TestRecorder_ObservesDuration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	client, err := polly.New(
		polly.WithBaseURL(server.URL),
		polly.WithObserver(rec.Observe),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	if _, err := client.Polls(context.Background(), 0, 10); err != nil {
		t.Fatalf("Polls() error = %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	var found bool
	for _, mf := range families {
		if mf.GetName() != "polly_client_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetHistogram().GetSampleCount() == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Error("request_duration_seconds should have one sample for the polls operation")
	}
}
