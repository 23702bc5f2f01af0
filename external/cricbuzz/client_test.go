package cricbuzz

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adityaverma/cricsync/internal/platform/logging"
	"github.com/adityaverma/cricsync/internal/platform/resilience"
	"github.com/adityaverma/cricsync/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, maxRetries int) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Host:       "cricbuzz-cricket.p.rapidapi.com",
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	})
	return client, server
}

func TestFetchLiveMatchesSendsRapidAPIHeaders(t *testing.T) {
	var gotHost, gotKey string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.Header.Get("x-rapidapi-host")
		gotKey = r.Header.Get("x-rapidapi-key")
		if r.URL.Path != "/matches/v1/live" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"typeMatches":[]}`))
	}), 0)

	if _, err := client.FetchLiveMatches(context.Background()); err != nil {
		t.Fatalf("fetch live matches: %v", err)
	}
	if gotHost != "cricbuzz-cricket.p.rapidapi.com" {
		t.Fatalf("unexpected host header: %q", gotHost)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected key header: %q", gotKey)
	}
}

func TestFetchLeaderboardBuildsQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats/v1/topstats/0" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("statsType"); got != "mostRuns" {
			t.Errorf("unexpected statsType: %q", got)
		}
		if got := r.URL.Query().Get("formatType"); got != "odi" {
			t.Errorf("unexpected formatType: %q", got)
		}
		_, _ = w.Write([]byte(`{"headers":["Player","Runs","Mat"],"values":[{"values":["Rohit Sharma","11,168","273"]}]}`))
	}), 0)

	rows, err := client.FetchLeaderboard(context.Background(), "mostRuns", "odi")
	if err != nil {
		t.Fatalf("fetch leaderboard: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	if rows[0].PlayerName != "Rohit Sharma" || rows[0].Value != 11168 || rows[0].Matches != 273 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestFetchLeaderboardRequiresStatAndFormat(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request should not reach the server")
	}), 0)

	if _, err := client.FetchLeaderboard(context.Background(), "", "odi"); err == nil {
		t.Fatalf("expected error for empty stats type")
	}
	if _, err := client.FetchLeaderboard(context.Background(), "mostRuns", " "); err == nil {
		t.Fatalf("expected error for empty format type")
	}
}

func TestClientRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"typeMatches":[]}`))
	}), 1)

	if _, err := client.FetchLiveMatches(context.Background()); err != nil {
		t.Fatalf("fetch live matches after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"subscription required"}`))
	}), 2)

	_, err := client.FetchLiveMatches(context.Background())
	if err == nil {
		t.Fatalf("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "status=403") {
		t.Fatalf("error should carry provider status, got: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("403 should not be retried, got %d attempts", calls.Load())
	}
}

func TestClientOpenCircuitRejectsRequests(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchLiveMatches(context.Background()); err == nil {
		t.Fatalf("expected error for 500 response")
	}

	_, err := client.FetchLiveMatches(context.Background())
	if err == nil {
		t.Fatalf("expected circuit breaker rejection")
	}
	if !stderrors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("open circuit should not reach the server, got %d calls", calls.Load())
	}
}

func TestClientRedactsAPIKeyInTransportErrors(t *testing.T) {
	client := NewClient(ClientConfig{
		BaseURL:    "http://127.0.0.1:1",
		APIKey:     "secret-api-key",
		Timeout:    200 * time.Millisecond,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	})

	_, err := client.FetchLiveMatches(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if strings.Contains(err.Error(), "secret-api-key") {
		t.Fatalf("error must not leak the api key: %v", err)
	}
}
