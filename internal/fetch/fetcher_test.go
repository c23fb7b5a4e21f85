package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jgrier/quotd/internal/endpoint"
)

const quoteBody = `[{"text":"Be water.","author":"Bruce Lee"}]`

func quoteServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFirstSuccessDirect(t *testing.T) {
	srv := quoteServer(t, http.StatusOK, quoteBody)

	quotes, err := New().FirstSuccess(context.Background(),
		[]endpoint.Candidate{{URL: srv.URL, Shape: endpoint.DirectJSON}}, 5*time.Second)
	if err != nil {
		t.Fatalf("FirstSuccess failed: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].Text != "Be water." || quotes[0].Author != "Bruce Lee" {
		t.Errorf("unexpected quote: %+v", quotes[0])
	}
}

func TestFirstSuccessWrapped(t *testing.T) {
	srv := quoteServer(t, http.StatusOK, `{"contents": "[{\"text\":\"X\",\"author\":\"Y\"}]"}`)

	quotes, err := New().FirstSuccess(context.Background(),
		[]endpoint.Candidate{{URL: srv.URL, Shape: endpoint.WrappedJSON}}, 5*time.Second)
	if err != nil {
		t.Fatalf("FirstSuccess failed: %v", err)
	}
	if quotes[0].Text != "X" || quotes[0].Author != "Y" {
		t.Errorf("unexpected quote: %+v", quotes[0])
	}
}

func TestFirstSuccessFallsThrough(t *testing.T) {
	bad := quoteServer(t, http.StatusInternalServerError, "")
	good := quoteServer(t, http.StatusOK, quoteBody)
	var neverCalled atomic.Bool
	never := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		neverCalled.Store(true)
	}))
	defer never.Close()

	quotes, err := New().FirstSuccess(context.Background(), []endpoint.Candidate{
		{URL: bad.URL, Shape: endpoint.DirectJSON},
		{URL: good.URL, Shape: endpoint.DirectJSON},
		{URL: never.URL, Shape: endpoint.DirectJSON},
	}, 5*time.Second)
	if err != nil {
		t.Fatalf("FirstSuccess failed: %v", err)
	}
	if quotes[0].Text != "Be water." {
		t.Errorf("unexpected quote: %+v", quotes[0])
	}
	if neverCalled.Load() {
		t.Error("candidates after the first success must not be attempted")
	}
}

func TestFirstSuccessParseFailureFallsThrough(t *testing.T) {
	malformed := quoteServer(t, http.StatusOK, "not json")
	good := quoteServer(t, http.StatusOK, quoteBody)

	quotes, err := New().FirstSuccess(context.Background(), []endpoint.Candidate{
		{URL: malformed.URL, Shape: endpoint.DirectJSON},
		{URL: good.URL, Shape: endpoint.DirectJSON},
	}, 5*time.Second)
	if err != nil {
		t.Fatalf("FirstSuccess failed: %v", err)
	}
	if quotes[0].Author != "Bruce Lee" {
		t.Errorf("unexpected quote: %+v", quotes[0])
	}
}

func TestFirstSuccessRateLimitedShortCircuits(t *testing.T) {
	limited := quoteServer(t, http.StatusTooManyRequests, "")
	var neverCalled atomic.Bool
	never := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		neverCalled.Store(true)
	}))
	defer never.Close()

	_, err := New().FirstSuccess(context.Background(), []endpoint.Candidate{
		{URL: limited.URL, Shape: endpoint.DirectJSON},
		{URL: never.URL, Shape: endpoint.DirectJSON},
	}, 5*time.Second)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if neverCalled.Load() {
		t.Error("429 must short-circuit remaining candidates")
	}
}

func TestFirstSuccessExhausted(t *testing.T) {
	a := quoteServer(t, http.StatusInternalServerError, "")
	b := quoteServer(t, http.StatusNotFound, "")

	_, err := New().FirstSuccess(context.Background(), []endpoint.Candidate{
		{URL: a.URL, Shape: endpoint.DirectJSON},
		{URL: b.URL, Shape: endpoint.DirectJSON},
	}, 5*time.Second)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestFirstSuccessNoCandidates(t *testing.T) {
	_, err := New().FirstSuccess(context.Background(), nil, 5*time.Second)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestFirstSuccessTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Write([]byte(quoteBody))
	}))
	defer slow.Close()
	good := quoteServer(t, http.StatusOK, quoteBody)

	start := time.Now()
	quotes, err := New().FirstSuccess(context.Background(), []endpoint.Candidate{
		{URL: slow.URL, Shape: endpoint.DirectJSON},
		{URL: good.URL, Shape: endpoint.DirectJSON},
	}, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("FirstSuccess failed: %v", err)
	}
	if quotes[0].Text != "Be water." {
		t.Errorf("unexpected quote: %+v", quotes[0])
	}
	if time.Since(start) > time.Second {
		t.Error("timed-out candidate should be abandoned at its bound")
	}
}

func TestFirstSuccessEmptyArrayFails(t *testing.T) {
	empty := quoteServer(t, http.StatusOK, "[]")

	_, err := New().FirstSuccess(context.Background(),
		[]endpoint.Candidate{{URL: empty.URL, Shape: endpoint.DirectJSON}}, 5*time.Second)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted for empty payload, got %v", err)
	}
}
