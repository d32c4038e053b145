package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestCheckReachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := New(5 * time.Second)
	if err := p.Check(context.Background(), server.URL); err != nil {
		t.Errorf("Expected reachable host, got error: %v", err)
	}
}

func TestCheckFallsBackToGetOn405(t *testing.T) {
	var headCount, getCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			headCount.Add(1)
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			getCount.Add(1)
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	p := New(5 * time.Second)
	if err := p.Check(context.Background(), server.URL); err != nil {
		t.Errorf("Expected GET fallback to succeed, got error: %v", err)
	}
	if headCount.Load() != 1 || getCount.Load() != 1 {
		t.Errorf("Expected 1 HEAD and 1 GET, got %d HEAD, %d GET", headCount.Load(), getCount.Load())
	}
}

func TestCheckServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := New(5 * time.Second)
	err := p.Check(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 500 response, got nil")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("Expected status in error message, got: %v", err)
	}
}

func TestCheckUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // nothing listens anymore

	p := New(2 * time.Second)
	if err := p.Check(context.Background(), url); err == nil {
		t.Fatal("Expected error for unreachable host, got nil")
	}
}

func TestCheckCancelledContext(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	p := New(30 * time.Second)
	if err := p.Check(ctx, server.URL); err == nil {
		t.Fatal("Expected error after context cancellation, got nil")
	}
}
