package surface

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emglab/composite-shell/internal/probe"
)

// recordingSink forwards every delivery onto a channel so tests can wait
// for the reporter's goroutine.
type recordingSink struct {
	events chan sinkEvent
}

type sinkEvent struct {
	finished bool
	reason   error
}

func newRecordingSink() *recordingSink {
	return &recordingSink{events: make(chan sinkEvent, 4)}
}

func (s *recordingSink) LoadFinished() {
	s.events <- sinkEvent{finished: true}
}

func (s *recordingSink) LoadFailed(reason error) {
	s.events <- sinkEvent{reason: reason}
}

func (s *recordingSink) wait(t *testing.T) sinkEvent {
	t.Helper()
	select {
	case ev := <-s.events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for an outcome delivery")
		return sinkEvent{}
	}
}

func (s *recordingSink) expectNone(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case ev := <-s.events:
		t.Fatalf("Expected no delivery, got %+v", ev)
	case <-time.After(d):
	}
}

func TestReporterDeliversSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := newRecordingSink()
	r := NewReporter(probe.New(5 * time.Second))
	r.Report(context.Background(), srv.URL, sink)

	ev := sink.wait(t)
	if !ev.finished {
		t.Fatalf("Expected LoadFinished, got failure: %v", ev.reason)
	}
	// Exactly one delivery per Report.
	sink.expectNone(t, 100*time.Millisecond)
}

func TestReporterDeliversFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := newRecordingSink()
	r := NewReporter(probe.New(5 * time.Second))
	r.Report(context.Background(), srv.URL, sink)

	ev := sink.wait(t)
	if ev.finished {
		t.Fatal("Expected LoadFailed for a 500 response")
	}
	if ev.reason == nil {
		t.Fatal("Expected a failure reason")
	}
	sink.expectNone(t, 100*time.Millisecond)
}

func TestReporterDeliversFailureForUnreachableTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close() // nothing listens anymore

	sink := newRecordingSink()
	r := NewReporter(probe.New(2 * time.Second))
	r.Report(context.Background(), target, sink)

	ev := sink.wait(t)
	if ev.finished {
		t.Fatal("Expected LoadFailed for an unreachable target")
	}
	if ev.reason == nil {
		t.Fatal("Expected a failure reason")
	}
}

func TestReporterSuppressesDeliveryForClosedSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the surface was closed before the probe settled

	sink := newRecordingSink()
	r := NewReporter(probe.New(5 * time.Second))
	r.Report(ctx, srv.URL, sink)

	sink.expectNone(t, 300*time.Millisecond)
}
