//go:build cgo && (darwin || linux || windows)

// Package webview adapts the lightweight system webview (WebKit on macOS
// and Linux, WebView2 on Windows) to the shell's surface contract.
package webview

import (
	"context"
	"fmt"
	"sync"

	webview "github.com/webview/webview_go"

	"github.com/emglab/composite-shell/internal/surface"
	"github.com/emglab/composite-shell/pkg/config"
)

// Supported reports whether this build can host an embedded webview.
func Supported() bool { return true }

// view is the slice of webview.WebView the surface actually drives.
type view interface {
	Dispatch(f func())
	Navigate(url string)
	SetHtml(html string)
	Terminate()
	Run()
	Destroy()
}

// Surface wraps one embedded webview window. The webview library binds the
// window to the OS main thread: New and Run must be called from the main
// goroutine, while the other methods hop over via Dispatch.
type Surface struct {
	view     view
	reporter *surface.Reporter

	mu        sync.Mutex
	sink      surface.EventSink
	ctx       context.Context
	cancel    context.CancelFunc
	closed    bool
	destroyed bool
}

// New creates the webview window. Debug mode stays off: developer tools
// are a script-injection channel the strict policy does not allow.
func New(cfg *config.Config, reporter *surface.Reporter) (*Surface, error) {
	w := webview.New(false)
	if w == nil {
		return nil, fmt.Errorf("webview: failed to create window (missing runtime?)")
	}
	w.SetTitle(cfg.WindowTitle)
	w.SetSize(cfg.Width, cfg.Height, webview.HintNone)
	return newSurface(w, reporter), nil
}

func newSurface(v view, reporter *surface.Reporter) *Surface {
	ctx, cancel := context.WithCancel(context.Background())
	return &Surface{
		view:     v,
		reporter: reporter,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Bind attaches the outcome sink for the instance this surface belongs to.
// The launcher's factory calls it exactly once, before any navigation.
func (s *Surface) Bind(sink surface.EventSink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

func (s *Surface) ApplyPolicy(p config.SecurityPolicy) error {
	if p != config.PolicyStrict {
		return fmt.Errorf("webview: unsupported security policy %q", p)
	}
	// Nothing to weaken: no bindings are registered, no script is
	// injected, and the target URL is https-only by configuration.
	return nil
}

// dispatch hops f onto the webview event loop. It refuses once the surface
// is closed or the underlying view is destroyed: the raw view handle must
// never be touched after Destroy.
func (s *Surface) dispatch(f func()) bool {
	s.mu.Lock()
	dead := s.closed || s.destroyed
	s.mu.Unlock()
	if dead {
		return false
	}
	s.view.Dispatch(f)
	return true
}

func (s *Surface) Navigate(url string) error {
	s.mu.Lock()
	sink := s.sink
	ctx := s.ctx
	s.mu.Unlock()
	if sink == nil {
		return fmt.Errorf("webview: no event sink bound")
	}

	if !s.dispatch(func() {
		s.view.Navigate(url)
	}) {
		return fmt.Errorf("webview: window already closed")
	}

	// The webview library exposes no navigation lifecycle; the reporter
	// synthesizes the outcome from a reachability probe.
	s.reporter.Report(ctx, url, sink)
	return nil
}

func (s *Surface) ShowFallback(html string) error {
	if !s.dispatch(func() {
		s.view.SetHtml(html)
	}) {
		return fmt.Errorf("webview: window already closed")
	}
	return nil
}

// Close cancels any outstanding load and terminates the event loop. It is
// idempotent and safe after Run has returned, when the view no longer
// exists.
func (s *Surface) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cancel()
	dead := s.destroyed
	s.mu.Unlock()

	if !dead {
		s.view.Dispatch(func() {
			s.view.Terminate()
		})
	}
	return nil
}

// Run enters the webview main loop and blocks until the window closes.
// Must be called from the main goroutine.
func (s *Surface) Run() {
	s.view.Run()

	// The loop is done; mark the view dead before destroying it so no
	// late Close or Navigate dispatches against the freed handle.
	s.mu.Lock()
	s.destroyed = true
	s.cancel()
	s.mu.Unlock()

	s.view.Destroy()
}
