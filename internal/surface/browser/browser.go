// Package browser implements the rendering-surface contract by delegating
// to the user's default web browser. It is the fallback for builds without
// an embeddable engine: the shell still controls the navigation and still
// observes the outcome, but the window itself belongs to the browser.
package browser

import (
	"context"
	"fmt"
	"log"

	"github.com/pkg/browser"

	"github.com/emglab/composite-shell/internal/surface"
	"github.com/emglab/composite-shell/pkg/config"
)

type Surface struct {
	reporter *surface.Reporter
	sink     surface.EventSink
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(cfg *config.Config, sink surface.EventSink, reporter *surface.Reporter) *Surface {
	ctx, cancel := context.WithCancel(context.Background())
	return &Surface{
		reporter: reporter,
		sink:     sink,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Surface) ApplyPolicy(p config.SecurityPolicy) error {
	if p != config.PolicyStrict {
		return fmt.Errorf("browser: unsupported security policy %q", p)
	}
	// The external browser enforces its own sandbox; the shell side has no
	// injection or bridge capability to disable.
	return nil
}

func (s *Surface) Navigate(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("browser: open %s: %w", url, err)
	}
	s.reporter.Report(s.ctx, url, s.sink)
	return nil
}

func (s *Surface) ShowFallback(html string) error {
	// There is no owned surface to draw into; the native dialog raised by
	// the launcher is the visible indication in this mode.
	log.Printf("[browser] Remote content failed to load; failure reported via dialog")
	return nil
}

func (s *Surface) Close() error {
	// The browser tab cannot be closed from here; just make sure no late
	// outcome is delivered.
	s.cancel()
	return nil
}
