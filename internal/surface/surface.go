// Package surface defines the contract between the shell launcher and the
// platform web-rendering engines. Each platform variant (Wails window,
// embedded webview, system browser) implements the same capability set:
// configure a security policy, issue a navigation, show a failure fallback,
// and close.
package surface

import (
	"github.com/emglab/composite-shell/pkg/config"
)

// Surface is one embedded web-rendering surface, owned by exactly one shell
// instance. Implementations perform their fetch/render work on their own
// threads; outcomes are delivered through the EventSink bound at creation.
type Surface interface {
	// ApplyPolicy configures the surface with the given security policy
	// before any navigation. Implementations must reject policies they
	// cannot enforce.
	ApplyPolicy(policy config.SecurityPolicy) error

	// Navigate issues the load of url. It must not block; the outcome
	// arrives later via the EventSink, at most once per call.
	Navigate(url string) error

	// ShowFallback renders a visible failure indication in place of the
	// remote content. A blank, unexplained window is a defect.
	ShowFallback(html string) error

	// Close destroys the surface and cancels any outstanding load, which
	// suppresses its EventSink delivery. A delivery racing Close may still
	// arrive; the launcher discards it as a late outcome.
	Close() error
}

// EventSink receives load-lifecycle signals for one instance. Callers may
// invoke it from any goroutine; redispatch onto the owner loop is the
// receiver's concern.
type EventSink interface {
	LoadFinished()
	LoadFailed(reason error)
}

// Factory creates the surface for a new shell instance, with its outcome
// sink already bound.
type Factory func(cfg *config.Config, sink EventSink) (Surface, error)
