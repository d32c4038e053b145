//go:build !cgo || !(darwin || linux || windows)

package webview

import (
	"errors"

	"github.com/emglab/composite-shell/internal/surface"
	"github.com/emglab/composite-shell/pkg/config"
)

// Supported reports whether this build can host an embedded webview.
func Supported() bool { return false }

var errUnavailable = errors.New("webview: embedded webview not available in this build (requires cgo)")

// Surface is a placeholder in builds without an embeddable engine.
type Surface struct{}

func New(cfg *config.Config, reporter *surface.Reporter) (*Surface, error) {
	return nil, errUnavailable
}

func (s *Surface) Bind(sink surface.EventSink) {}

func (s *Surface) ApplyPolicy(p config.SecurityPolicy) error { return errUnavailable }

func (s *Surface) Navigate(url string) error { return errUnavailable }

func (s *Surface) ShowFallback(html string) error { return errUnavailable }

func (s *Surface) Close() error { return nil }

func (s *Surface) Run() {}
