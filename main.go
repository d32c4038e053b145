//go:build gui

package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/emglab/composite-shell/internal/appdelegate"
	"github.com/emglab/composite-shell/internal/lifecycle"
	"github.com/emglab/composite-shell/internal/logging"
	"github.com/emglab/composite-shell/internal/probe"
	"github.com/emglab/composite-shell/internal/shell"
	"github.com/emglab/composite-shell/internal/surface"
	"github.com/emglab/composite-shell/pkg/config"
	"github.com/emglab/composite-shell/ui"
)

// wailsSurface renders through the Wails window: the asset server serves
// whatever page the store currently holds, and a navigation hands the
// window off to the remote target via the bootstrap page. Nothing is ever
// bound into the page; the strict policy exposes no native bridge.
type wailsSurface struct {
	cfg      *config.Config
	pages    *ui.PageStore
	reporter *surface.Reporter

	mu         sync.Mutex
	sink       surface.EventSink
	runtimeCtx context.Context
	navigated  bool

	ctx    context.Context
	cancel context.CancelFunc
}

func newWailsSurface(cfg *config.Config, pages *ui.PageStore, reporter *surface.Reporter) *wailsSurface {
	return &wailsSurface{
		cfg:      cfg,
		pages:    pages,
		reporter: reporter,
	}
}

// factory is the surface.Factory for the desktop shell. Wails manages a
// single window, so only one instance can bind at a time; a terminated
// instance releases the window for the next Launch.
func (s *wailsSurface) factory(cfg *config.Config, sink surface.EventSink) (surface.Surface, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sink != nil {
		return nil, fmt.Errorf("the desktop shell hosts a single window")
	}
	s.sink = sink
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

func (s *wailsSurface) startup(ctx context.Context) {
	s.mu.Lock()
	s.runtimeCtx = ctx
	s.mu.Unlock()
}

func (s *wailsSurface) ApplyPolicy(p config.SecurityPolicy) error {
	if p != config.PolicyStrict {
		return fmt.Errorf("wails: unsupported security policy %q", p)
	}
	return nil
}

func (s *wailsSurface) Navigate(url string) error {
	s.mu.Lock()
	sink := s.sink
	ctx := s.ctx
	rctx := s.runtimeCtx
	first := !s.navigated
	s.navigated = true
	s.mu.Unlock()

	s.pages.Set(ui.BootstrapPage(s.cfg))
	if !first && rctx != nil {
		// Retry path: pull the window back to the local page, which then
		// hands off to the target again. Window-level navigation by the
		// host, not script injection into the hosted page.
		wruntime.WindowReloadApp(rctx)
	}

	// Wails reports no lifecycle for the remote hand-off; the reporter
	// synthesizes the outcome from a reachability probe.
	s.reporter.Report(ctx, url, sink)
	return nil
}

func (s *wailsSurface) ShowFallback(html string) error {
	s.pages.Set([]byte(html))

	s.mu.Lock()
	rctx := s.runtimeCtx
	s.mu.Unlock()
	if rctx != nil {
		wruntime.WindowReloadApp(rctx)
	}
	return nil
}

func (s *wailsSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.sink = nil
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize file logging early so we can diagnose Finder-launch issues
	if err := logging.Init(cfg.LogDir); err != nil {
		log.Printf("Warning: Failed to initialize file logging: %v", err)
		// Continue anyway - we'll just use stdout/stderr
	}
	defer logging.Close()
	if err := cfg.Validate(); err != nil {
		// A configuration error is fatal at the launch boundary; refusing
		// to start beats showing a blank, unlabeled window.
		log.Fatalf("Refusing to launch: %v", err)
	}

	pages := ui.NewPageStore()
	reporter := surface.NewReporter(probe.New(cfg.ProbeTimeout()))
	surf := newWailsSurface(cfg, pages, reporter)

	launcher := shell.NewLauncher(cfg, surf.factory)
	launcher.Start()
	defer launcher.Shutdown()

	reactivate := func() {
		if _, err := launcher.Reactivate(); err != nil {
			log.Printf("[main] Reactivate failed: %v", err)
		}
	}

	// Dock icon click with no open windows re-launches the window.
	appdelegate.Install(reactivate)

	cleanupLifecycle, err := lifecycle.ObserveActivation(func(active bool) {
		if active {
			log.Printf("[lifecycle] App became active (foreground)")
			reactivate()
		} else {
			log.Printf("[lifecycle] App resigned active (background)")
		}
	})
	if err != nil {
		log.Printf("Warning: Failed to observe lifecycle events: %v", err)
		// Continue anyway
	} else {
		defer cleanupLifecycle()
	}

	err = wails.Run(&options.App{
		Title:  cfg.WindowTitle,
		Width:  cfg.Width,
		Height: cfg.Height,
		AssetServer: &assetserver.Options{
			Handler: pages,
		},
		OnStartup: func(ctx context.Context) {
			surf.startup(ctx)
			if _, err := launcher.Launch(); err != nil {
				log.Fatalf("Failed to launch shell: %v", err)
			}
		},
		OnShutdown: func(ctx context.Context) {
			log.Println("[main] Shutting down application")
			launcher.Shutdown()
		},
	})

	if err != nil {
		log.Fatalf("Error launching app: %v", err)
	}
}
