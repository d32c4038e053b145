package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/emglab/composite-shell/internal/logging"
	"github.com/emglab/composite-shell/internal/probe"
	"github.com/emglab/composite-shell/internal/shell"
	"github.com/emglab/composite-shell/internal/signals"
	"github.com/emglab/composite-shell/internal/surface"
	browsersurf "github.com/emglab/composite-shell/internal/surface/browser"
	webviewsurf "github.com/emglab/composite-shell/internal/surface/webview"
	"github.com/emglab/composite-shell/pkg/config"
)

var (
	useBrowser = flag.Bool("browser", false, "Open the target in the system browser instead of an embedded window")
	checkOnly  = flag.Bool("check", false, "Validate the configuration, probe the target, and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.LogDir); err != nil {
		log.Printf("Warning: Failed to initialize file logging: %v", err)
	}
	defer logging.Close()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Refusing to launch: %v", err)
	}

	prober := probe.New(cfg.ProbeTimeout())

	if *checkOnly {
		if err := prober.Check(context.Background(), cfg.TargetURL); err != nil {
			log.Fatalf("Target %s is not reachable: %v", cfg.TargetURL, err)
		}
		log.Printf("Target %s is reachable", cfg.TargetURL)
		return
	}

	reporter := surface.NewReporter(prober)

	if *useBrowser || !webviewsurf.Supported() {
		if !*useBrowser {
			log.Printf("[cli] Embedded webview not available on this build, falling back to the system browser")
		}
		runBrowser(cfg, reporter)
		return
	}
	runWebView(cfg, reporter)
}

// runBrowser hands the target off to the system browser. Once the load
// outcome is known there is nothing left to supervise, so we exit.
func runBrowser(cfg *config.Config, reporter *surface.Reporter) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	factory := func(c *config.Config, sink surface.EventSink) (surface.Surface, error) {
		return browsersurf.New(c, sink, reporter), nil
	}
	launcher := shell.NewLauncher(cfg, factory, shell.WithOutcomeFunc(func(out shell.LoadOutcome) {
		if out.Result == shell.ResultFailure {
			log.Printf("[cli] Load failed for instance %s: %v", out.InstanceID, out.Reason)
		} else {
			log.Printf("[cli] Load finished for instance %s", out.InstanceID)
		}
		cancel()
	}))
	launcher.Start()
	defer launcher.Shutdown()

	signals.SetupSignalHandler(cancel)
	signals.SetupDebugSignalHandler(launcher.DumpStacks)

	if _, err := launcher.Launch(); err != nil {
		log.Fatalf("Failed to launch: %v", err)
	}
	<-ctx.Done()
}

// runWebView hosts the target in an embedded webview window. The webview
// event loop must own the main goroutine, so the launch happens off it.
func runWebView(cfg *config.Config, reporter *surface.Reporter) {
	view, err := webviewsurf.New(cfg, reporter)
	if err != nil {
		log.Fatalf("Failed to create webview: %v", err)
	}

	bound := false
	factory := func(c *config.Config, sink surface.EventSink) (surface.Surface, error) {
		if bound {
			return nil, fmt.Errorf("this mode hosts a single window")
		}
		bound = true
		view.Bind(sink)
		return view, nil
	}

	launcher := shell.NewLauncher(cfg, factory)
	launcher.Start()
	defer launcher.Shutdown()

	signals.SetupSignalHandler(func() { view.Close() })
	signals.SetupDebugSignalHandler(launcher.DumpStacks)

	go func() {
		if _, err := launcher.Launch(); err != nil {
			log.Printf("[cli] Failed to launch: %v", err)
			view.Close()
		}
	}()

	// Blocks until the window closes.
	view.Run()
}
