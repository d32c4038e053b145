package shell

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"
)

const defaultStallThreshold = 60 * time.Second

// watchdog tracks navigations in flight and warns about ones that have
// stayed in Loading past the threshold. It is diagnostic only: the design
// imposes no load timeout, so a stalled navigation is logged, never
// cancelled.
type watchdog struct {
	mu       sync.Mutex
	inflight map[string]time.Time // instance ID -> navigate time
	logDir   string
	enabled  bool
	stopCh   chan struct{}
	stopped  chan struct{}

	threshold time.Duration
}

func newWatchdog(logDir string, threshold time.Duration) *watchdog {
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			if runtime.GOOS == "darwin" {
				logDir = filepath.Join(home, "Library", "Logs", "CompositeShell")
			} else {
				logDir = filepath.Join(home, ".local", "share", "composite-shell", "logs")
			}
		} else {
			logDir = os.TempDir()
		}
	}

	return &watchdog{
		inflight:  make(map[string]time.Time),
		logDir:    logDir,
		stopCh:    make(chan struct{}),
		stopped:   make(chan struct{}),
		threshold: threshold,
	}
}

// start begins the monitoring loop
func (w *watchdog) start() {
	w.mu.Lock()
	if w.enabled {
		w.mu.Unlock()
		return
	}
	w.enabled = true
	w.mu.Unlock()

	go w.monitor()
	log.Printf("[watchdog] Started monitoring navigations (stall threshold: %v)", w.threshold)
}

// stop stops the monitoring loop
func (w *watchdog) stop() {
	w.mu.Lock()
	if !w.enabled {
		w.mu.Unlock()
		return
	}
	w.enabled = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.stopped
	log.Println("[watchdog] Stopped monitoring navigations")
}

// begin marks a navigation as in flight for the given instance.
func (w *watchdog) begin(instanceID string) {
	w.mu.Lock()
	w.inflight[instanceID] = time.Now()
	w.mu.Unlock()
}

// end marks the navigation for the given instance as settled.
func (w *watchdog) end(instanceID string) {
	w.mu.Lock()
	delete(w.inflight, instanceID)
	w.mu.Unlock()
}

// monitor runs in a goroutine and checks for stalled navigations
func (w *watchdog) monitor() {
	defer close(w.stopped)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.checkForStalls()
		}
	}
}

func (w *watchdog) checkForStalls() {
	stalled := w.stalled(w.threshold)
	if len(stalled) == 0 {
		return
	}

	log.Printf("[watchdog] WARNING: Detected %d navigation(s) stalled in Loading:", len(stalled))
	for _, nav := range stalled {
		log.Printf("[watchdog]   - %s", nav)
	}
}

// stalled returns a description of every navigation in flight longer than
// threshold.
func (w *watchdog) stalled(threshold time.Duration) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	result := make([]string, 0)
	for id, startTime := range w.inflight {
		duration := now.Sub(startTime)
		if duration > threshold {
			result = append(result, fmt.Sprintf("instance %s (loading for %v)", id, duration.Round(time.Second)))
		}
	}
	return result
}

// dumpStacks writes a goroutine stack dump immediately (for SIGQUIT handler)
func (w *watchdog) dumpStacks() {
	// The directory is only created when a dump is actually requested.
	if err := os.MkdirAll(w.logDir, 0755); err != nil {
		log.Printf("[watchdog] Error creating log directory %s: %v", w.logDir, err)
		return
	}
	stackFile := filepath.Join(w.logDir, fmt.Sprintf("stacks-%s.log", time.Now().Format("20060102-150405")))
	if err := w.writeStackDump(stackFile); err != nil {
		log.Printf("[watchdog] Error writing stack dump: %v", err)
	} else {
		log.Printf("[watchdog] Stack dump written to: %s", stackFile)
	}
}

// writeStackDump writes in-flight navigations and all goroutine stacks to
// the specified file.
func (w *watchdog) writeStackDump(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create stack file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Composite Shell Watchdog Stack Dump\n")
	fmt.Fprintf(f, "Generated: %s\n\n", time.Now().Format(time.RFC3339))

	w.mu.Lock()
	fmt.Fprintf(f, "In-flight navigations (%d):\n", len(w.inflight))
	for id, startTime := range w.inflight {
		fmt.Fprintf(f, "  - instance %s (started %v ago)\n", id, time.Since(startTime))
	}
	w.mu.Unlock()

	fmt.Fprintf(f, "\nGoroutine stacks:\n")
	fmt.Fprintf(f, "==================\n\n")

	profile := pprof.Lookup("goroutine")
	if profile == nil {
		return fmt.Errorf("goroutine profile not available")
	}

	if err := profile.WriteTo(f, 2); err != nil {
		return fmt.Errorf("write goroutine profile: %w", err)
	}

	return nil
}
