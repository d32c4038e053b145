package shell

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emglab/composite-shell/internal/appnap"
	"github.com/emglab/composite-shell/internal/dialog"
	"github.com/emglab/composite-shell/internal/surface"
	"github.com/emglab/composite-shell/pkg/config"
	"github.com/emglab/composite-shell/ui"
)

// OutcomeFunc is an optional hook invoked (on the owner loop) for every
// accepted load outcome.
type OutcomeFunc func(LoadOutcome)

// Option configures a Launcher.
type Option func(*Launcher)

// WithOutcomeFunc registers a hook for accepted load outcomes.
func WithOutcomeFunc(fn OutcomeFunc) Option {
	return func(l *Launcher) { l.outcomes = fn }
}

// WithStallThreshold overrides how long a navigation may stay in Loading
// before the watchdog starts warning about it.
func WithStallThreshold(d time.Duration) Option {
	return func(l *Launcher) { l.stallThreshold = d }
}

// Launcher owns every shell instance in the process. A single goroutine
// (the owner loop) performs all instance creation and state transitions;
// public methods and surface callbacks post onto it, so no instance state
// is ever mutated concurrently.
type Launcher struct {
	cfg        *config.Config
	newSurface surface.Factory

	tasks chan func()
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once

	instances map[string]*Instance // owner loop only

	watchdog       *watchdog
	stallThreshold time.Duration
	outcomes       OutcomeFunc
	releaseNap     func() // active App Nap prevention, nil while idle
}

func NewLauncher(cfg *config.Config, factory surface.Factory, opts ...Option) *Launcher {
	l := &Launcher{
		cfg:            cfg,
		newSurface:     factory,
		tasks:          make(chan func()),
		quit:           make(chan struct{}),
		done:           make(chan struct{}),
		instances:      make(map[string]*Instance),
		stallThreshold: defaultStallThreshold,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.watchdog = newWatchdog(cfg.LogDir, l.stallThreshold)
	return l
}

// Start spins up the owner loop and the navigation watchdog. It must be
// called before any other method.
func (l *Launcher) Start() {
	go l.run()
	l.watchdog.start()
	log.Printf("[shell] Launcher started (target: %s)", l.cfg.TargetURL)
}

func (l *Launcher) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.quit:
			return
		}
	}
}

// do runs fn on the owner loop and waits for it to complete. After
// shutdown it returns ErrLauncherStopped without running fn.
func (l *Launcher) do(fn func()) error {
	ran := make(chan struct{})
	select {
	case l.tasks <- func() {
		fn()
		close(ran)
	}:
	case <-l.quit:
		return ErrLauncherStopped
	}
	select {
	case <-ran:
		return nil
	case <-l.done:
		// The loop may have run fn right before exiting; only report the
		// stop if it did not.
		select {
		case <-ran:
			return nil
		default:
			return ErrLauncherStopped
		}
	}
}

// Launch validates the configuration, creates a window instance with a
// freshly configured surface, and immediately issues the initial
// navigation. An invalid configuration fails with *config.ConfigError and
// creates nothing.
func (l *Launcher) Launch() (*Instance, error) {
	var inst *Instance
	var err error
	if doErr := l.do(func() { inst, err = l.launch() }); doErr != nil {
		return nil, doErr
	}
	return inst, err
}

func (l *Launcher) launch() (*Instance, error) {
	if err := l.cfg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	sink := &instanceSink{observer: &Observer{launcher: l}, id: id}

	surf, err := l.newSurface(l.cfg, sink)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	if err := surf.ApplyPolicy(l.cfg.SecurityPolicy); err != nil {
		surf.Close()
		return nil, fmt.Errorf("apply security policy: %w", err)
	}

	inst := &Instance{
		id:      id,
		state:   StateCreated,
		cfg:     l.cfg,
		surface: surf,
	}
	l.instances[id] = inst
	log.Printf("[shell] Instance %s created (%dx%d, policy: %s)", id, l.cfg.Width, l.cfg.Height, l.cfg.SecurityPolicy)

	if err := l.navigate(inst); err != nil {
		delete(l.instances, id)
		surf.Close()
		return nil, err
	}
	return inst, nil
}

// Navigate issues a new load for an existing instance. It is rejected
// while a navigation is already in flight; from Failed it is the manual
// retry path, re-entering the state machine through Created.
func (l *Launcher) Navigate(id string) error {
	var err error
	if doErr := l.do(func() {
		inst, ok := l.instances[id]
		if !ok {
			err = ErrInstanceNotFound
			return
		}
		err = l.navigate(inst)
	}); doErr != nil {
		return doErr
	}
	return err
}

func (l *Launcher) navigate(inst *Instance) error {
	if inst.state == StateLoading {
		return fmt.Errorf("instance %s: navigation already in flight", inst.id)
	}

	inst.state = StateCreated
	inst.lastFailure = nil
	inst.fallbackShown = false

	if err := inst.surface.Navigate(inst.cfg.TargetURL); err != nil {
		return fmt.Errorf("instance %s: navigate: %w", inst.id, err)
	}

	inst.state = StateLoading
	l.watchdog.begin(inst.id)
	l.updateNap()
	log.Printf("[shell] Instance %s loading %s", inst.id, inst.cfg.TargetURL)
	return nil
}

// Reactivate implements the platform re-activation convention: with zero
// open instances it behaves exactly like Launch; otherwise it is a no-op
// and returns (nil, nil).
func (l *Launcher) Reactivate() (*Instance, error) {
	var inst *Instance
	var err error
	if doErr := l.do(func() {
		if len(l.instances) > 0 {
			log.Printf("[shell] Reactivate: %d instance(s) open, nothing to do", len(l.instances))
			return
		}
		inst, err = l.launch()
	}); doErr != nil {
		return nil, doErr
	}
	return inst, err
}

// Terminate releases an instance. A load still in flight is cancelled and
// any late outcome for the instance is discarded, not delivered.
func (l *Launcher) Terminate(id string) {
	l.do(func() { l.terminate(id) })
}

func (l *Launcher) terminate(id string) {
	inst, ok := l.instances[id]
	if !ok {
		return
	}
	if inst.state == StateLoading {
		l.watchdog.end(id)
	}
	delete(l.instances, id)

	if err := inst.surface.Close(); err != nil {
		log.Printf("[shell] Instance %s: error closing surface: %v", id, err)
	}
	l.updateNap()
	log.Printf("[shell] Instance %s terminated", id)
}

// Shutdown terminates all instances and stops the owner loop and watchdog.
func (l *Launcher) Shutdown() {
	l.do(func() {
		for id := range l.instances {
			l.terminate(id)
		}
	})
	l.once.Do(func() { close(l.quit) })
	<-l.done
	l.watchdog.stop()
	log.Println("[shell] Launcher stopped")
}

// InstanceCount reports how many instances are currently open.
func (l *Launcher) InstanceCount() int {
	var n int
	l.do(func() { n = len(l.instances) })
	return n
}

// Snapshot returns a copy of one instance's observable state, or false if
// no such instance exists (anymore).
func (l *Launcher) Snapshot(id string) (InstanceInfo, bool) {
	var info InstanceInfo
	var ok bool
	l.do(func() {
		inst, exists := l.instances[id]
		if !exists {
			return
		}
		info = InstanceInfo{
			ID:            inst.id,
			State:         inst.state,
			LastFailure:   inst.lastFailure,
			FallbackShown: inst.fallbackShown,
		}
		ok = true
	})
	return info, ok
}

// DumpStacks writes a goroutine stack dump for diagnosing stuck loads.
// Wired to SIGQUIT by the entrypoints.
func (l *Launcher) DumpStacks() {
	l.watchdog.dumpStacks()
}

// applyOutcome is the single place a navigation result enters the state
// machine. Runs on the owner loop.
func (l *Launcher) applyOutcome(out LoadOutcome) {
	inst, ok := l.instances[out.InstanceID]
	if !ok {
		log.Printf("[shell] Dropping late load outcome for destroyed instance %s", out.InstanceID)
		return
	}
	if inst.state != StateLoading {
		log.Printf("[shell] Dropping load outcome for instance %s (state: %s, not Loading)", out.InstanceID, inst.state)
		return
	}

	l.watchdog.end(out.InstanceID)

	switch out.Result {
	case ResultSuccess:
		inst.state = StateLoaded
		log.Printf("[shell] Instance %s loaded %s", inst.id, inst.cfg.TargetURL)
	case ResultFailure:
		inst.state = StateFailed
		inst.lastFailure = out.Reason
		log.Printf("[shell] Instance %s failed to load %s: %v", inst.id, inst.cfg.TargetURL, out.Reason)

		// A blank window with no explanation is forbidden: render the
		// failure page in the surface and raise the native alert.
		if err := inst.surface.ShowFallback(ui.FailurePage(inst.cfg, out.Reason)); err != nil {
			log.Printf("[shell] Instance %s: error showing fallback: %v", inst.id, err)
		} else {
			inst.fallbackShown = true
		}
		dialog.ShowLoadFailure(inst.cfg.TargetURL, out.Reason)
	}

	l.updateNap()

	if l.outcomes != nil {
		l.outcomes(out)
	}
}

// updateNap keeps App Nap prevention held exactly while at least one
// navigation is outstanding. Runs on the owner loop.
func (l *Launcher) updateNap() {
	loading := 0
	for _, inst := range l.instances {
		if inst.state == StateLoading {
			loading++
		}
	}

	switch {
	case loading > 0 && l.releaseNap == nil:
		release, err := appnap.PreventAppNap("remote content load in progress")
		if err != nil {
			log.Printf("[shell] Warning: failed to prevent App Nap: %v", err)
			return
		}
		l.releaseNap = release
	case loading == 0 && l.releaseNap != nil:
		l.releaseNap()
		l.releaseNap = nil
	}
}
