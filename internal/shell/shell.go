// Package shell implements the platform-independent core of the remote
// content host: the launcher that owns window instances and the navigation
// observer that turns surface load-lifecycle callbacks into state
// transitions. Platform window/view systems plug in through the
// surface.Factory abstraction.
package shell

import (
	"errors"
	"time"

	"github.com/emglab/composite-shell/internal/surface"
	"github.com/emglab/composite-shell/pkg/config"
)

// State is the lifecycle state of one shell instance. The only legal
// sequence is a prefix of Created, Loading, (Loaded | Failed); a manual
// retry re-enters through Created.
type State int

const (
	StateCreated State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateLoading:
		return "Loading"
	case StateLoaded:
		return "Loaded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result classifies a load outcome.
type Result int

const (
	ResultSuccess Result = iota
	ResultFailure
)

// LoadOutcome is the transient event value produced by the navigation
// observer for one completed navigation attempt. It is consumed
// immediately; nothing persists it.
type LoadOutcome struct {
	InstanceID string
	Result     Result
	Reason     error // nil on success
	Timestamp  time.Time
}

// Instance represents one visible window/view. It is owned exclusively by
// the launcher; all field access happens on the launcher's owner loop.
type Instance struct {
	id            string
	state         State
	cfg           *config.Config
	surface       surface.Surface
	lastFailure   error
	fallbackShown bool
}

// ID returns the instance's opaque unique identifier.
func (i *Instance) ID() string { return i.id }

// Config returns the configuration that produced this instance.
func (i *Instance) Config() *config.Config { return i.cfg }

// InstanceInfo is a point-in-time copy of an instance's observable state,
// safe to read off the owner loop.
type InstanceInfo struct {
	ID            string
	State         State
	LastFailure   error
	FallbackShown bool
}

var (
	ErrInstanceNotFound = errors.New("shell: instance not found")

	// ErrLauncherStopped is returned by launcher operations issued after
	// Shutdown.
	ErrLauncherStopped = errors.New("shell: launcher stopped")
)
