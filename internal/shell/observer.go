package shell

import (
	"time"

	"github.com/emglab/composite-shell/internal/surface"
)

// Observer translates asynchronous load-lifecycle signals from the
// web-rendering surfaces into LoadOutcome values and applies them on the
// launcher's owner loop. Its methods may be called from any goroutine; a
// delivery for a destroyed instance, or a duplicate delivery for the same
// navigation, is discarded without mutating anything.
type Observer struct {
	launcher *Launcher
}

// Observer returns the navigation observer bound to this launcher.
func (l *Launcher) Observer() *Observer {
	return &Observer{launcher: l}
}

// OnLoadFinished records a successful navigation for the instance. This is
// a terminal success state for the attempt; in-page navigations performed
// by the remote content afterwards are not intercepted.
func (o *Observer) OnLoadFinished(id string) {
	o.deliver(LoadOutcome{
		InstanceID: id,
		Result:     ResultSuccess,
		Timestamp:  time.Now(),
	})
}

// OnLoadFailed records a failed navigation. The launcher reacts by showing
// the visible failure indication; no automatic retry is performed.
func (o *Observer) OnLoadFailed(id string, reason error) {
	o.deliver(LoadOutcome{
		InstanceID: id,
		Result:     ResultFailure,
		Reason:     reason,
		Timestamp:  time.Now(),
	})
}

func (o *Observer) deliver(out LoadOutcome) {
	l := o.launcher
	l.do(func() { l.applyOutcome(out) })
}

// instanceSink adapts the per-instance surface.EventSink contract onto the
// observer. Each surface gets a sink bound to its instance's ID at
// creation time.
type instanceSink struct {
	observer *Observer
	id       string
}

var _ surface.EventSink = (*instanceSink)(nil)

func (s *instanceSink) LoadFinished() {
	s.observer.OnLoadFinished(s.id)
}

func (s *instanceSink) LoadFailed(reason error) {
	s.observer.OnLoadFailed(s.id, reason)
}
