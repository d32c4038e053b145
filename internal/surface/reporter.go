package surface

import (
	"context"
	"log"

	"github.com/emglab/composite-shell/internal/probe"
)

// Reporter synthesizes navigation outcomes for rendering engines that do
// not expose load-lifecycle callbacks: it probes the target over HTTPS and
// delivers at most one of LoadFinished/LoadFailed per call. A context
// cancelled before delivery (surface closed mid-load) suppresses it.
//
// Suppression is best effort: a cancellation racing the delivery itself can
// still let one outcome through. The launcher's registry is the
// authoritative filter; it drops any outcome for an instance that no
// longer exists or is not Loading.
type Reporter struct {
	prober *probe.Prober
}

func NewReporter(p *probe.Prober) *Reporter {
	return &Reporter{prober: p}
}

func (r *Reporter) Report(ctx context.Context, target string, sink EventSink) {
	go func() {
		err := r.prober.Check(ctx, target)

		if ctx.Err() != nil {
			// The surface is gone; delivering now would mutate a destroyed
			// instance.
			log.Printf("[surface] Suppressing load outcome for closed surface (target: %s)", target)
			return
		}

		if err != nil {
			sink.LoadFailed(err)
			return
		}
		sink.LoadFinished()
	}()
}
