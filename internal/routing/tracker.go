package routing

import (
	"context"
	"sync"

	"github.com/sejin-oh/itinera/internal/domain"
	"github.com/sejin-oh/itinera/internal/metrics"
)

// Tracker owns the async resolution lifecycle for one day's segment view.
// Every call to Update starts a new resolution pass carrying a monotonically
// increasing generation; when a pass completes, its results are published
// only if no newer pass has started since. A superseded in-flight pass is
// cancelled and its results discarded, so stale segments never overwrite
// fresher state no matter how lookups interleave.
type Tracker struct {
	resolver *Resolver
	mx       *metrics.Collector // optional

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	segments []domain.Segment
	loading  bool
	done     chan struct{} // closed when the current pass publishes or is discarded
}

// NewTracker constructs a Tracker. mx may be nil.
func NewTracker(resolver *Resolver, mx *metrics.Collector) *Tracker {
	return &Tracker{
		resolver: resolver,
		mx:       mx,
		segments: []domain.Segment{},
	}
}

// Update starts a resolution pass for the given inputs, superseding any pass
// still in flight. Fewer than two stops publishes the empty result
// synchronously; the tracker is then not loading.
func (t *Tracker) Update(ctx context.Context, stops []domain.Stop, modes []domain.TravelMode) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	if t.cancel != nil {
		t.cancel()
	}

	if len(stops) < 2 {
		t.cancel = nil
		t.segments = []domain.Segment{}
		t.loading = false
		t.mu.Unlock()
		return
	}

	passCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.loading = true
	done := make(chan struct{})
	t.done = done
	t.mu.Unlock()

	if t.mx != nil {
		t.mx.ResolvePasses.Inc()
	}

	go func() {
		defer close(done)
		segments := t.resolver.Resolve(passCtx, stops, modes)

		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen != gen {
			// A newer pass started while this one was in flight.
			if t.mx != nil {
				t.mx.ResolveDiscarded.Inc()
			}
			return
		}
		t.segments = segments
		t.loading = false
	}()
}

// Snapshot returns the most recently published segments and whether a pass
// for the current inputs is still outstanding. The returned slice must not
// be mutated by callers.
func (t *Tracker) Snapshot() (segments []domain.Segment, loading bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.segments, t.loading
}

// Wait blocks until the pass that was current when Wait was called has
// finished (published or been discarded). Intended for tests and shutdown.
func (t *Tracker) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done != nil {
		<-done
	}
}
