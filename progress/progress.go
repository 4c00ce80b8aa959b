package progress

import (
	"context"
	"sync"
	"time"
)

// Delta is an incremental counter change recorded after one dispatch.
type Delta struct {
	Total     int
	Handled   int
	Unhandled int
	Approver  string // credited with Handled when set
}

// Counts is a point-in-time copy of the tally counters.
type Counts struct {
	Total      int
	Handled    int
	Unhandled  int
	ByApprover map[string]int
}

// Tally aggregates dispatch counters. It is safe for concurrent use.
type Tally struct {
	StartedAt time.Time

	mu       sync.Mutex
	counts   Counts
	onChange func(Counts)
}

// NewTally creates an empty tally.
func NewTally(onChange func(Counts)) *Tally {
	return &Tally{
		StartedAt: time.Now(),
		counts:    Counts{ByApprover: map[string]int{}},
		onChange:  onChange,
	}
}

// Update applies d. The onChange callback runs outside the lock with a copy of
// the updated counters.
func (t *Tally) Update(d Delta) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.counts.Total += d.Total
	t.counts.Handled += d.Handled
	t.counts.Unhandled += d.Unhandled
	if d.Approver != "" && d.Handled != 0 {
		if t.counts.ByApprover == nil {
			t.counts.ByApprover = map[string]int{}
		}
		t.counts.ByApprover[d.Approver] += d.Handled
	}
	snapshot := t.copyCounts()
	cb := t.onChange
	t.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (t *Tally) Snapshot() Counts {
	if t == nil {
		return Counts{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyCounts()
}

// OnChange replaces the callback invoked after every Update; nil disables it.
func (t *Tally) OnChange(cb func(Counts)) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.onChange = cb
	t.mu.Unlock()
}

func (t *Tally) copyCounts() Counts {
	ret := t.counts
	ret.ByApprover = make(map[string]int, len(t.counts.ByApprover))
	for k, v := range t.counts.ByApprover {
		ret.ByApprover[k] = v
	}
	return ret
}

type tallyKeyT struct{}

var tallyKey tallyKeyT

// WithNewTally embeds a new Tally in a derived context and returns both.
func WithNewTally(ctx context.Context, onChange func(Counts)) (context.Context, *Tally) {
	if ctx == nil {
		ctx = context.Background()
	}
	t := NewTally(onChange)
	return context.WithValue(ctx, tallyKey, t), t
}

// FromContext extracts the Tally from ctx.
func FromContext(ctx context.Context) (*Tally, bool) {
	if ctx == nil {
		return nil, false
	}
	t, ok := ctx.Value(tallyKey).(*Tally)
	return t, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Counts, bool) {
	if t, ok := FromContext(ctx); ok {
		return t.Snapshot(), true
	}
	return Counts{}, false
}

// UpdateCtx applies d to the tally carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if t, ok := FromContext(ctx); ok {
		t.Update(d)
	}
}
