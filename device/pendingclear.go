package device

import "github.com/gogpu/legacygfx/types"

// PendingClear is a clear() call queued against a render target identity,
// waiting for the render pass that actually targets it to be opened so
// it can be folded into that pass's load action instead of issued as its
// own pass.
type PendingClear struct {
	Target      any // the render-target identity this clear is queued against
	Flags       ClearFlags
	Color       types.Color
	Depth       float32
	Stencil     uint32
}

// PendingClearQueue is the FIFO of queued clears (spec.md §3's
// PendingClear entity): clear() appends; begin_scene()/draw() dequeues
// and consumes every entry matching the render target currently bound,
// in the order they were queued, so two clears issued against the same
// target before any draw never interleave with a clear against a
// different target queued between them.
type PendingClearQueue struct {
	entries []PendingClear
}

// Push enqueues a clear.
func (q *PendingClearQueue) Push(c PendingClear) {
	q.entries = append(q.entries, c)
}

// TakeFor removes and returns, in FIFO order, every queued clear whose
// Target matches target.
func (q *PendingClearQueue) TakeFor(target any) []PendingClear {
	var matched []PendingClear
	var remaining []PendingClear
	for _, e := range q.entries {
		if e.Target == target {
			matched = append(matched, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	q.entries = remaining
	return matched
}

// Len reports the number of still-pending clears.
func (q *PendingClearQueue) Len() int { return len(q.entries) }
