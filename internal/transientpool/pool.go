// Package transientpool implements the transient buffer pool (spec.md
// §4.2): the per-frame GPU scratch allocator backing scene-local vertex
// and uniform uploads that do not need to outlive the command buffer that
// reads them.
//
// The pool holds its buffers in three partitions:
//
//   - current: handed out to the caller this frame, not yet submitted.
//   - retired: submitted to the GPU, awaiting completion.
//   - available: completion has fired; ready to be handed out again.
//
// Buffers move current -> retired at present()/flush(), and retired ->
// available when their owning command buffer's completion handler fires
// (the async path, grounded on hal/metal/queue.go's
// addCompletedHandler-based staging buffer release) or, on the flush
// path, synchronously right after waitUntilCompleted returns. A
// completion handler firing on an arbitrary driver thread is the sole
// source of concurrent access to this package (spec.md §5), so Pool
// guards its partitions with a mutex even though every other part of the
// device is single-writer.
package transientpool

import (
	"sync"
)

const allocationGranularity = 16

// Buffer is a single transient allocation. Backend is the Metal buffer
// handle (opaque here; the device package supplies and interprets it).
type Buffer struct {
	Backend  any
	Capacity int
}

// Pool is the transient buffer pool for one device. The zero value is not
// usable; construct with New.
type Pool struct {
	mu sync.Mutex

	alloc func(size int) *Buffer

	current   []*Buffer
	retired   []*Buffer
	available []*Buffer
}

// New creates an empty pool. alloc is called to create a fresh backing
// buffer of at least the requested size whenever no available buffer is
// large enough; it must not be nil.
func New(alloc func(size int) *Buffer) *Pool {
	return &Pool{alloc: alloc}
}

// roundUp rounds n up to the allocation granularity.
func roundUp(n int) int {
	if n <= 0 {
		return allocationGranularity
	}
	return (n + allocationGranularity - 1) &^ (allocationGranularity - 1)
}

// GetBufferForSize returns a buffer of at least n bytes, reusing the
// first sufficiently large available buffer (first-fit, not best-fit:
// spec.md §4.2 does not require packing optimality, only O(available)
// worst case) or allocating a fresh one. The returned buffer is added to
// the current partition.
func (p *Pool) GetBufferForSize(n int) *Buffer {
	size := roundUp(n)

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, b := range p.available {
		if b.Capacity >= size {
			p.available = append(p.available[:i], p.available[i+1:]...)
			p.current = append(p.current, b)
			return b
		}
	}

	b := p.alloc(size)
	p.current = append(p.current, b)
	return b
}

// Present rotates the pool at end-of-frame: every buffer in current moves
// to the tail of retired (it has just been submitted and is awaiting GPU
// completion), and current is emptied. Retired buffers return to
// available only through ReleaseRetired or FlushSync.
func (p *Pool) Present() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retired = append(p.retired, p.current...)
	p.current = p.current[:0]
}

// ReleaseRetired moves the oldest n retired buffers into available.
// FlushSync does not go through it; it releases every retired buffer
// itself.
func (p *Pool) ReleaseRetired(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n > len(p.retired) {
		n = len(p.retired)
	}
	p.available = append(p.available, p.retired[:n]...)
	p.retired = p.retired[n:]
}

// FlushSync rotates current into retired and immediately releases every
// retired buffer to available, matching flush()'s synchronous
// waitUntilCompleted semantics (spec.md §4.6 flush(): there is no pending
// GPU work left to wait on asynchronously once this returns).
func (p *Pool) FlushSync() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retired = append(p.retired, p.current...)
	p.current = p.current[:0]
	p.available = append(p.available, p.retired...)
	p.retired = p.retired[:0]
}

// Counts reports the size of each partition, for diagnostics and tests.
func (p *Pool) Counts() (current, retired, available int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.current), len(p.retired), len(p.available)
}
