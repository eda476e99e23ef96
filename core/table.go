package core

import "log/slog"

const defaultTableCapacity = 16

// Table is a growable dense map from small non-zero integer handles to T.
//
// Handles are drawn from a free list that is initially filled 1..N in
// ascending order for some starting capacity N; it doubles (appending the
// new range in ascending order) when exhausted. On Remove, the handle is
// pushed to the free list's tail, so the table behaves as a FIFO recycler:
// the longest-idle handle is reissued first. Lookup, insert, and remove are
// all O(1). Replace overwrites a live slot in place without touching the
// free list. Handle zero is reserved and never issued.
//
// Table is not safe for concurrent use; spec.md §5 makes the device the
// single writer for all state-mutating operations, so the table relies on
// that external serialization rather than locking itself.
type Table[T any, M Marker] struct {
	slots []T
	valid []bool
	free  []uint32
	log   *slog.Logger
}

// NewTable creates an empty table with room for defaultTableCapacity entries
// before it first needs to grow.
func NewTable[T any, M Marker](log *slog.Logger) *Table[T, M] {
	if log == nil {
		log = slog.Default()
	}
	t := &Table[T, M]{log: log}
	t.grow(defaultTableCapacity)
	return t
}

// grow extends the table to hold newCap live entries (not counting the
// reserved index 0) and appends the newly available handles to the tail
// of the free list in ascending order.
func (t *Table[T, M]) grow(newCap int) {
	oldCap := len(t.valid) - 1
	if oldCap < 0 {
		oldCap = 0
	}
	slots := make([]T, newCap+1)
	valid := make([]bool, newCap+1)
	copy(slots, t.slots)
	copy(valid, t.valid)
	t.slots = slots
	t.valid = valid
	for i := oldCap + 1; i <= newCap; i++ {
		t.free = append(t.free, uint32(i))
	}
}

// Insert stores v and returns a fresh non-zero handle for it.
func (t *Table[T, M]) Insert(v T) Handle[M] {
	if len(t.free) == 0 {
		oldCap := len(t.valid) - 1
		newCap := oldCap * 2
		if newCap <= 0 {
			newCap = defaultTableCapacity
		}
		t.grow(newCap)
	}
	h := t.free[0]
	t.free = t.free[1:]
	t.slots[h] = v
	t.valid[h] = true
	return NewHandle[M](h)
}

// Get performs a fallible O(1) lookup. ok is false for handle zero, a
// handle beyond the high-water mark, or a handle that has been removed.
func (t *Table[T, M]) Get(h Handle[M]) (v T, ok bool) {
	idx := h.Raw()
	if idx == 0 || int(idx) >= len(t.valid) || !t.valid[idx] {
		return v, false
	}
	return t.slots[idx], true
}

// Replace overwrites the value stored at h in place, without touching the
// free list. Returns false (no-op) if h does not currently live.
func (t *Table[T, M]) Replace(h Handle[M], v T) bool {
	idx := h.Raw()
	if idx == 0 || int(idx) >= len(t.valid) || !t.valid[idx] {
		return false
	}
	t.slots[idx] = v
	return true
}

// Remove releases h, pushing it to the tail of the free list for reuse.
// Removing a handle that is not currently live is a soft warning, not a
// fatal error (spec.md §4.1): the host may race a release against a prior
// release and the table tolerates it.
func (t *Table[T, M]) Remove(h Handle[M]) (v T, ok bool) {
	idx := h.Raw()
	if idx == 0 || int(idx) >= len(t.valid) || !t.valid[idx] {
		t.log.Warn("core: remove of handle that is not live", "handle", h.Raw())
		return v, false
	}
	v = t.slots[idx]
	var zero T
	t.slots[idx] = zero
	t.valid[idx] = false
	t.free = append(t.free, idx)
	return v, true
}

// Contains reports whether h currently names a live entry.
func (t *Table[T, M]) Contains(h Handle[M]) bool {
	idx := h.Raw()
	return idx != 0 && int(idx) < len(t.valid) && t.valid[idx]
}

// Len returns the number of currently live entries.
func (t *Table[T, M]) Len() int {
	n := 0
	for _, v := range t.valid {
		if v {
			n++
		}
	}
	return n
}

// ForEach calls fn for every live entry in ascending handle order. Stops
// early if fn returns false.
func (t *Table[T, M]) ForEach(fn func(Handle[M], T) bool) {
	for i := 1; i < len(t.valid); i++ {
		if !t.valid[i] {
			continue
		}
		if !fn(NewHandle[M](uint32(i)), t.slots[i]) {
			return
		}
	}
}
