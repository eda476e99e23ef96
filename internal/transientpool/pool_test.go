package transientpool

import "testing"

func newTestPool() *Pool {
	return New(func(size int) *Buffer {
		return &Buffer{Backend: nil, Capacity: size}
	})
}

func TestGetBufferForSizeRoundsUpAndReuses(t *testing.T) {
	p := newTestPool()

	b1 := p.GetBufferForSize(10)
	if b1.Capacity != 16 {
		t.Fatalf("Capacity = %d, want 16", b1.Capacity)
	}

	p.Present()
	p.ReleaseRetired(1)

	b2 := p.GetBufferForSize(3)
	if b2 != b1 {
		t.Fatalf("GetBufferForSize did not reuse the available buffer")
	}
}

func TestGetBufferForSizeAllocatesWhenNoneFit(t *testing.T) {
	p := newTestPool()
	small := p.GetBufferForSize(16)
	p.Present()
	p.ReleaseRetired(1)

	big := p.GetBufferForSize(1024)
	if big == small {
		t.Fatal("expected a fresh allocation for a request too large to reuse")
	}
	if big.Capacity != 1024 {
		t.Fatalf("Capacity = %d, want 1024", big.Capacity)
	}
}

func TestPresentMovesCurrentToRetired(t *testing.T) {
	p := newTestPool()
	p.GetBufferForSize(16)
	p.GetBufferForSize(32)

	cur, ret, avail := p.Counts()
	if cur != 2 || ret != 0 || avail != 0 {
		t.Fatalf("Counts() = (%d,%d,%d), want (2,0,0)", cur, ret, avail)
	}

	p.Present()
	cur, ret, avail = p.Counts()
	if cur != 0 || ret != 2 || avail != 0 {
		t.Fatalf("Counts() after Present = (%d,%d,%d), want (0,2,0)", cur, ret, avail)
	}
}

func TestFlushSyncReleasesEverythingImmediately(t *testing.T) {
	p := newTestPool()
	p.GetBufferForSize(16)
	p.FlushSync()

	cur, ret, avail := p.Counts()
	if cur != 0 || ret != 0 || avail != 1 {
		t.Fatalf("Counts() after FlushSync = (%d,%d,%d), want (0,0,1)", cur, ret, avail)
	}
}
