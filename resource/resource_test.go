package resource

import (
	"errors"
	"testing"

	"github.com/gogpu/legacygfx/herrors"
)

func TestIndexTypeForMatchesNameNotLegacyOrder(t *testing.T) {
	if got := IndexTypeFor(HostIndexUnsignedShort); got != IndexTypeUint16 {
		t.Errorf("IndexTypeFor(UnsignedShort) = %v, want IndexTypeUint16", got)
	}
	if got := IndexTypeFor(HostIndexUnsignedLong); got != IndexTypeUint32 {
		t.Errorf("IndexTypeFor(UnsignedLong) = %v, want IndexTypeUint32", got)
	}
}

func TestIndexTypeBytes(t *testing.T) {
	if IndexTypeUint16.Bytes() != 2 {
		t.Errorf("IndexTypeUint16.Bytes() = %d, want 2", IndexTypeUint16.Bytes())
	}
	if IndexTypeUint32.Bytes() != 4 {
		t.Errorf("IndexTypeUint32.Bytes() = %d, want 4", IndexTypeUint32.Bytes())
	}
}

func TestVertexBufferBuffersForShader(t *testing.T) {
	vb := &VertexBuffer{Streams: []Stream{{Backend: "a"}, {Backend: "b"}}}

	bufs, ok := vb.BuffersForShader(2)
	if !ok || len(bufs) != 2 || bufs[0] != "a" || bufs[1] != "b" {
		t.Fatalf("BuffersForShader(2) = %v, %v", bufs, ok)
	}

	if _, ok := vb.BuffersForShader(3); ok {
		t.Fatal("BuffersForShader(3) should fail: buffer only has 2 streams")
	}
}

func TestTextureCopyRegionRejectsOversizedDestination(t *testing.T) {
	tex := &Texture{Mips: []MipLevel{{Width: 64, Height: 64}}}

	if err := tex.CopyRegion(0, 0, 0, 64, 64); err != nil {
		t.Errorf("CopyRegion exact fit: %v", err)
	}
	if err := tex.CopyRegion(0, 32, 32, 64, 64); !errors.Is(err, herrors.ErrContractViolation) {
		t.Errorf("CopyRegion oversized: err = %v, want ErrContractViolation", err)
	}
}

func TestStageSurfaceMapRejectsDoubleMap(t *testing.T) {
	s := &StageSurface{}
	if _, err := s.Map(func() []byte { return []byte{1, 2, 3} }); err != nil {
		t.Fatalf("first Map: %v", err)
	}
	if _, err := s.Map(func() []byte { return nil }); !errors.Is(err, herrors.ErrContractViolation) {
		t.Fatalf("second Map: err = %v, want ErrContractViolation", err)
	}
	s.Unmap()
	if _, err := s.Map(func() []byte { return nil }); err != nil {
		t.Fatalf("Map after Unmap: %v", err)
	}
}

func TestSwapChainLayerAcquireRejectsDoubleAcquire(t *testing.T) {
	l := &SwapChainLayer{}
	acquire := func() (any, any) { return "drawable", "texture" }

	tex, err := l.AcquireNext(acquire)
	if err != nil || tex != "texture" {
		t.Fatalf("AcquireNext: tex=%v err=%v", tex, err)
	}
	if _, err := l.AcquireNext(acquire); !errors.Is(err, herrors.ErrContractViolation) {
		t.Fatalf("second AcquireNext: err = %v, want ErrContractViolation", err)
	}
	l.Present()
	if _, err := l.AcquireNext(acquire); err != nil {
		t.Fatalf("AcquireNext after Present: %v", err)
	}
}
