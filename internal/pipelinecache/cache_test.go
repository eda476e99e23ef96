package pipelinecache

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/legacygfx/herrors"
)

func TestGetCachesByKey(t *testing.T) {
	calls := 0
	c := New(func(k Key) (*Pipeline, error) {
		calls++
		return &Pipeline{Backend: k.VertexShader}, nil
	})

	key := Key{VertexShader: 1, FragmentShader: 2}
	p1, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	p2, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p1 != p2 {
		t.Fatal("Get did not return the memoized pipeline on the second call")
	}
	if calls != 1 {
		t.Fatalf("compiler called %d times, want 1", calls)
	}
}

func TestGetDistinguishesKeys(t *testing.T) {
	c := New(func(k Key) (*Pipeline, error) {
		return &Pipeline{Backend: k.VertexShader}, nil
	})

	a, _ := c.Get(Key{VertexShader: 1})
	b, _ := c.Get(Key{VertexShader: 2})
	if a == b {
		t.Fatal("distinct keys produced the same cached pipeline")
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestGetCachesCompileFailure(t *testing.T) {
	calls := 0
	c := New(func(k Key) (*Pipeline, error) {
		calls++
		return nil, fmt.Errorf("%w: bad descriptor", herrors.ErrPipelineCompilation)
	})

	key := Key{VertexShader: 1}
	if _, err := c.Get(key); !errors.Is(err, herrors.ErrPipelineCompilation) {
		t.Fatalf("Get: err = %v, want ErrPipelineCompilation", err)
	}
	if _, err := c.Get(key); !errors.Is(err, herrors.ErrPipelineCompilation) {
		t.Fatalf("second Get: err = %v, want ErrPipelineCompilation", err)
	}
	if calls != 1 {
		t.Fatalf("compiler called %d times, want 1 (failure should be cached)", calls)
	}
}
