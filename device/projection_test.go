package device

import (
	"errors"
	"testing"

	"github.com/gogpu/legacygfx/herrors"
)

func TestProjectionStackPushPopRestoresPrevious(t *testing.T) {
	s := NewProjectionStack()
	s.SetCurrent(Ortho(0, 800, 600, 0, 0, 1))
	base := s.Current()

	s.Push()
	s.SetCurrent(Identity4())
	if s.Current() != Identity4() {
		t.Fatal("SetCurrent after Push did not change the top of stack")
	}

	if err := s.Pop(); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if s.Current() != base {
		t.Fatal("Pop did not restore the matrix pushed beneath it")
	}
}

func TestProjectionStackPopOnLastEntryFails(t *testing.T) {
	s := NewProjectionStack()
	if err := s.Pop(); !errors.Is(err, herrors.ErrContractViolation) {
		t.Fatalf("Pop on single-entry stack: err = %v, want ErrContractViolation", err)
	}
}
