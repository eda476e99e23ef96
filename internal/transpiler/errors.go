package transpiler

import "fmt"

// wrapErrf wraps sentinel with a formatted message, matching the
// errors.Is-friendly pattern used throughout package herrors.
func wrapErrf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
