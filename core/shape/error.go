package shape

import (
	"fmt"
	"strings"

	"github.com/bindery/go-bindery/core/result/failure"
)

// MismatchError is returned when a value does not conform to a shape. It
// carries the path to the offending field alongside the expected and
// actual shapes so a caller can correct the input.
type MismatchError struct {
	path     []string
	expected string
	actual   string
}

func (e *MismatchError) Name() string {
	return "ShapeMismatch"
}

func (e *MismatchError) Path() []string {
	return e.path
}

func (e *MismatchError) Expected() string {
	return e.expected
}

func (e *MismatchError) Actual() string {
	return e.actual
}

func (e *MismatchError) Error() string {
	if len(e.path) == 0 {
		return fmt.Sprintf("shape mismatch: expected %s, got %s", e.expected, e.actual)
	}
	return fmt.Sprintf("shape mismatch at %s: expected %s, got %s", formatPath(e.path), e.expected, e.actual)
}

// NewMismatch creates a MismatchError with an empty path. Composite shapes
// qualify the path as the error bubbles up through their fields.
func NewMismatch(expected string, actual string) *MismatchError {
	return &MismatchError{expected: expected, actual: actual}
}

var _ failure.Failure = (*MismatchError)(nil)

func formatPath(path []string) string {
	var sb strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			sb.WriteString(".")
		}
		sb.WriteString(seg)
	}
	return sb.String()
}

// prefixed qualifies a failure from a nested shape with the path segment
// it was reached through. Failures that are not mismatches are folded
// into one so the path is never lost.
func prefixed(segment string, f failure.Failure) failure.Failure {
	if me, ok := f.(*MismatchError); ok {
		return &MismatchError{
			path:     append([]string{segment}, me.path...),
			expected: me.expected,
			actual:   me.actual,
		}
	}
	return &MismatchError{path: []string{segment}, expected: "valid value", actual: f.Error()}
}
