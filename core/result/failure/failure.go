package failure

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// Named is an error that you can read a name from
type Named interface {
	Name() string
}

// WithStackTrace is an error that you can read a stack trace from
type WithStackTrace interface {
	Stack() string
}

type Failure interface {
	error
	Named
}

type NamedWithStackTrace interface {
	Named
	WithStackTrace
}

type namedWithStackTrace struct {
	name  string
	stack errors.StackTrace
}

func (n namedWithStackTrace) Name() string {
	return n.name
}

func (n namedWithStackTrace) Stack() string {
	return fmt.Sprintf("%+v", n.stack)
}

func NamedWithCurrentStackTrace(name string) NamedWithStackTrace {
	const depth = 32

	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	f := make(errors.StackTrace, n)
	for i := 0; i < n; i++ {
		f[i] = errors.Frame(pcs[i])
	}

	return namedWithStackTrace{name, f}
}

type failure struct {
	name    string
	message string
	stack   string
}

func (f failure) Name() string {
	return f.name
}

func (f failure) Error() string {
	return f.message
}

func (f failure) Stack() string {
	return f.stack
}

// FromError wraps an error into a Failure, preserving a name and stack
// trace when the error carries them.
func FromError(err error) Failure {
	f := failure{name: "Error", message: err.Error()}
	if named, ok := err.(Named); ok {
		f.name = named.Name()
	}
	if withStackTrace, ok := err.(WithStackTrace); ok {
		f.stack = withStackTrace.Stack()
	}
	return f
}
