package contract

import (
	"context"
	"fmt"
	"reflect"

	"github.com/bindery/go-bindery/core/result/failure"
	"github.com/bindery/go-bindery/core/shape"
)

// Contract is a declarative pair of argument and return shapes defining a
// validated calling convention for a function crossing an untyped
// boundary. A Contract is immutable once constructed.
type Contract struct {
	args shape.Shape
	ret  shape.Shape
}

// New constructs a Contract from an argument shape and a return shape. No
// validation happens at construction time.
func New(args shape.Shape, ret shape.Shape) Contract {
	return Contract{args: args, ret: ret}
}

// Args is the shape a call's argument value must conform to.
func (c Contract) Args() shape.Shape {
	return c.args
}

// Return is the shape a call's result value must conform to.
func (c Contract) Return() shape.Shape {
	return c.ret
}

// Fn is an asynchronous contract-wrapped function. The error result is
// either a validation failure or whatever the underlying function
// returned, never both silently merged.
type Fn func(ctx context.Context, args any) (any, error)

// SyncFn is a synchronous contract-wrapped function.
type SyncFn func(args any) (any, error)

// NotAFunctionError is returned when a value given to Decode or Encode is
// not a function of the expected signature.
type NotAFunctionError struct {
	value any
}

func (e *NotAFunctionError) Name() string {
	return "NotAFunction"
}

func (e *NotAFunctionError) Error() string {
	if reflect.ValueOf(e.value).Kind() == reflect.Func {
		return fmt.Sprintf("unsupported function signature %T", e.value)
	}
	return fmt.Sprintf("expected a function, got %T", e.value)
}

func (e *NotAFunctionError) Value() any {
	return e.value
}

var _ failure.Failure = (*NotAFunctionError)(nil)

// Decode wraps a raw function that operates on the contract's internal
// representation so it can be called with the external one. Arguments are
// decoded before the raw function runs and its result is encoded back for
// the caller. A shape mismatch in the arguments means the raw function is
// never invoked.
func Decode(c Contract, fn any) (Fn, error) {
	f, err := asFn(fn)
	if err != nil {
		return nil, err
	}
	return wrap(f, c.args.Decode, c.ret.Encode), nil
}

// DecodeSync is [Decode] for synchronous functions.
func DecodeSync(c Contract, fn any) (SyncFn, error) {
	f, err := asSyncFn(fn)
	if err != nil {
		return nil, err
	}
	return wrapSync(f, c.args.Decode, c.ret.Encode), nil
}

// Encode is the inverse of [Decode]: it wraps a function that already
// speaks the external representation so it can be called with the
// internal one. Encode applied to the output of Decode behaves like the
// raw function, modulo the representation boundary.
func Encode(c Contract, fn any) (Fn, error) {
	f, err := asFn(fn)
	if err != nil {
		return nil, err
	}
	return wrap(f, c.args.Encode, c.ret.Decode), nil
}

// EncodeSync is [Encode] for synchronous functions.
func EncodeSync(c Contract, fn any) (SyncFn, error) {
	f, err := asSyncFn(fn)
	if err != nil {
		return nil, err
	}
	return wrapSync(f, c.args.Encode, c.ret.Decode), nil
}

type convert func(any) (any, failure.Failure)

func wrap(fn Fn, args convert, ret convert) Fn {
	return func(ctx context.Context, in any) (any, error) {
		cin, ferr := args(in)
		if ferr != nil {
			return nil, ferr
		}
		out, err := fn(ctx, cin)
		if err != nil {
			return nil, err
		}
		cout, ferr := ret(out)
		if ferr != nil {
			return nil, ferr
		}
		return cout, nil
	}
}

func wrapSync(fn SyncFn, args convert, ret convert) SyncFn {
	return func(in any) (any, error) {
		cin, ferr := args(in)
		if ferr != nil {
			return nil, ferr
		}
		out, err := fn(cin)
		if err != nil {
			return nil, err
		}
		cout, ferr := ret(out)
		if ferr != nil {
			return nil, ferr
		}
		return cout, nil
	}
}

func asFn(fn any) (Fn, *NotAFunctionError) {
	switch f := fn.(type) {
	case Fn:
		return f, nil
	case func(ctx context.Context, args any) (any, error):
		return f, nil
	}
	return nil, &NotAFunctionError{fn}
}

func asSyncFn(fn any) (SyncFn, *NotAFunctionError) {
	switch f := fn.(type) {
	case SyncFn:
		return f, nil
	case func(args any) (any, error):
		return f, nil
	}
	return nil, &NotAFunctionError{fn}
}
