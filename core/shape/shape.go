package shape

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"github.com/bindery/go-bindery/core/result/failure"
)

// Shape describes the expected structure of a value crossing an untyped
// boundary. Each shape bundles the strategy for moving a value between
// its external representation (what arrives off the wire) and its
// internal representation (what a raw function operates on).
//
// Decode transforms external to internal, Encode internal to external.
// Both fail fast: the first non-conforming field aborts with a
// [MismatchError] qualified by the path it was reached through.
type Shape interface {
	Decode(input any) (any, failure.Failure)
	Encode(input any) (any, failure.Failure)
	Describe() string
}

// String matches external and internal string values unchanged.
func String() Shape {
	return stringShape{}
}

type stringShape struct{}

func (stringShape) Decode(input any) (any, failure.Failure) {
	if s, ok := input.(string); ok {
		return s, nil
	}
	return nil, NewMismatch("string", describe(input))
}

func (s stringShape) Encode(input any) (any, failure.Failure) {
	return s.Decode(input)
}

func (stringShape) Describe() string {
	return "string"
}

// Bool matches external and internal boolean values unchanged.
func Bool() Shape {
	return boolShape{}
}

type boolShape struct{}

func (boolShape) Decode(input any) (any, failure.Failure) {
	if b, ok := input.(bool); ok {
		return b, nil
	}
	return nil, NewMismatch("bool", describe(input))
}

func (b boolShape) Encode(input any) (any, failure.Failure) {
	return b.Decode(input)
}

func (boolShape) Describe() string {
	return "bool"
}

// Int matches integer values. The external representation is a JSON style
// float64 which must be whole, the internal representation is int64.
func Int() Shape {
	return intShape{}
}

type intShape struct{}

// maxInt64Exclusive is the smallest float64 above the int64 range.
// float64(math.MaxInt64) rounds up to this value, so the range check must
// treat it as an exclusive bound.
const maxInt64Exclusive = float64(1 << 63)

func (intShape) Decode(input any) (any, failure.Failure) {
	switch n := input.(type) {
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= maxInt64Exclusive {
			return nil, NewMismatch("int", fmt.Sprintf("number %v", n))
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	}
	return nil, NewMismatch("int", describe(input))
}

func (intShape) Encode(input any) (any, failure.Failure) {
	switch n := input.(type) {
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return nil, NewMismatch("int", fmt.Sprintf("number %v", n))
		}
		return n, nil
	}
	return nil, NewMismatch("int", describe(input))
}

func (intShape) Describe() string {
	return "int"
}

// Float matches numeric values, internal representation float64.
func Float() Shape {
	return floatShape{}
}

type floatShape struct{}

func (floatShape) Decode(input any) (any, failure.Failure) {
	switch n := input.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return nil, NewMismatch("float", describe(input))
}

func (f floatShape) Encode(input any) (any, failure.Failure) {
	return f.Decode(input)
}

func (floatShape) Describe() string {
	return "float"
}

// Bytes matches binary values. The external representation is a standard
// base64 encoded string, the internal representation is []byte.
func Bytes() Shape {
	return bytesShape{}
}

type bytesShape struct{}

func (bytesShape) Decode(input any) (any, failure.Failure) {
	s, ok := input.(string)
	if !ok {
		return nil, NewMismatch("base64 string", describe(input))
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, NewMismatch("base64 string", fmt.Sprintf("undecodable string: %s", err))
	}
	return b, nil
}

func (bytesShape) Encode(input any) (any, failure.Failure) {
	b, ok := input.([]byte)
	if !ok {
		return nil, NewMismatch("bytes", describe(input))
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (bytesShape) Describe() string {
	return "bytes"
}

// Field is a named member of a struct shape.
type Field struct {
	Name  string
	Shape Shape
}

// F constructs a struct field.
func F(name string, shape Shape) Field {
	return Field{Name: name, Shape: shape}
}

// Struct matches an object of declared fields, represented on both sides
// as map[string]any. Fields are validated in declaration order and
// unknown keys are rejected. Wrap a field shape in [Optional] to allow it
// to be absent.
func Struct(fields ...Field) Shape {
	return structShape{fields}
}

type structShape struct {
	fields []Field
}

func (s structShape) convert(input any, conv func(Shape, any) (any, failure.Failure)) (any, failure.Failure) {
	m, ok := input.(map[string]any)
	if !ok {
		return nil, NewMismatch(s.Describe(), describe(input))
	}
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		v, present := m[f.Name]
		if !present {
			if _, optional := f.Shape.(optionalShape); optional {
				continue
			}
			return nil, prefixed(f.Name, NewMismatch(f.Shape.Describe(), "absent"))
		}
		cv, ferr := conv(f.Shape, v)
		if ferr != nil {
			return nil, prefixed(f.Name, ferr)
		}
		out[f.Name] = cv
	}
	for k := range m {
		if !s.hasField(k) {
			return nil, prefixed(k, NewMismatch("no field", describe(m[k])))
		}
	}
	return out, nil
}

func (s structShape) hasField(name string) bool {
	for _, f := range s.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (s structShape) Decode(input any) (any, failure.Failure) {
	return s.convert(input, Shape.Decode)
}

func (s structShape) Encode(input any) (any, failure.Failure) {
	return s.convert(input, Shape.Encode)
}

func (s structShape) Describe() string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	return fmt.Sprintf("struct{%s}", strings.Join(names, ", "))
}

// Array matches a []any value element-wise. Error paths are qualified
// with the offending index.
func Array(element Shape) Shape {
	return arrayShape{element}
}

type arrayShape struct {
	element Shape
}

func (a arrayShape) convert(input any, conv func(Shape, any) (any, failure.Failure)) (any, failure.Failure) {
	vs, ok := input.([]any)
	if !ok {
		return nil, NewMismatch(a.Describe(), describe(input))
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		cv, ferr := conv(a.element, v)
		if ferr != nil {
			return nil, prefixed(fmt.Sprintf("[%d]", i), ferr)
		}
		out[i] = cv
	}
	return out, nil
}

func (a arrayShape) Decode(input any) (any, failure.Failure) {
	return a.convert(input, Shape.Decode)
}

func (a arrayShape) Encode(input any) (any, failure.Failure) {
	return a.convert(input, Shape.Encode)
}

func (a arrayShape) Describe() string {
	return fmt.Sprintf("array<%s>", a.element.Describe())
}

// Optional marks a struct field as allowed to be absent. An absent field
// passes through unset, a present field is validated by the inner shape
// and a present field of the wrong type is always an error.
func Optional(inner Shape) Shape {
	return optionalShape{inner}
}

type optionalShape struct {
	inner Shape
}

func (o optionalShape) Decode(input any) (any, failure.Failure) {
	return o.inner.Decode(input)
}

func (o optionalShape) Encode(input any) (any, failure.Failure) {
	return o.inner.Encode(input)
}

func (o optionalShape) Describe() string {
	return fmt.Sprintf("optional<%s>", o.inner.Describe())
}

// Custom constructs a shape from a caller supplied decode/encode strategy
// pair. There is no registration of any kind, the returned shape is just
// a value.
func Custom(description string, decode func(any) (any, failure.Failure), encode func(any) (any, failure.Failure)) Shape {
	return customShape{description, decode, encode}
}

type customShape struct {
	description string
	decodeFunc  func(any) (any, failure.Failure)
	encodeFunc  func(any) (any, failure.Failure)
}

func (c customShape) Decode(input any) (any, failure.Failure) {
	return c.decodeFunc(input)
}

func (c customShape) Encode(input any) (any, failure.Failure) {
	return c.encodeFunc(input)
}

func (c customShape) Describe() string {
	return c.description
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, int, int64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case []byte:
		return "bytes"
	}
	return fmt.Sprintf("%T", v)
}
