package clerr

import (
	"fmt"
	"strings"
)

// Kind identifies one of the closed set of pipeline failure modes from
// spec.md §7. Every error value constructed by this package implements one
// (and only one) of these kinds; no other error shape is ever produced by
// a pass.

// FileError — source cannot be read.
type FileError struct {
	Path  string
	Cause error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Cause)
}

func (e *FileError) Position() Position { return Position{} }

// ParseError — parser rejection.
type ParseError struct {
	Message  string
	Pos      Position
	Expected []string
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (expected %s)", e.Message, strings.Join(e.Expected, ", "))
}

func (e *ParseError) Position() Position { return e.Pos }

// DuplicateError — name collision in some scope.
type DuplicateError struct {
	Name   string
	First  Position
	Second Position
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate name %q, first declared at %s", e.Name, e.First)
}

func (e *DuplicateError) Position() Position { return e.Second }

// ResolveError — unknown identifier, function, attribute, or method for a
// static type. Category names what kind of lookup failed, e.g. "variable",
// "function", "attribute for type Animal", "method for type Animal".
type ResolveError struct {
	Category string
	Name     string
	Pos      Position
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("unresolved %s %q", e.Category, e.Name)
}

func (e *ResolveError) Position() Position { return e.Pos }

// InstanceError — unknown structure or class name on an instance declaration.
type InstanceError struct {
	Name string
	Pos  Position
}

func (e *InstanceError) Error() string {
	return fmt.Sprintf("unknown structure or class %q", e.Name)
}

func (e *InstanceError) Position() Position { return e.Pos }

// IntervalError — invalid interval endpoints (lo > hi).
type IntervalError struct {
	Pos    Position
	Lo, Hi int
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("invalid interval %d..%d: lower bound exceeds upper bound", e.Lo, e.Hi)
}

func (e *IntervalError) Position() Position { return e.Pos }

// ParameterError — arity mismatch in a call.
type ParameterError struct {
	Expr     string
	Pos      Position
	Size     int
	Expected int
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %d argument(s) given, %d expected", e.Expr, e.Size, e.Expected)
}

func (e *ParameterError) Position() Position { return e.Pos }

// BoundedError — domain of a method/quantifier parameter is infinite.
type BoundedError struct {
	Name string
	Pos  Position
}

func (e *BoundedError) Error() string {
	return fmt.Sprintf("%q has an unbounded domain; quantified and method parameters must be bounded", e.Name)
}

func (e *BoundedError) Position() Position { return e.Pos }

// TypeError — checker rejection.
type TypeError struct {
	Expr     string
	Pos      Position
	Actual   string
	Expected []string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s has type %s, expected %s", e.Expr, e.Actual, strings.Join(e.Expected, " or "))
}

func (e *TypeError) Position() Position { return e.Pos }

// Positioned is implemented by every error kind above so the formatter can
// locate it in the source without a type switch for each kind.
type Positioned interface {
	error
	Position() Position
}

// Kind names the closed error-kind set (spec.md §7) the concrete type of
// err belongs to, for diagnostic headers — e.g. "file", "parse",
// "duplicate", "resolve", "instance", "interval", "parameter", "bounded",
// "type".
func Kind(err error) string {
	switch err.(type) {
	case *FileError:
		return "file"
	case *ParseError:
		return "parse"
	case *DuplicateError:
		return "duplicate"
	case *ResolveError:
		return "resolve"
	case *InstanceError:
		return "instance"
	case *IntervalError:
		return "interval"
	case *ParameterError:
		return "parameter"
	case *BoundedError:
		return "bounded"
	case *TypeError:
		return "type"
	default:
		return "unknown"
	}
}
