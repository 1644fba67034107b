// Package classes implements the class registry and the Descriptor interface
// that gives compiled classes (backed by a decoded class file) and native
// classes (hand-written Go) identical invocation semantics: the registry
// dispatches through Descriptor without caring which kind it got.
package classes

import (
	"errors"

	"minijvm/internal/frame"
	"minijvm/internal/value"
)

// ErrNotImplemented is returned by a Descriptor when asked to perform an
// operation it does not model (spec.md §4.6's "method not supported").
var ErrNotImplemented = errors.New("classes: method not implemented")

// Descriptor is the capability set every class — compiled or native —
// exposes uniformly, per spec.md §3/§4.6.
type Descriptor interface {
	// Name returns the class's fully-qualified internal name, e.g.
	// "java/lang/String".
	Name() string

	// Print returns a short, diagnostic-only description of the class. It has
	// no effect on interpreter state and is not how System.out writes to
	// stdout — that is PrintStream's job.
	Print() string

	// MakeInstance allocates a fresh instance of this class, carrying only
	// the initial fields the class itself sets up (a compiled class's
	// declared instance fields as Null, for example). Returns
	// ErrNotImplemented if the class cannot be instantiated.
	MakeInstance() (*value.Instance, error)

	// InvokeInstance runs an instance method. The receiver is passed
	// explicitly as this and args is the argument list the caller already
	// popped off f for this call; by the time InvokeInstance runs, the
	// caller has already removed both from f's operand stack.
	InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error)

	// InvokeStatic runs a static method. argCount tells the descriptor how
	// many values below the top of f's operand stack are this call's
	// arguments.
	InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error)

	// ReadStatic reads a static field's current value.
	ReadStatic(field string) (value.Value, error)

	// WriteStatic writes a static field's value.
	WriteStatic(field string, v value.Value) error
}
