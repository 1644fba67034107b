package gfunction

import (
	"fmt"
	"os"

	"minijvm/internal/classes"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

// printStream implements java/io/PrintStream's print and println, writing to
// the process's real stdout. Every java/io/PrintStream instance (there is
// normally exactly one, System.out) shares this same stateless descriptor.
type printStream struct{}

func newPrintStream() *printStream { return &printStream{} }

func (printStream) Name() string { return "java/io/PrintStream" }

func (printStream) Print() string { return "java/io/PrintStream (native)" }

func (printStream) MakeInstance() (*value.Instance, error) {
	return value.NewInstance("java/io/PrintStream"), nil
}

func (printStream) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	switch method {
	case "print":
		fmt.Fprint(os.Stdout, printArg(args))
		return value.Null{}, nil
	case "println":
		fmt.Fprintln(os.Stdout, printArg(args))
		return value.Null{}, nil
	default:
		return nil, classes.ErrNotImplemented
	}
}

func printArg(args []value.Value) string {
	if len(args) == 0 {
		return ""
	}
	return args[0].String()
}

func (printStream) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (printStream) ReadStatic(field string) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (printStream) WriteStatic(field string, v value.Value) error {
	return classes.ErrNotImplemented
}
