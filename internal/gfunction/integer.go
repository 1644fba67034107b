package gfunction

import (
	"fmt"
	"strconv"

	"minijvm/internal/classes"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

// integerClass implements java/lang/Integer's static parsing and formatting
// helpers. There is no boxed Integer wrapper object in this core's value
// model (value.Integer already serves that role on the stack), so valueOf is
// the identity function.
type integerClass struct{}

func newIntegerClass() *integerClass { return &integerClass{} }

func (integerClass) Name() string { return "java/lang/Integer" }

func (integerClass) Print() string { return "java/lang/Integer (native)" }

func (integerClass) MakeInstance() (*value.Instance, error) {
	return nil, classes.ErrNotImplemented
}

func (integerClass) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (integerClass) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	args, err := f.PopArgs(argCount)
	if err != nil {
		return nil, err
	}

	switch method {
	case "parseInt":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: parseInt needs one argument", classes.ErrNotImplemented)
		}
		s, ok := args[0].(value.String)
		if !ok {
			return nil, fmt.Errorf("%w: parseInt argument is %T, not String", classes.ErrNotImplemented, args[0])
		}
		n, err := strconv.ParseInt(string(s), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("classes: parseInt %q: %w", s, err)
		}
		return value.Integer(int32(n)), nil

	case "toString":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: toString needs one argument", classes.ErrNotImplemented)
		}
		n, ok := args[0].(value.Integer)
		if !ok {
			return nil, fmt.Errorf("%w: toString argument is %T, not Integer", classes.ErrNotImplemented, args[0])
		}
		return value.String(n.String()), nil

	case "valueOf":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: valueOf needs one argument", classes.ErrNotImplemented)
		}
		return args[0], nil

	default:
		return nil, classes.ErrNotImplemented
	}
}

func (integerClass) ReadStatic(field string) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (integerClass) WriteStatic(field string, v value.Value) error {
	return classes.ErrNotImplemented
}
