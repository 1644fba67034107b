package gfunction

import (
	"fmt"

	"minijvm/internal/classes"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

// mathClass implements java/lang/Math's static int helpers.
type mathClass struct{}

func newMathClass() *mathClass { return &mathClass{} }

func (mathClass) Name() string { return "java/lang/Math" }

func (mathClass) Print() string { return "java/lang/Math (native)" }

func (mathClass) MakeInstance() (*value.Instance, error) {
	return nil, classes.ErrNotImplemented
}

func (mathClass) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (mathClass) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	args, err := f.PopArgs(argCount)
	if err != nil {
		return nil, err
	}

	ints := make([]int32, len(args))
	for i, a := range args {
		n, ok := a.(value.Integer)
		if !ok {
			return nil, fmt.Errorf("%w: %s argument %d is %T, not Integer", classes.ErrNotImplemented, method, i, a)
		}
		ints[i] = int32(n)
	}

	switch method {
	case "max":
		if len(ints) != 2 {
			return nil, fmt.Errorf("%w: max needs 2 arguments", classes.ErrNotImplemented)
		}
		if ints[0] > ints[1] {
			return value.Integer(ints[0]), nil
		}
		return value.Integer(ints[1]), nil
	case "min":
		if len(ints) != 2 {
			return nil, fmt.Errorf("%w: min needs 2 arguments", classes.ErrNotImplemented)
		}
		if ints[0] < ints[1] {
			return value.Integer(ints[0]), nil
		}
		return value.Integer(ints[1]), nil
	case "abs":
		if len(ints) != 1 {
			return nil, fmt.Errorf("%w: abs needs 1 argument", classes.ErrNotImplemented)
		}
		n := ints[0]
		if n < 0 {
			n = -n
		}
		return value.Integer(n), nil
	default:
		return nil, classes.ErrNotImplemented
	}
}

func (mathClass) ReadStatic(field string) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (mathClass) WriteStatic(field string, v value.Value) error {
	return classes.ErrNotImplemented
}
