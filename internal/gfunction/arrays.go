package gfunction

import (
	"fmt"

	"minijvm/internal/classes"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

// arraysClass implements java/util/Arrays.toString, the one bulk-array
// helper this core ships (anewarray/aaload/aastore already provide the rest
// of java.util.Arrays' usual surface for free, since every Value is already
// shared-heap and GC-managed).
type arraysClass struct{}

func newArraysClass() *arraysClass { return &arraysClass{} }

func (arraysClass) Name() string { return "java/util/Arrays" }

func (arraysClass) Print() string { return "java/util/Arrays (native)" }

func (arraysClass) MakeInstance() (*value.Instance, error) {
	return nil, classes.ErrNotImplemented
}

func (arraysClass) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (arraysClass) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	args, err := f.PopArgs(argCount)
	if err != nil {
		return nil, err
	}

	switch method {
	case "toString":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: toString needs one argument", classes.ErrNotImplemented)
		}
		arr, ok := args[0].(*value.Array)
		if !ok {
			return nil, fmt.Errorf("%w: toString argument is %T, not Array", classes.ErrNotImplemented, args[0])
		}
		return value.String(arr.String()), nil
	default:
		return nil, classes.ErrNotImplemented
	}
}

func (arraysClass) ReadStatic(field string) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (arraysClass) WriteStatic(field string, v value.Value) error {
	return classes.ErrNotImplemented
}
