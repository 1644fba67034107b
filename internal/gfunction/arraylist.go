package gfunction

import (
	"fmt"

	"minijvm/internal/classes"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

const arrayListElements = "elements"

// arrayListClass implements java/util/ArrayList as a growable wrapper around
// value.Array's Append, so the core's shared-heap Array already provides the
// storage discipline an ArrayList needs without a second container type.
//
// This core has no `new` opcode (spec.md's opcode table omits one), so
// compiled bytecode cannot allocate an ArrayList itself; "create" is a static
// factory that does what `new java/util/ArrayList()` would, for native glue
// and tests to call directly.
type arrayListClass struct{}

func newArrayListClass() *arrayListClass { return &arrayListClass{} }

func (arrayListClass) Name() string { return "java/util/ArrayList" }

func (arrayListClass) Print() string { return "java/util/ArrayList (native)" }

func (arrayListClass) MakeInstance() (*value.Instance, error) {
	in := value.NewInstance("java/util/ArrayList")
	in.SetField(arrayListElements, value.NewArray(0))
	return in, nil
}

func (c arrayListClass) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	if method == "<init>" {
		return value.Null{}, nil
	}

	elems, ok := this.Field(arrayListElements).(*value.Array)
	if !ok {
		return nil, fmt.Errorf("%w: ArrayList instance missing backing array", classes.ErrNotImplemented)
	}

	switch method {
	case "add":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: add needs one argument", classes.ErrNotImplemented)
		}
		elems.Append(args[0])
		return value.Bool(true), nil
	case "get":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: get needs one argument", classes.ErrNotImplemented)
		}
		idx, ok := args[0].(value.Integer)
		if !ok {
			return nil, fmt.Errorf("%w: get argument is %T, not Integer", classes.ErrNotImplemented, args[0])
		}
		v, ok := elems.Get(int(idx))
		if !ok {
			return nil, fmt.Errorf("%w: index %d, length %d", classes.ErrArrayIndex, idx, elems.Len())
		}
		return v, nil
	case "size":
		return value.Integer(elems.Len()), nil
	default:
		return nil, classes.ErrNotImplemented
	}
}

func (arrayListClass) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	if method == "create" {
		return arrayListClass{}.MakeInstance()
	}
	return nil, classes.ErrNotImplemented
}

func (arrayListClass) ReadStatic(field string) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (arrayListClass) WriteStatic(field string, v value.Value) error {
	return classes.ErrNotImplemented
}
