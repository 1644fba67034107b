package gfunction

import (
	"minijvm/internal/classes"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

// objectClass implements java/lang/Object: every other class's implicit
// root. Its only behavior is a no-op constructor, matching invokespecial's
// own no-op treatment of <init> chains.
type objectClass struct{}

func newObjectClass() *objectClass { return &objectClass{} }

func (objectClass) Name() string { return "java/lang/Object" }

func (objectClass) Print() string { return "java/lang/Object (native)" }

func (objectClass) MakeInstance() (*value.Instance, error) {
	return value.NewInstance("java/lang/Object"), nil
}

func (objectClass) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	if method == "<init>" {
		return value.Null{}, nil
	}
	return nil, classes.ErrNotImplemented
}

func (objectClass) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (objectClass) ReadStatic(field string) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (objectClass) WriteStatic(field string, v value.Value) error {
	return classes.ErrNotImplemented
}
