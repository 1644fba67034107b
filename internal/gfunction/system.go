package gfunction

import (
	"minijvm/internal/classes"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

// systemClass implements java/lang/System's one static field this core
// models: out, a java/io/PrintStream instance bound to the process's real
// stdout via the printStream descriptor.
type systemClass struct {
	out *value.Instance
}

func newSystemClass(out *value.Instance) *systemClass {
	return &systemClass{out: out}
}

func (systemClass) Name() string { return "java/lang/System" }

func (systemClass) Print() string { return "java/lang/System (native)" }

func (systemClass) MakeInstance() (*value.Instance, error) {
	return nil, classes.ErrNotImplemented
}

func (systemClass) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (systemClass) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (s *systemClass) ReadStatic(field string) (value.Value, error) {
	if field == "out" {
		return s.out, nil
	}
	return nil, classes.ErrNotImplemented
}

func (systemClass) WriteStatic(field string, v value.Value) error {
	return classes.ErrNotImplemented
}
