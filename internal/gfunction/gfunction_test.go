package gfunction_test

import (
	"testing"

	"minijvm/internal/classes"
	"minijvm/internal/frame"
	"minijvm/internal/gfunction"
	"minijvm/internal/value"
)

func newRegistry(t *testing.T) *classes.Registry {
	t.Helper()
	reg := classes.NewRegistry()
	gfunction.RegisterAll(reg)
	return reg
}

func invokeStatic(t *testing.T, reg *classes.Registry, class, method string, args ...value.Value) value.Value {
	t.Helper()
	desc, err := reg.Lookup(class)
	if err != nil {
		t.Fatalf("Lookup(%s): %v", class, err)
	}
	f := frame.New()
	for _, a := range args {
		f.Push(a)
	}
	result, err := desc.InvokeStatic(f, method, len(args))
	if err != nil {
		t.Fatalf("InvokeStatic(%s.%s): %v", class, method, err)
	}
	return result
}

func TestSystemOutIsAPrintStream(t *testing.T) {
	reg := newRegistry(t)
	sys, err := reg.Lookup("java/lang/System")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	out, err := sys.ReadStatic("out")
	if err != nil {
		t.Fatalf("ReadStatic(out): %v", err)
	}
	in, ok := out.(*value.Instance)
	if !ok || in.ClassName() != "java/io/PrintStream" {
		t.Errorf("System.out = %v, want a java/io/PrintStream instance", out)
	}
}

func TestPrintStreamPrintlnDoesNotError(t *testing.T) {
	reg := newRegistry(t)
	ps, err := reg.Lookup("java/io/PrintStream")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	this := value.NewInstance("java/io/PrintStream")
	if _, err := ps.InvokeInstance(frame.New(), "println", this, []value.Value{value.String("hi")}); err != nil {
		t.Errorf("println: %v", err)
	}
}

func TestStringOperations(t *testing.T) {
	reg := newRegistry(t)
	tests := []struct {
		method string
		args   []value.Value
		want   value.Value
	}{
		{"length", []value.Value{value.String("hello")}, value.Integer(5)},
		{"charAt", []value.Value{value.String("hello"), value.Integer(1)}, value.Integer('e')},
		{"equals", []value.Value{value.String("a"), value.String("a")}, value.Bool(true)},
		{"equals", []value.Value{value.String("a"), value.String("b")}, value.Bool(false)},
		{"substring", []value.Value{value.String("hello"), value.Integer(1), value.Integer(3)}, value.String("el")},
		{"toUpperCase", []value.Value{value.String("hello")}, value.String("HELLO")},
		{"toLowerCase", []value.Value{value.String("HELLO")}, value.String("hello")},
		{"concat", []value.Value{value.String("foo"), value.String("bar")}, value.String("foobar")},
		{"format", []value.Value{value.String("%s=%d"), value.String("x"), value.Integer(3)}, value.String("x=3")},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := invokeStatic(t, reg, "java/lang/String", tt.method, tt.args...)
			if got != tt.want {
				t.Errorf("%s%v = %v, want %v", tt.method, tt.args, got, tt.want)
			}
		})
	}
}

func TestIntegerOperations(t *testing.T) {
	reg := newRegistry(t)
	if got := invokeStatic(t, reg, "java/lang/Integer", "parseInt", value.String("123")); got != value.Integer(123) {
		t.Errorf("parseInt = %v, want 123", got)
	}
	if got := invokeStatic(t, reg, "java/lang/Integer", "toString", value.Integer(7)); got != value.String("7") {
		t.Errorf("toString = %v, want \"7\"", got)
	}
	if got := invokeStatic(t, reg, "java/lang/Integer", "valueOf", value.Integer(9)); got != value.Integer(9) {
		t.Errorf("valueOf = %v, want 9", got)
	}
}

func TestMathOperations(t *testing.T) {
	reg := newRegistry(t)
	if got := invokeStatic(t, reg, "java/lang/Math", "max", value.Integer(3), value.Integer(5)); got != value.Integer(5) {
		t.Errorf("max = %v, want 5", got)
	}
	if got := invokeStatic(t, reg, "java/lang/Math", "min", value.Integer(3), value.Integer(5)); got != value.Integer(3) {
		t.Errorf("min = %v, want 3", got)
	}
	if got := invokeStatic(t, reg, "java/lang/Math", "abs", value.Integer(-4)); got != value.Integer(4) {
		t.Errorf("abs = %v, want 4", got)
	}
}

func TestArraysToString(t *testing.T) {
	reg := newRegistry(t)
	arr := value.NewArray(2)
	arr.Set(0, value.Integer(1))
	arr.Set(1, value.Integer(2))
	got := invokeStatic(t, reg, "java/util/Arrays", "toString", arr)
	if got != value.String("[1, 2]") {
		t.Errorf("toString = %v, want [1, 2]", got)
	}
}

func TestArrayListAddGetSize(t *testing.T) {
	reg := newRegistry(t)
	desc, err := reg.Lookup("java/util/ArrayList")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	created, err := desc.InvokeStatic(frame.New(), "create", 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	list := created.(*value.Instance)

	if _, err := desc.InvokeInstance(frame.New(), "add", list, []value.Value{value.String("x")}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := desc.InvokeInstance(frame.New(), "add", list, []value.Value{value.String("y")}); err != nil {
		t.Fatalf("add: %v", err)
	}

	size, err := desc.InvokeInstance(frame.New(), "size", list, nil)
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != value.Integer(2) {
		t.Errorf("size = %v, want 2", size)
	}

	got, err := desc.InvokeInstance(frame.New(), "get", list, []value.Value{value.Integer(1)})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != value.String("y") {
		t.Errorf("get(1) = %v, want \"y\"", got)
	}
}
