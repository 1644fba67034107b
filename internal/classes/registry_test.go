package classes_test

import (
	"os"
	"path/filepath"
	"testing"

	"minijvm/internal/classes"
	"minijvm/internal/classtest"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

func writeClass(t *testing.T, dir, name string, b *classtest.Builder) {
	t.Helper()
	path := filepath.Join(dir, name+".class")
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestRegistryLookupLoadsFromClasspath(t *testing.T) {
	dir := t.TempDir()
	b := classtest.New("Loadable")
	b.AddMethod("main", "()V", 0x0009, 1, 1, []byte{0xb1})
	writeClass(t, dir, "Loadable", b)

	reg := classes.NewRegistry(dir)
	desc, err := reg.Lookup("Loadable")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if desc.Name() != "Loadable" {
		t.Errorf("Name() = %q, want Loadable", desc.Name())
	}
}

func TestRegistryLookupIsPure(t *testing.T) {
	dir := t.TempDir()
	b := classtest.New("Cached")
	b.AddMethod("main", "()V", 0x0009, 1, 1, []byte{0xb1})
	writeClass(t, dir, "Cached", b)

	reg := classes.NewRegistry(dir)
	first, err := reg.Lookup("Cached")
	if err != nil {
		t.Fatalf("first Lookup: %v", err)
	}
	second, err := reg.Lookup("Cached")
	if err != nil {
		t.Fatalf("second Lookup: %v", err)
	}
	if first != second {
		t.Error("repeated Lookup should return the same cached descriptor")
	}
}

func TestRegistryUnknownClass(t *testing.T) {
	reg := classes.NewRegistry(t.TempDir())
	if _, err := reg.Lookup("DoesNotExist"); err == nil {
		t.Fatal("expected ErrUnknownClass")
	}
}

func TestRegistryRegisterOverridesClasspath(t *testing.T) {
	reg := classes.NewRegistry()
	stub := &stubDescriptor{name: "java/lang/Object"}
	reg.Register(stub)
	desc, err := reg.Lookup("java/lang/Object")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if desc != stub {
		t.Error("Lookup should return the registered stub, not load from classpath")
	}
}

type stubDescriptor struct{ name string }

func (s *stubDescriptor) Name() string  { return s.name }
func (s *stubDescriptor) Print() string { return s.name + " (stub)" }
func (s *stubDescriptor) MakeInstance() (*value.Instance, error) {
	return value.NewInstance(s.name), nil
}
func (s *stubDescriptor) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	return value.Null{}, nil
}
func (s *stubDescriptor) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	return value.Null{}, nil
}
func (s *stubDescriptor) ReadStatic(field string) (value.Value, error) { return value.Null{}, nil }
func (s *stubDescriptor) WriteStatic(field string, v value.Value) error { return nil }
