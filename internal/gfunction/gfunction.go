// Package gfunction implements the native class library: classes with no
// compiled bytecode, whose behavior is plain Go, registered against the same
// classes.Descriptor interface a decoded class file satisfies. The name
// echoes the "gfunction" (Go function) terminology used for native-method
// shims in the broader JVM-in-Go ecosystem this module draws its intrinsics
// list from.
package gfunction

import (
	"minijvm/internal/classes"
	"minijvm/internal/value"
)

// RegisterAll registers every native class this core ships with into reg.
// The CLI driver calls this once at startup, before loading any compiled
// class (spec.md §6).
func RegisterAll(reg *classes.Registry) {
	reg.Register(newObjectClass())
	reg.Register(newPrintStream())

	out := value.NewInstance("java/io/PrintStream")
	reg.Register(newSystemClass(out))

	reg.Register(newStringClass())
	reg.Register(newIntegerClass())
	reg.Register(newMathClass())
	reg.Register(newArraysClass())
	reg.Register(newArrayListClass())
}
