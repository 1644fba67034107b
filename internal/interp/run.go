// Package interp is the thin external entry point into the registry and
// dispatch loop implemented in internal/classes: one function, Run, that the
// CLI driver (or a test) calls to execute a class's static method the way a
// JVM-family launcher invokes main.
package interp

import (
	"context"
	"fmt"

	"minijvm/internal/classes"
	"minijvm/internal/frame"
)

// Run loads class from reg's classpath (if not already registered) and runs
// its named static method to completion, returning whatever value the
// method's return instruction leaves on the stack. ctx is checked once
// before dispatch begins; this core's interpreter loop has no suspension
// points (spec.md §5), so cancellation mid-method is not observed.
func Run(ctx context.Context, reg *classes.Registry, class, method string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	desc, err := reg.Lookup(class)
	if err != nil {
		return "", fmt.Errorf("interp: %w", err)
	}

	f := frame.New()
	result, err := desc.InvokeStatic(f, method, 0)
	if err != nil {
		return "", fmt.Errorf("interp: running %s.%s: %w", class, method, err)
	}
	return result.String(), nil
}
