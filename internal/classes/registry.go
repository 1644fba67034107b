package classes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"minijvm/internal/classfile"
)

// ErrUnknownClass is returned when a class name has no registered or
// loadable descriptor (spec.md §4.5: "Lookup failure is fatal").
var ErrUnknownClass = errors.New("classes: unknown class")

// ErrUnknownMethod is returned when a Descriptor has no such method.
var ErrUnknownMethod = errors.New("classes: unknown method")

// ErrUnknownField is returned when a Descriptor has no such static field.
var ErrUnknownField = errors.New("classes: unknown static field")

// Registry is the process-wide, single-threaded name -> Descriptor map.
// Registration is append-only once execution begins (spec.md §4.5); the
// mutex only serializes access to the map itself so accidental concurrent
// use cannot corrupt it; the interpreter itself is single-threaded per
// spec.md §5.
type Registry struct {
	mu        sync.Mutex
	descs     map[string]Descriptor
	classpath []string
}

// NewRegistry creates an empty registry that will search classpath
// directories (in order) for a "<name>.class" file on a lookup miss.
func NewRegistry(classpath ...string) *Registry {
	return &Registry{
		descs:     map[string]Descriptor{},
		classpath: classpath,
	}
}

// Register adds a descriptor under its own Name(). A second Register call
// for the same name replaces the prior descriptor (used by tests; the CLI
// driver never re-registers a name it already loaded).
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descs[d.Name()] = d
}

// Lookup returns the descriptor for name, loading it from the classpath as a
// compiled class if it is not already registered. A lookup miss with no
// matching class file on disk is ErrUnknownClass, which is fatal per
// spec.md's no-lazy-loading-failure-recovery policy.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	r.mu.Lock()
	if d, ok := r.descs[name]; ok {
		r.mu.Unlock()
		return d, nil
	}
	r.mu.Unlock()

	for _, dir := range r.classpath {
		path := filepath.Join(dir, name+".class")
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		cf, err := classfile.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("classes: loading %s: %w", name, err)
		}
		compiled, err := newCompiled(cf, r)
		if err != nil {
			return nil, err
		}
		r.Register(compiled)
		return compiled, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
}
