package classes

import (
	"fmt"

	"minijvm/internal/bytecode"
	"minijvm/internal/classfile"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

const accStatic = 0x0008

// Compiled is a Descriptor backed by a decoded class file: its methods run
// real bytecode through the registry's dispatch loop (exec.go); its static
// fields and instance-field layout come straight from the class file's field
// table.
type Compiled struct {
	cf  *classfile.ClassFile
	reg *Registry

	methods map[string]*bytecode.Bytecode // "name#descriptor"
	// instanceFields lists the field names every instance of this class
	// should carry (spec.md §3: "table of instance field names"); values
	// are materialized lazily as MakeInstance is called.
	instanceFields []string

	statics map[string]value.Value
}

func methodKey(name, descriptor string) string { return name + "#" + descriptor }

// newCompiled decodes every method's Code attribute and materializes the
// static field table (spec.md invariant: "Static-field tables exist before
// any method of that class runs").
func newCompiled(cf *classfile.ClassFile, reg *Registry) (*Compiled, error) {
	c := &Compiled{
		cf:      cf,
		reg:     reg,
		methods: map[string]*bytecode.Bytecode{},
		statics: map[string]value.Value{},
	}

	for _, m := range cf.Methods {
		code, ok, err := m.Code()
		if err != nil {
			return nil, fmt.Errorf("classes: decoding Code for %s.%s: %w", cf.ThisClass, m.Name, err)
		}
		if !ok {
			continue
		}
		bc, err := bytecode.Decode(code.Code, cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("classes: decoding bytecode for %s.%s: %w", cf.ThisClass, m.Name, err)
		}
		c.methods[methodKey(m.Name, m.Descriptor)] = bc
	}

	for _, f := range cf.Fields {
		if f.Flags&accStatic != 0 {
			c.statics[f.Name] = value.Null{}
		} else {
			c.instanceFields = append(c.instanceFields, f.Name)
		}
	}

	return c, nil
}

func (c *Compiled) Name() string { return c.cf.ThisClass }

func (c *Compiled) Print() string {
	return fmt.Sprintf("%s (compiled, %d methods)", c.cf.ThisClass, len(c.cf.Methods))
}

func (c *Compiled) MakeInstance() (*value.Instance, error) {
	in := value.NewInstance(c.cf.ThisClass)
	for _, name := range c.instanceFields {
		in.SetField(name, value.Null{})
	}
	return in, nil
}

// findMethod resolves a method by name only, ignoring the type descriptor —
// the core has no overload resolution (spec.md's "no verifier" non-goal), so
// the first method with a matching name wins, mirroring zserge-tojvm's
// Object.Method with an empty descriptor argument.
func (c *Compiled) findMethod(name string) (*bytecode.Bytecode, bool) {
	for _, m := range c.cf.Methods {
		if m.Name != name {
			continue
		}
		if bc, ok := c.methods[methodKey(m.Name, m.Descriptor)]; ok {
			return bc, true
		}
	}
	return nil, false
}

func (c *Compiled) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	bc, ok := c.findMethod(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, c.Name(), method)
	}
	return runMethod(c.reg, bc, this, args)
}

func (c *Compiled) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	bc, ok := c.findMethod(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, c.Name(), method)
	}
	args, err := f.PopArgs(argCount)
	if err != nil {
		return nil, err
	}
	return runMethod(c.reg, bc, nil, args)
}

func (c *Compiled) ReadStatic(field string) (value.Value, error) {
	v, ok := c.statics[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, c.Name(), field)
	}
	return v, nil
}

func (c *Compiled) WriteStatic(field string, v value.Value) error {
	if _, ok := c.statics[field]; !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, c.Name(), field)
	}
	c.statics[field] = v
	return nil
}
