package value

// Instance is a shared, mutable reference to a user object: a declared class
// name plus a field-name -> Value map. Like Array, it is always held through
// a pointer so every holder observes the same mutations.
type Instance struct {
	class  string
	fields map[string]Value
}

// NewInstance creates an instance declared as the given class, with no
// fields set.
func NewInstance(class string) *Instance {
	return &Instance{class: class, fields: map[string]Value{}}
}

// ClassName returns the instance's declared class.
func (in *Instance) ClassName() string { return in.class }

// Field reads a field, returning Null{} if it was never set.
func (in *Instance) Field(name string) Value {
	if v, ok := in.fields[name]; ok {
		return v
	}
	return Null{}
}

// SetField writes a field, creating it if necessary.
func (in *Instance) SetField(name string, v Value) {
	in.fields[name] = v
}

func (in *Instance) isValue() {}

func (in *Instance) String() string {
	return in.class + "@instance"
}
