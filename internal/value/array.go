package value

// Array is a fixed-length, shared, mutable sequence of Values. Its length is
// fixed at allocation: anewarray sizes it once, and writes past the end are a
// RuntimeError, never a resize (spec invariant: "An Array's length is fixed
// at allocation").
type Array struct {
	elems []Value

	// elementClass is the internal name anewarray resolved for this array's
	// element type (e.g. "java/lang/Object"), or "" for arrays that don't
	// carry one (NewArray callers outside anewarray, such as ArrayList's
	// backing store). Diagnostic only: aaload/aastore never check it.
	elementClass string
}

// NewArray allocates an array of exactly n elements, each initialized to
// Integer(0) per the anewarray contract.
func NewArray(n int) *Array {
	a := &Array{elems: make([]Value, n)}
	for i := range a.elems {
		a.elems[i] = Integer(0)
	}
	return a
}

// NewObjectArray is NewArray plus the element class name anewarray resolved
// from the constant pool, so the array can describe its own type in
// diagnostics without the interpreter re-deriving it.
func NewObjectArray(n int, elementClass string) *Array {
	a := NewArray(n)
	a.elementClass = elementClass
	return a
}

// ElementClass returns the element class name passed to NewObjectArray, or
// "" if the array wasn't given one.
func (a *Array) ElementClass() string { return a.elementClass }

// Len returns the array's fixed length.
func (a *Array) Len() int { return len(a.elems) }

// Get returns the element at i, or false if i is out of range.
func (a *Array) Get(i int) (Value, bool) {
	if i < 0 || i >= len(a.elems) {
		return nil, false
	}
	return a.elems[i], true
}

// Set writes v at i, or reports false if i is out of range. The array's
// length never changes as a result of Set.
func (a *Array) Set(i int, v Value) bool {
	if i < 0 || i >= len(a.elems) {
		return false
	}
	a.elems[i] = v
	return true
}

func (a *Array) isValue() {}

func (a *Array) String() string {
	s := "["
	if a.elementClass != "" {
		s = a.elementClass + ":["
	}
	for i, e := range a.elems {
		if i > 0 {
			s += ", "
		}
		if e == nil {
			s += "null"
		} else {
			s += e.String()
		}
	}
	return s + "]"
}

// Append grows the array by one slot holding v. Fixed-length arrays created by
// anewarray never call this; it exists for native collection classes (e.g.
// java/util/ArrayList) that model an unbounded mutable sequence on top of the
// same shared-heap-value discipline instead of inventing a second container
// type.
func (a *Array) Append(v Value) {
	a.elems = append(a.elems, v)
}
