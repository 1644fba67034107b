package classfile

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownTag is returned (wrapped with the offending tag) when the
// constant pool contains a tag this decoder does not recognize.
var ErrUnknownTag = errors.New("classfile: unknown constant pool tag")

// ErrBadReference is returned when a denormalized entry's index chain points
// at a slot that does not exist or is the wrong kind.
var ErrBadReference = errors.New("classfile: unresolved constant pool reference")

// Tag identifies the kind of a raw constant pool entry, per JVM table 4.4-A.
type Tag byte

const (
	TagUTF8              Tag = 1
	TagInteger           Tag = 3
	TagFloat             Tag = 4
	TagLong              Tag = 5
	TagDouble            Tag = 6
	TagClass             Tag = 7
	TagString            Tag = 8
	TagFieldRef          Tag = 9
	TagMethodRef         Tag = 10
	TagInterfaceMethod   Tag = 11
	TagNameAndType       Tag = 12
)

// rawEntry is a raw, not-yet-resolved constant pool slot: exactly what was
// decoded from the bytes, with indices still pointing at other raw slots.
type rawEntry struct {
	tag Tag

	utf8 string // TagUTF8

	nameIndex  uint16 // TagClass, TagNameAndType
	descIndex  uint16 // TagNameAndType (descriptor half)
	classIndex uint16 // TagFieldRef, TagMethodRef, TagInterfaceMethod
	ntIndex    uint16 // TagFieldRef, TagMethodRef, TagInterfaceMethod
	strIndex   uint16 // TagString

	intVal    int32   // TagInteger
	longVal   int64   // TagLong
	floatVal  float32 // TagFloat
	doubleVal float64 // TagDouble
}

// ClassRef is a denormalized class reference: the owning class's name.
type ClassRef struct {
	Name string
}

// NameAndType is a denormalized (name, type descriptor) pair.
type NameAndType struct {
	Name string
	Type string
}

// MemberRef is a denormalized field or method reference: owner class name,
// member name, and type descriptor, with no further index chasing required.
type MemberRef struct {
	OwnerClass string
	Name       string
	Descriptor string
}

// ConstantPool is the fully denormalized constant pool: every entry's string
// fields have already been copied out, so the interpreter never re-chases an
// index at run time.
type ConstantPool struct {
	utf8       map[uint16]string
	classes    map[uint16]ClassRef
	strings    map[uint16]string
	fields     map[uint16]MemberRef
	methods    map[uint16]MemberRef
	ifaceMeths map[uint16]MemberRef
	ints       map[uint16]int32
	longs      map[uint16]int64
	floats     map[uint16]float32
	doubles    map[uint16]float64
}

// decodeConstantPool reads constant_pool_count and that many entries,
// slotting raw entries by index first (pass one), then flattening every
// non-leaf entry into its denormalized record (pass two) so later decoding
// never has to chase an index chain itself.
func decodeConstantPool(r *Reader) (*ConstantPool, error) {
	count, err := r.U16()
	if err != nil {
		return nil, err
	}

	// Index 0 is unused; raw is a map keyed by the 1-based constant pool
	// index, which mirrors the "some indices occupy two slots" behavior of
	// Long/Double entries cleanly.
	raw := make(map[uint16]rawEntry, count)

	for i := uint16(1); i < count; i++ {
		tag, err := r.U8()
		if err != nil {
			return nil, err
		}
		e := rawEntry{tag: Tag(tag)}
		switch e.tag {
		case TagClass:
			e.nameIndex, err = r.U16()
		case TagFieldRef, TagMethodRef, TagInterfaceMethod:
			if e.classIndex, err = r.U16(); err == nil {
				e.ntIndex, err = r.U16()
			}
		case TagString:
			e.strIndex, err = r.U16()
		case TagInteger:
			var v uint32
			if v, err = r.U32(); err == nil {
				e.intVal = int32(v)
			}
		case TagFloat:
			var v uint32
			if v, err = r.U32(); err == nil {
				e.floatVal = math.Float32frombits(v)
			}
		case TagLong:
			var v uint64
			if v, err = r.U64(); err == nil {
				e.longVal = int64(v)
			}
		case TagDouble:
			var v uint64
			if v, err = r.U64(); err == nil {
				e.doubleVal = math.Float64frombits(v)
			}
		case TagNameAndType:
			if e.nameIndex, err = r.U16(); err == nil {
				e.descIndex, err = r.U16()
			}
		case TagUTF8:
			var n uint16
			if n, err = r.U16(); err == nil {
				e.utf8, err = r.UTF8(int(n))
			}
		default:
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tag)
		}
		if err != nil {
			return nil, err
		}
		raw[i] = e

		// Long and Double entries occupy two constant pool slots; the second
		// is unused but must be skipped so following indices land correctly.
		if e.tag == TagLong || e.tag == TagDouble {
			i++
		}
	}

	return flatten(raw)
}

// flatten builds the denormalized ConstantPool from raw, resolving every
// index chain exactly once.
func flatten(raw map[uint16]rawEntry) (*ConstantPool, error) {
	cp := &ConstantPool{
		utf8:       map[uint16]string{},
		classes:    map[uint16]ClassRef{},
		strings:    map[uint16]string{},
		fields:     map[uint16]MemberRef{},
		methods:    map[uint16]MemberRef{},
		ifaceMeths: map[uint16]MemberRef{},
		ints:       map[uint16]int32{},
		longs:      map[uint16]int64{},
		floats:     map[uint16]float32{},
		doubles:    map[uint16]float64{},
	}

	utf8 := func(idx uint16) (string, error) {
		e, ok := raw[idx]
		if !ok || e.tag != TagUTF8 {
			return "", fmt.Errorf("%w: index %d is not Utf8", ErrBadReference, idx)
		}
		return e.utf8, nil
	}

	for idx, e := range raw {
		switch e.tag {
		case TagUTF8:
			cp.utf8[idx] = e.utf8
		case TagClass:
			name, err := utf8(e.nameIndex)
			if err != nil {
				return nil, err
			}
			cp.classes[idx] = ClassRef{Name: name}
		case TagString:
			s, err := utf8(e.strIndex)
			if err != nil {
				return nil, err
			}
			cp.strings[idx] = s
		case TagFieldRef, TagMethodRef, TagInterfaceMethod:
			owner, ok := raw[e.classIndex]
			if !ok || owner.tag != TagClass {
				return nil, fmt.Errorf("%w: index %d owner class", ErrBadReference, idx)
			}
			ownerName, err := utf8(owner.nameIndex)
			if err != nil {
				return nil, err
			}
			nt, ok := raw[e.ntIndex]
			if !ok || nt.tag != TagNameAndType {
				return nil, fmt.Errorf("%w: index %d name-and-type", ErrBadReference, idx)
			}
			name, err := utf8(nt.nameIndex)
			if err != nil {
				return nil, err
			}
			desc, err := utf8(nt.descIndex)
			if err != nil {
				return nil, err
			}
			ref := MemberRef{OwnerClass: ownerName, Name: name, Descriptor: desc}
			switch e.tag {
			case TagFieldRef:
				cp.fields[idx] = ref
			case TagMethodRef:
				cp.methods[idx] = ref
			case TagInterfaceMethod:
				cp.ifaceMeths[idx] = ref
			}
		case TagInteger:
			cp.ints[idx] = e.intVal
		case TagLong:
			cp.longs[idx] = e.longVal
		case TagFloat:
			cp.floats[idx] = e.floatVal
		case TagDouble:
			cp.doubles[idx] = e.doubleVal
		}
	}

	return cp, nil
}

// ResolveUTF8 returns the literal text of the Utf8 entry at idx (used for
// field/method names and descriptors, which reference Utf8 entries directly
// rather than through a String constant).
func (cp *ConstantPool) ResolveUTF8(idx uint16) (string, error) {
	s, ok := cp.utf8[idx]
	if !ok {
		return "", fmt.Errorf("%w: index %d is not a Utf8 entry", ErrBadReference, idx)
	}
	return s, nil
}

// ResolveClass returns the class name at idx.
func (cp *ConstantPool) ResolveClass(idx uint16) (string, error) {
	c, ok := cp.classes[idx]
	if !ok {
		return "", fmt.Errorf("%w: index %d is not a Class entry", ErrBadReference, idx)
	}
	return c.Name, nil
}

// ResolveString returns the literal string at idx (a String constant
// resolved through its backing Utf8 entry).
func (cp *ConstantPool) ResolveString(idx uint16) (string, error) {
	s, ok := cp.strings[idx]
	if !ok {
		return "", fmt.Errorf("%w: index %d is not a String entry", ErrBadReference, idx)
	}
	return s, nil
}

// ResolveField returns the denormalized field reference at idx.
func (cp *ConstantPool) ResolveField(idx uint16) (MemberRef, error) {
	f, ok := cp.fields[idx]
	if !ok {
		return MemberRef{}, fmt.Errorf("%w: index %d is not a Fieldref entry", ErrBadReference, idx)
	}
	return f, nil
}

// ResolveMethod returns the denormalized method reference at idx.
func (cp *ConstantPool) ResolveMethod(idx uint16) (MemberRef, error) {
	m, ok := cp.methods[idx]
	if !ok {
		return MemberRef{}, fmt.Errorf("%w: index %d is not a Methodref entry", ErrBadReference, idx)
	}
	return m, nil
}

// ResolveInteger returns the int32 constant at idx.
func (cp *ConstantPool) ResolveInteger(idx uint16) (int32, error) {
	v, ok := cp.ints[idx]
	if !ok {
		return 0, fmt.Errorf("%w: index %d is not an Integer entry", ErrBadReference, idx)
	}
	return v, nil
}
