package classfile

import (
	"errors"
	"fmt"
	"io"
)

// ErrBadMagic is returned when the leading 4 bytes are not 0xCAFEBABE.
var ErrBadMagic = errors.New("classfile: bad magic number")

const magic = 0xCAFEBABE

// Member is a field or method entry: access flags, name, descriptor, and its
// raw attributes (with Code singled out for methods by Member.Code below).
type Member struct {
	Flags      uint16
	Name       string
	Descriptor string
	Attributes []Attribute
}

// Attribute is a generic, undecoded class-file attribute: a name plus its raw
// payload bytes. Only the Code attribute is interpreted further (by
// internal/bytecode); every other attribute (e.g. exception tables) is kept
// only so byte layout round-trips, per spec.md's "both allowed to be empty"
// contract — their contents are otherwise unused by the core.
type Attribute struct {
	Name string
	Data []byte
}

// ClassFile is the fully decoded, in-memory representation of one compiled
// class: header fields, resolved names, and field/method tables. Each
// Member's Code attribute (if present) still carries raw bytes; decoding
// those into a bytecode.Bytecode is the caller's responsibility (internal/
// classes wires classfile + bytecode together).
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16

	ConstantPool *ConstantPool

	AccessFlags uint16
	ThisClass   string
	SuperClass  string
	Interfaces  []string
	Fields      []Member
	Methods     []Member
}

// Decode parses a class-file byte stream in its standard on-disk order:
// magic, minor/major version, constant pool, access flags, this/super class,
// interfaces, fields, methods.
func Decode(r io.Reader) (*ClassFile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("classfile: reading input: %w", err)
	}

	br := NewReader(raw)

	m, err := br.U32()
	if err != nil {
		return nil, err
	}
	if m != magic {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrBadMagic, m)
	}

	cf := &ClassFile{}
	if cf.MinorVersion, err = br.U16(); err != nil {
		return nil, err
	}
	if cf.MajorVersion, err = br.U16(); err != nil {
		return nil, err
	}

	cp, err := decodeConstantPool(br)
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = cp

	if cf.AccessFlags, err = br.U16(); err != nil {
		return nil, err
	}

	thisIdx, err := br.U16()
	if err != nil {
		return nil, err
	}
	if cf.ThisClass, err = cp.ResolveClass(thisIdx); err != nil {
		return nil, err
	}

	superIdx, err := br.U16()
	if err != nil {
		return nil, err
	}
	if superIdx != 0 {
		if cf.SuperClass, err = cp.ResolveClass(superIdx); err != nil {
			return nil, err
		}
	}

	ifaceCount, err := br.U16()
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < ifaceCount; i++ {
		idx, err := br.U16()
		if err != nil {
			return nil, err
		}
		name, err := cp.ResolveClass(idx)
		if err != nil {
			return nil, err
		}
		cf.Interfaces = append(cf.Interfaces, name)
	}

	if cf.Fields, err = decodeMembers(br, cp); err != nil {
		return nil, err
	}
	if cf.Methods, err = decodeMembers(br, cp); err != nil {
		return nil, err
	}

	return cf, nil
}

func decodeMembers(r *Reader, cp *ConstantPool) ([]Member, error) {
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, count)
	for i := uint16(0); i < count; i++ {
		var mem Member
		if mem.Flags, err = r.U16(); err != nil {
			return nil, err
		}
		nameIdx, err := r.U16()
		if err != nil {
			return nil, err
		}
		if mem.Name, err = cp.ResolveUTF8(nameIdx); err != nil {
			return nil, err
		}
		descIdx, err := r.U16()
		if err != nil {
			return nil, err
		}
		if mem.Descriptor, err = cp.ResolveUTF8(descIdx); err != nil {
			return nil, err
		}
		if mem.Attributes, err = decodeAttributes(r, cp); err != nil {
			return nil, err
		}
		members = append(members, mem)
	}
	return members, nil
}

func decodeAttributes(r *Reader, cp *ConstantPool) ([]Attribute, error) {
	count, err := r.U16()
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		nameIdx, err := r.U16()
		if err != nil {
			return nil, err
		}
		name, err := cp.ResolveUTF8(nameIdx)
		if err != nil {
			return nil, err
		}
		length, err := r.U32()
		if err != nil {
			return nil, err
		}
		data, err := r.Bytes(int(length))
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attribute{Name: name, Data: data})
	}
	return attrs, nil
}

// CodeAttribute is the decoded shape of a method's "Code" attribute: sizing
// information plus the raw opcode stream, handed to internal/bytecode as-is.
type CodeAttribute struct {
	MaxStack  uint16
	MaxLocals uint16
	Code      []byte
}

// Code finds and decodes m's Code attribute, if any.
func (m Member) Code() (*CodeAttribute, bool, error) {
	for _, a := range m.Attributes {
		if a.Name != "Code" {
			continue
		}
		r := NewReader(a.Data)
		maxStack, err := r.U16()
		if err != nil {
			return nil, false, err
		}
		maxLocals, err := r.U16()
		if err != nil {
			return nil, false, err
		}
		codeLen, err := r.U32()
		if err != nil {
			return nil, false, err
		}
		code, err := r.Bytes(int(codeLen))
		if err != nil {
			return nil, false, err
		}
		return &CodeAttribute{MaxStack: maxStack, MaxLocals: maxLocals, Code: code}, true, nil
	}
	return nil, false, nil
}
