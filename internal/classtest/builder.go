// Package classtest assembles minimal, valid class-file byte streams in
// memory, for tests that exercise internal/classfile and internal/bytecode
// without a real compiler or checked-in .class fixtures (spec.md's test
// scenarios S1-S6 describe bytecode sequences directly, not source files).
package classtest

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	tagUTF8        = 1
	tagInteger     = 3
	tagFloat       = 4
	tagLong        = 5
	tagDouble      = 6
	tagClass       = 7
	tagString      = 8
	tagFieldRef    = 9
	tagMethodRef   = 10
	tagNameAndType = 12
)

// Builder accumulates constant-pool entries, fields, and methods, then
// renders them into a class-file byte stream Decode can parse.
type Builder struct {
	pool       [][]byte // each entry's fully serialized bytes (tag + payload)
	thisClass  uint16
	superClass uint16
	fields     [][]byte
	methods    [][]byte
}

// New starts a builder for a class named name with no superclass.
func New(name string) *Builder {
	b := &Builder{}
	b.thisClass = b.addClass(name)
	return b
}

// SetSuper gives the class a superclass (java/lang/Object by convention).
func (b *Builder) SetSuper(name string) {
	b.superClass = b.addClass(name)
}

func (b *Builder) nextIndex() uint16 { return uint16(len(b.pool) + 1) }

func (b *Builder) addUTF8(s string) uint16 {
	idx := b.nextIndex()
	entry := append([]byte{tagUTF8}, u16Bytes(uint16(len(s)))...)
	entry = append(entry, []byte(s)...)
	b.pool = append(b.pool, entry)
	return idx
}

func (b *Builder) addClass(name string) uint16 {
	nameIdx := b.addUTF8(name)
	idx := b.nextIndex()
	b.pool = append(b.pool, append([]byte{tagClass}, u16Bytes(nameIdx)...))
	return idx
}

func (b *Builder) addNameAndType(name, desc string) uint16 {
	nameIdx := b.addUTF8(name)
	descIdx := b.addUTF8(desc)
	idx := b.nextIndex()
	entry := append([]byte{tagNameAndType}, u16Bytes(nameIdx)...)
	entry = append(entry, u16Bytes(descIdx)...)
	b.pool = append(b.pool, entry)
	return idx
}

// AddMethodRef adds a Methodref (owner class, name, descriptor) and returns
// its constant-pool index, for use as an invokevirtual/invokespecial/
// invokestatic operand.
func (b *Builder) AddMethodRef(class, name, desc string) uint16 {
	classIdx := b.addClass(class)
	ntIdx := b.addNameAndType(name, desc)
	idx := b.nextIndex()
	entry := append([]byte{tagMethodRef}, u16Bytes(classIdx)...)
	entry = append(entry, u16Bytes(ntIdx)...)
	b.pool = append(b.pool, entry)
	return idx
}

// AddFieldRef adds a Fieldref (owner class, name, descriptor) and returns
// its constant-pool index, for use as a getstatic operand.
func (b *Builder) AddFieldRef(class, name, desc string) uint16 {
	classIdx := b.addClass(class)
	ntIdx := b.addNameAndType(name, desc)
	idx := b.nextIndex()
	entry := append([]byte{tagFieldRef}, u16Bytes(classIdx)...)
	entry = append(entry, u16Bytes(ntIdx)...)
	b.pool = append(b.pool, entry)
	return idx
}

// AddClassRef adds a bare Class constant (e.g. for anewarray's element
// type) and returns its index.
func (b *Builder) AddClassRef(name string) uint16 {
	return b.addClass(name)
}

// AddString adds a String constant backed by a fresh Utf8 entry and returns
// its index, for use as an ldc operand.
func (b *Builder) AddString(s string) uint16 {
	utf8Idx := b.addUTF8(s)
	idx := b.nextIndex()
	b.pool = append(b.pool, append([]byte{tagString}, u16Bytes(utf8Idx)...))
	return idx
}

// AddInteger adds an Integer constant and returns its index.
func (b *Builder) AddInteger(v int32) uint16 {
	idx := b.nextIndex()
	entry := append([]byte{tagInteger}, u32Bytes(uint32(v))...)
	b.pool = append(b.pool, entry)
	return idx
}

// AddFloat adds a Float constant and returns its index.
func (b *Builder) AddFloat(v float32) uint16 {
	idx := b.nextIndex()
	entry := append([]byte{tagFloat}, u32Bytes(math.Float32bits(v))...)
	b.pool = append(b.pool, entry)
	return idx
}

// AddField adds a field entry (no attributes) with the given access flags.
func (b *Builder) AddField(name, desc string, flags uint16) {
	nameIdx := b.addUTF8(name)
	descIdx := b.addUTF8(desc)
	var buf bytes.Buffer
	buf.Write(u16Bytes(flags))
	buf.Write(u16Bytes(nameIdx))
	buf.Write(u16Bytes(descIdx))
	buf.Write(u16Bytes(0)) // attributes_count
	b.fields = append(b.fields, buf.Bytes())
}

// AddMethod adds a method with a single Code attribute wrapping code.
func (b *Builder) AddMethod(name, desc string, flags, maxStack, maxLocals uint16, code []byte) {
	nameIdx := b.addUTF8(name)
	descIdx := b.addUTF8(desc)
	codeNameIdx := b.addUTF8("Code")

	var payload bytes.Buffer
	payload.Write(u16Bytes(maxStack))
	payload.Write(u16Bytes(maxLocals))
	payload.Write(u32Bytes(uint32(len(code))))
	payload.Write(code)

	var attr bytes.Buffer
	attr.Write(u16Bytes(codeNameIdx))
	attr.Write(u32Bytes(uint32(payload.Len())))
	attr.Write(payload.Bytes())

	var m bytes.Buffer
	m.Write(u16Bytes(flags))
	m.Write(u16Bytes(nameIdx))
	m.Write(u16Bytes(descIdx))
	m.Write(u16Bytes(1)) // attributes_count
	m.Write(attr.Bytes())

	b.methods = append(b.methods, m.Bytes())
}

// Bytes renders the accumulated class into a full class-file byte stream.
func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	out.Write(u32Bytes(0xCAFEBABE))
	out.Write(u16Bytes(0))  // minor version
	out.Write(u16Bytes(52)) // major version

	out.Write(u16Bytes(uint16(len(b.pool) + 1))) // constant_pool_count
	for _, e := range b.pool {
		out.Write(e)
	}

	out.Write(u16Bytes(0x0021)) // access_flags: ACC_PUBLIC | ACC_SUPER
	out.Write(u16Bytes(b.thisClass))
	out.Write(u16Bytes(b.superClass))
	out.Write(u16Bytes(0)) // interfaces_count

	out.Write(u16Bytes(uint16(len(b.fields))))
	for _, f := range b.fields {
		out.Write(f)
	}

	out.Write(u16Bytes(uint16(len(b.methods))))
	for _, m := range b.methods {
		out.Write(m)
	}

	return out.Bytes()
}

func u16Bytes(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32Bytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}
