package bytecode_test

import (
	"bytes"
	"testing"

	"minijvm/internal/bytecode"
	"minijvm/internal/classfile"
	"minijvm/internal/classtest"
)

func decodeMethodCode(t *testing.T, b *classtest.Builder, name string) *bytecode.Bytecode {
	t.Helper()
	cf, err := classfile.Decode(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatalf("classfile.Decode: %v", err)
	}
	for _, m := range cf.Methods {
		if m.Name != name {
			continue
		}
		code, ok, err := m.Code()
		if err != nil || !ok {
			t.Fatalf("Code(): %v, %v, %v", code, ok, err)
		}
		bc, err := bytecode.Decode(code.Code, cf.ConstantPool)
		if err != nil {
			t.Fatalf("bytecode.Decode: %v", err)
		}
		return bc
	}
	t.Fatalf("method %q not found", name)
	return nil
}

func TestDecodeSimpleReturn(t *testing.T) {
	b := classtest.New("S1")
	b.AddMethod("main", "()V", 0x0009, 1, 1, []byte{
		0x04, // iconst_1
		0xb1, // return
	})
	bc := decodeMethodCode(t, b, "main")
	if len(bc.Instructions) != 2 {
		t.Fatalf("want 2 instructions, got %d", len(bc.Instructions))
	}
	if bc.Instructions[0].Op != bytecode.OpIConst1 {
		t.Errorf("instr 0 = %s, want iconst_1", bc.Instructions[0].Op.Name())
	}
	if bc.Instructions[1].Op != bytecode.OpReturn {
		t.Errorf("instr 1 = %s, want return", bc.Instructions[1].Op.Name())
	}
}

func TestDecodeRelocatesForwardBranch(t *testing.T) {
	// iconst_1, ifne +4 (skip the following iconst_2), iconst_2, return
	// layout: [0]=iconst_1 [1..3]=ifne (opcode+2 byte delta) [4]=iconst_2 [5]=return
	// delta of 4 from offset 1 lands at byte offset 5 (the return), skipping iconst_2.
	code := []byte{
		0x04,                   // 0: iconst_1
		0x9a, 0x00, 0x04,       // 1: ifne -> byte offset 5
		0x05,                   // 4: iconst_2
		0xb1,                   // 5: return
	}
	b := classtest.New("Branchy")
	b.AddMethod("main", "()V", 0x0009, 1, 1, code)
	bc := decodeMethodCode(t, b, "main")

	if len(bc.Instructions) != 4 {
		t.Fatalf("want 4 instructions, got %d", len(bc.Instructions))
	}
	ifne := bc.Instructions[1]
	if ifne.Op != bytecode.OpIfNe {
		t.Fatalf("instr 1 = %s, want ifne", ifne.Op.Name())
	}
	if bc.Instructions[ifne.Branch].Op != bytecode.OpReturn {
		t.Errorf("ifne branch target is %s, want return", bc.Instructions[ifne.Branch].Op.Name())
	}
}

func TestDecodeBadBranchTarget(t *testing.T) {
	// ifne with a delta that lands mid-instruction (byte offset 2, inside
	// the ifne's own operand bytes) rather than on an instruction boundary.
	code := []byte{
		0x9a, 0x00, 0x02, // ifne -> byte offset 2 (invalid)
		0xb1,
	}
	b := classtest.New("BadBranch")
	b.AddMethod("main", "()V", 0x0009, 1, 1, code)

	cf, err := classfile.Decode(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatalf("classfile.Decode: %v", err)
	}
	m := cf.Methods[0]
	ca, _, err := m.Code()
	if err != nil {
		t.Fatalf("Code(): %v", err)
	}
	if _, err := bytecode.Decode(ca.Code, cf.ConstantPool); err == nil {
		t.Fatal("expected ErrBadBranchTarget")
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	code := []byte{0xff} // not in the supported set
	b := classtest.New("Bad")
	b.AddMethod("main", "()V", 0x0009, 1, 1, code)

	cf, err := classfile.Decode(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatalf("classfile.Decode: %v", err)
	}
	ca, _, err := cf.Methods[0].Code()
	if err != nil {
		t.Fatalf("Code(): %v", err)
	}
	if _, err := bytecode.Decode(ca.Code, cf.ConstantPool); err == nil {
		t.Fatal("expected ErrUnknownOpcode")
	}
}

func TestDecodeLdcResolvesString(t *testing.T) {
	b := classtest.New("S2")
	strIdx := b.AddString("hello")
	b.AddMethod("main", "()V", 0x0009, 1, 1, []byte{0x12, byte(strIdx), 0xb1})
	bc := decodeMethodCode(t, b, "main")
	if bc.Instructions[0].Str != "hello" {
		t.Errorf("ldc Str = %q, want hello", bc.Instructions[0].Str)
	}
}
