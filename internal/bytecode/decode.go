package bytecode

import (
	"encoding/binary"
	"errors"
	"fmt"

	"minijvm/internal/classfile"
)

// ErrUnknownOpcode is returned (wrapped with the offending byte and offset)
// when the decoder encounters an opcode outside the supported core set.
var ErrUnknownOpcode = errors.New("bytecode: unknown opcode")

// ErrBadBranchTarget is returned when a branch operand's byte offset does not
// land exactly on the start of a decoded instruction.
var ErrBadBranchTarget = errors.New("bytecode: branch target is not a valid instruction boundary")

// Bytecode is one method's fully decoded instruction stream: every branch
// operand has already been rewritten from "byte offset in the original
// stream" to "index into Instructions". The address map used to perform that
// rewrite is consumed entirely at decode time and does not appear here.
type Bytecode struct {
	Instructions []Instruction
}

// Decode performs the two-pass decode spec.md §4.4 describes: a linear scan
// that records each opcode's operands and an address_map[byte_offset] =
// instruction_index entry, followed by a second pass that rewrites every
// branch operand from a byte offset to an instruction index.
func Decode(code []byte, cp *classfile.ConstantPool) (*Bytecode, error) {
	r := classfile.NewReader(code)

	type pendingBranch struct {
		instrIdx   int
		byteTarget int
	}

	var instructions []Instruction
	addressMap := map[int]int{}
	var branches []pendingBranch

	for r.HasMore() {
		byteOffset := r.Offset()
		addressMap[byteOffset] = len(instructions)

		opByte, err := r.U8()
		if err != nil {
			return nil, err
		}
		op := Opcode(opByte)

		var instr Instruction
		instr.Op = op

		switch op {
		case OpIConst0, OpIConst1, OpIConst2,
			OpILoad1, OpILoad2, OpALoad0,
			OpAALoad, OpIStore1, OpIStore2, OpAAStore,
			OpDup, OpIAdd, OpISub, OpIDiv, OpIRem,
			OpIShl, OpLShl, OpIShr, OpLShr,
			OpReturn, OpInvokeSpecial:
			if op == OpInvokeSpecial {
				// invokespecial still carries a constant-pool method index
				// in the class file even though the core treats it as a
				// no-op; decode it so the cursor stays aligned, and keep the
				// resolved reference (when it resolves) for diagnostics.
				idx, err := r.U16()
				if err != nil {
					return nil, err
				}
				if ref, err := cp.ResolveMethod(idx); err == nil {
					instr.Member = ref
				}
			}

		case OpLdc:
			idx, err := r.U8()
			if err != nil {
				return nil, err
			}
			s, err := cp.ResolveString(uint16(idx))
			if err != nil {
				return nil, err
			}
			instr.Str = s

		case OpGetStatic, OpInvokeVirtual, OpInvokeStatic:
			idx, err := r.U16()
			if err != nil {
				return nil, err
			}
			var ref classfile.MemberRef
			if op == OpGetStatic {
				ref, err = cp.ResolveField(idx)
			} else {
				ref, err = cp.ResolveMethod(idx)
			}
			if err != nil {
				return nil, err
			}
			instr.Member = ref

		case OpANewArray:
			idx, err := r.U16()
			if err != nil {
				return nil, err
			}
			name, err := cp.ResolveClass(idx)
			if err != nil {
				return nil, err
			}
			instr.ClassName = name

		case OpIfNe, OpGoto:
			deltaBytes, err := r.Bytes(2)
			if err != nil {
				return nil, err
			}
			delta := int(int16(binary.BigEndian.Uint16(deltaBytes)))
			target := byteOffset + delta
			branches = append(branches, pendingBranch{instrIdx: len(instructions), byteTarget: target})

		default:
			return nil, fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownOpcode, opByte, byteOffset)
		}

		instructions = append(instructions, instr)
	}

	for _, b := range branches {
		idx, ok := addressMap[b.byteTarget]
		if !ok {
			return nil, fmt.Errorf("%w: byte offset %d", ErrBadBranchTarget, b.byteTarget)
		}
		instructions[b.instrIdx].Branch = idx
	}

	return &Bytecode{Instructions: instructions}, nil
}
