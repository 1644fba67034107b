package classes

import (
	"errors"
	"fmt"

	"minijvm/internal/bytecode"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

// ErrDivideByZero is returned by idiv/irem when the divisor is zero
// (spec.md §7: arithmetic faults are fatal, not a thrown exception object).
var ErrDivideByZero = errors.New("classes: division by zero")

// ErrArrayIndex is returned when aaload/aastore's index falls outside the
// array's fixed length.
var ErrArrayIndex = errors.New("classes: array index out of bounds")

// ErrBadReceiver is returned when invokevirtual's receiver is not an
// instance (e.g. the popped value is a primitive or Null). An empty operand
// stack surfaces as frame.ErrStackUnderflow instead.
var ErrBadReceiver = errors.New("classes: invokevirtual receiver is not an instance")

// runMethod executes bc in a fresh Frame seeded with this (if non-nil) and
// args, and returns whatever value the method's return instruction leaves on
// top of the operand stack (value.Null{} for a method that returns nothing).
func runMethod(reg *Registry, bc *bytecode.Bytecode, this *value.Instance, args []value.Value) (value.Value, error) {
	f := frame.New()

	li := 0
	if this != nil {
		f.Locals[li] = this
		li++
	}
	for _, a := range args {
		if li >= frame.NumLocals {
			break
		}
		f.Locals[li] = a
		li++
	}

	pc := 0
	for {
		if pc < 0 || pc >= len(bc.Instructions) {
			return nil, fmt.Errorf("classes: program counter %d out of range (%d instructions)", pc, len(bc.Instructions))
		}
		instr := bc.Instructions[pc]

		action, ret, err := execOne(reg, f, instr)
		if err != nil {
			return nil, fmt.Errorf("classes: executing %s at pc %d: %w", instr.Op.Name(), pc, err)
		}

		switch action.Kind {
		case bytecode.ActionReturn:
			return ret, nil
		case bytecode.ActionGoto:
			pc = action.Target
		default:
			pc++
		}
	}
}

// execOne runs a single instruction against f, returning the dispatch action
// for the loop in runMethod and, only when the action is ActionReturn, the
// value the method call produces.
func execOne(reg *Registry, f *frame.Frame, instr bytecode.Instruction) (bytecode.Action, value.Value, error) {
	switch instr.Op {
	case bytecode.OpIConst0:
		f.Push(value.Integer(0))
	case bytecode.OpIConst1:
		f.Push(value.Integer(1))
	case bytecode.OpIConst2:
		f.Push(value.Integer(2))

	case bytecode.OpLdc:
		f.Push(value.String(instr.Str))

	case bytecode.OpILoad1:
		f.Push(f.Locals[1])
	case bytecode.OpILoad2:
		f.Push(f.Locals[2])
	case bytecode.OpALoad0:
		f.Push(f.Locals[0])

	case bytecode.OpAALoad:
		idx, err := f.PopInt()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		arr, err := f.PopArray()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		v, ok := arr.Get(int(idx))
		if !ok {
			return bytecode.Action{}, nil, fmt.Errorf("%w: index %d, length %d", ErrArrayIndex, idx, arr.Len())
		}
		f.Push(v)

	case bytecode.OpIStore1:
		v, err := f.Pop()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		f.Locals[1] = v
	case bytecode.OpIStore2:
		v, err := f.Pop()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		f.Locals[2] = v

	case bytecode.OpAAStore:
		v, err := f.Pop()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		idx, err := f.PopInt()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		arr, err := f.PopArray()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		if !arr.Set(int(idx), v) {
			return bytecode.Action{}, nil, fmt.Errorf("%w: index %d, length %d", ErrArrayIndex, idx, arr.Len())
		}

	case bytecode.OpDup:
		v, err := f.Pop()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		f.Push(v)
		f.Push(v)

	case bytecode.OpIAdd, bytecode.OpISub, bytecode.OpIDiv, bytecode.OpIRem,
		bytecode.OpIShl, bytecode.OpIShr:
		b, err := f.PopInt()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		a, err := f.PopInt()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		result, err := intArith(instr.Op, a, b)
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		f.Push(value.Integer(result))

	case bytecode.OpLShl, bytecode.OpLShr:
		shift, err := f.PopInt()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		a, err := f.PopLong()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		var result int64
		if instr.Op == bytecode.OpLShl {
			result = a << (uint(shift) & 63)
		} else {
			result = a >> (uint(shift) & 63)
		}
		f.PushLong(result)

	case bytecode.OpIfNe:
		taken, err := isTruthy(f)
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		if taken {
			return bytecode.Goto(instr.Branch), nil, nil
		}

	case bytecode.OpGoto:
		return bytecode.Goto(instr.Branch), nil, nil

	case bytecode.OpReturn:
		v, err := f.Pop()
		if err != nil {
			return bytecode.Return(), value.Null{}, nil
		}
		return bytecode.Return(), v, nil

	case bytecode.OpGetStatic:
		desc, err := reg.Lookup(instr.Member.OwnerClass)
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		v, err := desc.ReadStatic(instr.Member.Name)
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		f.Push(v)

	case bytecode.OpInvokeVirtual:
		argCount, voidReturn := descriptorParams(instr.Member.Descriptor)
		args, err := f.PopArgs(argCount)
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		this, err := popInstance(f)
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		desc, err := reg.Lookup(this.ClassName())
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		result, err := desc.InvokeInstance(f, instr.Member.Name, this, args)
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		if !voidReturn {
			f.Push(result)
		}

	case bytecode.OpInvokeSpecial:
		// No-op per the core's constructor-chaining simplification: <init>
		// calls neither run nor touch the operand stack.

	case bytecode.OpInvokeStatic:
		argCount, voidReturn := descriptorParams(instr.Member.Descriptor)
		desc, err := reg.Lookup(instr.Member.OwnerClass)
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		result, err := desc.InvokeStatic(f, instr.Member.Name, argCount)
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		if !voidReturn {
			f.Push(result)
		}

	case bytecode.OpANewArray:
		count, err := f.PopInt()
		if err != nil {
			return bytecode.Action{}, nil, err
		}
		f.Push(value.NewObjectArray(int(count), instr.ClassName))

	default:
		return bytecode.Action{}, nil, fmt.Errorf("classes: unsupported opcode %s", instr.Op.Name())
	}

	return bytecode.Next(), nil, nil
}

func intArith(op bytecode.Opcode, a, b int32) (int32, error) {
	switch op {
	case bytecode.OpIAdd:
		return a + b, nil
	case bytecode.OpISub:
		return a - b, nil
	case bytecode.OpIDiv:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	case bytecode.OpIRem:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a % b, nil
	case bytecode.OpIShl:
		return a << (uint32(b) & 31), nil
	case bytecode.OpIShr:
		return a >> (uint32(b) & 31), nil
	default:
		return 0, fmt.Errorf("classes: intArith called with non-arithmetic opcode %s", op.Name())
	}
}

// isTruthy pops the top of f's stack and reports whether ifne should branch:
// a nonzero Integer or a true Bool.
func isTruthy(f *frame.Frame) (bool, error) {
	v, err := f.Pop()
	if err != nil {
		return false, err
	}
	switch t := v.(type) {
	case value.Integer:
		return t != 0, nil
	case value.Bool:
		return bool(t), nil
	default:
		return false, frame.ErrTypeMismatch("Integer or Bool", v)
	}
}

// popInstance pops the top of f's stack and type-asserts it as the receiver
// invokevirtual dispatches through.
func popInstance(f *frame.Frame) (*value.Instance, error) {
	v, err := f.Pop()
	if err != nil {
		return nil, err
	}
	in, ok := v.(*value.Instance)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrBadReceiver, v)
	}
	return in, nil
}

// descriptorParams counts a method descriptor's parameter slots (e.g.
// "(ILjava/lang/String;)V" has 2) and reports whether its return type is
// void, without needing java.lang.Class-style type objects.
func descriptorParams(descriptor string) (count int, voidReturn bool) {
	i := 0
	if len(descriptor) > 0 && descriptor[0] == '(' {
		i = 1
	}
	for i < len(descriptor) && descriptor[i] != ')' {
		switch descriptor[i] {
		case 'L':
			i++
			for i < len(descriptor) && descriptor[i] != ';' {
				i++
			}
			i++
			count++
		case '[':
			i++
		default:
			i++
			count++
		}
	}
	if i < len(descriptor) && descriptor[i] == ')' {
		i++
	}
	voidReturn = i >= len(descriptor) || descriptor[i] == 'V'
	return count, voidReturn
}
