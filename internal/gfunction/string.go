package gfunction

import (
	"fmt"
	"strings"

	"minijvm/internal/classes"
	"minijvm/internal/frame"
	"minijvm/internal/value"
)

// stringClass implements java/lang/String's operations. Since value.String
// is a primitive copied by value rather than a heap *value.Instance (no
// autoboxing in this core's value model), every operation here is exposed as
// a static method taking the receiver string as its first argument and
// invoked via invokestatic rather than invokevirtual.
type stringClass struct{}

func newStringClass() *stringClass { return &stringClass{} }

func (stringClass) Name() string { return "java/lang/String" }

func (stringClass) Print() string { return "java/lang/String (native)" }

func (stringClass) MakeInstance() (*value.Instance, error) {
	return nil, classes.ErrNotImplemented
}

func (stringClass) InvokeInstance(f *frame.Frame, method string, this *value.Instance, args []value.Value) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (stringClass) InvokeStatic(f *frame.Frame, method string, argCount int) (value.Value, error) {
	args, err := f.PopArgs(argCount)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: java/lang/String.%s needs a receiver argument", classes.ErrNotImplemented, method)
	}
	recv, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("%w: java/lang/String.%s receiver is %T, not String", classes.ErrNotImplemented, method, args[0])
	}
	s := string(recv)
	rest := args[1:]

	switch method {
	case "length":
		return value.Integer(len(s)), nil
	case "charAt":
		idx, err := asInt(rest, 0)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(s) {
			return nil, fmt.Errorf("%w: charAt index %d out of bounds for length %d", classes.ErrArrayIndex, idx, len(s))
		}
		return value.Integer(s[idx]), nil
	case "equals":
		if len(rest) == 0 {
			return value.Bool(false), nil
		}
		other, ok := rest[0].(value.String)
		return value.Bool(ok && other == recv), nil
	case "substring":
		start, err := asInt(rest, 0)
		if err != nil {
			return nil, err
		}
		end := len(s)
		if len(rest) > 1 {
			if end, err = asInt(rest, 1); err != nil {
				return nil, err
			}
		}
		if start < 0 || end > len(s) || start > end {
			return nil, fmt.Errorf("%w: substring(%d,%d) out of bounds for length %d", classes.ErrArrayIndex, start, end, len(s))
		}
		return value.String(s[start:end]), nil
	case "toUpperCase":
		return value.String(strings.ToUpper(s)), nil
	case "toLowerCase":
		return value.String(strings.ToLower(s)), nil
	case "concat":
		if len(rest) == 0 {
			return recv, nil
		}
		other, ok := rest[0].(value.String)
		if !ok {
			return nil, fmt.Errorf("%w: concat argument is %T, not String", classes.ErrNotImplemented, rest[0])
		}
		return value.String(s + string(other)), nil
	case "format":
		return value.String(formatString(s, rest)), nil
	default:
		return nil, classes.ErrNotImplemented
	}
}

func asInt(args []value.Value, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: missing argument %d", classes.ErrNotImplemented, i)
	}
	n, ok := args[i].(value.Integer)
	if !ok {
		return 0, fmt.Errorf("%w: argument %d is %T, not Integer", classes.ErrNotImplemented, i, args[i])
	}
	return int(n), nil
}

// formatString is a minimal printf-style formatter over %s/%d, enough for
// the intrinsic surface this core exposes (no width/precision specifiers).
func formatString(pattern string, args []value.Value) string {
	var b strings.Builder
	ai := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			b.WriteByte(pattern[i])
			continue
		}
		switch pattern[i+1] {
		case 's', 'd':
			if ai < len(args) {
				b.WriteString(args[ai].String())
				ai++
			}
			i++
		case '%':
			b.WriteByte('%')
			i++
		default:
			b.WriteByte(pattern[i])
		}
	}
	return b.String()
}

func (stringClass) ReadStatic(field string) (value.Value, error) {
	return nil, classes.ErrNotImplemented
}

func (stringClass) WriteStatic(field string, v value.Value) error {
	return classes.ErrNotImplemented
}
