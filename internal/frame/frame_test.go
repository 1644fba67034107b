package frame_test

import (
	"testing"

	"minijvm/internal/frame"
	"minijvm/internal/value"
)

func TestPushPopOrder(t *testing.T) {
	f := frame.New()
	f.Push(value.Integer(1))
	f.Push(value.Integer(2))
	f.Push(value.Integer(3))

	for _, want := range []int32{3, 2, 1} {
		v, err := f.Pop()
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		if v.(value.Integer) != value.Integer(want) {
			t.Errorf("Pop = %v, want %d", v, want)
		}
	}
}

func TestPopUnderflow(t *testing.T) {
	f := frame.New()
	if _, err := f.Pop(); err == nil {
		t.Fatal("expected ErrStackUnderflow")
	}
}

func TestTypedPopMismatch(t *testing.T) {
	f := frame.New()
	f.Push(value.String("not an int"))
	if _, err := f.PopInt(); !frame.IsTypeMismatch(err) {
		t.Errorf("PopInt err = %v, want type mismatch", err)
	}
}

func TestLongRoundTrip(t *testing.T) {
	f := frame.New()
	f.PushLong(1 << 40)
	got, err := f.PopLong()
	if err != nil {
		t.Fatalf("PopLong: %v", err)
	}
	if got != 1<<40 {
		t.Errorf("PopLong = %d, want %d", got, int64(1)<<40)
	}
}

func TestArrayRoundTrip(t *testing.T) {
	f := frame.New()
	arr := value.NewArray(3)
	f.Push(arr)
	got, err := f.PopArray()
	if err != nil {
		t.Fatalf("PopArray: %v", err)
	}
	if got != arr {
		t.Error("PopArray returned a different array")
	}
}

func TestLocalsFixedSize(t *testing.T) {
	f := frame.New()
	if len(f.Locals) != frame.NumLocals {
		t.Errorf("len(Locals) = %d, want %d", len(f.Locals), frame.NumLocals)
	}
}
