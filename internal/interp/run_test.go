package interp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"minijvm/internal/classes"
	"minijvm/internal/classtest"
	"minijvm/internal/gfunction"
	"minijvm/internal/interp"
)

func TestRunExecutesStaticMethod(t *testing.T) {
	dir := t.TempDir()
	b := classtest.New("Entry")
	b.AddMethod("main", "()V", 0x0009, 2, 1, []byte{0x05, 0xb1}) // iconst_2, return
	if err := os.WriteFile(filepath.Join(dir, "Entry.class"), b.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reg := classes.NewRegistry(dir)
	gfunction.RegisterAll(reg)

	result, err := interp.Run(context.Background(), reg, "Entry", "main")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != "2" {
		t.Errorf("Run result = %q, want \"2\"", result)
	}
}

func TestRunUnknownClassIsFatal(t *testing.T) {
	reg := classes.NewRegistry(t.TempDir())
	gfunction.RegisterAll(reg)
	if _, err := interp.Run(context.Background(), reg, "NoSuchClass", "main"); err == nil {
		t.Fatal("expected an error for an unknown class")
	}
}

func TestRunRespectsCancelledContext(t *testing.T) {
	reg := classes.NewRegistry(t.TempDir())
	gfunction.RegisterAll(reg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := interp.Run(ctx, reg, "Anything", "main"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
