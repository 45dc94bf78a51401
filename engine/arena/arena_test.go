package arena

import "testing"

func TestAllocAndReset(t *testing.T) {
	a := New(64)

	b := a.Copy([]byte("hello"))
	if string(b) != "hello" {
		t.Fatalf("Copy = %q, want %q", b, "hello")
	}
	if a.Len() != 5 {
		t.Fatalf("Len = %d, want 5", a.Len())
	}

	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", a.Len())
	}
	if a.Cap() < 64 {
		t.Fatalf("Reset released capacity: %d", a.Cap())
	}
}

func TestResetInvalidatesPriorFrame(t *testing.T) {
	a := New(64)

	old := a.CopyString("hello")
	a.Reset()
	fresh := a.CopyString("world")

	// Same backing memory, same offset: the old slice now reads the new
	// frame's bytes. Holding slices across Reset is a bug in the caller.
	if string(fresh) != "world" {
		t.Fatalf("fresh = %q, want %q", fresh, "world")
	}
	if string(old) != "world" {
		t.Fatalf("old slice = %q, expected it to alias the new frame", old)
	}
}

func TestGrowthKeepsOldSlicesValid(t *testing.T) {
	a := New(8)

	first := a.CopyString("12345678")
	// Force growth past the initial capacity.
	a.Alloc(1024)

	if string(first) != "12345678" {
		t.Fatalf("slice corrupted by growth: %q", first)
	}
	if a.Cap() < 1032 {
		t.Fatalf("Cap = %d, want >= 1032", a.Cap())
	}
}

func TestGrowthDoubles(t *testing.T) {
	a := New(100)
	a.Alloc(80)
	a.Ensure(40) // 120 > 100, doubled to 200
	if a.Cap() < 200 {
		t.Fatalf("Cap = %d, want >= 200", a.Cap())
	}
}

func TestEmptyAllocations(t *testing.T) {
	a := New(16)
	if got := a.Alloc(0); got != nil {
		t.Fatalf("Alloc(0) = %v, want nil", got)
	}
	if got := a.Copy(nil); got != nil {
		t.Fatalf("Copy(nil) = %v, want nil", got)
	}
	if got := StringView(nil); got != "" {
		t.Fatalf("StringView(nil) = %q, want empty", got)
	}
}

func TestMarkAndBytesFrom(t *testing.T) {
	a := New(32)
	a.CopyString("head")
	m := a.Mark()
	a.CopyString("tail")
	if got := string(a.BytesFrom(m)); got != "tail" {
		t.Fatalf("BytesFrom = %q, want %q", got, "tail")
	}
}
