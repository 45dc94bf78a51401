package entity

import "testing"

func TestCreateAlive(t *testing.T) {
	r := NewRegistry()

	a := r.Create()
	b := r.Create()
	if a == b {
		t.Fatalf("distinct Create calls returned the same id %v", a)
	}
	if !r.Alive(a) || !r.Alive(b) {
		t.Fatal("fresh entities should be alive")
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
}

func TestNoneNeverAlive(t *testing.T) {
	r := NewRegistry()
	if r.Alive(None) {
		t.Fatal("None must not be alive")
	}
	if !None.IsNone() {
		t.Fatal("None.IsNone() = false")
	}
	// Even after creating entities, the zero id stays dead.
	r.Create()
	if r.Alive(None) {
		t.Fatal("None became alive after Create")
	}
}

func TestDestroy(t *testing.T) {
	r := NewRegistry()
	id := r.Create()

	if !r.Destroy(id) {
		t.Fatal("Destroy of live entity returned false")
	}
	if r.Alive(id) {
		t.Fatal("destroyed entity still alive")
	}
	if r.Destroy(id) {
		t.Fatal("double Destroy returned true")
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0", r.Len())
	}
}

func TestGenerationGuardsRecycledSlot(t *testing.T) {
	r := NewRegistry()

	old := r.Create()
	r.Destroy(old)
	reborn := r.Create()

	if old.Index() != reborn.Index() {
		t.Fatalf("slot not recycled: %d vs %d", old.Index(), reborn.Index())
	}
	if old == reborn {
		t.Fatal("recycled id equals stale id")
	}
	if r.Alive(old) {
		t.Fatal("stale id reports alive")
	}
	if !r.Alive(reborn) {
		t.Fatal("recycled id reports dead")
	}
}

func TestOutOfRangeID(t *testing.T) {
	r := NewRegistry()
	bogus := makeID(1000, 1)
	if r.Alive(bogus) {
		t.Fatal("out-of-range id reports alive")
	}
}
