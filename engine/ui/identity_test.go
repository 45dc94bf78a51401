package ui

import (
	"math/rand"
	"testing"

	"github.com/brakewood/thicket/engine/entity"
)

func TestResolveStableAcrossFrames(t *testing.T) {
	reg := entity.NewRegistry()
	tab := NewTable(reg)
	parent := reg.Create()

	keys := make([]Key, 0, 30)
	for i := 0; i < 10; i++ {
		keys = append(keys,
			Key{Parent: parent, Site: "menu.go:10", Index: int32(i)},
			Key{Parent: parent, Site: "menu.go:25", Index: int32(i)},
			Key{Parent: parent, Site: "hud.go:7", Index: int32(i)},
		)
	}

	first := make(map[Key]entity.ID, len(keys))
	for _, k := range keys {
		id, created := tab.Resolve(k)
		if !created {
			t.Fatalf("first resolve of %+v not reported as created", k)
		}
		first[k] = id
	}

	// Resolution order must not matter: shuffle every frame.
	rng := rand.New(rand.NewSource(1))
	for frame := 0; frame < 100; frame++ {
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		for _, k := range keys {
			id, created := tab.Resolve(k)
			if created {
				t.Fatalf("frame %d: key %+v re-created", frame, k)
			}
			if id != first[k] {
				t.Fatalf("frame %d: key %+v resolved to %v, want %v", frame, k, id, first[k])
			}
		}
	}
}

func TestResolveDistinctKeys(t *testing.T) {
	reg := entity.NewRegistry()
	tab := NewTable(reg)
	p1, p2 := reg.Create(), reg.Create()

	cases := map[string][2]Key{
		"different site": {
			{Parent: p1, Site: "a.go:1", Index: 0},
			{Parent: p1, Site: "a.go:2", Index: 0},
		},
		"different index": {
			{Parent: p1, Site: "a.go:1", Index: 0},
			{Parent: p1, Site: "a.go:1", Index: 1},
		},
		"different parent": {
			{Parent: p1, Site: "a.go:1", Index: 0},
			{Parent: p2, Site: "a.go:1", Index: 0},
		},
	}
	for name, pair := range cases {
		t.Run(name, func(t *testing.T) {
			a, _ := tab.Resolve(pair[0])
			b, _ := tab.Resolve(pair[1])
			if a == b {
				t.Fatalf("keys %+v and %+v share entity %v", pair[0], pair[1], a)
			}
		})
	}
}

func TestResolveReplacesDestroyedEntity(t *testing.T) {
	reg := entity.NewRegistry()
	tab := NewTable(reg)
	k := Key{Parent: entity.None, Site: "a.go:1", Index: 0}

	old, _ := tab.Resolve(k)
	reg.Destroy(old)

	fresh, created := tab.Resolve(k)
	if !created {
		t.Fatal("stale mapping not reported as created")
	}
	if fresh == old {
		t.Fatal("stale entity resurrected")
	}
	if !reg.Alive(fresh) {
		t.Fatal("replacement entity not alive")
	}
	if tab.Stats().Replaced != 1 {
		t.Fatalf("Replaced = %d, want 1", tab.Stats().Replaced)
	}
}

func TestForget(t *testing.T) {
	reg := entity.NewRegistry()
	tab := NewTable(reg)

	id, _ := tab.Resolve(Key{Site: "a.go:1"})
	tab.Resolve(Key{Site: "a.go:2"})
	tab.Forget(id)

	if tab.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tab.Len())
	}
	if again, created := tab.Resolve(Key{Site: "a.go:1"}); !created || again == id {
		t.Fatalf("forgotten key resolved to old entity %v (created=%v)", again, created)
	}
}

func TestCallerSite(t *testing.T) {
	a := CallerSite(0)
	b := CallerSite(0)
	if a == b {
		t.Fatalf("different lines produced the same site %q", a)
	}
	if a == "unknown:0" {
		t.Fatal("caller lookup failed")
	}
}
