package ui

import (
	"fmt"
	"runtime"

	"github.com/brakewood/thicket/engine/entity"
)

// Site identifies a widget declaration point in application code,
// normally "file.go:line" captured by CallerSite.
type Site string

// CallerSite returns the Site of the caller, skip frames up the stack
// (0 is the caller of CallerSite itself).
func CallerSite(skip int) Site {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown:0"
	}
	// Trim the path down to the last element to keep keys short and
	// stable across build machines.
	for i := len(file) - 1; i >= 0; i-- {
		if file[i] == '/' {
			file = file[i+1:]
			break
		}
	}
	return Site(fmt.Sprintf("%s:%d", file, line))
}

// Key is the full identity of a widget declaration: parent node, call
// site, and a caller-chosen index disambiguating loops over that site.
// Keys are compared as whole values, so two distinct declarations can
// never collide the way a derived hash could.
type Key struct {
	Parent entity.ID
	Site   Site
	Index  int32
}

// TableStats counts identity resolutions since the table was created.
type TableStats struct {
	Resolved uint64 // key already mapped to a live entity
	Created  uint64 // key seen for the first time
	Replaced uint64 // key mapped to a destroyed entity; remapped fresh
}

// Table maps declaration keys to persistent entities. One table is owned
// by each UI instance and lives for the whole session.
type Table struct {
	reg   *entity.Registry
	ids   map[Key]entity.ID
	stats TableStats
}

func NewTable(reg *entity.Registry) *Table {
	return &Table{reg: reg, ids: make(map[Key]entity.ID)}
}

// Resolve returns the entity for key, creating one on first sight.
// A mapping whose entity has been destroyed out from under the table is
// replaced with a fresh entity rather than resurrecting the stale id.
func (t *Table) Resolve(key Key) (id entity.ID, created bool) {
	if id, ok := t.ids[key]; ok {
		if t.reg.Alive(id) {
			t.stats.Resolved++
			return id, false
		}
		t.stats.Replaced++
		id = t.reg.Create()
		t.ids[key] = id
		return id, true
	}
	t.stats.Created++
	id = t.reg.Create()
	t.ids[key] = id
	return id, true
}

// Forget drops every mapping that resolves to id. Used when a subtree is
// discarded for good, so the map does not grow without bound.
func (t *Table) Forget(id entity.ID) {
	for k, v := range t.ids {
		if v == id {
			delete(t.ids, k)
		}
	}
}

// Len returns the number of live mappings.
func (t *Table) Len() int { return len(t.ids) }

// Stats returns resolution counters for diagnostics overlays.
func (t *Table) Stats() TableStats { return t.stats }
