//go:build profile

// Package profiler records named scope spans into a fixed ring when the
// "profile" build tag is set, and compiles to no-ops otherwise.
package profiler

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Init must be called once (e.g., on app start) with a capacity (#spans).
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	ring.init(capacity)
}

// Start begins a scope and returns an end func to be deferred.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := intern(name)
	begin := time.Now()
	return func() {
		ring.push(span{NameID: id, Dur: time.Since(begin)})
	}
}

// Report aggregates the recorded spans per name: call count, total, and
// mean duration, longest total first.
func Report() string {
	spans := ring.snapshot()
	if len(spans) == 0 {
		return "profiler: no spans recorded"
	}

	type agg struct {
		name  string
		count int
		total time.Duration
	}
	byName := map[int]*agg{}
	for _, s := range spans {
		a := byName[s.NameID]
		if a == nil {
			a = &agg{name: nameOf(s.NameID)}
			byName[s.NameID] = a
		}
		a.count++
		a.total += s.Dur
	}

	rows := make([]*agg, 0, len(byName))
	for _, a := range byName {
		rows = append(rows, a)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].total > rows[j].total })

	var b strings.Builder
	for _, a := range rows {
		fmt.Fprintf(&b, "%-24s %8d calls %12v total %12v avg\n",
			a.name, a.count, a.total, a.total/time.Duration(a.count))
	}
	return b.String()
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func MemoryAllocs() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Mallocs
}

func NumGoroutine() int { return runtime.NumGoroutine() }

// ---------- span ring ----------

type span struct {
	NameID int
	Dur    time.Duration
}

type spanRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	spans []span
}

var ring spanRing

func (r *spanRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.spans = make([]span, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *spanRing) push(s span) {
	i := r.write.Add(1) - 1
	r.spans[i%r.cap] = s
}

func (r *spanRing) snapshot() []span {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	if n > r.cap {
		n = r.cap
	}
	out := make([]span, n)
	copy(out, r.spans[:n])
	return out
}

// ---------- name interning ----------

var (
	internMu sync.Mutex
	names    []string
	nameIDs  = map[string]int{}
)

func intern(name string) int {
	internMu.Lock()
	defer internMu.Unlock()
	if id, ok := nameIDs[name]; ok {
		return id
	}
	id := len(names)
	names = append(names, name)
	nameIDs[name] = id
	return id
}

func nameOf(id int) string {
	internMu.Lock()
	defer internMu.Unlock()
	if id < len(names) {
		return names[id]
	}
	return "?"
}
