// Package entity provides a minimal generational entity registry.
//
// Identities are packed index+generation pairs. Destroying an entity bumps
// the generation of its slot, so stale ids held by other systems can be
// detected with Alive instead of silently resolving to a recycled entity.
package entity

// ID identifies one live entity. The zero value is None.
type ID uint64

// None is the sentinel "no entity" id, used for root parents.
const None ID = 0

const indexBits = 32

func makeID(index, gen uint32) ID { return ID(uint64(gen)<<indexBits | uint64(index)) }

// Index returns the slot index of the id.
func (id ID) Index() uint32 { return uint32(id) }

// Generation returns the generation the id was created with.
func (id ID) Generation() uint32 { return uint32(id >> indexBits) }

// IsNone reports whether the id is the sentinel.
func (id ID) IsNone() bool { return id == None }

// Registry allocates and recycles entity ids.
type Registry struct {
	generations []uint32
	free        []uint32
	alive       int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	// Slot 0 is burned so that the zero ID can never be alive.
	return &Registry{generations: []uint32{0}}
}

// Create allocates a fresh entity id, reusing destroyed slots.
func (r *Registry) Create() ID {
	r.alive++
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		return makeID(idx, r.generations[idx])
	}
	idx := uint32(len(r.generations))
	r.generations = append(r.generations, 1)
	return makeID(idx, 1)
}

// Destroy releases id. It returns false if id was not alive.
func (r *Registry) Destroy(id ID) bool {
	if !r.Alive(id) {
		return false
	}
	idx := id.Index()
	r.generations[idx]++
	r.free = append(r.free, idx)
	r.alive--
	return true
}

// Alive reports whether id refers to a current entity.
func (r *Registry) Alive(id ID) bool {
	idx := id.Index()
	if id == None || idx >= uint32(len(r.generations)) {
		return false
	}
	return r.generations[idx] == id.Generation()
}

// Len returns the number of live entities.
func (r *Registry) Len() int { return r.alive }
