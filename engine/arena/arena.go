// Package arena provides a per-frame bump allocator.
//
// An Arena hands out byte slices from one growable backing buffer and is
// reset wholesale at the start of every frame instead of freeing individual
// allocations. Slices returned before a growth event stay valid for the rest
// of the frame (growth allocates a fresh block; the old one is kept alive by
// the outstanding slices). After Reset, every previously returned slice is
// invalid: the memory will be overwritten by the next frame's allocations.
package arena

import "unsafe"

type Arena struct {
	buf []byte
}

// New creates an arena with the given initial capacity in bytes.
func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Arena{buf: make([]byte, 0, capacity)}
}

// Reset clears the arena without releasing its backing memory.
// Call once per frame, before any allocation for that frame.
func (a *Arena) Reset() { a.buf = a.buf[:0] }

func (a *Arena) Len() int { return len(a.buf) }
func (a *Arena) Cap() int { return cap(a.buf) }

// Ensure makes room for at least n more bytes, doubling the capacity when
// needed. Allocation never fails silently: the arena grows instead.
func (a *Arena) Ensure(n int) {
	need := len(a.buf) + n
	if need <= cap(a.buf) {
		return
	}
	newCap := cap(a.buf) * 2
	if newCap < need {
		newCap = need
	}
	nb := make([]byte, len(a.buf), newCap)
	copy(nb, a.buf)
	a.buf = nb
}

// Alloc returns an uninitialized slice of n bytes valid until Reset.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	a.Ensure(n)
	start := len(a.buf)
	a.buf = a.buf[:start+n]
	return a.buf[start : start+n]
}

// Copy stores a copy of b in the arena and returns the stored slice.
func (a *Arena) Copy(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	dst := a.Alloc(len(b))
	copy(dst, b)
	return dst
}

// CopyString stores a copy of s in the arena.
func (a *Arena) CopyString(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	dst := a.Alloc(len(s))
	copy(dst, s)
	return dst
}

// Mark returns a bookmark for BytesFrom.
func (a *Arena) Mark() int { return len(a.buf) }

// BytesFrom returns everything written since mark.
func (a *Arena) BytesFrom(mark int) []byte { return a.buf[mark:] }

// StringView returns a zero-copy string over b. The string aliases arena
// memory: it is valid only until Reset and must not outlive the frame.
func StringView(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
