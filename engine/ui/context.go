package ui

import (
	"github.com/brakewood/thicket/engine/entity"
)

// Input is the pointer state sampled once per frame.
type Input struct {
	MouseX, MouseY float32
	MouseDown      bool
	MousePressed   bool // went down this frame
	MouseReleased  bool // went up this frame
	WheelX, WheelY float32
}

// WidgetState is the per-node interaction state kept by the widget layer.
type WidgetState struct {
	Hot    bool // pointer over the node last frame
	Active bool // pressed on the node and not yet released
}

// Options configures a UI instance.
type Options struct {
	// ArenaCapacity is the initial text arena size in bytes. Zero picks a
	// reasonable default.
	ArenaCapacity int
	Measurer      TextMeasurer
}

// UI owns the node tree, identity table, and command buffer for one
// widget hierarchy. It is not safe for concurrent use; drive it from the
// frame loop.
type UI struct {
	reg      *entity.Registry
	table    *Table
	nodes    map[entity.ID]*Node
	root     *Node
	screen   [2]float32
	frame    uint64
	buf      *CommandBuffer
	measurer TextMeasurer
	state    map[entity.ID]*WidgetState

	// In is the frame's input, readable by widget helpers.
	In Input
}

func New(opts Options) *UI {
	arenaCap := opts.ArenaCapacity
	if arenaCap <= 0 {
		arenaCap = 16 * 1024
	}
	reg := entity.NewRegistry()
	return &UI{
		reg:      reg,
		table:    NewTable(reg),
		nodes:    make(map[entity.ID]*Node),
		buf:      NewCommandBuffer(arenaCap),
		measurer: opts.Measurer,
		state:    make(map[entity.ID]*WidgetState),
	}
}

// Frame returns the number of completed BeginFrame calls.
func (u *UI) Frame() uint64 { return u.frame }

// Screen returns the viewport size set by the current frame.
func (u *UI) Screen() (w, h float32) { return u.screen[0], u.screen[1] }

// Registry exposes the entity registry (diagnostics, tests).
func (u *UI) Registry() *entity.Registry { return u.reg }

// Identity exposes the identity table (diagnostics, tests).
func (u *UI) Identity() *Table { return u.table }

// Buffer returns the frame's command buffer.
func (u *UI) Buffer() *CommandBuffer { return u.buf }

// BeginFrame starts a new declaration pass. The root node is a Column
// container filling the viewport; everything else hangs off it.
func (u *UI) BeginFrame(w, h float32, in Input) *Node {
	u.frame++
	u.screen = [2]float32{w, h}
	u.In = in
	u.buf.Reset()

	if u.root == nil {
		id := u.reg.Create()
		u.root = &Node{id: id, parent: entity.None}
		u.nodes[id] = u.root
	}
	r := u.root
	r.children = r.children[:0]
	r.cfg = Config{
		Width:     Pixels(w),
		Height:    Pixels(h),
		Direction: Column,
	}
	r.lastFrame = u.frame
	return r
}

// Root returns the current frame's root node, or nil before the first
// BeginFrame.
func (u *UI) Root() *Node { return u.root }

// Node declares a child of parent at the given call site and loop index,
// resolving it to its persistent node. The node's configuration is reset
// to defaults on its first declaration of the frame; persistent state
// (scroll offset, widget state) carries over.
func (u *UI) Node(parent *Node, site Site, index int) *Node {
	id, created := u.table.Resolve(Key{Parent: parent.id, Site: site, Index: int32(index)})
	n := u.nodes[id]
	if created || n == nil {
		n = &Node{id: id}
		u.nodes[id] = n
	}
	if n.lastFrame != u.frame {
		n.cfg = Config{}
		n.children = n.children[:0]
		n.rendered = false
		n.lastFrame = u.frame
	}
	n.parent = parent.id
	parent.children = append(parent.children, id)
	return n
}

// Child is Node with the call site captured automatically.
func (u *UI) Child(parent *Node, index int) *Node {
	return u.Node(parent, CallerSite(1), index)
}

// Lookup returns the node for id, or nil.
func (u *UI) Lookup(id entity.ID) *Node { return u.nodes[id] }

// Render lays out, emits, and dispatches the frame in one call.
func (u *UI) Render(sink DrawSink) {
	u.Layout()
	Render(u.Emit(), sink)
}

// Prune destroys nodes that were not declared for several frames, so
// long sessions do not accumulate widgets from screens that went away.
func (u *UI) Prune(maxAge uint64) {
	for id, n := range u.nodes {
		if n == u.root || u.frame-n.lastFrame <= maxAge {
			continue
		}
		u.table.Forget(id)
		u.reg.Destroy(id)
		delete(u.nodes, id)
		delete(u.state, id)
	}
}

// HitTest returns the topmost visible node containing the point, or nil.
// "Topmost" follows render order: higher layers win, then later emission.
func (u *UI) HitTest(x, y float32) *Node {
	if u.root == nil {
		return nil
	}
	var best *Node
	var bestLayer int32
	u.hit(u.root, 0, [2]float32{}, x, y, &best, &bestLayer)
	return best
}

func (u *UI) hit(n *Node, inheritedLayer int32, off [2]float32, x, y float32, best **Node, bestLayer *int32) {
	if n.cfg.Hidden {
		return
	}
	layer := inheritedLayer
	if n.cfg.Layer != 0 {
		layer = n.cfg.Layer
	}
	off[0] += n.cfg.Translate[0]
	off[1] += n.cfg.Translate[1]
	r := Rect{n.rect.X + off[0], n.rect.Y + off[1], n.rect.W, n.rect.H}
	if r.Contains(x, y) && (*best == nil || layer >= *bestLayer) {
		*best, *bestLayer = n, layer
	}
	if n.cfg.Scrollable {
		// The pointer only reaches children through the content box.
		if !r.Inset(n.cfg.Padding).Contains(x, y) {
			return
		}
		off[0] -= n.scroll[0]
		off[1] -= n.scroll[1]
	}
	for _, cid := range n.children {
		if c := u.nodes[cid]; c != nil {
			u.hit(c, layer, off, x, y, best, bestLayer)
		}
	}
}

// widgetState returns the mutable interaction state for id.
func (u *UI) widgetState(id entity.ID) *WidgetState {
	st, ok := u.state[id]
	if !ok {
		st = &WidgetState{}
		u.state[id] = st
	}
	return st
}

// State returns a copy of the interaction state for id.
func (u *UI) State(id entity.ID) WidgetState { return *u.widgetState(id) }
