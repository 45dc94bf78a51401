package ui

// Layout resolves sizes and absolute rectangles for the whole tree.
// It runs two passes: a post-order measure pass that resolves every
// node's size, then a pre-order position pass that places children,
// distributes Expand space, wraps lines, and applies alignment.
// Layout is deterministic: the same declared tree, viewport, and scroll
// offsets always produce the same rectangles.
func (u *UI) Layout() {
	if u.root == nil {
		return
	}
	u.measure(u.root, u.screen)
	u.root.rect = Rect{0, 0, u.root.size[0], u.root.size[1]}
	u.position(u.root)
}

// mainAxis returns 0 for Row flow and 1 for Column flow.
func mainAxis(d Direction) int {
	if d == Row {
		return 0
	}
	return 1
}

// resolveAxis turns a Size into pixels, or -1 when the axis depends on
// children. Expand resolves to 0 here; the parent's position pass grants
// it space. Percent fractions are clamped to [0, 1].
func resolveAxis(s Size, ref, screen float32) float32 {
	switch s.Mode {
	case SizePixels:
		return max0(s.Value)
	case SizePercent:
		return clampf(s.Value, 0, 1) * ref
	case SizeScreenPercent:
		return clampf(s.Value, 0, 1) * screen
	case SizeExpand:
		return 0
	default: // SizeChildren
		return -1
	}
}

// measure resolves n.size bottom-up. ref is the content box of the
// nearest ancestor with a pre-resolved size on each axis; Children-sized
// ancestors thread their own inherited reference through unchanged, so a
// Percent child under a Children parent still has something to resolve
// against.
func (u *UI) measure(n *Node, ref [2]float32) {
	cfg := &n.cfg
	w := resolveAxis(cfg.Width, ref[0], u.screen[0])
	h := resolveAxis(cfg.Height, ref[1], u.screen[1])

	childRef := ref
	if w >= 0 {
		childRef[0] = w
	}
	if h >= 0 {
		childRef[1] = h
	}
	childRef[0] = max0(childRef[0] - cfg.Padding.Horizontal())
	childRef[1] = max0(childRef[1] - cfg.Padding.Vertical())

	for _, cid := range n.children {
		if c := u.nodes[cid]; c != nil {
			u.measure(c, childRef)
		}
	}

	// A text leaf with no explicit size fits its measured text.
	if (w < 0 || h < 0) && cfg.Text != "" && len(n.children) == 0 && u.measurer != nil {
		tw, th := u.measurer.Measure(cfg.Text, cfg.FontSize)
		if w < 0 {
			w = tw + cfg.Padding.Horizontal()
		}
		if h < 0 {
			h = th + cfg.Padding.Vertical()
		}
	}

	if w < 0 || h < 0 {
		fw, fh := u.childrenFit(n)
		if w < 0 {
			w = fw
		}
		if h < 0 {
			h = fh
		}
	}

	n.size[0] = max0(w)
	n.size[1] = max0(h)
}

// childrenFit computes the Children-mode size of n: the sum of in-flow
// child extents along the flow axis and the maximum extent across it,
// plus n's padding. Absolute children never contribute. Wrapping does
// not apply; a Children axis measures as a single line.
func (u *UI) childrenFit(n *Node) (w, h float32) {
	m := mainAxis(n.cfg.Direction)
	c := 1 - m
	var sum, mx float32
	for _, cid := range n.children {
		ch := u.nodes[cid]
		if ch == nil || ch.cfg.Absolute {
			continue
		}
		sum += ch.size[m] + ch.cfg.Margin.axis(m)
		if ext := ch.size[c] + ch.cfg.Margin.axis(c); ext > mx {
			mx = ext
		}
	}
	var fit [2]float32
	fit[m] = sum
	fit[c] = mx
	return fit[0] + n.cfg.Padding.Horizontal(), fit[1] + n.cfg.Padding.Vertical()
}

// remeasureInto re-resolves a subtree after its root was granted a final
// size by Expand distribution or Stretch alignment.
func (u *UI) remeasureInto(n *Node) {
	ref := [2]float32{
		max0(n.size[0] - n.cfg.Padding.Horizontal()),
		max0(n.size[1] - n.cfg.Padding.Vertical()),
	}
	for _, cid := range n.children {
		if c := u.nodes[cid]; c != nil {
			u.measure(c, ref)
		}
	}
}

// flowLine is one run of in-flow children sharing a cross-axis band.
type flowLine struct {
	start, end int // child index range, end exclusive
	main       float32
	cross      float32
	count      int
}

// position places n's children inside its content box and recurses.
// n.rect must already be final.
func (u *UI) position(n *Node) {
	cfg := &n.cfg
	inner := n.rect.Inset(cfg.Padding)
	m := mainAxis(cfg.Direction)
	c := 1 - m
	innerSize := [2]float32{inner.W, inner.H}

	kids := make([]*Node, 0, len(n.children))
	for _, cid := range n.children {
		if ch := u.nodes[cid]; ch != nil {
			kids = append(kids, ch)
		}
	}
	flow := make([]*Node, 0, len(kids))

	// Expand distribution along the flow axis. Leftover space after the
	// fixed children is split equally; none left means expand children
	// collapse to zero rather than overflowing.
	var fixed float32
	expandCount := 0
	for _, ch := range kids {
		if ch.cfg.Absolute {
			continue
		}
		flow = append(flow, ch)
		if mainMode(ch, m) == SizeExpand {
			expandCount++
			fixed += ch.cfg.Margin.axis(m)
		} else {
			fixed += ch.size[m] + ch.cfg.Margin.axis(m)
		}
	}
	if expandCount > 0 {
		share := max0(innerSize[m]-fixed) / float32(expandCount)
		for _, ch := range flow {
			if mainMode(ch, m) == SizeExpand {
				ch.size[m] = share
			}
		}
	}
	// Cross-axis Expand fills the content box outright.
	for _, ch := range flow {
		if mainMode(ch, c) == SizeExpand {
			ch.size[c] = max0(innerSize[c] - ch.cfg.Margin.axis(c))
		}
	}
	for _, ch := range flow {
		if mainMode(ch, m) == SizeExpand || mainMode(ch, c) == SizeExpand {
			u.remeasureInto(ch)
		}
	}

	lines := buildLines(flow, m, innerSize[m], cfg.Wrap)

	mainAlign := cfg.MainAlign
	if mainAlign == AlignAuto {
		mainAlign = AlignStart
	}
	crossAlign := cfg.CrossAlign
	if crossAlign == AlignAuto {
		crossAlign = AlignStart
	}

	var contentMain, contentCross float32
	crossCursor := float32(0)
	for _, ln := range lines {
		if ln.main > contentMain {
			contentMain = ln.main
		}

		cursor, gap := justify(mainAlign, innerSize[m], ln.main, ln.count)
		stretchTo := ln.cross
		if !cfg.Wrap {
			// A single unwrapped line stretches to the full content box.
			stretchTo = innerSize[c]
		}

		for _, ch := range flow[ln.start:ln.end] {
			align := ch.cfg.SelfAlign
			if align == AlignAuto {
				align = crossAlign
			}
			marginCross := ch.cfg.Margin.axis(c)
			if align == AlignStretch && mainMode(ch, c) != SizeExpand && !strictAxis(ch, c) {
				if s := max0(stretchTo - marginCross); s != ch.size[c] {
					ch.size[c] = s
					u.remeasureInto(ch)
				}
			}

			var crossPos float32
			switch align {
			case AlignCenter:
				crossPos = crossCursor + (stretchTo-ch.size[c]-marginCross)/2
			case AlignEnd:
				crossPos = crossCursor + stretchTo - ch.size[c] - ch.cfg.Margin.axis(c)
			default:
				crossPos = crossCursor
			}

			var pos [2]float32
			pos[m] = cursor + ch.cfg.Margin.lead(m)
			pos[c] = max0(crossPos) + ch.cfg.Margin.lead(c)
			ch.rect = Rect{inner.X + pos[0], inner.Y + pos[1], ch.size[0], ch.size[1]}

			cursor += ch.size[m] + ch.cfg.Margin.axis(m) + gap
		}
		crossCursor += ln.cross
		contentCross += ln.cross
	}

	// Absolute children sit at the content origin plus their offset and
	// never affect flow or the scroll range.
	for _, ch := range kids {
		if !ch.cfg.Absolute {
			continue
		}
		ch.rect = Rect{
			inner.X + ch.cfg.Offset[0],
			inner.Y + ch.cfg.Offset[1],
			ch.size[0], ch.size[1],
		}
	}

	var content [2]float32
	content[m] = contentMain
	content[c] = contentCross
	n.content = content
	if cfg.Scrollable {
		n.maxScroll[0] = max0(content[0] - inner.W)
		n.maxScroll[1] = max0(content[1] - inner.H)
	} else {
		n.maxScroll = [2]float32{}
	}
	// Re-clamp the persistent offset against the fresh range so a shrink
	// never leaves the view stranded past the content.
	n.SetScroll(n.scroll[0], n.scroll[1])

	for _, ch := range kids {
		u.position(ch)
	}
}

// mainMode returns the size mode of ch along axis a.
func mainMode(ch *Node, a int) SizeMode {
	if a == 0 {
		return ch.cfg.Width.Mode
	}
	return ch.cfg.Height.Mode
}

func strictAxis(ch *Node, a int) bool {
	if a == 0 {
		return ch.cfg.Width.Strict
	}
	return ch.cfg.Height.Strict
}

// buildLines splits flow children into lines. Without wrap everything is
// one line. With wrap, a child that would cross the limit starts a new
// line unless the current line is empty (an oversized child gets a line
// of its own and overflows).
func buildLines(flow []*Node, m int, limit float32, wrap bool) []flowLine {
	if len(flow) == 0 {
		return nil
	}
	c := 1 - m
	var lines []flowLine
	cur := flowLine{start: 0}
	for i, ch := range flow {
		ext := ch.size[m] + ch.cfg.Margin.axis(m)
		if wrap && cur.count > 0 && cur.main+ext > limit {
			cur.end = i
			lines = append(lines, cur)
			cur = flowLine{start: i}
		}
		cur.main += ext
		if cx := ch.size[c] + ch.cfg.Margin.axis(c); cx > cur.cross {
			cur.cross = cx
		}
		cur.count++
	}
	cur.end = len(flow)
	return append(lines, cur)
}

// justify returns the starting cursor and inter-child gap for a line.
// Overflowing lines always start at 0 and clip at the far edge.
func justify(a Align, avail, used float32, count int) (start, gap float32) {
	leftover := max0(avail - used)
	switch a {
	case AlignCenter:
		return leftover / 2, 0
	case AlignEnd:
		return leftover, 0
	case AlignSpaceBetween:
		if count > 1 {
			return 0, leftover / float32(count-1)
		}
		return 0, 0
	default:
		return 0, 0
	}
}
