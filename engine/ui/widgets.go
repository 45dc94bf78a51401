package ui

import (
	"math"

	"github.com/brakewood/thicket/engine/colors"
)

// Widget helpers in the props style: each call declares a node, wires
// its config from the props struct, and handles its own interaction
// using the previous frame's geometry. Pointer hit tests therefore lag
// the layout by one frame, which is invisible at interactive rates.

type PanelProps struct {
	Index    int
	Width    Size
	Height   Size
	Dir      Direction
	Pad      float32
	Bg       colors.Color
	Rounding float32
}

// Panel declares a plain container.
func (u *UI) Panel(parent *Node, p PanelProps) *Node {
	n := u.Node(parent, CallerSite(1), p.Index)
	n.cfg.Width = or(p.Width, FitChildren())
	n.cfg.Height = or(p.Height, FitChildren())
	n.cfg.Direction = p.Dir
	n.cfg.Padding = Uniform(p.Pad)
	n.cfg.Background = p.Bg
	n.cfg.CornerRadius = p.Rounding
	return n
}

type LabelProps struct {
	Index int
	Text  string
	Size  float32
	Color colors.Color
}

// Text declares a text leaf sized to its content.
func (u *UI) Text(parent *Node, p LabelProps) *Node {
	n := u.Node(parent, CallerSite(1), p.Index)
	size := p.Size
	if size <= 0 {
		size = 16
	}
	c := p.Color
	if !c.Visible() {
		c = colors.White
	}
	return n.Label(p.Text, size, c)
}

type ButtonProps struct {
	Index    int
	Text     string
	FontSize float32
	Width    Size
	Height   Size
	Bg       colors.Color
	FgColor  colors.Color
	Rounding float32
	Pad      Insets
	Disabled bool
}

// Button declares a clickable labelled box and reports whether it was
// clicked this frame (press and release both inside the button).
func (u *UI) Button(parent *Node, p ButtonProps) bool {
	n := u.Node(parent, CallerSite(1), p.Index)
	st := u.widgetState(n.id)

	hot := false
	clicked := false
	if !p.Disabled && n.rect.W > 0 {
		hot = u.HitTest(u.In.MouseX, u.In.MouseY) == n
		if hot && u.In.MousePressed {
			st.Active = true
		}
		if u.In.MouseReleased {
			clicked = st.Active && hot
			st.Active = false
		}
	} else {
		st.Active = false
	}
	st.Hot = hot

	bg := p.Bg
	if !bg.Visible() {
		bg = colors.Gray
	}
	switch {
	case p.Disabled:
		bg = bg.Scale(0.6)
	case st.Active:
		bg = bg.Scale(0.8)
	case hot:
		bg = bg.Scale(1.15)
	}

	fg := p.FgColor
	if !fg.Visible() {
		fg = colors.White
	}
	size := p.FontSize
	if size <= 0 {
		size = 16
	}
	pad := p.Pad
	if pad == (Insets{}) {
		pad = Symmetric(12, 6)
	}

	n.cfg.Width = or(p.Width, FitChildren())
	n.cfg.Height = or(p.Height, FitChildren())
	n.cfg.Padding = pad
	n.cfg.Background = bg
	n.cfg.CornerRadius = p.Rounding
	n.cfg.MainAlign = AlignCenter
	n.cfg.CrossAlign = AlignCenter
	n.Label(p.Text, size, fg)
	return clicked
}

type ScrollProps struct {
	Index      int
	Width      Size
	Height     Size
	Dir        Direction
	Pad        float32
	Bg         colors.Color
	WheelScale float32
}

// ScrollRegion declares a clipping container whose content scrolls with
// the wheel while the pointer is over it. The offset persists across
// frames and re-clamps automatically when content shrinks.
func (u *UI) ScrollRegion(parent *Node, p ScrollProps) *Node {
	n := u.Node(parent, CallerSite(1), p.Index)
	n.cfg.Width = or(p.Width, Expand())
	n.cfg.Height = or(p.Height, Expand())
	n.cfg.Direction = p.Dir
	n.cfg.Padding = Uniform(p.Pad)
	n.cfg.Background = p.Bg
	n.cfg.Scrollable = true

	if u.In.WheelX != 0 || u.In.WheelY != 0 {
		if hitInside(u.HitTest(u.In.MouseX, u.In.MouseY), n, u) {
			scale := p.WheelScale
			if scale <= 0 {
				scale = 24
			}
			n.ScrollBy(-u.In.WheelX*scale, -u.In.WheelY*scale)
		}
	}
	return n
}

// hitInside reports whether hit is target or a descendant of target.
func hitInside(hit, target *Node, u *UI) bool {
	for hit != nil {
		if hit == target {
			return true
		}
		hit = u.nodes[hit.parent]
	}
	return false
}

type RingProps struct {
	Index     int
	Fraction  float32 // 0..1 progress
	Diameter  float32
	Thickness float32
	Color     colors.Color
	Track     colors.Color
}

// ProgressRing declares a circular progress indicator: a faint full
// track with a progress arc over it, starting at twelve o'clock.
func (u *UI) ProgressRing(parent *Node, p RingProps) *Node {
	d := p.Diameter
	if d <= 0 {
		d = 48
	}
	th := p.Thickness
	if th <= 0 {
		th = 6
	}
	c := p.Color
	if !c.Visible() {
		c = colors.Blue
	}
	track := p.Track
	if !track.Visible() {
		track = c.WithAlpha(0.25)
	}

	n := u.Node(parent, CallerSite(1), p.Index)
	n.Sized(Pixels(d), Pixels(d)).Ring(th, track)

	frac := clampf(p.Fraction, 0, 1)
	arc := u.Node(n, CallerSite(1), p.Index)
	arc.AbsoluteAt(0, 0).Sized(Pixels(d), Pixels(d)).Hide(frac <= 0)
	start := float32(-math.Pi / 2)
	arc.RingArc(th, start, start+frac*2*math.Pi, c)
	return n
}

// or returns s unless it is the zero Size, else def. Lets props structs
// leave sizes unset without colliding with the Children default.
func or(s, def Size) Size {
	if s == (Size{}) {
		return def
	}
	return s
}
