package geometry

// Anchor is the corner of a box nearest the initial touch of a drag. It
// decides which edges follow the pointer for the whole gesture.
type Anchor int

const (
	AnchorLeftTop Anchor = iota
	AnchorLeftBottom
	AnchorRightTop
	AnchorRightBottom
)

func (a Anchor) String() string {
	switch a {
	case AnchorLeftTop:
		return "left-top"
	case AnchorLeftBottom:
		return "left-bottom"
	case AnchorRightTop:
		return "right-top"
	case AnchorRightBottom:
		return "right-bottom"
	default:
		return "unknown"
	}
}

// Left reports whether the left edge tracks the pointer.
func (a Anchor) Left() bool { return a == AnchorLeftTop || a == AnchorLeftBottom }

// Top reports whether the top edge tracks the pointer.
func (a Anchor) Top() bool { return a == AnchorLeftTop || a == AnchorRightTop }

// AnchorFor classifies a touch point against the half of r it falls into.
// A touch exactly on the centre line counts as right/bottom.
func AnchorFor(r Rect, touch Point) Anchor {
	c := r.Center()
	left := touch.X < c.X
	top := touch.Y < c.Y
	switch {
	case left && top:
		return AnchorLeftTop
	case left:
		return AnchorLeftBottom
	case top:
		return AnchorRightTop
	default:
		return AnchorRightBottom
	}
}

// ResizePolicy controls what happens when a drag crosses the opposite edge.
type ResizePolicy int

const (
	// ResizeClamp stops width and height at zero. The fixed edge stays put.
	ResizeClamp ResizePolicy = iota
	// ResizeAllowInversion lets width and height go negative.
	ResizeAllowInversion
)

func (p ResizePolicy) String() string {
	if p == ResizeAllowInversion {
		return "allow-inversion"
	}
	return "clamp"
}

// ApplyDragDelta moves the edges selected by a by (dx, dy).
//
// Left anchors shift X by dx and shrink Width by dx, keeping the right edge
// fixed. Right anchors grow Width by dx and leave X alone. The vertical axis
// follows the same rule with top/bottom.
func ApplyDragDelta(r Rect, a Anchor, dx, dy float64, policy ResizePolicy) Rect {
	right, bottom := r.Right(), r.Bottom()
	if a.Left() {
		r.X += dx
		r.Width -= dx
	} else {
		r.Width += dx
	}
	if a.Top() {
		r.Y += dy
		r.Height -= dy
	} else {
		r.Height += dy
	}
	if policy == ResizeAllowInversion {
		return r
	}
	if r.Width < 0 {
		r.Width = 0
		if a.Left() {
			r.X = right
		}
	}
	if r.Height < 0 {
		r.Height = 0
		if a.Top() {
			r.Y = bottom
		}
	}
	return r
}
