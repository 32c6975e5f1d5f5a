// Package gesture models one drag gesture over a box as a small value that
// the input handler threads from touch-down to touch-up.
package gesture

import (
	"errors"

	"github.com/google/uuid"

	"github.com/soocke/qr-measure-go/domain/geometry"
)

// State enumerates the phases of a drag gesture.
type State int

const (
	StateIdle State = iota
	StateAnchored
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnchored:
		return "anchored"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// ErrNoGesture is returned by Move when no gesture is in progress.
var ErrNoGesture = errors.New("no gesture in progress")

// Gesture is the per-gesture state. The zero value is Idle.
type Gesture struct {
	State  State
	BoxID  uuid.UUID
	Anchor geometry.Anchor
	// Last is the pointer position of the previous event.
	Last geometry.Point
}

// Begin anchors a gesture on the box at bounds. The anchor is fixed for the
// lifetime of the gesture.
func Begin(boxID uuid.UUID, bounds geometry.Rect, touch geometry.Point) Gesture {
	return Gesture{
		State:  StateAnchored,
		BoxID:  boxID,
		Anchor: geometry.AnchorFor(bounds, touch),
		Last:   touch,
	}
}

// Active reports whether the gesture is anchored or dragging.
func (g Gesture) Active() bool { return g.State == StateAnchored || g.State == StateDragging }

// Move returns the gesture advanced to pt and the incremental delta since the
// previous event.
func (g Gesture) Move(pt geometry.Point) (Gesture, float64, float64, error) {
	if !g.Active() {
		return g, 0, 0, ErrNoGesture
	}
	d := pt.Sub(g.Last)
	g.Last = pt
	g.State = StateDragging
	return g, d.X, d.Y, nil
}

// End finishes the gesture. Nothing is retained.
func (g Gesture) End() Gesture { return Gesture{} }
