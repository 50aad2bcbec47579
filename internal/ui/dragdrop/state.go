// Package dragdrop coordinates pointer and touch drag sessions over a tree of
// registered elements: thresholded start, hierarchical hit testing with an
// accept/reject handshake, scoped payloads, and two-finger gestures.
package dragdrop

import "math"

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseDragging
	PhaseGesture
	PhaseDropped
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseArmed:
		return "armed"
	case PhaseDragging:
		return "dragging"
	case PhaseGesture:
		return "gesture"
	case PhaseDropped:
		return "dropped"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Terminal reports whether the phase ends a session.
func (p Phase) Terminal() bool {
	return p == PhaseDropped || p == PhaseCancelled
}

// Handlers are the callbacks an element registers. Any of them may be nil.
// OnDrop returns whether the drop was consumed.
type Handlers struct {
	OnDragStart func(*DragState)
	OnDragMove  func(*DragState)
	OnDragEnd   func(*DragState)

	OnDragOver  func(*DragState)
	OnDragLeave func(*DragState)
	OnDrop      func(*DragState) bool

	OnGestureStart func(*GestureState) bool
	OnGestureMove  func(*GestureState)
	OnGestureEnd   func(*GestureState)
}

func (h Handlers) initiator() bool {
	return h.OnDragStart != nil || h.OnGestureStart != nil
}

// DragState is handed to every drag handler. It is only valid for the
// duration of the call.
type DragState struct {
	// Element is the id of the element whose handler is running.
	Element string
	// Initiator is the id of the element that started the session.
	Initiator string

	X, Y   float64
	DX, DY float64
	Mods   Modifiers

	// Dropped is set for OnDragEnd when a target consumed the drop.
	Dropped bool
	// Cancelled is set for OnDragEnd after Escape.
	Cancelled bool

	session  *session
	writable bool
	accepted bool
	message  string
}

// SetData attaches the session payload under scope. It only has an effect
// inside OnDragStart.
func (s *DragState) SetData(data map[string]any, scope string) {
	if !s.writable || s.session == nil {
		return
	}
	s.session.data = data
	s.session.scope = scope
}

// GetData reads one payload field. A scope different from the one the payload
// was set under returns nil.
func (s *DragState) GetData(field, scope string) any {
	if s.session == nil || s.session.data == nil || s.session.scope != scope {
		return nil
	}
	return s.session.data[field]
}

// Getter returns GetData bound to scope.
func (s *DragState) Getter(scope string) func(string) any {
	return func(field string) any { return s.GetData(field, scope) }
}

// Accept marks the current element as the drop target. msg is surfaced to
// the host, for example as a drop hint.
func (s *DragState) Accept(msg string) {
	s.accepted = true
	s.message = msg
}

// Reject refuses the drop. Not calling Accept has the same effect.
func (s *DragState) Reject() {
	s.accepted = false
	s.message = ""
}

// Accepted reports whether the handler accepted.
func (s *DragState) Accepted() bool { return s.accepted }

// GestureState is handed to gesture handlers.
type GestureState struct {
	Element string

	// Scale is the current finger distance over the starting distance.
	Scale float64
	// Rotate is the change of the finger angle in radians.
	Rotate float64
	// CenterX and CenterY locate the midpoint of the two touches.
	CenterX, CenterY float64
	// DX and DY are the midpoint offset from the start.
	DX, DY float64
}

type point struct{ x, y float64 }

func midpoint(a, b point) point {
	return point{(a.x + b.x) / 2, (a.y + b.y) / 2}
}

func distance(a, b point) float64 {
	return math.Hypot(b.x-a.x, b.y-a.y)
}

func angle(a, b point) float64 {
	return math.Atan2(b.y-a.y, b.x-a.x)
}
