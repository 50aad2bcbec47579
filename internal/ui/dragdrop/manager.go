package dragdrop

import (
	"math"
	"slices"

	"github.com/rs/zerolog"
)

// DefaultThreshold is the pointer travel, per axis, that turns a press into a drag.
const DefaultThreshold = 1.0

// Modifiers are the keys held during a pointer event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// PointerEvent is one pointer or touch sample in host coordinates.
type PointerEvent struct {
	X, Y float64
	// PointerID tells touches apart. Mouse input can leave it at zero.
	PointerID int
	Touch     bool
	Mods      Modifiers
}

// Proxy is the visual stand-in that follows the pointer during a drag.
type Proxy interface {
	Move(x, y float64)
	Destroy()
}

// DraggingElement builds the proxy when a drag starts. Returning nil is allowed.
type DraggingElement func(*DragState) Proxy

// Result describes how a session ended.
type Result struct {
	Phase   Phase
	Dropped bool
	// Target is the element that accepted last, if any.
	Target  string
	Message string
}

type session struct {
	phase     Phase
	initiator string
	handlers  Handlers
	pointer   int
	start     point
	last      point
	mods      Modifiers

	data  map[string]any
	scope string

	target         string
	targetHandlers Handlers
	message        string

	proxy Proxy

	touches      map[int]point
	gestureStart [2]point
	gestureIDs   [2]int
}

// Manager owns at most one drag or gesture session at a time.
// A press while a session is active is ignored. Manager is not safe for
// concurrent use; hosts feed it from their single input loop.
type Manager struct {
	tree      *HitTree
	threshold float64
	proxy     DraggingElement
	logger    zerolog.Logger

	session *session
}

// Option configures a Manager.
type Option func(*Manager)

// WithThreshold sets the drag start distance. Values below zero are ignored.
func WithThreshold(px float64) Option {
	return func(m *Manager) {
		if px >= 0 {
			m.threshold = px
		}
	}
}

// WithDraggingElement sets the proxy factory.
func WithDraggingElement(f DraggingElement) Option {
	return func(m *Manager) { m.proxy = f }
}

// WithLogger sets the logger used for session transitions.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) { m.logger = logger.With().Str("component", "dragdrop").Logger() }
}

// NewManager creates a Manager hit-testing against tree.
func NewManager(tree *HitTree, opts ...Option) *Manager {
	if tree == nil {
		tree = NewHitTree()
	}
	m := &Manager{
		tree:      tree,
		threshold: DefaultThreshold,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Tree returns the hit tree the manager reads.
func (m *Manager) Tree() *HitTree { return m.tree }

// Phase returns the phase of the active session, or PhaseIdle.
func (m *Manager) Phase() Phase {
	if m.session == nil {
		return PhaseIdle
	}
	return m.session.phase
}

// Active reports whether a session is in progress.
func (m *Manager) Active() bool { return m.session != nil }

// Target returns the element currently accepting the drag.
func (m *Manager) Target() (id, message string) {
	if m.session == nil {
		return "", ""
	}
	return m.session.target, m.session.message
}

// PointerDown arms a session on the initiator under the pointer, or turns an
// armed touch session into a gesture when a second finger lands.
// It reports whether the event was consumed.
func (m *Manager) PointerDown(ev PointerEvent) bool {
	if s := m.session; s != nil {
		if s.phase == PhaseArmed && ev.Touch && ev.PointerID != s.pointer {
			return m.startGesture(ev)
		}
		m.logger.Debug().Str("phase", s.phase.String()).Msg("press ignored, session active")
		return false
	}

	id, ok := m.initiatorAt(ev.X, ev.Y)
	if !ok {
		return false
	}
	h, _ := m.tree.handlers(id)
	p := point{ev.X, ev.Y}
	m.session = &session{
		phase:     PhaseArmed,
		initiator: id,
		handlers:  h,
		pointer:   ev.PointerID,
		start:     p,
		last:      p,
		mods:      ev.Mods,
	}
	if ev.Touch {
		m.session.touches = map[int]point{ev.PointerID: p}
	}
	m.logger.Debug().Str("element", id).Msg("session armed")
	return true
}

func (m *Manager) initiatorAt(x, y float64) (string, bool) {
	hit, ok := m.tree.ElementAt(x, y)
	if !ok {
		return "", false
	}
	for _, id := range m.tree.Ancestors(hit) {
		if h, _ := m.tree.handlers(id); h.initiator() {
			return id, true
		}
	}
	return "", false
}

// PointerMove advances the session.
func (m *Manager) PointerMove(ev PointerEvent) {
	s := m.session
	if s == nil {
		return
	}
	switch s.phase {
	case PhaseGesture:
		m.moveGesture(ev)
		return
	case PhaseArmed:
		if ev.Touch && s.touches != nil {
			s.touches[ev.PointerID] = point{ev.X, ev.Y}
		}
		if ev.PointerID != s.pointer {
			return
		}
		s.last = point{ev.X, ev.Y}
		s.mods = ev.Mods
		if math.Abs(ev.X-s.start.x) < m.threshold && math.Abs(ev.Y-s.start.y) < m.threshold {
			return
		}
		if !m.startDrag() {
			return
		}
	case PhaseDragging:
		if ev.PointerID != s.pointer {
			return
		}
		s.last = point{ev.X, ev.Y}
		s.mods = ev.Mods
	default:
		return
	}

	if s.proxy != nil {
		s.proxy.Move(s.last.x, s.last.y)
	}
	if s.handlers.OnDragMove != nil {
		s.handlers.OnDragMove(m.state(s.initiator))
	}
	m.resolve()
}

func (m *Manager) startDrag() bool {
	s := m.session
	if s.handlers.OnDragStart == nil {
		// gesture-only initiator; a single pointer never drags it
		return false
	}
	st := m.state(s.initiator)
	st.writable = true
	s.handlers.OnDragStart(st)
	if s.data == nil {
		m.logger.Debug().Str("element", s.initiator).Msg("drag start set no data, cancelled")
		m.session = nil
		return false
	}
	s.phase = PhaseDragging
	if m.proxy != nil {
		s.proxy = m.proxy(m.state(s.initiator))
	}
	m.logger.Debug().Str("element", s.initiator).Str("scope", s.scope).Msg("drag started")
	return true
}

// resolve hit-tests the pointer. When the pointer has left the current
// target, the target is told before any other candidate is asked. While the
// pointer is still inside it, the target is told only once another candidate
// accepts or it rejects itself, so an inner element that rejects does not
// bounce it out and back in.
func (m *Manager) resolve() {
	s := m.session
	prev, prevHandlers := s.target, s.targetHandlers
	leave := func() {
		if prev != "" && prevHandlers.OnDragLeave != nil {
			prevHandlers.OnDragLeave(m.state(prev))
		}
	}

	var candidates []string
	if hit, ok := m.tree.ElementAt(s.last.x, s.last.y); ok {
		for _, id := range m.tree.Ancestors(hit) {
			if h, _ := m.tree.handlers(id); h.OnDragOver != nil {
				candidates = append(candidates, id)
			}
		}
	}
	underPointer := prev != "" && slices.Contains(candidates, prev)
	if !underPointer {
		leave()
	}

	var (
		target   string
		handlers Handlers
		message  string
	)
	for _, id := range candidates {
		h, _ := m.tree.handlers(id)
		st := m.state(id)
		h.OnDragOver(st)
		if st.accepted {
			target, handlers, message = id, h, st.message
			break
		}
	}
	if underPointer && target != prev {
		leave()
	}

	s.target, s.targetHandlers, s.message = target, handlers, message
}

// PointerUp ends the session. A press released before the threshold ends
// cancelled without calling any handler.
func (m *Manager) PointerUp(ev PointerEvent) Result {
	s := m.session
	if s == nil {
		return Result{Phase: PhaseIdle}
	}
	switch s.phase {
	case PhaseArmed:
		if ev.Touch && ev.PointerID != s.pointer {
			delete(s.touches, ev.PointerID)
			return Result{Phase: PhaseArmed}
		}
		m.session = nil
		return Result{Phase: PhaseCancelled}
	case PhaseGesture:
		return m.endGesture()
	}
	if ev.PointerID != s.pointer {
		return Result{Phase: s.phase}
	}

	s.last = point{ev.X, ev.Y}
	s.mods = ev.Mods
	res := Result{Phase: PhaseDropped, Target: s.target, Message: s.message}
	if s.target != "" && s.targetHandlers.OnDrop != nil {
		res.Dropped = s.targetHandlers.OnDrop(m.state(s.target))
	}
	m.finish(res)
	return res
}

// HandleKey reacts to Escape while a session is active.
// It reports whether the key was consumed.
func (m *Manager) HandleKey(key string) bool {
	if key != "esc" && key != "escape" && key != "Escape" {
		return false
	}
	return m.Cancel()
}

// Cancel ends the active session without dropping. The accepting target, if
// any, receives OnDragLeave.
func (m *Manager) Cancel() bool {
	s := m.session
	if s == nil {
		return false
	}
	switch s.phase {
	case PhaseArmed:
		m.session = nil
		return true
	case PhaseGesture:
		m.endGesture()
		return true
	}
	if s.target != "" && s.targetHandlers.OnDragLeave != nil {
		s.targetHandlers.OnDragLeave(m.state(s.target))
	}
	m.finish(Result{Phase: PhaseCancelled, Target: s.target})
	return true
}

func (m *Manager) finish(res Result) {
	s := m.session
	s.phase = res.Phase
	if s.handlers.OnDragEnd != nil {
		st := m.state(s.initiator)
		st.Dropped = res.Dropped
		st.Cancelled = res.Phase == PhaseCancelled
		s.handlers.OnDragEnd(st)
	}
	if s.proxy != nil {
		s.proxy.Destroy()
	}
	m.session = nil
	m.logger.Debug().
		Str("element", s.initiator).
		Str("phase", res.Phase.String()).
		Str("target", res.Target).
		Bool("dropped", res.Dropped).
		Msg("drag finished")
}

func (m *Manager) state(element string) *DragState {
	s := m.session
	return &DragState{
		Element:   element,
		Initiator: s.initiator,
		X:         s.last.x,
		Y:         s.last.y,
		DX:        s.last.x - s.start.x,
		DY:        s.last.y - s.start.y,
		Mods:      s.mods,
		session:   s,
	}
}

func (m *Manager) startGesture(ev PointerEvent) bool {
	s := m.session
	if s.handlers.OnGestureStart == nil {
		return false
	}
	first, ok := s.touches[s.pointer]
	if !ok {
		first = s.last
	}
	second := point{ev.X, ev.Y}
	s.touches[ev.PointerID] = second
	s.gestureIDs = [2]int{s.pointer, ev.PointerID}
	s.gestureStart = [2]point{first, second}

	gs := m.gestureState(first, second)
	if !s.handlers.OnGestureStart(gs) {
		return false
	}
	s.phase = PhaseGesture
	m.logger.Debug().Str("element", s.initiator).Msg("gesture started")
	return true
}

func (m *Manager) moveGesture(ev PointerEvent) {
	s := m.session
	if ev.PointerID != s.gestureIDs[0] && ev.PointerID != s.gestureIDs[1] {
		return
	}
	s.touches[ev.PointerID] = point{ev.X, ev.Y}
	if s.handlers.OnGestureMove != nil {
		s.handlers.OnGestureMove(m.gestureState(s.touches[s.gestureIDs[0]], s.touches[s.gestureIDs[1]]))
	}
}

// endGesture reports PhaseCancelled: a gesture never drops anything.
func (m *Manager) endGesture() Result {
	s := m.session
	if s.handlers.OnGestureEnd != nil {
		s.handlers.OnGestureEnd(m.gestureState(s.touches[s.gestureIDs[0]], s.touches[s.gestureIDs[1]]))
	}
	m.session = nil
	m.logger.Debug().Str("element", s.initiator).Msg("gesture finished")
	return Result{Phase: PhaseCancelled}
}

func (m *Manager) gestureState(a, b point) *GestureState {
	s := m.session
	start := s.gestureStart
	gs := &GestureState{Element: s.initiator, Scale: 1}
	if d := distance(start[0], start[1]); d > 0 {
		gs.Scale = distance(a, b) / d
	}
	gs.Rotate = angle(a, b) - angle(start[0], start[1])
	c, c0 := midpoint(a, b), midpoint(start[0], start[1])
	gs.CenterX, gs.CenterY = c.x, c.y
	gs.DX, gs.DY = c.x-c0.x, c.y-c0.y
	return gs
}
