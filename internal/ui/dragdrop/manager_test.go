package dragdrop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabdock/internal/domain/entity"
)

const scope = "host-1"

type recorder struct {
	events []string
}

func (r *recorder) add(s string) { r.events = append(r.events, s) }

func (r *recorder) target(name string, accept bool) Handlers {
	return Handlers{
		OnDragOver: func(s *DragState) {
			r.add("over:" + name)
			if accept {
				s.Accept(name)
			} else {
				s.Reject()
			}
		},
		OnDragLeave: func(*DragState) { r.add("leave:" + name) },
		OnDrop: func(s *DragState) bool {
			r.add("drop:" + name)
			return s.GetData("tab", scope) != nil
		},
	}
}

func (r *recorder) source() Handlers {
	return Handlers{
		OnDragStart: func(s *DragState) {
			r.add("start")
			s.SetData(map[string]any{"tab": "t1"}, scope)
		},
		OnDragEnd: func(s *DragState) {
			switch {
			case s.Cancelled:
				r.add("end:cancelled")
			case s.Dropped:
				r.add("end:dropped")
			default:
				r.add("end")
			}
		},
	}
}

// source at the top left; A spans the right half with B nested in its top.
func nestedTree(r *recorder) *HitTree {
	tree := NewHitTree()
	tree.Add("src", "", entity.Rect{X: 0, Y: 0, W: 100, H: 100}, r.source())
	tree.Add("A", "", entity.Rect{X: 200, Y: 0, W: 200, H: 200}, r.target("A", true))
	tree.Add("B", "A", entity.Rect{X: 200, Y: 0, W: 200, H: 100}, r.target("B", true))
	return tree
}

func press(m *Manager, x, y float64) bool { return m.PointerDown(PointerEvent{X: x, Y: y}) }
func move(m *Manager, x, y float64)       { m.PointerMove(PointerEvent{X: x, Y: y}) }
func release(m *Manager, x, y float64) Result {
	return m.PointerUp(PointerEvent{X: x, Y: y})
}

func TestHitTree_ElementAt(t *testing.T) {
	tree := NewHitTree()
	tree.Add("root", "", entity.Rect{W: 100, H: 100}, Handlers{})
	tree.Add("child", "root", entity.Rect{X: 50, Y: 50, W: 100, H: 100}, Handlers{})
	tree.Add("overlay", "", entity.Rect{X: 0, Y: 0, W: 20, H: 20}, Handlers{})

	id, ok := tree.ElementAt(60, 60)
	require.True(t, ok)
	assert.Equal(t, "child", id)

	id, _ = tree.ElementAt(120, 60)
	assert.Empty(t, id, "child is clipped to its parent")

	id, _ = tree.ElementAt(10, 10)
	assert.Equal(t, "overlay", id, "later elements are on top")

	assert.Equal(t, []string{"child", "root"}, tree.Ancestors("child"))

	tree.Reset()
	assert.Zero(t, tree.Len())
	_, ok = tree.ElementAt(60, 60)
	assert.False(t, ok)
}

func TestManager_LeaveBeforeEnter(t *testing.T) {
	r := &recorder{}
	m := NewManager(nestedTree(r))

	require.True(t, press(m, 10, 10))
	move(m, 300, 50) // into B
	require.Equal(t, PhaseDragging, m.Phase())
	target, msg := m.Target()
	assert.Equal(t, "B", target)
	assert.Equal(t, "B", msg)

	r.events = nil
	move(m, 300, 150) // into A only

	assert.Equal(t, []string{"leave:B", "over:A"}, r.events)
	target, _ = m.Target()
	assert.Equal(t, "A", target)
}

func TestManager_LeaveWhenInnerTargetAppearsBetweenMoves(t *testing.T) {
	r := &recorder{}
	m := NewManager(nestedTree(r))

	press(m, 10, 10)
	move(m, 300, 150)
	r.events = nil

	move(m, 300, 50)

	// A still contains the pointer, so it is told once B has taken over
	assert.Equal(t, []string{"over:B", "leave:A"}, r.events)
	target, _ := m.Target()
	assert.Equal(t, "B", target)
}

func TestManager_RejectingInnerElementKeepsTarget(t *testing.T) {
	r := &recorder{}
	tree := NewHitTree()
	tree.Add("src", "", entity.Rect{W: 100, H: 100}, r.source())
	tree.Add("A", "", entity.Rect{X: 200, W: 200, H: 200}, r.target("A", true))
	tree.Add("B", "A", entity.Rect{X: 200, W: 200, H: 100}, r.target("B", false))
	m := NewManager(tree)

	press(m, 10, 10)
	move(m, 300, 150) // A only
	r.events = nil

	move(m, 300, 50) // into B, which rejects

	assert.Equal(t, []string{"over:B", "over:A"}, r.events)
	target, msg := m.Target()
	assert.Equal(t, "A", target)
	assert.Equal(t, "A", msg)
}

func TestManager_TargetRejectingItselfIsLeft(t *testing.T) {
	r := &recorder{}
	acceptA := true
	tree := NewHitTree()
	tree.Add("src", "", entity.Rect{W: 100, H: 100}, r.source())
	tree.Add("A", "", entity.Rect{X: 200, W: 200, H: 200}, Handlers{
		OnDragOver: func(s *DragState) {
			r.add("over:A")
			if acceptA {
				s.Accept("A")
			}
		},
		OnDragLeave: func(*DragState) { r.add("leave:A") },
	})
	m := NewManager(tree)

	press(m, 10, 10)
	move(m, 300, 150)
	r.events = nil

	acceptA = false
	move(m, 310, 150)

	assert.Equal(t, []string{"over:A", "leave:A"}, r.events)
	target, _ := m.Target()
	assert.Empty(t, target)
}

func TestManager_SameTargetIsRequeriedWithoutLeave(t *testing.T) {
	r := &recorder{}
	m := NewManager(nestedTree(r))

	press(m, 10, 10)
	move(m, 300, 150)
	r.events = nil
	move(m, 310, 160)

	assert.Equal(t, []string{"over:A"}, r.events)
}

func TestManager_RejectFallsThroughToAncestor(t *testing.T) {
	r := &recorder{}
	tree := NewHitTree()
	tree.Add("src", "", entity.Rect{W: 100, H: 100}, r.source())
	tree.Add("A", "", entity.Rect{X: 200, W: 200, H: 200}, r.target("A", true))
	tree.Add("B", "A", entity.Rect{X: 200, W: 200, H: 100}, r.target("B", false))
	m := NewManager(tree)

	press(m, 10, 10)
	move(m, 300, 50)

	target, _ := m.Target()
	assert.Equal(t, "A", target)
	assert.Equal(t, []string{"start", "over:B", "over:A"}, r.events)

	// leaving every target tells the last one
	r.events = nil
	move(m, 50, 150)
	assert.Equal(t, []string{"leave:A"}, r.events)
	target, _ = m.Target()
	assert.Empty(t, target)
}

func TestManager_Drop(t *testing.T) {
	r := &recorder{}
	m := NewManager(nestedTree(r))

	press(m, 10, 10)
	move(m, 300, 50)
	res := release(m, 300, 50)

	assert.Equal(t, PhaseDropped, res.Phase)
	assert.True(t, res.Dropped)
	assert.Equal(t, "B", res.Target)
	assert.Equal(t, []string{"start", "over:B", "drop:B", "end:dropped"}, r.events)
	assert.False(t, m.Active())
}

func TestManager_ReleaseWithoutTarget(t *testing.T) {
	r := &recorder{}
	m := NewManager(nestedTree(r))

	press(m, 10, 10)
	move(m, 50, 150)
	res := release(m, 50, 150)

	assert.Equal(t, PhaseDropped, res.Phase)
	assert.False(t, res.Dropped)
	assert.Equal(t, []string{"start", "end"}, r.events)
}

func TestManager_BelowThresholdCancelsSilently(t *testing.T) {
	r := &recorder{}
	m := NewManager(nestedTree(r), WithThreshold(5))

	press(m, 10, 10)
	move(m, 13, 14)
	assert.Equal(t, PhaseArmed, m.Phase())

	res := release(m, 13, 14)

	assert.Equal(t, PhaseCancelled, res.Phase)
	assert.Empty(t, r.events)
	assert.False(t, m.Active())
}

func TestManager_EscapeCancels(t *testing.T) {
	r := &recorder{}
	m := NewManager(nestedTree(r))

	press(m, 10, 10)
	move(m, 300, 50)
	r.events = nil

	assert.False(t, m.HandleKey("enter"))
	require.True(t, m.HandleKey("esc"))

	assert.Equal(t, []string{"leave:B", "end:cancelled"}, r.events)
	assert.False(t, m.Active())
	assert.Equal(t, PhaseIdle, release(m, 300, 50).Phase)
	assert.False(t, m.HandleKey("esc"))
}

func TestManager_SingleSession(t *testing.T) {
	r := &recorder{}
	m := NewManager(nestedTree(r))

	require.True(t, press(m, 10, 10))
	assert.False(t, press(m, 20, 20))
	move(m, 300, 50)
	assert.False(t, m.PointerDown(PointerEvent{X: 10, Y: 10, PointerID: 7}))

	assert.Equal(t, []string{"start", "over:B"}, r.events)
}

func TestManager_PressOutsideInitiator(t *testing.T) {
	r := &recorder{}
	m := NewManager(nestedTree(r))

	assert.False(t, press(m, 300, 50))
	assert.False(t, press(m, 900, 900))
	assert.False(t, m.Active())
}

func TestManager_InitiatorFoundThroughAncestors(t *testing.T) {
	r := &recorder{}
	tree := nestedTree(r)
	tree.Add("label", "src", entity.Rect{X: 10, Y: 10, W: 20, H: 10}, Handlers{})
	m := NewManager(tree)

	require.True(t, press(m, 15, 15))
	move(m, 40, 40)

	assert.Equal(t, PhaseDragging, m.Phase())
}

func TestManager_StartWithoutDataCancels(t *testing.T) {
	started := 0
	tree := NewHitTree()
	tree.Add("src", "", entity.Rect{W: 100, H: 100}, Handlers{
		OnDragStart: func(*DragState) { started++ },
	})
	m := NewManager(tree)

	press(m, 10, 10)
	move(m, 50, 50)

	assert.Equal(t, 1, started)
	assert.False(t, m.Active())
}

func TestManager_PayloadScope(t *testing.T) {
	var (
		own, foreign any
		late         any
	)
	tree := NewHitTree()
	tree.Add("src", "", entity.Rect{W: 100, H: 100}, Handlers{
		OnDragStart: func(s *DragState) { s.SetData(map[string]any{"tab": "t1"}, scope) },
		OnDragMove:  func(s *DragState) { s.SetData(map[string]any{"tab": "other"}, scope) },
	})
	tree.Add("dst", "", entity.Rect{X: 200, W: 100, H: 100}, Handlers{
		OnDragOver: func(s *DragState) {
			own = s.GetData("tab", scope)
			foreign = s.GetData("tab", "host-2")
			late = s.Getter(scope)("tab")
		},
	})
	m := NewManager(tree)

	press(m, 10, 10)
	move(m, 250, 50)

	assert.Equal(t, "t1", own)
	assert.Nil(t, foreign)
	assert.Equal(t, "t1", late, "SetData outside OnDragStart is ignored")
}

type fakeProxy struct {
	moves     int
	destroyed bool
}

func (p *fakeProxy) Move(float64, float64) { p.moves++ }
func (p *fakeProxy) Destroy()              { p.destroyed = true }

func TestManager_DraggingElementLifecycle(t *testing.T) {
	r := &recorder{}
	var proxies []*fakeProxy
	m := NewManager(nestedTree(r), WithDraggingElement(func(s *DragState) Proxy {
		p := &fakeProxy{}
		proxies = append(proxies, p)
		return p
	}))

	press(m, 10, 10)
	assert.Empty(t, proxies, "no proxy while armed")
	move(m, 300, 50)
	move(m, 310, 50)
	release(m, 310, 50)

	require.Len(t, proxies, 1)
	assert.Equal(t, 2, proxies[0].moves)
	assert.True(t, proxies[0].destroyed)
}

func TestManager_DragDeltas(t *testing.T) {
	var dx, dy float64
	tree := NewHitTree()
	tree.Add("src", "", entity.Rect{W: 100, H: 100}, Handlers{
		OnDragStart: func(s *DragState) { s.SetData(map[string]any{"x": 1}, "") },
		OnDragMove:  func(s *DragState) { dx, dy = s.DX, s.DY },
	})
	m := NewManager(tree)

	press(m, 10, 10)
	move(m, 40, 5)

	assert.Equal(t, 30.0, dx)
	assert.Equal(t, -5.0, dy)
}

func TestManager_Gesture(t *testing.T) {
	var started, ended *GestureState
	var moves []*GestureState
	tree := NewHitTree()
	tree.Add("canvas", "", entity.Rect{W: 500, H: 500}, Handlers{
		OnGestureStart: func(g *GestureState) bool { started = g; return true },
		OnGestureMove:  func(g *GestureState) { moves = append(moves, g) },
		OnGestureEnd:   func(g *GestureState) { ended = g },
	})
	m := NewManager(tree)

	require.True(t, m.PointerDown(PointerEvent{X: 100, Y: 100, PointerID: 1, Touch: true}))
	require.True(t, m.PointerDown(PointerEvent{X: 200, Y: 100, PointerID: 2, Touch: true}))
	require.Equal(t, PhaseGesture, m.Phase())
	require.NotNil(t, started)
	assert.Equal(t, 1.0, started.Scale)

	// pinch out and rotate a quarter turn around the first finger
	m.PointerMove(PointerEvent{X: 100, Y: 300, PointerID: 2, Touch: true})
	require.Len(t, moves, 1)
	assert.InDelta(t, 2.0, moves[0].Scale, 1e-9)
	assert.InDelta(t, math.Pi/2, moves[0].Rotate, 1e-9)
	assert.InDelta(t, 100.0, moves[0].CenterX, 1e-9)
	assert.InDelta(t, 200.0, moves[0].CenterY, 1e-9)
	assert.InDelta(t, -50.0, moves[0].DX, 1e-9)
	assert.InDelta(t, 100.0, moves[0].DY, 1e-9)

	assert.False(t, m.PointerDown(PointerEvent{X: 10, Y: 10, PointerID: 3, Touch: true}))

	res := m.PointerUp(PointerEvent{PointerID: 1, Touch: true})
	assert.Equal(t, PhaseCancelled, res.Phase)
	assert.False(t, res.Dropped)
	require.NotNil(t, ended)
	assert.False(t, m.Active())
}

func TestManager_GestureRefused(t *testing.T) {
	tree := NewHitTree()
	tree.Add("canvas", "", entity.Rect{W: 500, H: 500}, Handlers{
		OnDragStart:    func(s *DragState) { s.SetData(map[string]any{"k": 1}, "") },
		OnGestureStart: func(*GestureState) bool { return false },
	})
	m := NewManager(tree)

	m.PointerDown(PointerEvent{X: 100, Y: 100, PointerID: 1, Touch: true})
	assert.False(t, m.PointerDown(PointerEvent{X: 200, Y: 100, PointerID: 2, Touch: true}))
	assert.Equal(t, PhaseArmed, m.Phase())

	m.PointerMove(PointerEvent{X: 120, Y: 100, PointerID: 1, Touch: true})
	assert.Equal(t, PhaseDragging, m.Phase())
}

func TestManagers_AreIndependent(t *testing.T) {
	r1, r2 := &recorder{}, &recorder{}
	m1 := NewManager(nestedTree(r1))
	m2 := NewManager(nestedTree(r2))

	require.True(t, press(m1, 10, 10))
	assert.True(t, press(m2, 10, 10))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "dragging", PhaseDragging.String())
	assert.True(t, PhaseDropped.Terminal())
	assert.False(t, PhaseArmed.Terminal())
}
