package model

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/tabdock/internal/application/usecase"
	"github.com/bnema/tabdock/internal/domain/dock"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/ui/dragdrop"
	"github.com/bnema/tabdock/internal/ui/layout"
)

// dragScope keeps dock payloads away from other drag sources.
const dragScope = "tabdock"

// Hit tree element id prefixes.
const (
	panelPrefix  = "panel:"
	gripPrefix   = "grip:"
	headerPrefix = "header:"
	tabPrefix    = "tab:"
)

// pendingDrop is what the accepting target will do on release.
type pendingDrop struct {
	element string

	source entity.Node
	target entity.Node
	dir    entity.DropDirection
	float  *entity.Rect
	hint   entity.Rect
	label  string
}

// dragProxy is the label following the pointer.
type dragProxy struct {
	label   string
	x, y    int
	visible bool
}

func (p *dragProxy) Move(x, y float64) {
	p.x, p.y = int(x), int(y)
}

func (p *dragProxy) Destroy() {
	p.visible = false
}

func (m *DockModel) newProxy(st *dragdrop.DragState) dragdrop.Proxy {
	payload, ok := dock.PayloadFrom(st.Getter(dragScope))
	if !ok {
		return nil
	}
	label := ""
	switch {
	case payload.Tab != nil:
		label = layout.TabTitle(payload.Tab)
	case payload.Panel != nil:
		label = fmt.Sprintf("panel %s (%d tabs)", payload.Panel.ID, len(payload.Panel.Tabs))
	}
	m.proxy = &dragProxy{label: " " + label + " ", x: int(st.X), y: int(st.Y), visible: true}
	return m.proxy
}

// rebuildTree registers every drawn panel in paint order, so later panels win
// hit tests. A panel element accepts edge drops, its header accepts drops into
// the panel and each tab label accepts drops next to its tab.
func (m *DockModel) rebuildTree() {
	m.tree.Reset()
	for _, place := range m.frame.Panels {
		id := place.Panel.ID
		if id == entity.MaximizedPlaceholderID {
			continue
		}
		panelEl := panelPrefix + id
		headerEl := headerPrefix + id

		m.tree.Add(panelEl, "", place.Rect, dragdrop.Handlers{
			OnDragOver:  func(st *dragdrop.DragState) { m.overPanel(st, id) },
			OnDragLeave: m.leave,
			OnDrop:      m.drop,
		})
		m.tree.Add(gripPrefix+id, panelEl, layout.GripRect(place.Rect), dragdrop.Handlers{
			OnDragStart: func(st *dragdrop.DragState) { m.startPanelDrag(st, id) },
			OnDragEnd:   m.endDrag,
		})
		m.tree.Add(headerEl, panelEl, layout.HeaderRect(place.Rect), dragdrop.Handlers{
			OnDragOver:  func(st *dragdrop.DragState) { m.overHeader(st, id) },
			OnDragLeave: m.leave,
			OnDrop:      m.drop,
		})
		for _, label := range layout.TabStrip(place.Panel, place.Rect) {
			tabID, rect := label.Tab.ID, label.Rect
			m.tree.Add(tabPrefix+tabID, headerEl, rect, dragdrop.Handlers{
				OnDragStart: func(st *dragdrop.DragState) { m.startTabDrag(st, tabID, rect) },
				OnDragEnd:   m.endDrag,
				OnDragOver:  func(st *dragdrop.DragState) { m.overTab(st, tabID, rect) },
				OnDragLeave: m.leave,
				OnDrop:      m.drop,
			})
		}
	}
}

func (m *DockModel) handleMouse(msg tea.MouseMsg) {
	ev := dragdrop.PointerEvent{
		X:    float64(msg.X),
		Y:    float64(msg.Y),
		Mods: dragdrop.Modifiers{Shift: msg.Shift, Ctrl: msg.Ctrl, Alt: msg.Alt},
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.drag.PointerDown(ev)
		m.click(ev.X, ev.Y)
	case tea.MouseActionMotion:
		m.drag.PointerMove(ev)
	case tea.MouseActionRelease:
		res := m.drag.PointerUp(ev)
		if res.Phase == dragdrop.PhaseDropped && res.Dropped {
			m.status = "moved " + res.Message
		}
		m.pending = nil
		m.relayout()
	}
}

// click focuses the panel under the pointer and activates a clicked tab.
func (m *DockModel) click(x, y float64) {
	hit, ok := m.tree.ElementAt(x, y)
	if !ok {
		return
	}
	for _, id := range m.tree.Ancestors(hit) {
		if tabID, ok := strings.CutPrefix(id, tabPrefix); ok {
			if tab := dock.FindTab(m.dock.Layout(), tabID); tab != nil {
				m.dock.UpdateTab(m.ctx, tab.ID, tab, true)
			}
		}
		if panelID, ok := strings.CutPrefix(id, panelPrefix); ok {
			m.focus.SetActive(panelID)
			break
		}
	}
	m.relayout()
}

func (m *DockModel) startTabDrag(st *dragdrop.DragState, tabID string, rect entity.Rect) {
	l := m.dock.Layout()
	tab := dock.FindTab(l, tabID)
	panel := l.PanelOf(tab)
	if panel == nil {
		return
	}
	group := tab.Group
	if group == "" {
		group = panel.Group
	}
	if m.group(group).TabLocked {
		m.status = fmt.Sprintf("tabs of group %q are locked", group)
		return
	}
	place, _ := m.frame.Panel(panel.ID)
	m.grab = entity.Rect{X: st.X - rect.X, Y: 0}
	st.SetData(dock.DragPayload{
		Tab:       tab,
		PanelSize: [2]float64{place.Rect.W, place.Rect.H},
		TabGroup:  group,
	}.Fields(), dragScope)
}

func (m *DockModel) startPanelDrag(st *dragdrop.DragState, panelID string) {
	panel := dock.FindPanel(m.dock.Layout(), panelID)
	place, ok := m.frame.Panel(panelID)
	if panel == nil || !ok {
		return
	}
	if panel.PanelLock != nil && len(panel.Tabs) == 0 {
		return
	}
	m.grab = entity.Rect{X: st.X - place.Rect.X, Y: st.Y - place.Rect.Y}
	st.SetData(dock.DragPayload{
		Panel:     panel,
		PanelSize: [2]float64{place.Rect.W, place.Rect.H},
		TabGroup:  panel.Group,
	}.Fields(), dragScope)
}

func (m *DockModel) overPanel(st *dragdrop.DragState, panelID string) {
	payload, ok := dock.PayloadFrom(st.Getter(dragScope))
	if !ok {
		return
	}
	l := m.dock.Layout()
	panel := dock.FindPanel(l, panelID)
	place, ok := m.frame.Panel(panelID)
	if panel == nil || !ok {
		return
	}
	samePanel := payload.Panel != nil && payload.Panel.ID == panelID
	if payload.Tab != nil && payload.Tab.ParentID == panelID && len(panel.Tabs) == 1 {
		samePanel = true
	}

	edge := dock.DropEdge(place.Rect, st.X+0.5, st.Y+0.5, m.group(payload.TabGroup), samePanel, payload.TabCount(), m.zones)
	switch edge.Direction {
	case "":
		m.pending = nil
		st.Reject()
		return
	case entity.DropFloat:
		rect := entity.Rect{
			X: st.X - m.grab.X,
			Y: st.Y - m.grab.Y,
			W: payload.PanelSize[0],
			H: payload.PanelSize[1],
		}
		m.accept(st, &pendingDrop{source: payload.Source(), dir: entity.DropFloat, float: &rect, hint: rect, label: "float"})
		return
	}

	depth := dock.ActualDepth(l, panel, edge.Depth, edge.Mode, edge.Direction)
	target := dock.DropTarget(l, panel, depth)
	rect, ok := m.frame.NodeRect(target.NodeID())
	if !ok {
		rect = place.Rect
	}
	m.accept(st, &pendingDrop{
		source: payload.Source(),
		target: target,
		dir:    edge.Direction,
		hint:   hintRect(rect, edge.Direction),
		label:  fmt.Sprintf("%s of %s", edge.Direction, describe(target)),
	})
}

func (m *DockModel) overHeader(st *dragdrop.DragState, panelID string) {
	payload, ok := dock.PayloadFrom(st.Getter(dragScope))
	panel := dock.FindPanel(m.dock.Layout(), panelID)
	if !ok || panel == nil || !m.sameGroup(payload, panel) {
		st.Reject()
		return
	}
	if payload.Panel != nil && payload.Panel.ID == panelID {
		st.Reject()
		return
	}
	place, _ := m.frame.Panel(panelID)
	m.accept(st, &pendingDrop{
		source: payload.Source(),
		target: panel,
		dir:    entity.DropMiddle,
		hint:   place.Rect,
		label:  "into panel " + panelID,
	})
}

func (m *DockModel) overTab(st *dragdrop.DragState, tabID string, rect entity.Rect) {
	payload, ok := dock.PayloadFrom(st.Getter(dragScope))
	if !ok || (payload.Tab != nil && payload.Tab.ID == tabID) {
		st.Reject()
		return
	}
	l := m.dock.Layout()
	tab := dock.FindTab(l, tabID)
	panel := l.PanelOf(tab)
	if panel == nil || !m.sameGroup(payload, panel) || (payload.Panel != nil && payload.Panel.ID == panel.ID) {
		st.Reject()
		return
	}

	dir, hint := entity.DropBeforeTab, entity.Rect{X: rect.X, Y: rect.Y, W: 1, H: 1}
	if st.X+0.5 >= rect.X+rect.W/2 {
		dir, hint = entity.DropAfterTab, entity.Rect{X: rect.Right() - 1, Y: rect.Y, W: 1, H: 1}
	}
	m.accept(st, &pendingDrop{
		source: payload.Source(),
		target: tab,
		dir:    dir,
		hint:   hint,
		label:  fmt.Sprintf("%s %q", dir, layout.TabTitle(tab)),
	})
}

// sameGroup reports whether the dragged tabs may join panel. Tabs only mix
// with tabs of their own group.
func (m *DockModel) sameGroup(payload dock.DragPayload, panel *entity.Panel) bool {
	return payload.TabGroup == panel.Group
}

func (m *DockModel) accept(st *dragdrop.DragState, p *pendingDrop) {
	p.element = st.Element
	m.pending = p
	st.Accept(p.label)
}

// leave drops the pending move only when it belongs to the element being
// left. An inner element may already have replaced it.
func (m *DockModel) leave(st *dragdrop.DragState) {
	if m.pending != nil && m.pending.element == st.Element {
		m.pending = nil
	}
}

// drop applies the pending move. Nodes are looked up again by id since the
// revision may have changed while dragging.
func (m *DockModel) drop(*dragdrop.DragState) bool {
	p := m.pending
	m.pending = nil
	if p == nil {
		return false
	}
	source := m.dock.Find(p.source.NodeID(), entity.FilterAll)
	var target entity.Node
	if p.target != nil {
		if target = m.dock.Find(p.target.NodeID(), entity.FilterAll); target == nil {
			return false
		}
	}
	changed := m.dock.DockMove(m.ctx, usecase.MoveInput{
		Source:    source,
		Target:    target,
		Direction: p.dir,
		FloatRect: p.float,
	})
	if changed {
		m.focusNode(p.source.NodeID())
	}
	return changed
}

// endDrag runs on the initiator once the session is over. A float panel
// released where nothing accepts it still moves with the pointer.
func (m *DockModel) endDrag(st *dragdrop.DragState) {
	m.pending = nil
	switch {
	case st.Cancelled:
		m.status = "drag cancelled"
	case st.Dropped:
	default:
		if id, ok := strings.CutPrefix(st.Initiator, gripPrefix); ok && m.moveFloat(id, st.DX, st.DY) {
			return
		}
		m.status = "nothing to drop on"
	}
}

func (m *DockModel) moveFloat(panelID string, dx, dy float64) bool {
	place, ok := m.frame.Panel(panelID)
	panel := dock.FindPanel(m.dock.Layout(), panelID)
	if !ok || !place.Floating || panel == nil {
		return false
	}
	rect := place.Rect
	rect.X += dx
	rect.Y += dy
	return m.dock.DockMove(m.ctx, usecase.MoveInput{Source: panel, Direction: entity.DropFloat, FloatRect: &rect})
}

// focusNode focuses the panel now holding the node with the given id.
func (m *DockModel) focusNode(id string) {
	l := m.dock.Layout()
	switch n := dock.Find(l, id, entity.FilterAll).(type) {
	case *entity.Panel:
		m.focus.SetActive(n.ID)
	case *entity.Tab:
		if p := l.PanelOf(n); p != nil {
			m.focus.SetActive(p.ID)
		}
	}
}

// hintRect is the part of rect a drop in dir would take.
func hintRect(rect entity.Rect, dir entity.DropDirection) entity.Rect {
	halfW, halfH := float64(int(rect.W/2)), float64(int(rect.H/2))
	switch dir {
	case entity.DropLeft:
		rect.W = halfW
	case entity.DropRight:
		rect.X, rect.W = rect.Right()-halfW, halfW
	case entity.DropTop:
		rect.H = halfH
	case entity.DropBottom:
		rect.Y, rect.H = rect.Bottom()-halfH, halfH
	}
	return rect
}

func describe(n entity.Node) string {
	switch n.(type) {
	case *entity.Box:
		return "box " + n.NodeID()
	case *entity.Panel:
		return "panel " + n.NodeID()
	}
	return n.NodeID()
}
