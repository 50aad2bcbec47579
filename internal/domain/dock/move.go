package dock

import (
	"slices"

	"github.com/bnema/tabdock/internal/domain/entity"
)

const (
	// boxShare is the fraction of a box kept by the box when a panel docks beside it.
	boxShare = 0.7
	// wrapBoxSize and wrapPanelSize size the two children of a perpendicular wrapper box.
	wrapBoxSize   = 280
	wrapPanelSize = 120
)

// AddTabToPanel inserts source into panel at index. A panel source contributes
// all its tabs and keeps its active tab; a tab source becomes active.
// An index outside [0, len(tabs)] appends. The maximize placeholder only
// reserves a slot and takes no tabs.
func (e *Engine) AddTabToPanel(l *entity.LayoutData, source entity.Node, panel *entity.Panel, index int) *entity.LayoutData {
	if l == nil || !l.Contains(panel) || panel.ID == entity.MaximizedPlaceholderID {
		return l
	}
	var tabs []*entity.Tab
	activeID := ""
	switch s := source.(type) {
	case *entity.Tab:
		tabs = []*entity.Tab{s}
		activeID = s.ID
	case *entity.Panel:
		tabs = s.Tabs
		activeID = s.ActiveID
	}
	if len(tabs) == 0 {
		return l
	}
	if index < 0 || index > len(panel.Tabs) {
		index = len(panel.Tabs)
	}

	np := panel.Clone()
	added := make([]*entity.Tab, 0, len(tabs))
	for _, t := range tabs {
		nt := t.Clone()
		nt.ParentID = np.ID
		added = append(added, nt)
	}
	np.Tabs = slices.Insert(np.Tabs, index, added...)
	if activeID == "" || np.IndexOf(activeID) < 0 {
		activeID = added[len(added)-1].ID
	}
	np.ActiveID = activeID
	return e.replacePanel(l, panel, np)
}

// AddNextToTab inserts source before or after the target tab in the target's panel.
func (e *Engine) AddNextToTab(l *entity.LayoutData, source entity.Node, target *entity.Tab, dir entity.DropDirection) *entity.LayoutData {
	if l == nil || !l.Contains(target) {
		return l
	}
	if dir != entity.DropBeforeTab && dir != entity.DropAfterTab {
		return l
	}
	panel := l.PanelOf(target)
	if panel == nil {
		return l
	}
	pos := panel.IndexOf(target.ID)
	if dir.AfterTarget() {
		pos++
	}
	return e.AddTabToPanel(l, source, panel, pos)
}

// ConvertToPanel wraps a tab in a fresh panel. Panels are returned as is.
func (e *Engine) ConvertToPanel(source entity.Node) *entity.Panel {
	switch s := source.(type) {
	case *entity.Panel:
		return s
	case *entity.Tab:
		id := e.newID()
		t := s.Clone()
		t.ParentID = id
		return &entity.Panel{
			ID:       id,
			Tabs:     []*entity.Tab{t},
			ActiveID: t.ID,
			Group:    t.Group,
			Size:     entity.DefaultNodeSize,
		}
	}
	return nil
}

// DockPanelToPanel docks newPanel against target.
// Middle merges the tabs into target. A direction along the parent box axis
// makes newPanel a sibling sharing target's size; a perpendicular direction
// replaces target by a new box holding both.
func (e *Engine) DockPanelToPanel(l *entity.LayoutData, newPanel, target *entity.Panel, dir entity.DropDirection) *entity.LayoutData {
	if l == nil || newPanel == nil || !l.Contains(target) {
		return l
	}
	if dir == entity.DropMiddle {
		return e.AddTabToPanel(l, newPanel, target, -1)
	}
	mode, ok := dir.DockMode()
	if !ok {
		return l
	}
	box := l.ParentBox(target)
	if box == nil || !box.Mode.IsDockMode() {
		return l
	}

	pos := box.IndexOf(target.ID)
	nb := box.Clone()
	np := claim(newPanel)
	tp := target.Clone()

	if box.Mode == mode {
		tp.Size = target.Size * 0.5
		np.Size = tp.Size
		nb.Children[pos] = tp
		if dir.AfterTarget() {
			pos++
		}
		nb.Children = slices.Insert(nb.Children, pos, entity.Child(np))
		return e.replaceBox(l, box, nb)
	}

	wrapper := &entity.Box{ID: e.newID(), Mode: mode, Size: target.Size}
	tp.Size = entity.DefaultNodeSize
	np.Size = entity.DefaultNodeSize
	tp.ParentID = wrapper.ID
	np.ParentID = wrapper.ID
	if dir.AfterTarget() {
		wrapper.Children = []entity.Child{tp, np}
	} else {
		wrapper.Children = []entity.Child{np, tp}
	}
	nb.Children[pos] = wrapper
	return e.replaceBox(l, box, nb)
}

// DockPanelToBox docks newPanel against a whole box.
// Docking along the parent's axis inserts the panel next to the box with 30%
// of its size; otherwise the box is wrapped in a perpendicular box. For the
// dockbox root the panel goes to its front or back, and for maxbox the panel
// simply becomes the maximized panel.
func (e *Engine) DockPanelToBox(l *entity.LayoutData, newPanel *entity.Panel, box *entity.Box, dir entity.DropDirection) *entity.LayoutData {
	if l == nil || newPanel == nil || !l.Contains(box) {
		return l
	}
	np := claim(newPanel)

	if box == l.MaxBox {
		nb := box.Clone()
		nb.Children = append(nb.Children, np)
		return e.replaceBox(l, box, nb)
	}

	mode, ok := dir.DockMode()
	if !ok {
		return l
	}

	if parent := l.ParentBox(box); parent != nil {
		pos := parent.IndexOf(box.ID)
		npb := parent.Clone()
		bc := box.Clone()
		if parent.Mode == mode {
			np.Size = box.Size * (1 - boxShare)
			bc.Size = box.Size * boxShare
			npb.Children[pos] = bc
			if dir.AfterTarget() {
				pos++
			}
			npb.Children = slices.Insert(npb.Children, pos, entity.Child(np))
			return e.replaceBox(l, parent, npb)
		}
		npb.Children[pos] = e.wrap(bc, np, mode, dir, box.Size)
		return e.replaceBox(l, parent, npb)
	}

	if box != l.DockBox {
		return l
	}
	if box.Mode == mode {
		nb := box.Clone()
		var total float64
		for _, c := range box.Children {
			total += c.NodeSize()
		}
		if !(total > 0) {
			total = entity.DefaultNodeSize
		}
		// 30% of the root, measured against its children
		np.Size = total * (1 - boxShare) / boxShare
		if dir.AfterTarget() {
			nb.Children = append(nb.Children, np)
		} else {
			nb.Children = slices.Insert(nb.Children, 0, entity.Child(np))
		}
		return e.replaceBox(l, box, nb)
	}
	wrapper := e.wrap(box.Clone(), np, mode, dir, box.Size)
	return e.replaceBox(l, box, wrapper)
}

// wrap builds a box of the given mode holding bc and np in drop order.
func (e *Engine) wrap(bc *entity.Box, np *entity.Panel, mode entity.BoxMode, dir entity.DropDirection, size float64) *entity.Box {
	wrapper := &entity.Box{ID: e.newID(), Mode: mode, Size: size}
	bc.Size = wrapBoxSize
	np.Size = wrapPanelSize
	bc.ParentID = wrapper.ID
	np.ParentID = wrapper.ID
	if dir.AfterTarget() {
		wrapper.Children = []entity.Child{bc, np}
	} else {
		wrapper.Children = []entity.Child{np, bc}
	}
	return wrapper
}

// FloatPanel moves or creates panel in floatbox and raises it to the top.
// A non-nil rect sets its geometry; otherwise FixFloatPanelPos will place it.
func (e *Engine) FloatPanel(l *entity.LayoutData, panel *entity.Panel, rect *entity.Rect) *entity.LayoutData {
	if l == nil || panel == nil {
		return l
	}
	if l.Lookup(panel.ID) != nil {
		if !l.Contains(panel) {
			return l
		}
		l = e.RemoveFromLayout(l, panel)
	}
	np := claim(panel)
	if rect != nil {
		np.X, np.Y, np.W, np.H = rect.X, rect.Y, rect.W, rect.H
	}
	np.Z = e.NextZIndex(0)
	nb := l.FloatBox.Clone()
	nb.Children = append(nb.Children, np)
	return e.replaceBox(l, l.FloatBox, nb)
}

// PanelToWindow moves or creates panel in windowbox.
func (e *Engine) PanelToWindow(l *entity.LayoutData, panel *entity.Panel) *entity.LayoutData {
	if l == nil || panel == nil {
		return l
	}
	if l.Lookup(panel.ID) != nil {
		if !l.Contains(panel) {
			return l
		}
		l = e.RemoveFromLayout(l, panel)
	}
	nb := l.WindowBox.Clone()
	nb.Children = append(nb.Children, claim(panel))
	return e.replaceBox(l, l.WindowBox, nb)
}
