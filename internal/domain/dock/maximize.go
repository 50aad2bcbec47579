package dock

import "github.com/bnema/tabdock/internal/domain/entity"

// Maximize toggles the maximized state of a panel, or of the panel holding a tab.
//
// Maximizing leaves a locked empty placeholder in the panel's slot, carrying
// its size and float geometry, and moves the panel into maxbox. Toggling again
// puts the panel back in the placeholder's slot. When the placeholder is gone
// the panel is docked on the right of dockbox.
func (e *Engine) Maximize(l *entity.LayoutData, node entity.Node) *entity.LayoutData {
	if l == nil || !l.Contains(node) {
		return l
	}
	switch n := node.(type) {
	case *entity.Tab:
		panel := l.PanelOf(n)
		if panel == nil {
			return l
		}
		if panel.ActiveID != n.ID {
			np := panel.Clone()
			np.ActiveID = n.ID
			l = e.replacePanel(l, panel, np)
			panel = Refresh(l, panel)
		}
		return e.Maximize(l, panel)
	case *entity.Panel:
		if n.ID == entity.MaximizedPlaceholderID {
			return l
		}
		if l.ParentBox(n) == l.MaxBox {
			return e.restore(l, n)
		}
		return e.maximize(l, n)
	}
	return l
}

func (e *Engine) maximize(l *entity.LayoutData, panel *entity.Panel) *entity.LayoutData {
	if len(l.MaxBox.Children) > 0 {
		return l
	}
	placeholder := &entity.Panel{
		ID:        entity.MaximizedPlaceholderID,
		Group:     panel.Group,
		Size:      panel.Size,
		X:         panel.X,
		Y:         panel.Y,
		W:         panel.W,
		H:         panel.H,
		Z:         panel.Z,
		PanelLock: &entity.PanelLock{},
	}
	l = e.replacePanel(l, panel, placeholder)
	return e.DockPanelToBox(l, panel, l.MaxBox, entity.DropMiddle)
}

func (e *Engine) restore(l *entity.LayoutData, panel *entity.Panel) *entity.LayoutData {
	l = e.removeChild(l, l.MaxBox, l.MaxBox.IndexOf(panel.ID))

	placeholder, ok := l.Lookup(entity.MaximizedPlaceholderID).(*entity.Panel)
	if !ok || l.ParentBox(placeholder) == nil {
		return e.DockPanelToBox(l, panel, l.DockBox, entity.DropRight)
	}
	np := panel.Clone()
	np.Size = placeholder.Size
	np.X, np.Y, np.W, np.H, np.Z = placeholder.X, placeholder.Y, placeholder.W, placeholder.H, placeholder.Z
	return e.replacePanel(l, placeholder, np)
}

// MoveToFront activates a tab and raises its panel, or raises a panel.
// Only float panels carry a z-index; docked panels just get the tab activated.
func (e *Engine) MoveToFront(l *entity.LayoutData, node entity.Node) *entity.LayoutData {
	if l == nil || !l.Contains(node) {
		return l
	}
	var panel *entity.Panel
	activeID := ""
	switch n := node.(type) {
	case *entity.Tab:
		panel = l.PanelOf(n)
		activeID = n.ID
	case *entity.Panel:
		panel = n
	}
	if panel == nil {
		return l
	}

	np := panel.Clone()
	changed := false
	if activeID != "" && np.ActiveID != activeID {
		np.ActiveID = activeID
		changed = true
	}
	if box := l.ParentBox(panel); box != nil && box.Mode == entity.ModeFloat {
		if z := e.NextZIndex(panel.Z); z != panel.Z {
			np.Z = z
			changed = true
		}
	}
	if !changed {
		return l
	}
	return e.replacePanel(l, panel, np)
}
