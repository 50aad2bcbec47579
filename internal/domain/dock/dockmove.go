package dock

import "github.com/bnema/tabdock/internal/domain/entity"

// MoveOptions carries what DockMove needs besides the operands.
type MoveOptions struct {
	// FloatRect positions a floated panel. When nil the panel is placed by
	// FixFloatPanelPos inside Container.
	FloatRect *entity.Rect
	Container entity.Rect
	Groups    map[string]entity.TabGroup
}

// DockMove is the single entry point for drops and programmatic moves.
// Source is detached first, then placed according to dir relative to target.
// The result is normalized whenever anything changed. When the target does not
// survive the detach, for example a drop onto the source's own panel, the
// original revision is returned.
func (e *Engine) DockMove(l *entity.LayoutData, source, target entity.Node, dir entity.DropDirection, opts MoveOptions) *entity.LayoutData {
	if l == nil || source == nil {
		return l
	}
	var next *entity.LayoutData
	switch dir {
	case entity.DropMaximize:
		next = e.Maximize(l, source)
	case entity.DropFront:
		next = e.MoveToFront(l, source)
	default:
		next = e.place(l, source, target, dir, opts)
	}
	if next == l {
		return l
	}
	return e.FixLayoutData(next, opts.Groups, nil)
}

func (e *Engine) place(l *entity.LayoutData, source, target entity.Node, dir entity.DropDirection, opts MoveOptions) *entity.LayoutData {
	if source.NodeID() != "" && l.Lookup(source.NodeID()) != nil && !l.Contains(source) {
		// stale source from an older revision
		return l
	}
	detached := e.RemoveFromLayout(l, source)

	switch dir {
	case entity.DropRemove:
		return detached
	case entity.DropFloat:
		panel := e.ConvertToPanel(source)
		if panel == nil {
			return l
		}
		if opts.FloatRect != nil {
			rect := FloatPanelSize(*opts.FloatRect, opts.Groups[panel.Group])
			return e.FloatPanel(detached, panel, &rect)
		}
		floated := e.FloatPanel(detached, panel, nil)
		return e.FixFloatPanelPos(floated, opts.Container.W, opts.Container.H)
	case entity.DropNewWindow:
		panel := e.ConvertToPanel(source)
		if panel == nil {
			return l
		}
		return e.PanelToWindow(detached, panel)
	}

	if target == nil {
		return l
	}
	var placed *entity.LayoutData
	switch t := detached.Lookup(target.NodeID()).(type) {
	case *entity.Panel:
		placed = e.DockPanelToPanel(detached, e.ConvertToPanel(source), t, dir)
	case *entity.Box:
		placed = e.DockPanelToBox(detached, e.ConvertToPanel(source), t, dir)
	case *entity.Tab:
		placed = e.AddNextToTab(detached, source, t, dir)
	}
	if placed == nil || placed == detached {
		return l
	}
	return placed
}

// UpdateTab replaces the tab with the given id, keeping its position.
// With makeActive the tab also becomes the active tab of its panel.
func (e *Engine) UpdateTab(l *entity.LayoutData, id string, tab *entity.Tab, makeActive bool) *entity.LayoutData {
	if l == nil || tab == nil {
		return l
	}
	old := FindTab(l, id)
	if old == nil {
		return l
	}
	panel := l.PanelOf(old)
	if panel == nil {
		return l
	}
	np := panel.Clone()
	nt := tab.Clone()
	if nt.ID == "" {
		nt.ID = id
	}
	nt.ParentID = np.ID
	np.Tabs[np.IndexOf(id)] = nt
	if np.ActiveID == id || makeActive {
		np.ActiveID = nt.ID
	}
	return e.replacePanel(l, panel, np)
}
