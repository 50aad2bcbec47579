package dock

import (
	"slices"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// RemoveFromLayout detaches a tab, panel or box from the revision.
//
// Removing the last tab of an unlocked panel removes the panel as well, and a
// box left with a single child collapses into its parent. When the maximized
// panel goes away its placeholder is dropped from the dock tree too.
// A node that is not part of l is a no-op.
func (e *Engine) RemoveFromLayout(l *entity.LayoutData, node entity.Node) *entity.LayoutData {
	if l == nil || !l.Contains(node) {
		return l
	}
	switch n := node.(type) {
	case *entity.Tab:
		panel := l.PanelOf(n)
		if panel == nil {
			return l
		}
		wasMaximized := l.ParentBox(panel) == l.MaxBox
		l = e.removeTab(l, panel, n)
		if wasMaximized && len(l.MaxBox.Children) == 0 {
			l = e.dropPlaceholder(l)
		}
		return l
	case *entity.Panel:
		box := l.ParentBox(n)
		if box == nil {
			return l
		}
		wasMaximized := box.Mode == entity.ModeMaximize
		l = e.removeChild(l, box, box.IndexOf(n.ID))
		if wasMaximized {
			l = e.dropPlaceholder(l)
		}
		return l
	case *entity.Box:
		parent := l.ParentBox(n)
		if parent == nil {
			// roots are never removed
			return l
		}
		return e.removeChild(l, parent, parent.IndexOf(n.ID))
	}
	return l
}

func (e *Engine) removeTab(l *entity.LayoutData, panel *entity.Panel, tab *entity.Tab) *entity.LayoutData {
	pos := panel.IndexOf(tab.ID)
	if pos < 0 {
		return l
	}
	if len(panel.Tabs) == 1 && panel.PanelLock == nil {
		box := l.ParentBox(panel)
		if box == nil {
			return l
		}
		return e.removeChild(l, box, box.IndexOf(panel.ID))
	}

	np := panel.Clone()
	np.Tabs = slices.Delete(np.Tabs, pos, pos+1)
	if np.ActiveID == tab.ID {
		np.ActiveID = ""
		switch {
		case pos < len(np.Tabs):
			np.ActiveID = np.Tabs[pos].ID
		case len(np.Tabs) > 0:
			np.ActiveID = np.Tabs[len(np.Tabs)-1].ID
		}
	}
	return e.replacePanel(l, panel, np)
}

// dropPlaceholder removes the maximize placeholder panel if it is present.
func (e *Engine) dropPlaceholder(l *entity.LayoutData) *entity.LayoutData {
	ph, ok := l.Lookup(entity.MaximizedPlaceholderID).(*entity.Panel)
	if !ok {
		return l
	}
	box := l.ParentBox(ph)
	if box == nil {
		return l
	}
	return e.removeChild(l, box, box.IndexOf(ph.ID))
}
