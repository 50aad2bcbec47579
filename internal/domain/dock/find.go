package dock

import "github.com/bnema/tabdock/internal/domain/entity"

const (
	kindMask      = entity.FilterTab | entity.FilterPanel | entity.FilterBox
	placementMask = entity.FilterEverywhere
)

// Find returns the first node with the given id, searching dockbox, floatbox,
// windowbox and maxbox in that order, depth-first.
// A filter without kind bits matches every kind and a filter without placement
// bits searches every root.
func Find(l *entity.LayoutData, id string, filter entity.Filter) entity.Node {
	if l == nil || id == "" {
		return nil
	}
	if filter&kindMask == 0 {
		filter |= kindMask
	}
	if filter&placementMask == 0 {
		filter |= placementMask
	}

	roots := []struct {
		box       *entity.Box
		placement entity.Filter
	}{
		{l.DockBox, entity.FilterDocked},
		{l.FloatBox, entity.FilterFloated},
		{l.WindowBox, entity.FilterWindowed},
		{l.MaxBox, entity.FilterMaximized},
	}
	for _, root := range roots {
		if root.box == nil || filter&root.placement == 0 {
			continue
		}
		if found := findInBox(root.box, id, filter); found != nil {
			return found
		}
	}
	return nil
}

func findInBox(box *entity.Box, id string, filter entity.Filter) entity.Node {
	var result entity.Node
	box.Walk(func(n entity.Node) bool {
		if n.NodeID() != id {
			return true
		}
		var kind entity.Filter
		switch n.(type) {
		case *entity.Box:
			kind = entity.FilterBox
		case *entity.Panel:
			kind = entity.FilterPanel
		case *entity.Tab:
			kind = entity.FilterTab
		}
		if filter&kind == 0 {
			return true
		}
		result = n
		return false
	})
	return result
}

// FindTab is a typed shorthand for Find with FilterAnyTab.
func FindTab(l *entity.LayoutData, id string) *entity.Tab {
	t, _ := Find(l, id, entity.FilterAnyTab).(*entity.Tab)
	return t
}

// FindPanel is a typed shorthand for Find with FilterAnyPanel.
func FindPanel(l *entity.LayoutData, id string) *entity.Panel {
	p, _ := Find(l, id, entity.FilterAnyPanel).(*entity.Panel)
	return p
}

// FindBox is a typed shorthand for Find with FilterAnyBox.
func FindBox(l *entity.LayoutData, id string) *entity.Box {
	b, _ := Find(l, id, entity.FilterAnyBox).(*entity.Box)
	return b
}
