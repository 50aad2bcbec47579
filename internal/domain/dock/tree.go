package dock

import (
	"slices"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// adopt returns child with its parent id set to parentID, cloning when needed.
func adopt(child entity.Child, parentID string) entity.Child {
	if child.Parent() == parentID {
		return child
	}
	switch c := child.(type) {
	case *entity.Box:
		nc := c.Clone()
		nc.ParentID = parentID
		return nc
	case *entity.Panel:
		nc := c.Clone()
		nc.ParentID = parentID
		return nc
	}
	return child
}

func adoptTab(t *entity.Tab, panelID string) *entity.Tab {
	if t.ParentID == panelID {
		return t
	}
	nt := t.Clone()
	nt.ParentID = panelID
	return nt
}

// claim returns a copy of panel whose tabs all point back at it.
func claim(panel *entity.Panel) *entity.Panel {
	np := panel.Clone()
	for i, t := range np.Tabs {
		np.Tabs[i] = adoptTab(t, np.ID)
	}
	return np
}

// withSize returns a copy of child with a new size.
func withSize(child entity.Child, size float64) entity.Child {
	switch c := child.(type) {
	case *entity.Box:
		nc := c.Clone()
		nc.Size = size
		return nc
	case *entity.Panel:
		nc := c.Clone()
		nc.Size = size
		return nc
	}
	return child
}

// replacePanel swaps panel for newPanel in the same slot and rebuilds the path to the root.
func (e *Engine) replacePanel(l *entity.LayoutData, panel, newPanel *entity.Panel) *entity.LayoutData {
	box := l.ParentBox(panel)
	if box == nil {
		return l
	}
	pos := box.IndexOf(panel.ID)
	if pos < 0 {
		return l
	}
	for i, t := range newPanel.Tabs {
		newPanel.Tabs[i] = adoptTab(t, newPanel.ID)
	}
	newPanel.ParentID = box.ID
	newBox := box.Clone()
	newBox.Children[pos] = newPanel
	return e.replaceBox(l, box, newBox)
}

// replaceBox swaps box for newBox and clones every ancestor up to the root.
func (e *Engine) replaceBox(l *entity.LayoutData, box, newBox *entity.Box) *entity.LayoutData {
	for i, child := range newBox.Children {
		newBox.Children[i] = adopt(child, newBox.ID)
	}
	parent := l.ParentBox(box)
	if parent != nil {
		pos := parent.IndexOf(box.ID)
		newParent := parent.Clone()
		newBox.ParentID = parent.ID
		newParent.Children[pos] = newBox
		return e.replaceBox(l, parent, newParent)
	}
	newBox.ParentID = ""
	switch box {
	case l.DockBox:
		return entity.NewLayoutData(newBox, l.FloatBox, l.WindowBox, l.MaxBox)
	case l.FloatBox:
		return entity.NewLayoutData(l.DockBox, newBox, l.WindowBox, l.MaxBox)
	case l.WindowBox:
		return entity.NewLayoutData(l.DockBox, l.FloatBox, newBox, l.MaxBox)
	case l.MaxBox:
		return entity.NewLayoutData(l.DockBox, l.FloatBox, l.WindowBox, newBox)
	}
	return l
}

// removeChild detaches the child at pos and repairs the box it leaves behind:
// an empty non-root box is removed from its own parent, and a non-root box left
// with a single child is collapsed into its parent.
func (e *Engine) removeChild(l *entity.LayoutData, box *entity.Box, pos int) *entity.LayoutData {
	if pos < 0 || pos >= len(box.Children) {
		return l
	}
	newBox := box.Clone()
	newBox.Children = slices.Delete(newBox.Children, pos, pos+1)

	parent := l.ParentBox(box)
	if parent == nil {
		return e.replaceBox(l, box, newBox)
	}

	switch len(newBox.Children) {
	case 0:
		return e.removeChild(l, parent, parent.IndexOf(box.ID))
	case 1:
		return e.collapse(l, parent, box, newBox.Children[0])
	}
	return e.replaceBox(l, box, newBox)
}

// collapse replaces box inside parent by its only remaining child.
// The survivor takes over the box's slot and size; a survivor box running along
// the parent's axis is merged into the parent with its children rescaled.
func (e *Engine) collapse(l *entity.LayoutData, parent, box *entity.Box, survivor entity.Child) *entity.LayoutData {
	pos := parent.IndexOf(box.ID)
	newParent := parent.Clone()

	if sub, ok := survivor.(*entity.Box); ok && sub.Mode == parent.Mode {
		merged := scaleChildren(sub.Children, box.Size)
		newParent.Children = slices.Replace(newParent.Children, pos, pos+1, merged...)
		return e.replaceBox(l, parent, newParent)
	}

	newParent.Children[pos] = withSize(survivor, box.Size)
	return e.replaceBox(l, parent, newParent)
}

// scaleChildren returns copies of children whose sizes sum to total.
func scaleChildren(children []entity.Child, total float64) []entity.Child {
	var sum float64
	for _, c := range children {
		sum += c.NodeSize()
	}
	scale := 1.0
	if sum > 0 && total > 0 {
		scale = total / sum
	}
	out := make([]entity.Child, 0, len(children))
	for _, c := range children {
		out = append(out, withSize(c, c.NodeSize()*scale))
	}
	return out
}

// ResizeBox writes new sizes onto the children of a box, in order.
// It is the write-back step of a divider drag. Sizes beyond the child count are ignored.
func (e *Engine) ResizeBox(l *entity.LayoutData, box *entity.Box, sizes []float64) *entity.LayoutData {
	if box == nil || !l.Contains(box) || len(sizes) == 0 {
		return l
	}
	newBox := box.Clone()
	changed := false
	for i := range newBox.Children {
		if i >= len(sizes) || sizes[i] < 0 || sizes[i] == newBox.Children[i].NodeSize() {
			continue
		}
		newBox.Children[i] = withSize(newBox.Children[i], sizes[i])
		changed = true
	}
	if !changed {
		return l
	}
	return e.replaceBox(l, box, newBox)
}
