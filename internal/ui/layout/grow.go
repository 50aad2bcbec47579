package layout

import (
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/domain/resize"
)

// MinChildCells is the smallest span a docked child is shrunk to.
const MinChildCells = 4

// Grow returns new sizes for the children of box after child idx grows by
// delta cells along the box axis; a negative delta shrinks it. span is the
// box's drawn span in cells, used to convert cells to size units.
// The divider after the child is moved, or the one before it for the last
// child. ok is false when the box has nothing to trade size with.
func Grow(box *entity.Box, idx int, delta, span float64, mode resize.Mode) (sizes []float64, ok bool) {
	n := len(box.Children)
	if n < 2 || idx < 0 || idx >= n || !(span > 0) {
		return nil, false
	}

	items := make([]resize.Item, n)
	total := 0.0
	for i, child := range box.Children {
		items[i].Size = weight(child.NodeSize())
		total += items[i].Size
	}
	unit := total / span
	for i := range items {
		items[i].Min = MinChildCells * unit
	}

	var before, after []float64
	if idx < n-1 {
		before, after = resize.Divider{Before: items[:idx+1], After: items[idx+1:]}.Drag(delta*unit, mode)
	} else {
		before, after = resize.Divider{Before: items[:idx], After: items[idx:]}.Drag(-delta*unit, mode)
	}
	return append(before, after...), true
}
