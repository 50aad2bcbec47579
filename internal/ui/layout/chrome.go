package layout

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// maxTabTitle is the widest tab title shown in a tab strip, in cells.
const maxTabTitle = 18

// TabLabel is one tab in a panel's tab strip.
type TabLabel struct {
	Tab    *entity.Tab
	Rect   entity.Rect
	Text   string
	Active bool
}

// GripRect is the panel's top border row. Dragging it moves the whole panel.
func GripRect(r entity.Rect) entity.Rect {
	return entity.Rect{X: r.X, Y: r.Y, W: r.W, H: 1}
}

// HeaderRect is the tab strip row just inside the border.
func HeaderRect(r entity.Rect) entity.Rect {
	return entity.Rect{X: r.X + 1, Y: r.Y + 1, W: max(r.W-2, 0), H: 1}
}

// BodyRect is the content area below the tab strip.
func BodyRect(r entity.Rect) entity.Rect {
	return entity.Rect{X: r.X + 1, Y: r.Y + 2, W: max(r.W-2, 0), H: max(r.H-3, 0)}
}

// TabStrip lays out the tab labels of a panel drawn at r. Labels that do not
// fit in the header are left out.
func TabStrip(p *entity.Panel, r entity.Rect) []TabLabel {
	header := HeaderRect(r)
	labels := make([]TabLabel, 0, len(p.Tabs))
	x := header.X
	for _, tab := range p.Tabs {
		text := " " + ansi.Truncate(TabTitle(tab), maxTabTitle, "…") + " "
		w := float64(ansi.StringWidth(text))
		if x+w > header.Right() {
			break
		}
		labels = append(labels, TabLabel{
			Tab:    tab,
			Rect:   entity.Rect{X: x, Y: header.Y, W: w, H: 1},
			Text:   text,
			Active: tab.ID == p.ActiveID,
		})
		x += w
	}
	return labels
}

// TabTitle is the title shown for a tab, its id when it has none.
func TabTitle(t *entity.Tab) string {
	if t.Title != "" {
		return t.Title
	}
	return t.ID
}
