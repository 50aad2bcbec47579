// Package layout turns a dock layout revision into terminal cell geometry and
// renders it onto a text canvas.
package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// Smallest float panel drawn, in cells.
const (
	MinFloatWidth  = 12
	MinFloatHeight = 4
)

// Placement is where a panel is drawn.
type Placement struct {
	Panel     *entity.Panel
	Rect      entity.Rect
	Floating  bool
	Maximized bool
}

// Frame is the geometry of one layout revision inside an area. Panels are in
// paint order: docked panels first, then float panels by z-index.
type Frame struct {
	Area    entity.Rect
	Panels  []Placement
	Windows []*entity.Panel

	boxes  map[string]entity.Rect
	panels map[string]int
}

// Arrange computes the frame of l inside area. Docked siblings share their
// box's span in proportion to their sizes, separated by gap cells. A
// maximized panel fills the whole area and hides everything else.
func Arrange(l *entity.LayoutData, area entity.Rect, gap float64) *Frame {
	f := &Frame{
		Area:   area,
		boxes:  make(map[string]entity.Rect),
		panels: make(map[string]int),
	}
	if l == nil || area.Empty() {
		return f
	}

	if len(l.MaxBox.Children) > 0 {
		if p, ok := l.MaxBox.Children[0].(*entity.Panel); ok {
			f.add(Placement{Panel: p, Rect: area, Maximized: true})
			return f
		}
	}

	f.arrangeBox(l.DockBox, area, gap)

	floats := entity.Panels(l.FloatBox)
	slices.SortStableFunc(floats, func(a, b *entity.Panel) int { return cmp.Compare(a.Z, b.Z) })
	for _, p := range floats {
		f.add(Placement{Panel: p, Rect: floatRect(p, area), Floating: true})
	}
	f.Windows = entity.Panels(l.WindowBox)
	return f
}

func (f *Frame) add(p Placement) {
	f.panels[p.Panel.ID] = len(f.Panels)
	f.Panels = append(f.Panels, p)
}

func (f *Frame) arrangeBox(box *entity.Box, rect entity.Rect, gap float64) {
	if box == nil {
		return
	}
	f.boxes[box.ID] = rect
	n := len(box.Children)
	if n == 0 {
		return
	}

	horizontal := box.Mode != entity.ModeVertical
	span := rect.H
	if horizontal {
		span = rect.W
	}
	weights := make([]float64, n)
	for i, child := range box.Children {
		weights[i] = child.NodeSize()
	}
	spans := Split(math.Max(span-gap*float64(n-1), 0), weights)

	offset := 0.0
	for i, child := range box.Children {
		cr := rect
		if horizontal {
			cr.X, cr.W = rect.X+offset, spans[i]
		} else {
			cr.Y, cr.H = rect.Y+offset, spans[i]
		}
		offset += spans[i] + gap

		switch c := child.(type) {
		case *entity.Box:
			f.arrangeBox(c, cr, gap)
		case *entity.Panel:
			f.add(Placement{Panel: c, Rect: cr})
		}
	}
}

// Split divides total whole cells by weight. Non-positive weights count as
// the default node size. Rounding is applied to running edges, so the parts
// always add up to total.
func Split(total float64, weights []float64) []float64 {
	out := make([]float64, len(weights))
	sum := 0.0
	for _, w := range weights {
		sum += weight(w)
	}
	if sum == 0 {
		return out
	}
	acc, prev := 0.0, 0.0
	for i, w := range weights {
		acc += weight(w)
		edge := math.Round(total * acc / sum)
		out[i] = edge - prev
		prev = edge
	}
	return out
}

func weight(w float64) float64 {
	if !(w > 0) {
		return entity.DefaultNodeSize
	}
	return w
}

func floatRect(p *entity.Panel, area entity.Rect) entity.Rect {
	return entity.Rect{
		X: area.X + math.Round(p.X),
		Y: area.Y + math.Round(p.Y),
		W: math.Max(math.Round(p.W), MinFloatWidth),
		H: math.Max(math.Round(p.H), MinFloatHeight),
	}
}

// Panel returns the placement of a drawn panel.
func (f *Frame) Panel(id string) (Placement, bool) {
	i, ok := f.panels[id]
	if !ok {
		return Placement{}, false
	}
	return f.Panels[i], true
}

// NodeRect returns the rect of a drawn panel or docked box.
func (f *Frame) NodeRect(id string) (entity.Rect, bool) {
	if p, ok := f.Panel(id); ok {
		return p.Rect, true
	}
	r, ok := f.boxes[id]
	return r, ok
}

// PanelRects returns the drawn panels for directional navigation. Panels
// covered by a float panel still take part.
func (f *Frame) PanelRects() []entity.PanelRect {
	out := make([]entity.PanelRect, 0, len(f.Panels))
	for _, p := range f.Panels {
		if p.Panel.ID == entity.MaximizedPlaceholderID {
			continue
		}
		out = append(out, entity.PanelRect{PanelID: p.Panel.ID, Rect: p.Rect})
	}
	return out
}
