package dock

import (
	"math"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// FixFloatPanelPos keeps float and window panels reachable inside a container
// of the given size. Panels without a size get a third of the container and
// are centered; oversized panels are shrunk; panels dragged out of view are
// pulled back so that their header stays visible.
// Nothing happens when either dimension is at or below FloatMinContainer.
func (e *Engine) FixFloatPanelPos(l *entity.LayoutData, width, height float64) *entity.LayoutData {
	if l == nil || !(width > e.opts.FloatMinContainer) || !(height > e.opts.FloatMinContainer) {
		return l
	}
	for _, root := range []*entity.Box{l.FloatBox, l.WindowBox} {
		for _, child := range root.Children {
			panel, ok := child.(*entity.Panel)
			if !ok {
				continue
			}
			np, changed := e.clampPanel(panel, width, height)
			if changed {
				l = e.replacePanel(l, Refresh(l, panel), np)
			}
		}
	}
	return l
}

func (e *Engine) clampPanel(panel *entity.Panel, width, height float64) (*entity.Panel, bool) {
	header := e.opts.FloatHeader
	np := panel.Clone()
	center := !(np.W > 0) || !(np.H > 0)

	switch {
	case !(np.W > 0):
		np.W = math.Round(width / 3)
	case np.W > width:
		np.W = width
	}
	switch {
	case !(np.H > 0):
		np.H = math.Round(height / 3)
	case np.H > height:
		np.H = height
	}

	if center {
		np.X = math.Floor((width - np.W) / 2)
		np.Y = math.Floor((height - np.H) / 2)
	} else {
		switch {
		case np.Y > height-header:
			np.Y = math.Max(height-header-math.Floor(np.H/2), 0)
		case !(np.Y >= 0):
			np.Y = 0
		}
		switch {
		case np.X+np.W < header:
			np.X = header - math.Floor(np.W/2)
		case np.X > width-header:
			np.X = width - header - math.Floor(np.W/2)
		case math.IsNaN(np.X):
			np.X = 0
		}
	}

	changed := np.X != panel.X || np.Y != panel.Y || np.W != panel.W || np.H != panel.H
	return np, changed
}

// FloatPanelSize returns the float geometry for a panel dropped at rect,
// with width and height clamped to the group's preferred [min, max] bounds.
// A zero bound is ignored.
func FloatPanelSize(rect entity.Rect, group entity.TabGroup) entity.Rect {
	rect.W = clampPreferred(rect.W, group.PreferredFloatWidth)
	rect.H = clampPreferred(rect.H, group.PreferredFloatHeight)
	return rect
}

func clampPreferred(v float64, bounds [2]float64) float64 {
	if bounds[0] > 0 && !(v >= bounds[0]) {
		v = bounds[0]
	}
	if bounds[1] > 0 && v > bounds[1] {
		v = bounds[1]
	}
	return v
}
