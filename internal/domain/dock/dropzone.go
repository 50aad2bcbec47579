package dock

import (
	"math"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// DropZones are the edge thresholds, as fractions of the target size, used to
// classify a pointer over a panel.
type DropZones struct {
	Edge    float64 `mapstructure:"edge"`    // outer band: dock against the outermost box
	Near    float64 `mapstructure:"near"`    // middle band: dock against the parent box
	Default float64 `mapstructure:"default"` // inner band: dock against the panel
	// MaxRate caps the size used to compute the fractions so that bands stay
	// usable on very large panels.
	MaxRate float64 `mapstructure:"max_rate"`
}

// DefaultDropZones returns the standard thresholds.
func DefaultDropZones() DropZones {
	return DropZones{Edge: 0.075, Near: 0.15, Default: 0.3, MaxRate: 500}
}

// Depth values returned by DropEdge.
const (
	DepthPanel  = 0
	DepthParent = 1
	DepthRoot   = 3
)

// EdgeResult is the classification of a pointer position over a panel.
// A zero Direction means no drop.
type EdgeResult struct {
	Direction entity.DropDirection
	Mode      entity.BoxMode
	Depth     int
}

// DropEdge classifies a pointer at (x, y) over a panel rect.
// The closest edge gives the direction and the distance to it the depth.
// Beyond the inner band the panel floats when its group allows it. Docking is
// disabled for groups with DisableDock and when dragging over the source panel.
func DropEdge(rect entity.Rect, x, y float64, group entity.TabGroup, samePanel bool, tabCount int, zones DropZones) EdgeResult {
	if rect.Empty() || math.IsNaN(x) || math.IsNaN(y) {
		return EdgeResult{}
	}
	maxRate := zones.MaxRate
	if !(maxRate > 0) {
		maxRate = math.Inf(1)
	}
	widthRate := math.Min(rect.W, maxRate)
	heightRate := math.Min(rect.H, maxRate)

	left := (x - rect.X) / widthRate
	right := (rect.Right() - x) / widthRate
	top := (y - rect.Y) / heightRate
	bottom := (rect.Bottom() - y) / heightRate
	closest := math.Min(math.Min(left, right), math.Min(top, bottom))

	if !(closest >= 0) {
		return EdgeResult{}
	}

	depth := DepthPanel
	noDock := group.DisableDock || samePanel
	switch {
	case !noDock && closest < zones.Edge:
		depth = DepthRoot
	case !noDock && closest < zones.Near:
		depth = DepthParent
	case !noDock && closest < zones.Default:
	case group.CanFloat(tabCount):
		return EdgeResult{Direction: entity.DropFloat, Mode: entity.ModeFloat}
	case noDock:
		return EdgeResult{}
	}

	switch closest {
	case left:
		return EdgeResult{Direction: entity.DropLeft, Mode: entity.ModeHorizontal, Depth: depth}
	case right:
		return EdgeResult{Direction: entity.DropRight, Mode: entity.ModeHorizontal, Depth: depth}
	case top:
		return EdgeResult{Direction: entity.DropTop, Mode: entity.ModeVertical, Depth: depth}
	default:
		return EdgeResult{Direction: entity.DropBottom, Mode: entity.ModeVertical, Depth: depth}
	}
}

// ActualDepth adjusts a requested depth to the tree around panel, returning
// how many levels above the panel the drop applies.
// The walk stops at a box running along mode where the panel's branch is not
// on the dropped edge, so a drop never jumps over siblings. When the panel's
// own parent already runs along mode one extra level is requested.
func ActualDepth(l *entity.LayoutData, panel *entity.Panel, depth int, mode entity.BoxMode, dir entity.DropDirection) int {
	if depth <= DepthPanel || l == nil || !l.Contains(panel) {
		return DepthPanel
	}
	afterPanel := dir.AfterTarget()
	box := l.ParentBox(panel)
	if box != nil && box.Mode == mode {
		depth++
	}

	var previous entity.Child = panel
	reached := 0
	for box != nil && reached < depth {
		if box.Mode == mode {
			edge := 0
			if afterPanel {
				edge = len(box.Children) - 1
			}
			if box.Children[edge].NodeID() != previous.NodeID() {
				break
			}
		}
		previous = box
		box = l.ParentBox(box)
		reached++
	}
	for depth > reached {
		depth -= 2
	}
	if depth < DepthPanel {
		return DepthPanel
	}
	return depth
}

// DropTarget returns the node a drop at the given depth applies to: the panel
// for depth 0, otherwise the ancestor box depth levels up.
func DropTarget(l *entity.LayoutData, panel *entity.Panel, depth int) entity.Child {
	var target entity.Child = panel
	for i := 0; i < depth; i++ {
		parent := l.ParentBox(target)
		if parent == nil {
			break
		}
		target = parent
	}
	return target
}
