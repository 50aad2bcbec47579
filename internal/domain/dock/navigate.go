package dock

import (
	"math"
	"sort"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// NavDirection is an arrow key direction.
type NavDirection string

const (
	NavUp    NavDirection = "up"
	NavDown  NavDirection = "down"
	NavLeft  NavDirection = "left"
	NavRight NavDirection = "right"
)

// overlapWeight breaks ties between equally distant panels in favor of the larger overlap.
const overlapWeight = 0.001

// FindNearestPanel scores rect to as a navigation target from rect from.
// Lower is closer. It returns -1 when to is not in the given direction or does
// not overlap from on the perpendicular axis. The result is never NaN.
func FindNearestPanel(from, to entity.Rect, dir NavDirection) float64 {
	if from.Empty() || to.Empty() {
		return -1
	}
	fromCX, fromCY := from.Center()
	toCX, toCY := to.Center()

	var distance, overlap, alignment float64
	switch dir {
	case NavUp:
		if toCY >= fromCY {
			return -1
		}
		distance = from.Y - to.Bottom() + from.H
		overlap = math.Min(from.Right(), to.Right()) - math.Max(from.X, to.X)
		alignment = math.Abs(from.X - to.X)
	case NavDown:
		if toCY <= fromCY {
			return -1
		}
		distance = to.Y - from.Bottom() + from.H
		overlap = math.Min(from.Right(), to.Right()) - math.Max(from.X, to.X)
		alignment = math.Abs(from.X - to.X)
	case NavLeft:
		if toCX >= fromCX {
			return -1
		}
		distance = from.X - to.Right() + from.W
		overlap = math.Min(from.Bottom(), to.Bottom()) - math.Max(from.Y, to.Y)
		alignment = math.Abs(from.Y - to.Y)
	case NavRight:
		if toCX <= fromCX {
			return -1
		}
		distance = to.X - from.Right() + from.W
		overlap = math.Min(from.Bottom(), to.Bottom()) - math.Max(from.Y, to.Y)
		alignment = math.Abs(from.Y - to.Y)
	default:
		return -1
	}

	if distance < 0 || !(overlap > 0) {
		return -1
	}
	score := distance*(alignment+1) - overlap*overlapWeight
	if math.IsNaN(score) {
		return -1
	}
	return math.Max(score, 0)
}

// NearestPanel picks the best navigation target among candidates.
// Ties keep candidate order. ok is false when no candidate qualifies.
func NearestPanel(from entity.PanelRect, candidates []entity.PanelRect, dir NavDirection) (id string, ok bool) {
	type scored struct {
		id    string
		score float64
	}
	var ranked []scored
	for _, c := range candidates {
		if c.PanelID == from.PanelID {
			continue
		}
		if s := FindNearestPanel(from.Rect, c.Rect, dir); s >= 0 {
			ranked = append(ranked, scored{id: c.PanelID, score: s})
		}
	}
	if len(ranked) == 0 {
		return "", false
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})
	return ranked[0].id, true
}
