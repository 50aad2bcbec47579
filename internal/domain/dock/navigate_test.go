package dock

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/tabdock/internal/domain/entity"
)

func grid() []entity.PanelRect {
	return []entity.PanelRect{
		{PanelID: "a", Rect: entity.Rect{X: 0, Y: 0, W: 50, H: 50}},
		{PanelID: "b", Rect: entity.Rect{X: 50, Y: 0, W: 50, H: 50}},
		{PanelID: "c", Rect: entity.Rect{X: 0, Y: 50, W: 50, H: 50}},
		{PanelID: "d", Rect: entity.Rect{X: 50, Y: 50, W: 50, H: 50}},
	}
}

func TestNearestPanel_Grid(t *testing.T) {
	rects := grid()
	tests := []struct {
		from   int
		dir    NavDirection
		want   string
		wantOK bool
	}{
		{0, NavRight, "b", true},
		{0, NavDown, "c", true},
		{0, NavLeft, "", false},
		{0, NavUp, "", false},
		{3, NavLeft, "c", true},
		{3, NavUp, "b", true},
		{1, NavDown, "d", true},
		{2, NavRight, "d", true},
	}
	for _, tt := range tests {
		t.Run(rects[tt.from].PanelID+"-"+string(tt.dir), func(t *testing.T) {
			got, ok := NearestPanel(rects[tt.from], rects, tt.dir)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNearestPanel_PrefersCloserAndAligned(t *testing.T) {
	from := entity.PanelRect{PanelID: "from", Rect: entity.Rect{X: 0, Y: 0, W: 50, H: 100}}
	candidates := []entity.PanelRect{
		{PanelID: "far", Rect: entity.Rect{X: 200, Y: 0, W: 50, H: 100}},
		{PanelID: "offset", Rect: entity.Rect{X: 50, Y: 60, W: 50, H: 100}},
		{PanelID: "near", Rect: entity.Rect{X: 50, Y: 0, W: 50, H: 50}},
	}

	got, ok := NearestPanel(from, candidates, NavRight)

	assert.True(t, ok)
	assert.Equal(t, "near", got)
}

func TestFindNearestPanel_Degenerate(t *testing.T) {
	from := entity.Rect{W: 50, H: 50}

	assert.Equal(t, -1.0, FindNearestPanel(from, entity.Rect{X: math.NaN(), W: 50, H: 50}, NavRight))
	assert.Equal(t, -1.0, FindNearestPanel(from, entity.Rect{X: 60}, NavRight))
	assert.Equal(t, -1.0, FindNearestPanel(from, entity.Rect{X: 60, W: 50, H: 50}, "diagonal"))
	score := FindNearestPanel(from, entity.Rect{X: 50, W: 50, H: 50}, NavRight)
	assert.False(t, math.IsNaN(score))
	assert.GreaterOrEqual(t, score, 0.0)
}
