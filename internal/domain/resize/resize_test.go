package resize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedistribute(t *testing.T) {
	tests := []struct {
		name     string
		sizes    []float64
		mins     []float64
		newTotal float64
		want     []float64
	}{
		{"proportional shrink", []float64{100, 300}, []float64{0, 0}, 200, []float64{50, 150}},
		{"proportional grow", []float64{100, 300}, nil, 800, []float64{200, 600}},
		{"clamps and redistributes", []float64{100, 100, 100}, []float64{90, 10, 10}, 150, []float64{90, 30, 30}},
		{"minimums exceed total", []float64{100, 100}, []float64{100, 100}, 150, []float64{100, 100}},
		{"nan total", []float64{100}, []float64{10}, math.NaN(), []float64{100}},
		{"empty", nil, nil, 100, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redistribute(tt.sizes, tt.mins, tt.newTotal)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "index %d", i)
			}
		})
	}
}

func TestRedistribute_RespectsMinimums(t *testing.T) {
	sizes := []float64{40, 260, 80, 120, 500}
	mins := []float64{30, 50, 70, 10, 100}
	for newTotal := Sum(mins); newTotal <= Sum(sizes)+200; newTotal += 17 {
		got := Redistribute(sizes, mins, newTotal)
		for i := range got {
			assert.GreaterOrEqual(t, got[i]+1e-9, mins[i], "total %v index %d", newTotal, i)
		}
		assert.InDelta(t, newTotal, Sum(got), 1e-6, "total %v", newTotal)
	}
}

func TestRedistribute_DoesNotMutateInput(t *testing.T) {
	sizes := []float64{100, 100}

	Redistribute(sizes, []float64{0, 0}, 50)

	assert.Equal(t, []float64{100, 100}, sizes)
}

func TestDivider_Adjacent(t *testing.T) {
	d := Divider{
		Before: []Item{{Size: 300, Min: 100}},
		After:  []Item{{Size: 300, Min: 100}},
	}

	before, after := d.Drag(50, ModeAdjacent)
	assert.Equal(t, []float64{350}, before)
	assert.Equal(t, []float64{250}, after)

	// the requested 50 for the second panel is below its minimum
	before, after = d.Drag(250, ModeAdjacent)
	assert.Equal(t, []float64{500}, before)
	assert.Equal(t, []float64{100}, after)

	before, after = d.Drag(-1000, ModeAdjacent)
	assert.Equal(t, []float64{100}, before)
	assert.Equal(t, []float64{500}, after)
}

func TestDivider_AdjacentLeavesOthersAlone(t *testing.T) {
	d := Divider{
		Before: []Item{{Size: 100}, {Size: 100, Min: 50}},
		After:  []Item{{Size: 100, Min: 50}, {Size: 100}},
	}

	before, after := d.Drag(80, ModeAdjacent)

	assert.Equal(t, []float64{100, 150}, before)
	assert.Equal(t, []float64{50, 100}, after)
}

func TestDivider_All(t *testing.T) {
	d := Divider{
		Before: []Item{{Size: 200, Min: 50}, {Size: 200, Min: 50}},
		After:  []Item{{Size: 100, Min: 50}, {Size: 300, Min: 100}},
	}

	t.Run("grow before draws from adjacent then the rest", func(t *testing.T) {
		before, after := d.Drag(100, ModeAll)
		assert.InDeltaSlice(t, []float64{250, 250}, before, 1e-9)
		assert.InDeltaSlice(t, []float64{50, 250}, after, 1e-9)
	})

	t.Run("shrink before", func(t *testing.T) {
		before, after := d.Drag(-300, ModeAll)
		assert.InDeltaSlice(t, []float64{50, 50}, before, 1e-9)
		assert.InDeltaSlice(t, []float64{175, 525}, after, 1e-9)
	})

	t.Run("clamped to group minimums", func(t *testing.T) {
		before, after := d.Drag(1000, ModeAll)
		assert.InDeltaSlice(t, []float64{325, 325}, before, 1e-9)
		assert.InDeltaSlice(t, []float64{50, 100}, after, 1e-9)
	})

	t.Run("nan is ignored", func(t *testing.T) {
		before, after := d.Drag(math.NaN(), ModeAll)
		assert.Equal(t, []float64{200, 200}, before)
		assert.Equal(t, []float64{100, 300}, after)
	})
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModeAdjacent, ModeFor(Modifiers{}))
	assert.Equal(t, ModeAll, ModeFor(Modifiers{Shift: true}))
	assert.Equal(t, ModeAll, ModeFor(Modifiers{Ctrl: true}))
	assert.Equal(t, ModeAll, ModeFor(Modifiers{Alt: true}))
	assert.Equal(t, "all", ModeAll.String())
}
