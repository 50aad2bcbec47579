package resize

import "math"

// Mode selects how a divider drag spreads the size change.
type Mode int

const (
	// ModeAdjacent moves the boundary between the two children next to the divider.
	ModeAdjacent Mode = iota
	// ModeAll spreads the change across every child before and after the divider.
	ModeAll
)

func (m Mode) String() string {
	if m == ModeAll {
		return "all"
	}
	return "adjacent"
}

// Modifiers are the keys held while dragging a divider.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// ModeFor returns ModeAll when any modifier is held.
func ModeFor(mods Modifiers) Mode {
	if mods.Shift || mods.Ctrl || mods.Alt {
		return ModeAll
	}
	return ModeAdjacent
}

// Item is one child along the divided axis.
type Item struct {
	Size float64
	Min  float64
}

// Divider sits between Before and After. Before is ordered away from the
// divider's far side, so its last item and the first item of After touch it.
type Divider struct {
	Before []Item
	After  []Item
}

// Drag moves the divider by delta (positive grows Before) and returns the new
// sizes of both groups. The drag is clamped so no child goes below its minimum.
func (d Divider) Drag(delta float64, mode Mode) (before, after []float64) {
	before = sizesOf(d.Before)
	after = sizesOf(d.After)
	if len(before) == 0 || len(after) == 0 || math.IsNaN(delta) || delta == 0 {
		return before, after
	}
	if mode == ModeAll {
		return d.dragAll(delta)
	}
	return d.dragAdjacent(delta)
}

func (d Divider) dragAdjacent(delta float64) (before, after []float64) {
	before = sizesOf(d.Before)
	after = sizesOf(d.After)
	last := len(before) - 1
	a, b := d.Before[last], d.After[0]

	delta = clamp(delta, a.Min-a.Size, b.Size-b.Min)
	before[last] = a.Size + delta
	after[0] = b.Size - delta
	return before, after
}

func (d Divider) dragAll(delta float64) (before, after []float64) {
	beforeTotal, beforeMin := totals(d.Before)
	afterTotal, afterMin := totals(d.After)
	delta = clamp(delta, beforeMin-beforeTotal, afterTotal-afterMin)
	if delta == 0 {
		return sizesOf(d.Before), sizesOf(d.After)
	}

	if delta > 0 {
		after = shrink(d.After, delta, true)
		before = Redistribute(sizesOf(d.Before), minsOf(d.Before), beforeTotal+delta)
		return before, after
	}
	before = shrink(d.Before, -delta, false)
	after = Redistribute(sizesOf(d.After), minsOf(d.After), afterTotal-delta)
	return before, after
}

// shrink removes amount from a group, drawing first from the child touching the
// divider down to its minimum and spreading the rest over the other children.
func shrink(items []Item, amount float64, adjacentFirst bool) []float64 {
	sizes := sizesOf(items)
	adj := len(items) - 1
	if adjacentFirst {
		adj = 0
	}
	take := math.Min(amount, math.Max(items[adj].Size-items[adj].Min, 0))
	sizes[adj] -= take
	overflow := amount - take
	if overflow <= 0 || len(items) == 1 {
		return sizes
	}

	restSizes := make([]float64, 0, len(items)-1)
	restMins := make([]float64, 0, len(items)-1)
	for i, it := range items {
		if i == adj {
			continue
		}
		restSizes = append(restSizes, it.Size)
		restMins = append(restMins, it.Min)
	}
	rest := Redistribute(restSizes, restMins, Sum(restSizes)-overflow)
	j := 0
	for i := range sizes {
		if i == adj {
			continue
		}
		sizes[i] = rest[j]
		j++
	}
	return sizes
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}

func totals(items []Item) (size, minimum float64) {
	for _, it := range items {
		size += it.Size
		minimum += it.Min
	}
	return size, minimum
}

func sizesOf(items []Item) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Size
	}
	return out
}

func minsOf(items []Item) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Min
	}
	return out
}
