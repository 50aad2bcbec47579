// Package resize implements proportional size redistribution under minimum
// size constraints, and the two divider drag modes built on it.
package resize

import "math"

// Redistribute scales sizes so they sum to newTotal while keeping each size at
// or above its minimum.
//
// Every pass applies a common ratio r = (newTotal - reservedMin) / (freeTotal)
// to the children not yet clamped, where reservedMin is the sum of minimums of
// clamped children and freeTotal the original sizes of the others. Children
// falling below their minimum are clamped and the pass repeats, at most
// len(sizes) times. A negative or non-finite ratio stops the iteration and the
// best result so far is returned.
func Redistribute(sizes, mins []float64, newTotal float64) []float64 {
	out, _ := redistribute(sizes, mins, newTotal)
	return out
}

// redistribute also reports how many passes ran.
func redistribute(sizes, mins []float64, newTotal float64) ([]float64, int) {
	n := len(sizes)
	out := make([]float64, n)
	copy(out, sizes)
	if n == 0 || math.IsNaN(newTotal) {
		return out, 0
	}

	clamped := make([]bool, n)
	for pass := 0; pass <= n; pass++ {
		var reservedMin, freeTotal float64
		for i := range sizes {
			if clamped[i] {
				reservedMin += minAt(mins, i)
			} else {
				freeTotal += sizes[i]
			}
		}
		r := (newTotal - reservedMin) / freeTotal
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return out, pass
		}

		next := make([]float64, n)
		violated := false
		for i := range sizes {
			if clamped[i] {
				next[i] = minAt(mins, i)
				continue
			}
			next[i] = sizes[i] * r
			if m := minAt(mins, i); next[i] < m {
				next[i] = m
				clamped[i] = true
				violated = true
			}
		}
		out = next
		if !violated {
			return out, pass + 1
		}
	}
	return out, n + 1
}

func minAt(mins []float64, i int) float64 {
	if i < len(mins) && mins[i] > 0 {
		return mins[i]
	}
	return 0
}

// Sum returns the total of values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
