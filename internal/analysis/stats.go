package analysis

import (
	"math"
	"sort"
)

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percent returns part/total*100 rounded to two decimals, 0 when total is 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// median of an integer list; even lengths average the two middle values.
func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return float64(sorted[mid])
}

// topN returns the first n items of an already sorted list.
func topN[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// bottomN takes the last n items of a list sorted descending and reverses them,
// so the weakest entry comes first. With fewer than n items it overlaps with topN.
func bottomN[T any](items []T, n int) []T {
	start := 0
	if len(items) > n {
		start = len(items) - n
	}
	tail := items[start:]
	out := make([]T, len(tail))
	for i := range tail {
		out[i] = tail[len(tail)-1-i]
	}
	return out
}
