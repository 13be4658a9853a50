package telemetry

import "sort"

// SettleStats holds aggregated ticks-to-settle statistics over completed
// animations.
type SettleStats struct {
	Count int     `csv:"count"`
	Mean  float64 `csv:"mean"`
	P10   float64 `csv:"p10"`
	P50   float64 `csv:"p50"`
	P90   float64 `csv:"p90"`
}

// computeSettleStats aggregates a slice of ticks-to-settle durations.
func computeSettleStats(durations []float64) SettleStats {
	if len(durations) == 0 {
		return SettleStats{}
	}

	sorted := make([]float64, len(durations))
	copy(sorted, durations)
	sort.Float64s(sorted)

	var sum float64
	for _, d := range sorted {
		sum += d
	}

	return SettleStats{
		Count: len(sorted),
		Mean:  sum / float64(len(sorted)),
		P10:   Percentile(sorted, 0.1),
		P50:   Percentile(sorted, 0.5),
		P90:   Percentile(sorted, 0.9),
	}
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
