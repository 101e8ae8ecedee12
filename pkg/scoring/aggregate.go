package scoring

import (
	"math"
	"sort"
)

// Aggregates holds the statistics computed over one asset's event scores.
type Aggregates struct {
	Count int
	Sum   float64
	Avg   float64
	Max   float64
	P95   float64
	P99   float64
}

// Aggregate computes count, sum, average, maximum and tail percentiles
// for a set of scores.
func Aggregate(vals []float64) Aggregates {
	agg := Aggregates{Count: len(vals)}
	if len(vals) == 0 {
		return agg
	}
	for _, v := range vals {
		agg.Sum += v
		if v > agg.Max {
			agg.Max = v
		}
	}
	agg.Avg = agg.Sum / float64(len(vals))
	agg.P95 = Percentile(vals, 95)
	agg.P99 = Percentile(vals, 99)
	return agg
}

// Percentile computes the p-th percentile of vals using linear
// interpolation between closest ranks. An empty slice yields 0.
func Percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)

	k := float64(len(s)-1) * (p / 100.0)
	f := math.Floor(k)
	c := math.Ceil(k)
	if f == c {
		return s[int(k)]
	}
	d0 := s[int(f)] * (c - k)
	d1 := s[int(c)] * (k - f)
	return d0 + d1
}
