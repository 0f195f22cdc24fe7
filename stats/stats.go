// Package stats computes summary statistics over timing samples.
package stats

import (
	"math"
	"sort"
)

// Summary holds the derived statistics for one sample sequence, in seconds.
type Summary struct {
	Average float64 `json:"average_seconds"`
	Median  float64 `json:"median_seconds"`
	Min     float64 `json:"min_seconds"`
	Max     float64 `json:"max_seconds"`
	StdDev  float64 `json:"stddev_seconds"`
}

// Compute summarizes the given samples without mutating them. The standard
// deviation is the sample standard deviation (Bessel's correction), defined
// as 0 for fewer than two samples. An empty input yields the zero Summary.
func Compute(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	var s Summary

	s.Min = samples[0]
	s.Max = samples[0]

	sum := 0.0
	for _, v := range samples {
		sum += v

		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}

	s.Average = sum / float64(len(samples))
	s.Median = median(samples)

	if len(samples) > 1 {
		sq := 0.0
		for _, v := range samples {
			d := v - s.Average
			sq += d * d
		}

		s.StdDev = math.Sqrt(sq / float64(len(samples)-1))
	}

	return s
}

func median(samples []float64) float64 {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return (sorted[mid-1] + sorted[mid]) / 2
}
