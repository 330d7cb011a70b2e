// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package analytics

import (
	"encoding/json"
	"math"
)

// IncrementalStats computes running statistics of a stream of values in a
// single pass. The sum is accumulated with Kahan's summation, the central
// moments with the update formulas of Terriberry.
type IncrementalStats struct {
	count uint64
	min   float64
	max   float64
	ksum  float64 // Kahan sum
	c     float64 // Kahan compensation
	m1    float64 // mean
	m2    float64 // second central moment (times count)
	m3    float64 // third central moment (times count)
	m4    float64 // fourth central moment (times count)
}

// NewIncrementalStats creates an empty statistics accumulator.
func NewIncrementalStats() *IncrementalStats {
	return &IncrementalStats{
		min: math.Inf(1),
		max: math.Inf(-1),
	}
}

// Update adds a new value.
func (s *IncrementalStats) Update(x float64) {
	s.min = math.Min(s.min, x)
	s.max = math.Max(s.max, x)

	y := x - s.c
	t := s.ksum + y
	s.c = (t - s.ksum) - y
	s.ksum = t

	n1 := float64(s.count)
	s.count++
	n := float64(s.count)
	delta := x - s.m1
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * n1
	s.m1 += deltaN
	s.m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
	s.m3 += term1*deltaN*(n-2) - 3*deltaN*s.m2
	s.m2 += term1
}

// GetCount returns the number of values.
func (s *IncrementalStats) GetCount() uint64 {
	return s.count
}

// GetMin returns the smallest value.
func (s *IncrementalStats) GetMin() float64 {
	return s.min
}

// GetMax returns the largest value.
func (s *IncrementalStats) GetMax() float64 {
	return s.max
}

// GetSum returns the compensated sum of all values.
func (s *IncrementalStats) GetSum() float64 {
	return s.ksum
}

// GetMean returns the arithmetic mean.
func (s *IncrementalStats) GetMean() float64 {
	return s.m1
}

// GetVariance returns the unbiased sample variance.
func (s *IncrementalStats) GetVariance() float64 {
	if s.count < 2 {
		return 0
	}
	return s.m2 / float64(s.count-1)
}

// GetStandardDeviation returns the square root of the sample variance.
func (s *IncrementalStats) GetStandardDeviation() float64 {
	return math.Sqrt(s.GetVariance())
}

// GetSkewness returns the sample skewness; zero for constant streams.
func (s *IncrementalStats) GetSkewness() float64 {
	if s.m2 == 0 {
		return 0
	}
	return math.Sqrt(float64(s.count)) * s.m3 / math.Pow(s.m2, 1.5)
}

// GetKurtosis returns the excess kurtosis; zero for constant streams.
func (s *IncrementalStats) GetKurtosis() float64 {
	if s.m2 == 0 {
		return 0
	}
	return float64(s.count)*s.m4/(s.m2*s.m2) - 3.0
}

type incrementalStatsJSON struct {
	Count    uint64  `json:"count"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// String renders the statistics as JSON. An empty accumulator renders its
// count only since JSON has no representation for infinite bounds.
func (s *IncrementalStats) String() string {
	if s.count == 0 {
		return `{"count":0}`
	}
	out, err := json.Marshal(incrementalStatsJSON{
		Count:    s.count,
		Min:      s.min,
		Max:      s.max,
		Sum:      s.ksum,
		Mean:     s.GetMean(),
		Variance: s.GetVariance(),
		Skewness: s.GetSkewness(),
		Kurtosis: s.GetKurtosis(),
	})
	if err != nil {
		return err.Error()
	}
	return string(out)
}
