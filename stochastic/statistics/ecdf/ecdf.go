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

// Package ecdf provides the empirical cumulative distribution function of a
// marginal posterior sample.
package ecdf

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// ECDF is the piecewise linear empirical distribution function of a sample.
// The i-th smallest of n values sits at cumulative probability i/(n-1), so
// quantiles interpolate linearly between order statistics.
type ECDF struct {
	xs []float64 // sorted sample
}

// New creates the ECDF of the given sample. The sample is copied.
func New(sample []float64) (*ECDF, error) {
	if len(sample) == 0 {
		return nil, fmt.Errorf("empty sample")
	}
	for i, x := range sample {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("sample value %d is not finite (%v)", i, x)
		}
	}
	xs := slices.Clone(sample)
	slices.Sort(xs)
	return &ECDF{xs: xs}, nil
}

// Len returns the sample size.
func (e *ECDF) Len() int {
	return len(e.xs)
}

// Min returns the smallest sample value.
func (e *ECDF) Min() float64 {
	return e.xs[0]
}

// Max returns the largest sample value.
func (e *ECDF) Max() float64 {
	return e.xs[len(e.xs)-1]
}

// position returns the cumulative probability of the i-th order statistic.
func (e *ECDF) position(i int) float64 {
	if len(e.xs) == 1 {
		return 1.0
	}
	return float64(i) / float64(len(e.xs)-1)
}

// CDF evaluates the distribution function at x.
func (e *ECDF) CDF(x float64) float64 {
	n := len(e.xs)
	if x < e.xs[0] {
		return 0.0
	}
	if x >= e.xs[n-1] {
		return 1.0
	}
	// first value strictly above x; xs[i-1] <= x < xs[i]
	i := sort.Search(n, func(i int) bool { return e.xs[i] > x })
	scale := (x - e.xs[i-1]) / (e.xs[i] - e.xs[i-1])
	return (float64(i-1) + scale) / float64(n-1)
}

// Quantile returns the value below which a fraction p of the sample lies.
func (e *ECDF) Quantile(p float64) float64 {
	n := len(e.xs)
	if p <= 0 || n == 1 {
		return e.xs[0]
	}
	if p >= 1 {
		return e.xs[n-1]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return e.xs[n-1]
	}
	return e.xs[lo] + (h-float64(lo))*(e.xs[lo+1]-e.xs[lo])
}

// Points returns the full curve as (value, cumulative probability) pairs.
func (e *ECDF) Points() [][2]float64 {
	points := make([][2]float64, len(e.xs))
	for i, x := range e.xs {
		points[i] = [2]float64{x, e.position(i)}
	}
	return points
}

// Simplify reduces the curve to at most n points using the
// Visvalingam-Whyatt algorithm. The end points are always kept.
// See: https://en.wikipedia.org/wiki/Visvalingam-Whyatt_algorithm
func (e *ECDF) Simplify(n int) ([][2]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("cannot simplify to %d points; need at least 2", n)
	}
	if len(e.xs) == 1 {
		return [][2]float64{{e.xs[0], 0.0}, {e.xs[0], 1.0}}, nil
	}
	ls := make(orb.LineString, len(e.xs))
	for i, x := range e.xs {
		ls[i] = orb.Point{x, e.position(i)}
	}
	simplifier := simplify.VisvalingamKeep(n)
	compressed := simplifier.Simplify(ls).(orb.LineString)
	curve := make([][2]float64, len(compressed))
	for i := range compressed {
		curve[i] = [2]float64(compressed[i])
	}
	if err := Check(curve); err != nil {
		return nil, fmt.Errorf("cannot simplify ECDF; %w", err)
	}
	return curve, nil
}

// Check validates a piecewise linear distribution curve: it must start at
// probability 0, end at probability 1 and be monotone in both coordinates.
func Check(f [][2]float64) error {
	if len(f) < 2 {
		return fmt.Errorf("CDF must have at least start and end point")
	}
	if f[0][1] != 0.0 {
		return fmt.Errorf("CDF must start at probability 0, but starts at (%v,%v)", f[0][0], f[0][1])
	}
	last := len(f) - 1
	if f[last][1] != 1.0 {
		return fmt.Errorf("CDF must end at probability 1, but ends at (%v,%v)", f[last][0], f[last][1])
	}
	for i := 0; i < len(f)-1; i++ {
		if f[i][0] > f[i+1][0] || f[i][1] > f[i+1][1] {
			return fmt.Errorf("CDF points must be monotonically increasing, but point %v (%v,%v) is larger than point %v (%v,%v)", i, f[i][0], f[i][1], i+1, f[i+1][0], f[i+1][1])
		}
	}
	return nil
}
