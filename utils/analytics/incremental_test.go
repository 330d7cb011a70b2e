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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestIncrementalStats_Empty(t *testing.T) {
	s := NewIncrementalStats()
	assert.Equal(t, uint64(0), s.GetCount())
	assert.Equal(t, 0.0, s.GetVariance())
	assert.Equal(t, 0.0, s.GetSkewness())
	assert.Equal(t, 0.0, s.GetKurtosis())
	assert.Equal(t, `{"count":0}`, s.String())
}

func TestIncrementalStats_MatchesBatchStatistics(t *testing.T) {
	rg := rand.New(rand.NewSource(3))
	xs := make([]float64, 10000)
	s := NewIncrementalStats()
	for i := range xs {
		xs[i] = rg.ExpFloat64()
		s.Update(xs[i])
	}

	assert.Equal(t, uint64(len(xs)), s.GetCount())
	assert.InDelta(t, stat.Mean(xs, nil), s.GetMean(), 1e-9)
	assert.InDelta(t, stat.Variance(xs, nil), s.GetVariance(), 1e-9)
	assert.InDelta(t, math.Sqrt(stat.Variance(xs, nil)), s.GetStandardDeviation(), 1e-9)
	assert.InDelta(t, floats(xs).sum(), s.GetSum(), 1e-9)

	// population moments
	assert.InDelta(t, stat.Skew(xs, nil), s.GetSkewness(), 0.01)
	assert.InDelta(t, stat.ExKurtosis(xs, nil), s.GetKurtosis(), 0.05)
	assert.InDelta(t, 2.0, s.GetSkewness(), 0.3)
}

func TestIncrementalStats_MinMax(t *testing.T) {
	s := NewIncrementalStats()
	for _, x := range []float64{3, -1, 7, 2} {
		s.Update(x)
	}
	assert.Equal(t, -1.0, s.GetMin())
	assert.Equal(t, 7.0, s.GetMax())
	assert.Equal(t, 11.0, s.GetSum())
	assert.Equal(t, 2.75, s.GetMean())
}

func TestIncrementalStats_ConstantStream(t *testing.T) {
	s := NewIncrementalStats()
	for i := 0; i < 5; i++ {
		s.Update(4)
	}
	assert.Equal(t, 4.0, s.GetMean())
	assert.Equal(t, 0.0, s.GetVariance())
	assert.Equal(t, 0.0, s.GetSkewness())
	assert.Equal(t, 0.0, s.GetKurtosis())
}

func TestIncrementalStats_String(t *testing.T) {
	s := NewIncrementalStats()
	s.Update(1)
	s.Update(3)

	var decoded map[string]float64
	require.NoError(t, json.Unmarshal([]byte(s.String()), &decoded))
	assert.Equal(t, 2.0, decoded["count"])
	assert.Equal(t, 1.0, decoded["min"])
	assert.Equal(t, 3.0, decoded["max"])
	assert.Equal(t, 2.0, decoded["mean"])
	assert.Equal(t, 2.0, decoded["variance"])
}

type floats []float64

func (f floats) sum() float64 {
	total := 0.0
	for _, x := range f {
		total += x
	}
	return total
}
