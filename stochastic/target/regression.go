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

package target

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/0xsoniclabs/mcmc/stochastic/metropolis"
)

// Observations are noisy measurements y = slope*x + intercept + e with
// e ~ N(0, Sigma^2).
type Observations struct {
	X     []float64
	Y     []float64
	Sigma float64
}

// LoadObservations reads (x, y) pairs from a CSV file with a header line.
func LoadObservations(filename string, sigma float64) (_ *Observations, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open observations %s; %w", filename, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	return ReadObservations(file, sigma)
}

// ReadObservations parses (x, y) pairs in CSV format. The first line is a header.
func ReadObservations(r io.Reader, sigma float64) (*Observations, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("noise level sigma must be positive, got %v", sigma)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.Comment = '#'
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("cannot read observation header; %w", err)
	}
	obs := &Observations{Sigma: sigma}
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read observation; %w", err)
		}
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x value in row %d; %w", row, err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y value in row %d; %w", row, err)
		}
		obs.X = append(obs.X, x)
		obs.Y = append(obs.Y, y)
	}
	if len(obs.X) == 0 {
		return nil, fmt.Errorf("no observations found")
	}
	return obs, nil
}

// RegressionLogLikelihood returns the gaussian log-likelihood of the model
// [slope, intercept] and the root mean square of its residuals.
func RegressionLogLikelihood(m metropolis.Model, obs *Observations) (float64, float64, error) {
	if len(m) != 2 {
		return 0, 0, fmt.Errorf("linear regression needs 2 parameters, got %d", len(m))
	}
	slope, intercept := m[0], m[1]
	sumSq := 0.0
	for i := range obs.X {
		r := obs.Y[i] - (slope*obs.X[i] + intercept)
		sumSq += r * r
	}
	n := float64(len(obs.X))
	norm := n * math.Log(obs.Sigma*math.Sqrt(2*math.Pi))
	llk := -0.5*sumSq/(obs.Sigma*obs.Sigma) - norm
	return llk, math.Sqrt(sumSq / n), nil
}
