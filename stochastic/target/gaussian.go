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
	"fmt"

	"github.com/0xsoniclabs/mcmc/stochastic/metropolis"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Gaussian is a multivariate normal target density.
type Gaussian struct {
	dist *distmv.Normal
}

// NewGaussian creates a gaussian target; cov must be positive definite.
func NewGaussian(mean []float64, cov [][]float64) (*Gaussian, error) {
	n := len(mean)
	if n == 0 {
		return nil, fmt.Errorf("gaussian mean is empty")
	}
	if len(cov) != n {
		return nil, fmt.Errorf("gaussian covariance has %d rows, expected %d", len(cov), n)
	}
	elements := make([]float64, 0, n*n)
	for i, row := range cov {
		if len(row) != n {
			return nil, fmt.Errorf("gaussian covariance row %d has %d columns, expected %d", i, len(row), n)
		}
		elements = append(elements, row...)
	}
	dist, ok := distmv.NewNormal(mean, mat.NewSymDense(n, elements), nil)
	if !ok {
		return nil, fmt.Errorf("gaussian covariance is not positive definite")
	}
	return &Gaussian{dist: dist}, nil
}

// Dim returns the dimension of the density.
func (g *Gaussian) Dim() int {
	return g.dist.Dim()
}

// GaussianLogLikelihood evaluates the log density of g at m.
func GaussianLogLikelihood(m metropolis.Model, g *Gaussian) (float64, error) {
	if len(m) != g.Dim() {
		return 0, fmt.Errorf("model has %d parameters but the gaussian has dimension %d", len(m), g.Dim())
	}
	return g.dist.LogProb(m), nil
}
