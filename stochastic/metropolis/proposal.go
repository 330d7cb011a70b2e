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

package metropolis

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

const (
	symmetryEps   = 1e-9  // relative tolerance for the symmetry check of the covariance
	eigenvalueEps = 1e-10 // relative tolerance for negative eigenvalues of a PSD matrix
)

// Proposal is a zero-mean multivariate normal random walk. The covariance is
// factorised once as C = L*L^T so that a perturbation is L*z with z ~ N(0, I).
type Proposal struct {
	dim    int
	factor *mat.Dense
	z      *mat.VecDense
	dz     *mat.VecDense
}

// NewProposal validates the covariance matrix and factorises it. Positive
// definite matrices use a Cholesky decomposition, singular positive
// semi-definite matrices fall back to an eigen-decomposition.
func NewProposal(cov [][]float64) (*Proposal, error) {
	n := len(cov)
	if n == 0 {
		return nil, invalidArgument("proposal covariance is empty")
	}
	elements := make([]float64, 0, n*n)
	for i, row := range cov {
		if len(row) != n {
			return nil, invalidArgument("proposal covariance is not square; row %d has %d columns, expected %d", i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, invalidArgument("proposal covariance has a non-finite entry (%v) at (%d,%d)", v, i, j)
			}
		}
		elements = append(elements, row...)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			scale := math.Max(1, math.Max(math.Abs(cov[i][j]), math.Abs(cov[j][i])))
			if math.Abs(cov[i][j]-cov[j][i]) > symmetryEps*scale {
				return nil, invalidArgument("proposal covariance is not symmetric at (%d,%d): %v != %v", i, j, cov[i][j], cov[j][i])
			}
		}
	}
	sym := mat.NewSymDense(n, elements)

	factor, err := factorise(sym, n)
	if err != nil {
		return nil, err
	}
	return &Proposal{
		dim:    n,
		factor: factor,
		z:      mat.NewVecDense(n, nil),
		dz:     mat.NewVecDense(n, nil),
	}, nil
}

// factorise returns L with L*L^T equal to the covariance.
func factorise(sym *mat.SymDense, n int) (*mat.Dense, error) {
	var chol mat.Cholesky
	if chol.Factorize(sym) {
		var l mat.TriDense
		chol.LTo(&l)
		factor := mat.NewDense(n, n, nil)
		factor.Copy(&l)
		return factor, nil
	}

	// the matrix is singular or indefinite
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return nil, invalidArgument("eigen-value decomposition of proposal covariance failed")
	}
	values := eig.Values(nil)
	largest := 0.0
	for _, v := range values {
		largest = math.Max(largest, math.Abs(v))
	}
	scales := make([]float64, n)
	for i, v := range values {
		if v < -eigenvalueEps*math.Max(1, largest) {
			return nil, invalidArgument("proposal covariance is not positive semi-definite; eigenvalue %v", v)
		}
		scales[i] = math.Sqrt(math.Max(v, 0))
	}
	var vectors mat.Dense
	eig.VectorsTo(&vectors)
	factor := mat.NewDense(n, n, nil)
	factor.Apply(func(i, j int, v float64) float64 {
		return v * scales[j]
	}, &vectors)
	return factor, nil
}

// Dim returns the dimensionality of the proposal.
func (p *Proposal) Dim() int {
	return p.dim
}

// Perturb adds a random perturbation to m in place. It consumes exactly Dim()
// standard normal draws from rg.
func (p *Proposal) Perturb(rg *rand.Rand, m Model) {
	for i := 0; i < p.dim; i++ {
		p.z.SetVec(i, rg.NormFloat64())
	}
	p.dz.MulVec(p.factor, p.z)
	for i := 0; i < p.dim; i++ {
		m[i] += p.dz.AtVec(i)
	}
}
