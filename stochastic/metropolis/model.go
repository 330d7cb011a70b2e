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
	"slices"
)

// Model is a point in parameter space.
type Model []float64

// Clone returns a copy of the model which does not share memory with m.
func (m Model) Clone() Model {
	return slices.Clone(m)
}

// Dim returns the dimensionality of the model.
func (m Model) Dim() int {
	return len(m)
}

// LikelihoodFunc computes the log-likelihood of a model given the data.
// It must be deterministic and must not retain state across calls.
type LikelihoodFunc[D any] func(m Model, data D) (float64, error)

// AuxLikelihoodFunc computes the log-likelihood of a model together with an
// auxiliary payload that is traced alongside the chain.
type AuxLikelihoodFunc[D, A any] func(m Model, data D) (float64, A, error)

// VerifyFunc reports whether a model lies inside the admissible prior region.
type VerifyFunc[B any] func(m Model, bounds B) (bool, error)

// Params configures a single run of the sampler.
type Params struct {
	NumSamples  int         // length of the produced chain, including the initial model
	Initial     Model       // seed of the chain; must satisfy the prior verifier
	ProposalCov [][]float64 // covariance of the gaussian random-walk proposal
	Verbose     bool        // report progress at every 10% of the run
}

// Result holds a sampled chain.
type Result struct {
	Chain         []Model   // chain of models, Chain[0] is the initial model
	LogLikelihood []float64 // log-likelihood of each chain entry
	Accepted      int       // number of accepted proposals
}

// Len returns the number of samples in the chain.
func (r *Result) Len() int {
	return len(r.Chain)
}

// AcceptanceRate returns the fraction of proposal steps that were accepted.
// A chain with a single sample has no proposal steps and a rate of zero.
func (r *Result) AcceptanceRate() float64 {
	steps := len(r.Chain) - 1
	if steps <= 0 {
		return 0
	}
	return float64(r.Accepted) / float64(steps)
}

// AuxResult is a Result with an auxiliary payload per chain entry.
type AuxResult[A any] struct {
	Result
	Auxiliary []A // payload of the likelihood evaluation of each chain entry
}
