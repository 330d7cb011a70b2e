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

// Package metropolis implements a single-chain Metropolis sampler with a
// fixed gaussian random-walk proposal.
package metropolis

import (
	"math"
	"math/rand"
	"sync"

	"github.com/0xsoniclabs/mcmc/logger"
	"github.com/0xsoniclabs/mcmc/stochastic"
)

// Sampler draws Markov chains from caller-supplied posteriors. It owns its
// random generator; runs on the same Sampler are executed strictly one after
// the other so that a shared generator is never consumed by two chains at
// once. Independent chains need independent Samplers.
type Sampler struct {
	mu  sync.Mutex
	rg  *rand.Rand
	log logger.Logger
}

// NewSampler creates a sampler drawing from rg, which must not be nil. A nil
// logger is replaced by a default logger at INFO level. Runs on a sampler
// without generator fail with ErrInvalidArgument.
func NewSampler(rg *rand.Rand, log logger.Logger) *Sampler {
	if log == nil {
		log = logger.NewLogger("info", "Metropolis")
	}
	return &Sampler{rg: rg, log: log}
}

// NewSeededSampler creates a sampler with a fresh generator seeded by seed.
func NewSeededSampler(seed int64, log logger.Logger) *Sampler {
	return NewSampler(rand.New(rand.NewSource(seed)), log)
}

// Run samples a chain of p.NumSamples models. The initial model must satisfy
// verify; this is not checked. An error of the likelihood or the verifier
// aborts the run and no result is returned.
func Run[D, B any](s *Sampler, p Params, calcLLK LikelihoodFunc[D], verify VerifyFunc[B], data D, bounds B) (*Result, error) {
	if calcLLK == nil {
		return nil, invalidArgument("likelihood function is nil")
	}
	eval := func(m Model, data D) (float64, struct{}, error) {
		llk, err := calcLLK(m, data)
		return llk, struct{}{}, err
	}
	res, _, err := run[D, B, struct{}](s, p, eval, verify, data, bounds, false)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RunWithAuxiliary is Run for likelihoods that return an auxiliary payload.
// The payload of every chain entry is traced; rejected steps duplicate the
// payload of the previous entry.
func RunWithAuxiliary[D, B, A any](s *Sampler, p Params, calcLLK AuxLikelihoodFunc[D, A], verify VerifyFunc[B], data D, bounds B) (*AuxResult[A], error) {
	if calcLLK == nil {
		return nil, invalidArgument("likelihood function is nil")
	}
	res, aux, err := run[D, B, A](s, p, calcLLK, verify, data, bounds, true)
	if err != nil {
		return nil, err
	}
	return &AuxResult[A]{Result: *res, Auxiliary: aux}, nil
}

// validate checks the parameters of a run before any sampling happens.
func validate(p Params) (*Proposal, error) {
	if p.NumSamples < 1 {
		return nil, invalidArgument("number of samples must be at least 1, got %d", p.NumSamples)
	}
	if len(p.Initial) == 0 {
		return nil, invalidArgument("initial model is empty")
	}
	proposal, err := NewProposal(p.ProposalCov)
	if err != nil {
		return nil, err
	}
	if proposal.Dim() != p.Initial.Dim() {
		return nil, invalidArgument("proposal covariance is %dx%d but the initial model has %d parameters", proposal.Dim(), proposal.Dim(), p.Initial.Dim())
	}
	return proposal, nil
}

// run is the Metropolis loop shared by Run and RunWithAuxiliary.
func run[D, B, A any](
	s *Sampler,
	p Params,
	calcLLK AuxLikelihoodFunc[D, A],
	verify VerifyFunc[B],
	data D,
	bounds B,
	traceAux bool,
) (*Result, []A, error) {
	if s == nil || s.rg == nil {
		return nil, nil, invalidArgument("sampler has no random generator")
	}
	if verify == nil {
		return nil, nil, invalidArgument("prior verifier is nil")
	}
	proposal, err := validate(p)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, d := p.NumSamples, p.Initial.Dim()

	// all chain entries share one backing array without overlapping
	buf := make([]float64, n*d)
	chain := make([]Model, n)
	for i := range chain {
		chain[i] = buf[i*d : (i+1)*d : (i+1)*d]
	}
	llk := make([]float64, n)
	var aux []A
	if traceAux {
		aux = make([]A, n)
	}

	copy(chain[0], p.Initial)
	llk0, aux0, err := calcLLK(chain[0].Clone(), data)
	if err != nil {
		return nil, nil, evaluatorFailure(err, "likelihood of initial model")
	}
	llk[0] = llk0
	if traceAux {
		aux[0] = aux0
	}

	progress := newProgress(s.log, n, p.Verbose)
	accepted := 0
	candidate := make(Model, d)
	for i := 1; i < n; i++ {
		progress.report(i)

		// random walk
		copy(candidate, chain[i-1])
		proposal.Perturb(s.rg, candidate)

		// reject models outside of the prior without evaluating the likelihood
		valid, err := verify(candidate.Clone(), bounds)
		if err != nil {
			return nil, nil, evaluatorFailure(err, "prior verification at step %d", i)
		}
		if !valid {
			duplicate(chain, llk, aux, i)
			continue
		}

		logLLKn, payload, err := calcLLK(candidate.Clone(), data)
		if err != nil {
			return nil, nil, evaluatorFailure(err, "likelihood at step %d", i)
		}
		dLLK := logLLKn - llk[i-1]

		// Metropolis acceptance; NaN and -Inf differences are never accepted
		u := math.Log(s.rg.Float64())
		if u < dLLK {
			copy(chain[i], candidate)
			llk[i] = logLLKn
			if traceAux {
				aux[i] = payload
			}
			accepted++
		} else {
			duplicate(chain, llk, aux, i)
		}
	}

	return &Result{Chain: chain, LogLikelihood: llk, Accepted: accepted}, aux, nil
}

// duplicate copies the state of entry i-1 into entry i.
func duplicate[A any](chain []Model, llk []float64, aux []A, i int) {
	copy(chain[i], chain[i-1])
	llk[i] = llk[i-1]
	if aux != nil {
		aux[i] = aux[i-1]
	}
}

// progress reports the completion of a run at every tenth of its length.
type progress struct {
	log   logger.Logger
	n     int
	every int
}

func newProgress(log logger.Logger, n int, verbose bool) progress {
	every := 0
	if verbose {
		every = n / stochastic.ProgressSteps
	}
	return progress{log: log, n: n, every: every}
}

func (p progress) report(i int) {
	if p.every == 0 || i%p.every != 0 {
		return
	}
	p.log.Noticef("%d%%", 100*i/p.n)
}
