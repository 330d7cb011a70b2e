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

// Package target provides posterior densities that can be sampled from the
// command line, together with the problem files describing them.
package target

import (
	"fmt"
	"sort"

	"github.com/0xsoniclabs/mcmc/stochastic/metropolis"
	"github.com/0xsoniclabs/mcmc/stochastic/trace"
)

// Target is a posterior that can be sampled into a trace.
type Target interface {
	// Name returns the registered name of the target.
	Name() string
	// Sample runs the sampler on the posterior of the target.
	Sample(s *metropolis.Sampler, p metropolis.Params) (*trace.Trace, error)
}

// Names of the registered targets.
const (
	GaussianName   = "gaussian"
	RegressionName = "linear-regression"
)

type factory func(p *Problem, box Box) (Target, error)

var registry = map[string]factory{
	GaussianName:   newGaussianTarget,
	RegressionName: newRegressionTarget,
}

// Names returns the sorted names of all registered targets.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the target described by a problem.
func New(p *Problem) (Target, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	box, err := NewBox(p.Bounds)
	if err != nil {
		return nil, err
	}
	return registry[p.Target](p, box)
}

type gaussianTarget struct {
	names    []string
	gaussian *Gaussian
	box      Box
}

func newGaussianTarget(p *Problem, box Box) (Target, error) {
	g, err := NewGaussian(p.Mean, p.Cov)
	if err != nil {
		return nil, err
	}
	if g.Dim() != len(p.Initial) {
		return nil, fmt.Errorf("gaussian has dimension %d but the model has %d parameters", g.Dim(), len(p.Initial))
	}
	return &gaussianTarget{names: p.Parameters, gaussian: g, box: box}, nil
}

func (t *gaussianTarget) Name() string {
	return GaussianName
}

func (t *gaussianTarget) Sample(s *metropolis.Sampler, p metropolis.Params) (*trace.Trace, error) {
	res, err := metropolis.Run[*Gaussian, Box](s, p, GaussianLogLikelihood, VerifyBox, t.gaussian, t.box)
	if err != nil {
		return nil, err
	}
	return trace.FromResult(t.names, res), nil
}

type regressionTarget struct {
	names []string
	obs   *Observations
	box   Box
}

func newRegressionTarget(p *Problem, box Box) (Target, error) {
	if len(p.Initial) != 2 {
		return nil, fmt.Errorf("linear regression needs 2 parameters, got %d", len(p.Initial))
	}
	if p.Data == "" {
		return nil, fmt.Errorf("linear regression needs an observation file")
	}
	obs, err := LoadObservations(p.resolve(p.Data), p.Sigma)
	if err != nil {
		return nil, err
	}
	names := p.Parameters
	if len(names) == 0 {
		names = []string{"slope", "intercept"}
	}
	return &regressionTarget{names: names, obs: obs, box: box}, nil
}

func (t *regressionTarget) Name() string {
	return RegressionName
}

// Sample traces the residual RMS of every chain entry as auxiliary payload.
func (t *regressionTarget) Sample(s *metropolis.Sampler, p metropolis.Params) (*trace.Trace, error) {
	res, err := metropolis.RunWithAuxiliary[*Observations, Box, float64](s, p, RegressionLogLikelihood, VerifyBox, t.obs, t.box)
	if err != nil {
		return nil, err
	}
	return trace.FromAuxResult(t.names, res), nil
}
