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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xsoniclabs/mcmc/stochastic/metropolis"
	"github.com/0xsoniclabs/mcmc/stochastic/trace"
	"gopkg.in/yaml.v3"
)

// Problem describes a posterior to be sampled. It is loaded from a JSON or
// YAML file.
type Problem struct {
	Target      string      `json:"target" yaml:"target"`                             // name of the target density
	Parameters  []string    `json:"parameters,omitempty" yaml:"parameters,omitempty"` // parameter names
	Initial     []float64   `json:"initial" yaml:"initial"`                           // initial model of the chain
	Bounds      [][]float64 `json:"bounds" yaml:"bounds"`                             // uniform prior bounds per parameter
	ProposalCov [][]float64 `json:"proposal_cov" yaml:"proposal_cov"`                 // covariance of the proposal
	Mean        []float64   `json:"mean,omitempty" yaml:"mean,omitempty"`             // gaussian: mean
	Cov         [][]float64 `json:"cov,omitempty" yaml:"cov,omitempty"`               // gaussian: covariance
	Data        string      `json:"data,omitempty" yaml:"data,omitempty"`             // linear-regression: observation file
	Sigma       float64     `json:"sigma,omitempty" yaml:"sigma,omitempty"`           // linear-regression: noise level

	dir string // directory of the problem file
}

// LoadProblem reads a problem file. Files ending in ".yaml" or ".yml" are
// parsed as YAML, all others as JSON.
func LoadProblem(filename string) (*Problem, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read problem file %s; %w", filename, err)
	}
	var p Problem
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		err = dec.Decode(&p)
	default:
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		err = dec.Decode(&p)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse problem file %s; %w", filename, err)
	}
	p.dir = filepath.Dir(filename)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem file %s; %w", filename, err)
	}
	return &p, nil
}

// Validate checks the consistency of the problem definition.
func (p *Problem) Validate() error {
	if _, found := registry[p.Target]; !found {
		return fmt.Errorf("unknown target %q; available targets: %v", p.Target, Names())
	}
	d := len(p.Initial)
	if d == 0 {
		return fmt.Errorf("initial model is empty")
	}
	if len(p.Parameters) > 0 && len(p.Parameters) != d {
		return fmt.Errorf("%d parameter names given for %d parameters", len(p.Parameters), d)
	}
	for _, name := range p.Parameters {
		if trace.IsReservedName(name) {
			return fmt.Errorf("parameter name %q is reserved", name)
		}
	}
	if len(p.Bounds) != d {
		return fmt.Errorf("%d bounds given for %d parameters", len(p.Bounds), d)
	}
	box, err := NewBox(p.Bounds)
	if err != nil {
		return err
	}
	// the sampler relies on a valid seed model
	if ok, _ := VerifyBox(p.Initial, box); !ok {
		return fmt.Errorf("initial model %v lies outside of the prior bounds", p.Initial)
	}
	if len(p.ProposalCov) != d {
		return fmt.Errorf("proposal covariance has %d rows for %d parameters", len(p.ProposalCov), d)
	}
	return nil
}

// Params returns the sampler parameters of the problem.
func (p *Problem) Params(numSamples int, verbose bool) metropolis.Params {
	return metropolis.Params{
		NumSamples:  numSamples,
		Initial:     metropolis.Model(p.Initial).Clone(),
		ProposalCov: p.ProposalCov,
		Verbose:     verbose,
	}
}

// resolve returns the path of a file referenced by the problem.
func (p *Problem) resolve(filename string) string {
	if filepath.IsAbs(filename) || p.dir == "" {
		return filename
	}
	return filepath.Join(p.dir, filename)
}
