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

// Package trace stores sampled chains in a tabular form that can be written
// to and read from CSV files.
package trace

import (
	"encoding/json"
	"fmt"

	"github.com/0xsoniclabs/mcmc/stochastic/metropolis"
)

const (
	stepColumn          = "step"
	logLikelihoodColumn = "log_likelihood"
	auxiliaryColumn     = "auxiliary"
)

// IsReservedName reports whether name is taken by one of the fixed columns of
// a trace file and can therefore not name a parameter.
func IsReservedName(name string) bool {
	switch name {
	case stepColumn, logLikelihoodColumn, auxiliaryColumn:
		return true
	}
	return false
}

// Trace is a sampled chain together with the names of its parameters.
type Trace struct {
	Names         []string    // parameter names
	Chain         [][]float64 // models of the chain
	LogLikelihood []float64   // log-likelihood per chain entry
	Auxiliary     []float64   // auxiliary payload per chain entry; nil if not traced
	Accepted      int         // number of accepted proposals
}

// FromResult converts the result of a sampler run into a trace.
func FromResult(names []string, res *metropolis.Result) *Trace {
	chain := make([][]float64, len(res.Chain))
	for i, m := range res.Chain {
		chain[i] = m
	}
	return &Trace{
		Names:         parameterNames(names, dim(chain)),
		Chain:         chain,
		LogLikelihood: res.LogLikelihood,
		Accepted:      res.Accepted,
	}
}

// FromAuxResult converts the result of a sampler run with a scalar auxiliary
// payload into a trace.
func FromAuxResult(names []string, res *metropolis.AuxResult[float64]) *Trace {
	t := FromResult(names, &res.Result)
	t.Auxiliary = res.Auxiliary
	return t
}

// parameterNames completes missing parameter names with positional ones.
func parameterNames(names []string, d int) []string {
	res := make([]string, d)
	for i := 0; i < d; i++ {
		if i < len(names) && names[i] != "" {
			res[i] = names[i]
		} else {
			res[i] = fmt.Sprintf("p%d", i)
		}
	}
	return res
}

func dim(chain [][]float64) int {
	if len(chain) == 0 {
		return 0
	}
	return len(chain[0])
}

// Len returns the number of chain entries.
func (t *Trace) Len() int {
	return len(t.Chain)
}

// Dim returns the number of parameters.
func (t *Trace) Dim() int {
	return dim(t.Chain)
}

// AcceptanceRate returns the fraction of accepted proposal steps.
func (t *Trace) AcceptanceRate() float64 {
	if t.Len() <= 1 {
		return 0
	}
	return float64(t.Accepted) / float64(t.Len()-1)
}

// Marginal returns the values of parameter i, skipping the first burnIn entries.
func (t *Trace) Marginal(i int, burnIn int) []float64 {
	if burnIn < 0 {
		burnIn = 0
	}
	if burnIn > t.Len() {
		burnIn = t.Len()
	}
	res := make([]float64, 0, t.Len()-burnIn)
	for _, m := range t.Chain[burnIn:] {
		res = append(res, m[i])
	}
	return res
}

// Rows returns one row per chain entry with the step, the log-likelihood,
// the model encoded as JSON array and the auxiliary payload (nil if absent).
func (t *Trace) Rows() ([][]any, error) {
	rows := make([][]any, 0, t.Len())
	for i, m := range t.Chain {
		model, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("cannot encode model of step %d; %w", i, err)
		}
		var aux any
		if t.Auxiliary != nil {
			aux = t.Auxiliary[i]
		}
		rows = append(rows, []any{i, t.LogLikelihood[i], string(model), aux})
	}
	return rows, nil
}

// countAccepted counts the transitions between distinct consecutive models.
func countAccepted(chain [][]float64) int {
	accepted := 0
	for i := 1; i < len(chain); i++ {
		for j := range chain[i] {
			if chain[i][j] != chain[i-1][j] {
				accepted++
				break
			}
		}
	}
	return accepted
}
