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

package visualizer

import (
	"fmt"
	"math"
	"sync"

	"github.com/0xsoniclabs/mcmc/stochastic"
	"github.com/0xsoniclabs/mcmc/stochastic/statistics/ecdf"
	"github.com/0xsoniclabs/mcmc/stochastic/trace"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// viewState holds the chart data derived from a trace.
type viewState struct {
	trace         *trace.Trace
	burnIn        int
	parameters    [][][2]float64 // simplified trace per parameter
	logLikelihood [][2]float64   // simplified log-likelihood trace
	marginals     [][][2]float64 // simplified ECDF per parameter after burn-in
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(tr *trace.Trace, burnIn int) error {
	if tr == nil {
		return fmt.Errorf("visualizer: trace is nil")
	}
	derived, err := buildViewState(tr, burnIn)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, fmt.Errorf("visualizer: no trace loaded")
	}
	return currentState, nil
}

func buildViewState(tr *trace.Trace, burnIn int) (*viewState, error) {
	if burnIn < 0 || burnIn >= tr.Len() {
		return nil, fmt.Errorf("visualizer: burn-in %d out of range for a chain of length %d", burnIn, tr.Len())
	}
	view := &viewState{
		trace:         tr,
		burnIn:        burnIn,
		parameters:    make([][][2]float64, tr.Dim()),
		logLikelihood: simplifyTrace(tr.LogLikelihood, stochastic.NumTracePoints),
		marginals:     make([][][2]float64, tr.Dim()),
	}
	for i, name := range tr.Names {
		view.parameters[i] = simplifyTrace(tr.Marginal(i, 0), stochastic.NumTracePoints)
		dist, err := ecdf.New(tr.Marginal(i, burnIn))
		if err != nil {
			return nil, fmt.Errorf("visualizer: marginal of %v: %w", name, err)
		}
		view.marginals[i], err = dist.Simplify(stochastic.NumECDFPoints)
		if err != nil {
			return nil, fmt.Errorf("visualizer: marginal of %v: %w", name, err)
		}
	}
	return view, nil
}

// simplifyTrace converts a series into (step, value) points and reduces it
// to at most n points using the Visvalingam-Whyatt algorithm. Non-finite
// values cannot be charted and are skipped.
func simplifyTrace(values []float64, n int) [][2]float64 {
	ls := make(orb.LineString, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		ls = append(ls, orb.Point{float64(i), v})
	}
	if len(ls) > n {
		ls = simplify.VisvalingamKeep(n).Simplify(ls).(orb.LineString)
	}
	res := make([][2]float64, len(ls))
	for i := range ls {
		res[i] = [2]float64(ls[i])
	}
	return res
}
