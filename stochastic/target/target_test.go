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
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xsoniclabs/mcmc/logger"
	"github.com/0xsoniclabs/mcmc/stochastic/metropolis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gonum.org/v1/gonum/stat"
)

func TestBox_NewBox(t *testing.T) {
	box, err := NewBox([][]float64{{-1, 1}, {0, 0}})
	require.NoError(t, err)
	assert.Equal(t, Box{{-1, 1}, {0, 0}}, box)

	_, err = NewBox([][]float64{{1}})
	assert.ErrorContains(t, err, "must have two values")

	_, err = NewBox([][]float64{{2, 1}})
	assert.ErrorContains(t, err, "exceeds upper bound")

	_, err = NewBox([][]float64{{math.NaN(), 1}})
	assert.Error(t, err)
}

func TestBox_VerifyBox(t *testing.T) {
	box := Box{{-1, 1}, {0, 2}}
	tests := []struct {
		model metropolis.Model
		want  bool
	}{
		{metropolis.Model{0, 1}, true},
		{metropolis.Model{-1, 0}, true},
		{metropolis.Model{1, 2}, true},
		{metropolis.Model{1.0001, 1}, false},
		{metropolis.Model{0, -0.1}, false},
		{metropolis.Model{math.NaN(), 1}, false},
	}
	for _, test := range tests {
		got, err := VerifyBox(test.model, box)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, "model %v", test.model)
	}

	_, err := VerifyBox(metropolis.Model{0}, box)
	assert.ErrorContains(t, err, "prior has 2 bounds")
}

func TestGaussian_LogLikelihood(t *testing.T) {
	g, err := NewGaussian([]float64{1, -1}, [][]float64{{2, 0}, {0, 0.5}})
	require.NoError(t, err)

	got, err := GaussianLogLikelihood(metropolis.Model{2, 0}, g)
	require.NoError(t, err)
	// independent components: N(1; 2, 2) * N(0; -1, 0.5)
	want := -0.5*(1.0/2+1.0/0.5) - math.Log(2*math.Pi) - 0.5*math.Log(2*0.5)
	assert.InDelta(t, want, got, 1e-12)

	_, err = GaussianLogLikelihood(metropolis.Model{2}, g)
	assert.Error(t, err)
}

func TestGaussian_RejectsInvalidParameters(t *testing.T) {
	_, err := NewGaussian(nil, nil)
	assert.ErrorContains(t, err, "mean is empty")

	_, err = NewGaussian([]float64{0, 0}, [][]float64{{1, 0}})
	assert.ErrorContains(t, err, "has 1 rows")

	_, err = NewGaussian([]float64{0, 0}, [][]float64{{1, 0}, {0}})
	assert.ErrorContains(t, err, "row 1 has 1 columns")

	_, err = NewGaussian([]float64{0, 0}, [][]float64{{1, 1}, {1, 1}})
	assert.ErrorContains(t, err, "not positive definite")
}

func TestRegression_LogLikelihood(t *testing.T) {
	obs := &Observations{X: []float64{0, 1, 2}, Y: []float64{1, 3.5, 5}, Sigma: 0.5}

	llk, rms, err := RegressionLogLikelihood(metropolis.Model{2, 1}, obs)
	require.NoError(t, err)
	// residuals: 0, 0.5, 0
	want := -0.5*0.25/0.25 - 3*math.Log(0.5*math.Sqrt(2*math.Pi))
	assert.InDelta(t, want, llk, 1e-12)
	assert.InDelta(t, math.Sqrt(0.25/3), rms, 1e-12)

	_, _, err = RegressionLogLikelihood(metropolis.Model{2}, obs)
	assert.Error(t, err)
}

func TestRegression_ReadObservations(t *testing.T) {
	obs, err := ReadObservations(strings.NewReader("x,y\n# comment\n0,1\n1,3\n"), 0.1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, obs.X)
	assert.Equal(t, []float64{1, 3}, obs.Y)
	assert.Equal(t, 0.1, obs.Sigma)

	tests := map[string]string{
		"empty":        "",
		"only header":  "x,y\n",
		"bad x":        "x,y\na,1\n",
		"bad y":        "x,y\n1,b\n",
		"three fields": "x,y\n1,2,3\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadObservations(strings.NewReader(content), 0.1)
			assert.Error(t, err)
		})
	}

	_, err = ReadObservations(strings.NewReader("x,y\n0,1\n"), 0)
	assert.ErrorContains(t, err, "sigma must be positive")
}

func TestProblem_LoadJSONAndYAML(t *testing.T) {
	p, err := LoadProblem(filepath.Join("testdata", "gaussian.json"))
	require.NoError(t, err)
	assert.Equal(t, GaussianName, p.Target)
	assert.Equal(t, []string{"x", "y"}, p.Parameters)
	assert.Equal(t, []float64{1, -1}, p.Mean)

	p, err = LoadProblem(filepath.Join("testdata", "regression.yaml"))
	require.NoError(t, err)
	assert.Equal(t, RegressionName, p.Target)
	assert.Equal(t, "observations.csv", p.Data)
	assert.Equal(t, 0.3, p.Sigma)
	assert.Equal(t, filepath.Join("testdata", "observations.csv"), p.resolve(p.Data))
}

func TestProblem_LoadRejectsInvalidFiles(t *testing.T) {
	tests := map[string]string{
		"unknown.json":       `{"target": "banana", "initial": [0], "bounds": [[0, 1]], "proposal_cov": [[1]]}`,
		"unknown-field.json": `{"target": "gaussian", "initial": [0], "bounds": [[0, 1]], "proposal_cov": [[1]], "foo": 1}`,
		"empty-model.json":   `{"target": "gaussian", "initial": [], "bounds": [], "proposal_cov": []}`,
		"bounds.json":        `{"target": "gaussian", "initial": [0, 0], "bounds": [[0, 1]], "proposal_cov": [[1]]}`,
		"outside.json":       `{"target": "gaussian", "initial": [2], "bounds": [[0, 1]], "proposal_cov": [[1]]}`,
		"proposal.yaml":      "target: gaussian\ninitial: [0]\nbounds: [[0, 1]]\nproposal_cov: [[1], [1]]\n",
		"names.yaml":         "target: gaussian\nparameters: [a, b]\ninitial: [0]\nbounds: [[0, 1]]\nproposal_cov: [[1]]\n",
		"syntax.yaml":        "target: [gaussian\n",
		"reserved.yaml":      "target: gaussian\nparameters: [auxiliary]\ninitial: [0]\nbounds: [[0, 1]]\nproposal_cov: [[1]]\n",
	}
	dir := t.TempDir()
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			filename := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
			_, err := LoadProblem(filename)
			assert.Error(t, err)
		})
	}

	_, err := LoadProblem(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "cannot read problem file")
}

func TestTarget_Names(t *testing.T) {
	assert.Equal(t, []string{"gaussian", "linear-regression"}, Names())
}

func TestTarget_GaussianPosterior(t *testing.T) {
	p, err := LoadProblem(filepath.Join("testdata", "gaussian.json"))
	require.NoError(t, err)
	tgt, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, GaussianName, tgt.Name())

	s := metropolis.NewSeededSampler(0, logger.NewMockLogger(gomock.NewController(t)))
	tr, err := tgt.Sample(s, p.Params(40000, false))
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, tr.Names)
	assert.Nil(t, tr.Auxiliary)
	assert.InDelta(t, 1.0, stat.Mean(tr.Marginal(0, 1000), nil), 0.1)
	assert.InDelta(t, -1.0, stat.Mean(tr.Marginal(1, 1000), nil), 0.1)
}

func TestTarget_RegressionPosterior(t *testing.T) {
	p, err := LoadProblem(filepath.Join("testdata", "regression.yaml"))
	require.NoError(t, err)
	tgt, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, RegressionName, tgt.Name())

	s := metropolis.NewSeededSampler(0, logger.NewMockLogger(gomock.NewController(t)))
	tr, err := tgt.Sample(s, p.Params(40000, false))
	require.NoError(t, err)

	require.Len(t, tr.Auxiliary, 40000)
	assert.InDelta(t, 1.9576, stat.Mean(tr.Marginal(0, 2000), nil), 0.03)
	assert.InDelta(t, 1.1676, stat.Mean(tr.Marginal(1, 2000), nil), 0.15)
	for i := range tr.Chain {
		_, rms, err := RegressionLogLikelihood(tr.Chain[i], tgt.(*regressionTarget).obs)
		require.NoError(t, err)
		assert.Equal(t, rms, tr.Auxiliary[i])
	}
}

func TestTarget_NewRejectsInconsistentProblems(t *testing.T) {
	base := func() *Problem {
		return &Problem{
			Target:      GaussianName,
			Initial:     []float64{0, 0},
			Bounds:      [][]float64{{-1, 1}, {-1, 1}},
			ProposalCov: [][]float64{{1, 0}, {0, 1}},
			Mean:        []float64{0, 0},
			Cov:         [][]float64{{1, 0}, {0, 1}},
		}
	}

	p := base()
	p.Mean = []float64{0}
	p.Cov = [][]float64{{1}}
	_, err := New(p)
	assert.ErrorContains(t, err, "gaussian has dimension 1")

	p = base()
	p.Target = RegressionName
	_, err = New(p)
	assert.ErrorContains(t, err, "needs an observation file")

	p = base()
	p.Target = RegressionName
	p.Initial = []float64{0, 0, 0}
	p.Bounds = [][]float64{{-1, 1}, {-1, 1}, {-1, 1}}
	p.ProposalCov = [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	_, err = New(p)
	assert.ErrorContains(t, err, "needs 2 parameters")

	p = base()
	p.Target = RegressionName
	p.Data = filepath.Join(t.TempDir(), "missing.csv")
	p.Sigma = 1
	_, err = New(p)
	assert.ErrorContains(t, err, "cannot open observations")
}
