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
	"bytes"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0xsoniclabs/mcmc/stochastic/trace"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace(n int) *trace.Trace {
	rg := rand.New(rand.NewSource(7))
	tr := &trace.Trace{Names: []string{"slope", "intercept"}}
	for i := 0; i < n; i++ {
		tr.Chain = append(tr.Chain, []float64{rg.NormFloat64(), 1 + rg.NormFloat64()})
		tr.LogLikelihood = append(tr.LogLikelihood, -float64(i%7))
	}
	tr.Accepted = n / 2
	return tr
}

func mustSetView(t *testing.T, tr *trace.Trace) {
	t.Helper()
	require.NoError(t, setViewState(tr, 0))
}

func clearView(t *testing.T) {
	t.Helper()
	currentMu.Lock()
	currentState = nil
	currentMu.Unlock()
}

func TestVisualizer_renderMain(t *testing.T) {
	req, err := http.NewRequest("GET", "/", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderMain)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, MainHtml, rr.Body.String())
}

func TestVisualizer_convertLineData(t *testing.T) {
	testData := [][2]float64{{1.0, 2.0}, {3.0, 4.0}, {5.0, 6.0}}

	result := convertLineData(testData)

	assert.Len(t, result, 3)
	assert.Equal(t, opts.LineData{Value: [2]float64{1.0, 2.0}}, result[0])
	assert.Equal(t, opts.LineData{Value: [2]float64{3.0, 4.0}}, result[1])
	assert.Equal(t, opts.LineData{Value: [2]float64{5.0, 6.0}}, result[2])
}

func TestVisualizer_handlers(t *testing.T) {
	mustSetView(t, sampleTrace(100))
	defer clearView(t)

	handlers := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{"renderParameters", renderParameters, "Trace of slope"},
		{"renderLogLikelihood", renderLogLikelihood, "Log-Likelihood Trace"},
		{"renderMarginals", renderMarginals, "Marginal of intercept"},
	}
	for _, tc := range handlers {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest("GET", "/", nil)
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			tc.handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.want)
		})
	}
}

func TestVisualizer_handlersWithoutState(t *testing.T) {
	handlers := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"renderParameters", renderParameters},
		{"renderLogLikelihood", renderLogLikelihood},
		{"renderMarginals", renderMarginals},
	}
	for _, tc := range handlers {
		t.Run(tc.name, func(t *testing.T) {
			clearView(t)
			req, err := http.NewRequest("GET", "/", nil)
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			tc.handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		})
	}
}

func TestVisualizer_NewHandlerRoutes(t *testing.T) {
	mustSetView(t, sampleTrace(50))
	defer clearView(t)

	server := httptest.NewServer(NewHandler())
	defer server.Close()

	for _, ref := range []string{"", parameterRef, logLikelihoodRef, marginalRef} {
		resp, err := http.Get(server.URL + "/" + ref)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, ref)
		require.NoError(t, resp.Body.Close())
	}
}

func TestVisualizer_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleTrace(200), 20))
	out := buf.String()
	for _, want := range []string{"Trace of slope", "Trace of intercept", "Log-Likelihood Trace", "Marginal of slope", "burn-in of 20 steps"} {
		assert.Contains(t, out, want)
	}
}

func TestVisualizer_RenderRejectsInvalidInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, nil, 0))
	assert.Error(t, Render(&buf, sampleTrace(10), 10))
	assert.Error(t, Render(&buf, sampleTrace(10), -1))
}

func TestVisualizer_buildViewStateLimitsPoints(t *testing.T) {
	view, err := buildViewState(sampleTrace(5000), 100)
	require.NoError(t, err)
	require.Len(t, view.parameters, 2)
	assert.LessOrEqual(t, len(view.parameters[0]), 2000)
	assert.Equal(t, [2]float64{0, view.trace.Chain[0][0]}, view.parameters[0][0])
	assert.LessOrEqual(t, len(view.marginals[1]), 300)
	assert.Equal(t, 1.0, view.marginals[1][len(view.marginals[1])-1][1])
}

func TestVisualizer_simplifyTraceSkipsNonFiniteValues(t *testing.T) {
	res := simplifyTrace([]float64{math.Inf(-1), 1, math.NaN(), 2}, 10)
	assert.Equal(t, [][2]float64{{1, 1}, {3, 2}}, res)
}

func TestVisualizer_FireUpWeb(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		done <- FireUpWeb(sampleTrace(20), 0, "0")
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(1 * time.Second):
		// If no error after 1 seconds, pass the test
	}
}

func TestVisualizer_FireUpWebFailsOnNilTrace(t *testing.T) {
	err := FireUpWeb(nil, 0, "0")
	assert.Error(t, err)
}
