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
	"io"
	"net/http"

	"github.com/0xsoniclabs/mcmc/stochastic/trace"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const parameterRef = "parameter-traces"
const logLikelihoodRef = "log-likelihood"
const marginalRef = "marginals"

const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Metropolis Chain</title>
  </head>
  <body>
    <h1>Metropolis Chain</h1>
    <ul>
    <li> <h3> <a href="/` + parameterRef + `"> Parameter Traces </a> </h3> </li>
    <li> <h3> <a href="/` + logLikelihoodRef + `"> Log-Likelihood Trace </a> </h3> </li>
    <li> <h3> <a href="/` + marginalRef + `"> Marginal Distributions </a> </h3> </li>
    </ul>
</body>
</html>
`

func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

func convertLineData(data [][2]float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(data))
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

func newLineChart(title, subtitle, xName, seriesName string, data [][2]float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: title,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: xName,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}))
	chart.AddSeries(seriesName, convertLineData(data))
	return chart
}

func newParameterCharts(view *viewState) []*charts.Line {
	res := make([]*charts.Line, len(view.parameters))
	for i, name := range view.trace.Names {
		res[i] = newLineChart(
			fmt.Sprintf("Trace of %v", name), "", "step",
			name, view.parameters[i],
		)
	}
	return res
}

func newLogLikelihoodChart(view *viewState) *charts.Line {
	return newLineChart(
		"Log-Likelihood Trace",
		fmt.Sprintf("acceptance rate %.3f", view.trace.AcceptanceRate()),
		"step",
		"log-likelihood", view.logLikelihood,
	)
}

func newMarginalCharts(view *viewState) []*charts.Line {
	res := make([]*charts.Line, len(view.marginals))
	for i, name := range view.trace.Names {
		res[i] = newLineChart(
			fmt.Sprintf("Marginal of %v", name),
			fmt.Sprintf("eCDF after a burn-in of %d steps", view.burnIn),
			name,
			"eCDF", view.marginals[i],
		)
	}
	return res
}

func renderCharts(w io.Writer, lines ...*charts.Line) error {
	page := components.NewPage()
	for _, line := range lines {
		page.AddCharts(line)
	}
	return page.Render(w)
}

func renderParameters(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = renderCharts(w, newParameterCharts(view)...)
}

func renderLogLikelihood(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newLogLikelihoodChart(view).Render(w)
}

func renderMarginals(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = renderCharts(w, newMarginalCharts(view)...)
}

// Render writes all charts of a trace into a single HTML page.
func Render(w io.Writer, tr *trace.Trace, burnIn int) error {
	if tr == nil {
		return fmt.Errorf("visualizer: trace is nil")
	}
	view, err := buildViewState(tr, burnIn)
	if err != nil {
		return err
	}
	lines := newParameterCharts(view)
	lines = append(lines, newLogLikelihoodChart(view))
	lines = append(lines, newMarginalCharts(view)...)
	return renderCharts(w, lines...)
}

// NewHandler returns the HTTP handler serving the charts of the current trace.
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", renderMain)
	mux.HandleFunc("/"+parameterRef, renderParameters)
	mux.HandleFunc("/"+logLikelihoodRef, renderLogLikelihood)
	mux.HandleFunc("/"+marginalRef, renderMarginals)
	return mux
}

// FireUpWeb serves the charts of the trace on the given port until the
// server fails.
func FireUpWeb(tr *trace.Trace, burnIn int, addr string) error {
	if err := setViewState(tr, burnIn); err != nil {
		return err
	}
	return http.ListenAndServe(":"+addr, NewHandler())
}
