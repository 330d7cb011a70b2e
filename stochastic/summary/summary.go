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

// Package summary condenses a sampled chain into posterior statistics.
package summary

import (
	"fmt"
	"io"

	"github.com/0xsoniclabs/mcmc/stochastic"
	"github.com/0xsoniclabs/mcmc/stochastic/statistics/ecdf"
	"github.com/0xsoniclabs/mcmc/stochastic/trace"
	"github.com/0xsoniclabs/mcmc/utils/analytics"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Parameter holds the marginal posterior statistics of one parameter.
type Parameter struct {
	Name   string
	Mean   float64
	StdDev float64
	Lower  float64 // lower bound of the central credible interval
	Median float64
	Upper  float64 // upper bound of the central credible interval
	Min    float64
	Max    float64
}

// Summary holds the posterior statistics of a chain.
type Summary struct {
	Samples        int // chain entries after burn-in
	BurnIn         int
	Accepted       int
	AcceptanceRate float64
	Parameters     []Parameter
}

// Summarize computes the marginal statistics of every parameter of the
// trace, discarding the first burnIn entries.
func Summarize(t *trace.Trace, burnIn int) (*Summary, error) {
	if burnIn < 0 {
		return nil, fmt.Errorf("burn-in must not be negative, got %d", burnIn)
	}
	if burnIn >= t.Len() {
		return nil, fmt.Errorf("burn-in of %d leaves no samples of a chain of length %d", burnIn, t.Len())
	}
	s := &Summary{
		Samples:        t.Len() - burnIn,
		BurnIn:         burnIn,
		Accepted:       t.Accepted,
		AcceptanceRate: t.AcceptanceRate(),
		Parameters:     make([]Parameter, t.Dim()),
	}
	tail := (1 - stochastic.CredibleMass) / 2
	for i, name := range t.Names {
		marginal := t.Marginal(i, burnIn)
		stats := analytics.NewIncrementalStats()
		for _, x := range marginal {
			stats.Update(x)
		}
		dist, err := ecdf.New(marginal)
		if err != nil {
			return nil, fmt.Errorf("cannot summarize parameter %v; %w", name, err)
		}
		s.Parameters[i] = Parameter{
			Name:   name,
			Mean:   stats.GetMean(),
			StdDev: stats.GetStandardDeviation(),
			Lower:  dist.Quantile(tail),
			Median: dist.Quantile(0.5),
			Upper:  dist.Quantile(1 - tail),
			Min:    stats.GetMin(),
			Max:    stats.GetMax(),
		}
	}
	return s, nil
}

// Render prints the summary as a table.
func (s *Summary) Render(w io.Writer) error {
	p := message.NewPrinter(language.English)
	tail := 100 * (1 - stochastic.CredibleMass) / 2

	tw := table.NewWriter()
	tw.SetTitle(p.Sprintf("%d samples (burn-in %d)", s.Samples, s.BurnIn))
	tw.AppendHeader(table.Row{
		"parameter", "mean", "sd",
		p.Sprintf("%.1f%%", tail), "median", p.Sprintf("%.1f%%", 100-tail),
		"min", "max",
	})
	for _, par := range s.Parameters {
		tw.AppendRow(table.Row{
			par.Name,
			p.Sprintf("%.4f", par.Mean),
			p.Sprintf("%.4f", par.StdDev),
			p.Sprintf("%.4f", par.Lower),
			p.Sprintf("%.4f", par.Median),
			p.Sprintf("%.4f", par.Upper),
			p.Sprintf("%.4f", par.Min),
			p.Sprintf("%.4f", par.Max),
		})
	}
	tw.AppendFooter(table.Row{
		"acceptance",
		p.Sprintf("%.1f%%", 100*s.AcceptanceRate),
		p.Sprintf("%d accepted", s.Accepted),
	})
	_, err := fmt.Fprint(w, tw.Render())
	return err
}
