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

package mcmc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/0xsoniclabs/mcmc/config"
	"github.com/0xsoniclabs/mcmc/logger"
	"github.com/0xsoniclabs/mcmc/stochastic/metropolis"
	"github.com/0xsoniclabs/mcmc/stochastic/summary"
	"github.com/0xsoniclabs/mcmc/stochastic/target"
	"github.com/0xsoniclabs/mcmc/stochastic/trace"
	"github.com/0xsoniclabs/mcmc/stochastic/visualizer"
	"github.com/0xsoniclabs/mcmc/utils"
	"github.com/urfave/cli/v2"
)

var RunCommand = cli.Command{
	Action:    runAction,
	Name:      "run",
	Usage:     "samples the posterior of a problem with the Metropolis algorithm",
	ArgsUsage: "<problem-file>",
	Flags: []cli.Flag{
		&utils.NumSamplesFlag,
		&utils.RandomSeedFlag,
		&utils.VerboseFlag,
		&utils.OutputFlag,
		&utils.Sqlite3Flag,
		&utils.HtmlFlag,
		&utils.BurnInFlag,
		&utils.SummaryFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The run command requires one argument:
<problem-file>

<problem-file> is a JSON or YAML file naming the target, its parameters,
the initial model, the prior bounds and the proposal covariance.`,
}

func runAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.OneArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Metropolis Run")

	problem, err := target.LoadProblem(cfg.Input)
	if err != nil {
		return err
	}
	tgt, err := target.New(problem)
	if err != nil {
		return err
	}

	log.Noticef("Sample %d models of target %v with seed %d", cfg.NumSamples, tgt.Name(), cfg.RandomSeed)
	sampler := metropolis.NewSeededSampler(cfg.RandomSeed, log)
	start := time.Now()
	tr, err := tgt.Sample(sampler, problem.Params(cfg.NumSamples, cfg.Verbose))
	if err != nil {
		return fmt.Errorf("sampling failed; %w", err)
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Accepted %d of %d proposals (rate %.3f)", tr.Accepted, tr.Len()-1, tr.AcceptanceRate())
	log.Infof("Elapsed time: %vh %vm %vs", hours, minutes, seconds)

	log.Noticef("Write chain %v", cfg.Output)
	if err := tr.Write(cfg.Output); err != nil {
		return err
	}
	return export(cfg, log, tr)
}

// export writes the optional outputs of a sampled chain.
func export(cfg *config.Config, log logger.Logger, tr *trace.Trace) (err error) {
	printers := utils.NewPrinters()
	if cfg.SummaryFile != "" {
		s, serr := summary.Summarize(tr, cfg.BurnIn)
		if serr != nil {
			return serr
		}
		printers.AddPrinterToFile(cfg.SummaryFile, func() string {
			var buf bytes.Buffer
			if err := s.Render(&buf); err != nil {
				return err.Error()
			}
			return buf.String()
		})
		log.Noticef("Write summary %v", cfg.SummaryFile)
	}
	if _, err := printers.AddPrinterToSqlite3(cfg.Sqlite3, trace.SqlCreateChain, trace.SqlInsertChain, tr.Rows); err != nil {
		return err
	}
	if cfg.Sqlite3 != "" {
		log.Noticef("Export chain into %v", cfg.Sqlite3)
	}
	defer func() {
		err = errors.Join(err, printers.Close())
	}()
	if err := printers.Print(); err != nil {
		return err
	}

	if cfg.HtmlFile != "" {
		log.Noticef("Write charts %v", cfg.HtmlFile)
		return writeHtml(cfg.HtmlFile, tr, cfg.BurnIn)
	}
	return nil
}

func writeHtml(filename string, tr *trace.Trace, burnIn int) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create chart file %v; %w", filename, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return visualizer.Render(f, tr, burnIn)
}
