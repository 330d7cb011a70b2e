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

	"github.com/0xsoniclabs/mcmc/config"
	"github.com/0xsoniclabs/mcmc/logger"
	"github.com/0xsoniclabs/mcmc/stochastic/summary"
	"github.com/0xsoniclabs/mcmc/stochastic/trace"
	"github.com/0xsoniclabs/mcmc/utils"
	"github.com/urfave/cli/v2"
)

var SummarizeCommand = cli.Command{
	Action:    summarizeAction,
	Name:      "summarize",
	Usage:     "prints posterior statistics of a sampled chain",
	ArgsUsage: "<chain-file>",
	Flags: []cli.Flag{
		&utils.BurnInFlag,
		&utils.SummaryFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The summarize command requires one argument:
<chain-file>

<chain-file> is a chain written by the run command. The mean, the standard
deviation and the central 95% credible interval of every parameter are
printed after discarding the burn-in.`,
}

func summarizeAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.OneArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Metropolis Summarize")

	log.Infof("Read chain %v", cfg.Input)
	tr, err := trace.Read(cfg.Input)
	if err != nil {
		return err
	}
	s, err := summary.Summarize(tr, cfg.BurnIn)
	if err != nil {
		return fmt.Errorf("cannot summarize chain %v; %w", cfg.Input, err)
	}

	render := func() string {
		var buf bytes.Buffer
		if err := s.Render(&buf); err != nil {
			return err.Error()
		}
		return buf.String()
	}
	printers := utils.NewPrinters().
		AddPrinterToWriter(ctx.App.Writer, render).
		AddPrinterToFile(cfg.SummaryFile, render)
	return errors.Join(printers.Print(), printers.Close())
}
