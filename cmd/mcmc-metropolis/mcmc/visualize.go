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
	"github.com/0xsoniclabs/mcmc/config"
	"github.com/0xsoniclabs/mcmc/logger"
	"github.com/0xsoniclabs/mcmc/stochastic/trace"
	"github.com/0xsoniclabs/mcmc/stochastic/visualizer"
	"github.com/0xsoniclabs/mcmc/utils"
	"github.com/urfave/cli/v2"
)

var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "produces graphs of a sampled chain",
	ArgsUsage: "<chain-file>",
	Flags: []cli.Flag{
		&utils.PortFlag,
		&utils.HtmlFlag,
		&utils.BurnInFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The visualize command requires one argument:
<chain-file>

<chain-file> is a chain written by the run command. The parameter traces,
the log-likelihood trace and the marginal distributions are written into
an HTML file if --html is given and served on --port otherwise.`,
}

func visualizeAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.OneArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Metropolis Visualize")

	tr, err := trace.Read(cfg.Input)
	if err != nil {
		return err
	}
	if cfg.HtmlFile != "" {
		log.Noticef("Write charts %v", cfg.HtmlFile)
		return writeHtml(cfg.HtmlFile, tr, cfg.BurnIn)
	}

	log.Noticef("Open web browser with http://localhost:%v", cfg.Port)
	log.Notice("Cancel visualize with ^C")
	return visualizer.FireUpWeb(tr, cfg.BurnIn, cfg.Port)
}
