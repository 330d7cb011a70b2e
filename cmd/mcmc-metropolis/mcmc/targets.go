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
	"errors"
	"strings"

	"github.com/0xsoniclabs/mcmc/config"
	"github.com/0xsoniclabs/mcmc/stochastic/target"
	"github.com/0xsoniclabs/mcmc/utils"
	"github.com/urfave/cli/v2"
)

var TargetsCommand = cli.Command{
	Action: targetsAction,
	Name:   "targets",
	Usage:  "lists the targets a problem file can name",
	Description: `
The targets command takes no arguments. It prints the names accepted by the
"target" field of a problem file, one per line.`,
}

func targetsAction(ctx *cli.Context) error {
	if _, err := config.NewConfig(ctx, config.NoArgs); err != nil {
		return err
	}
	printers := utils.NewPrinters().AddPrinterToWriter(ctx.App.Writer, func() string {
		return strings.Join(target.Names(), "\n")
	})
	return errors.Join(printers.Print(), printers.Close())
}
