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

package config

import (
	"github.com/0xsoniclabs/mcmc/logger"
	"github.com/0xsoniclabs/mcmc/utils"
	"github.com/urfave/cli/v2"
)

func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		BurnIn:      getFlagValue(ctx, utils.BurnInFlag).(int),
		HtmlFile:    getFlagValue(ctx, utils.HtmlFlag).(string),
		LogLevel:    getFlagValue(ctx, logger.LogLevelFlag).(string),
		NumSamples:  getFlagValue(ctx, utils.NumSamplesFlag).(int),
		Output:      getFlagValue(ctx, utils.OutputFlag).(string),
		Port:        getFlagValue(ctx, utils.PortFlag).(string),
		RandomSeed:  getFlagValue(ctx, utils.RandomSeedFlag).(int64),
		Sqlite3:     getFlagValue(ctx, utils.Sqlite3Flag).(string),
		SummaryFile: getFlagValue(ctx, utils.SummaryFlag).(string),
		Verbose:     getFlagValue(ctx, utils.VerboseFlag).(bool),
	}

	return cfg
}

// getFlagValue returns the value of a flag if the command defines it and
// the default value of the flag otherwise.
func getFlagValue(ctx *cli.Context, flag any) any {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Int64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	}

	return nil
}
