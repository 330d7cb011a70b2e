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

// Package config collects the settings of a command from its command line.
package config

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type ArgumentType int

// Type of arguments of a command.
const (
	NoArgs ArgumentType = iota // requires no positional argument
	OneArg                     // requires exactly one positional argument
)

// Config summarizes the command line of a sampler tool.
type Config struct {
	AppName     string
	CommandName string

	Input       string // positional argument: problem or chain file
	LogLevel    string // level of the logger
	NumSamples  int    // number of chain entries
	RandomSeed  int64  // seed of the random generator
	Verbose     bool   // report sampling progress
	Output      string // chain output file
	Sqlite3     string // sqlite3 database receiving the chain
	HtmlFile    string // HTML file receiving the charts
	Port        string // port of the chart server
	BurnIn      int    // leading chain entries excluded from statistics
	SummaryFile string // file receiving the posterior summary
}

// NewConfig creates the configuration of a command from its flags and
// checks the number of positional arguments.
func NewConfig(ctx *cli.Context, mode ArgumentType) (*Config, error) {
	cfg := createConfigFromFlags(ctx)

	switch mode {
	case NoArgs:
		if ctx.Args().Len() != 0 {
			return nil, fmt.Errorf("command %v takes no arguments, got %d", cfg.CommandName, ctx.Args().Len())
		}
	case OneArg:
		if ctx.Args().Len() != 1 {
			return nil, fmt.Errorf("command %v requires exactly one argument, got %d", cfg.CommandName, ctx.Args().Len())
		}
		cfg.Input = ctx.Args().First()
	default:
		return nil, fmt.Errorf("unknown argument type %d", mode)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.NumSamples < 1 {
		return fmt.Errorf("number of samples must be positive, got %d", cfg.NumSamples)
	}
	if cfg.BurnIn < 0 {
		return fmt.Errorf("burn-in must not be negative, got %d", cfg.BurnIn)
	}
	return nil
}
