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

package utils

import (
	"github.com/urfave/cli/v2"
)

// command line flags shared by the sampler tools
var (
	NumSamplesFlag = cli.IntFlag{
		Name:    "samples",
		Aliases: []string{"n"},
		Usage:   "number of chain entries to sample, including the initial model",
		Value:   10_000,
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the random generator driving proposals and acceptance tests",
		Value: 0,
	}
	VerboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "report sampling progress every 10% of the chain",
	}
	OutputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "chain output file; compressed if the name ends in .gz",
		Value:   "./chain.csv",
	}
	Sqlite3Flag = cli.PathFlag{
		Name:  "sqlite",
		Usage: "export the chain into a sqlite3 database",
	}
	HtmlFlag = cli.PathFlag{
		Name:  "html",
		Usage: "write the charts of the chain into an HTML file",
	}
	PortFlag = cli.StringFlag{
		Name:    "port",
		Aliases: []string{"p"},
		Usage:   "serve the charts of the chain on `PORT`",
		Value:   "8080",
	}
	BurnInFlag = cli.IntFlag{
		Name:  "burn-in",
		Usage: "number of leading chain entries excluded from posterior statistics",
		Value: 0,
	}
	SummaryFlag = cli.PathFlag{
		Name:  "summary",
		Usage: "append the posterior summary to a file",
	}
)
