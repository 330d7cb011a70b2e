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
	"testing"

	"github.com/0xsoniclabs/mcmc/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmd_TargetsCommand(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp()
	app.Writer = &buf

	require.NoError(t, app.Run(utils.NewArgs("test").Arg(TargetsCommand.Name).Build()))
	assert.Equal(t, "gaussian\nlinear-regression\n", buf.String())
}

func TestCmd_TargetsCommandRejectsArguments(t *testing.T) {
	app := newTestApp()
	err := app.Run(utils.NewArgs("test").Arg(TargetsCommand.Name).Arg("gaussian").Build())
	assert.ErrorContains(t, err, "takes no arguments")
}
