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
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xsoniclabs/mcmc/logger"
	"github.com/0xsoniclabs/mcmc/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmd_VisualizeCommandWritesHtml(t *testing.T) {
	chain := writeTestChain(t)
	html := filepath.Join(t.TempDir(), "chain.html")

	args := utils.NewArgs("test").
		Arg(VisualizeCommand.Name).
		Flag(utils.HtmlFlag.Name, html).
		Flag(logger.LogLevelFlag.Name, "critical").
		Arg(chain).
		Build()
	require.NoError(t, newTestApp().Run(args))

	content, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Trace of alpha")
	assert.Contains(t, string(content), "Marginal of beta")
}

func TestCmd_RunVisualizeCommand(t *testing.T) {
	// given
	chain := writeTestChain(t)
	port := "8183"
	args := utils.NewArgs("test").
		Arg(VisualizeCommand.Name).
		Flag(utils.PortFlag.Name, port).
		Flag(logger.LogLevelFlag.Name, "critical").
		Arg(chain).
		Build()

	// create a context with timeout to prevent the test from hanging
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// start the web server in a goroutine since app.Run is blocking
	errChan := make(chan error, 1)
	go func() {
		errChan <- newTestApp().Run(args)
	}()

	// try to connect to the server with retries
	serverURL := fmt.Sprintf("http://localhost:%s/log-likelihood", port)
	client := &http.Client{Timeout: 2 * time.Second}
	var resp *http.Response
	var err error
	for i := 0; i < 20; i++ {
		select {
		case <-ctx.Done():
			t.Fatal("Test timeout reached while waiting for server to start")
		case err := <-errChan:
			t.Fatalf("Server stopped: %v", err)
		default:
		}
		resp, err = client.Get(serverURL)
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	// then
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Log-Likelihood Trace")
}
