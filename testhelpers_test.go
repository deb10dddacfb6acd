//go:build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"portprobe/internal/probe"
)

// stubToolchain points toolchain discovery at throwaway scripts: a
// connector that exits with connectorStatus and an enforcer that runs the
// wrapped command as-is.
func stubToolchain(t *testing.T, connectorStatus int) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(probe.EnvConnector, writeStubTool(t, dir, "nc",
		fmt.Sprintf("#!/bin/sh\nexit %d\n", connectorStatus)))
	t.Setenv(probe.EnvEnforcer, writeStubTool(t, dir, "timeout",
		"#!/bin/sh\nshift\nexec \"$@\"\n"))
}

// writeStubTool creates an executable script in dir with the given body.
func writeStubTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}
