//go:build !windows

package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeStub creates an executable script in dir that ignores its arguments
// and exits with status.
func writeStub(t *testing.T, dir, name string, status int) string {
	t.Helper()
	return writeScript(t, dir, name, fmt.Sprintf("#!/bin/sh\nexit %d\n", status))
}

// writeEchoStub creates an executable script in dir that prints line and
// exits with status.
func writeEchoStub(t *testing.T, dir, name, line string, status int) string {
	t.Helper()
	return writeScript(t, dir, name, fmt.Sprintf("#!/bin/sh\necho '%s'\nexit %d\n", line, status))
}

// writeRecorderStub creates an executable script in dir that writes its
// arguments to logFile, one per line, then exits with status.
func writeRecorderStub(t *testing.T, dir, name, logFile string, status int) string {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > '%s'\nexit %d\n", logFile, status)
	return writeScript(t, dir, name, script)
}

// writePassthroughEnforcer creates an enforcer stand-in that discards its
// deadline argument and runs the wrapped command in its place.
func writePassthroughEnforcer(t *testing.T, dir, name string) string {
	t.Helper()
	return writeScript(t, dir, name, "#!/bin/sh\nshift\nexec \"$@\"\n")
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}
