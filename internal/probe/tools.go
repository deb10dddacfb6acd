package probe

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Environment variables overriding toolchain discovery. Each accepts a
// binary name looked up on PATH or an absolute path.
const (
	EnvConnector = "PORTPROBE_NC"
	EnvEnforcer  = "PORTPROBE_TIMEOUT_BIN"
)

var (
	connectorCandidates = []string{"nc", "ncat", "netcat"}
	enforcerCandidates  = []string{"timeout", "gtimeout"}
)

var (
	// ErrUnsupportedPlatform means the host OS has no POSIX probing
	// toolchain to delegate to.
	ErrUnsupportedPlatform = errors.New("unsupported platform: a POSIX toolchain (netcat, timeout) is required")
	// ErrConnectorNotFound means no netcat-style binary was found.
	ErrConnectorNotFound = errors.New("no connector found (tried nc, ncat, netcat)")
	// ErrEnforcerNotFound means a deadline was requested but no timeout
	// binary was found.
	ErrEnforcerNotFound = errors.New("no deadline enforcer found (tried timeout, gtimeout)")
)

// Toolchain holds the resolved paths of the external tools one probe
// attempt will invoke.
type Toolchain struct {
	Connector string
	// Enforcer is empty when the plan carries no external deadline.
	Enforcer string
}

// Discover resolves the tools the plan needs. The connector is always
// required; the enforcer only when the plan carries a deadline.
func Discover(plan Plan) (Toolchain, error) {
	if runtime.GOOS == "windows" {
		return Toolchain{}, ErrUnsupportedPlatform
	}

	var tc Toolchain
	var err error
	tc.Connector, err = findTool(EnvConnector, connectorCandidates, ErrConnectorNotFound)
	if err != nil {
		return Toolchain{}, err
	}
	if plan.Enforced() {
		tc.Enforcer, err = findTool(EnvEnforcer, enforcerCandidates, ErrEnforcerNotFound)
		if err != nil {
			return Toolchain{}, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"connector": tc.Connector,
		"enforcer":  tc.Enforcer,
	}).Debug("resolved toolchain")
	return tc, nil
}

// findTool resolves one tool: an environment override wins outright, then
// the candidates are tried on PATH in order.
func findTool(envVar string, candidates []string, notFound error) (string, error) {
	if override := os.Getenv(envVar); override != "" {
		path, err := exec.LookPath(override)
		if err != nil {
			return "", fmt.Errorf("%s=%q: %w", envVar, override, notFound)
		}
		return path, nil
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", notFound
}
