package probe

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// enforcerTimedOut is the status GNU timeout (and gtimeout) reports when
// the deadline fires before the wrapped command exits.
const enforcerTimedOut = 124

// ToolError reports a probe-tool exit status with no defined meaning: the
// environment misbehaved rather than answered yes or no.
type ToolError struct {
	Argv   []string
	Status int
	Output string
}

func (e *ToolError) Error() string {
	verb := fmt.Sprintf("exited with unexpected status %d", e.Status)
	if e.Status < 0 {
		verb = "was terminated before reporting a status"
	}
	msg := fmt.Sprintf("%s %s", filepath.Base(e.Argv[0]), verb)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// runProbe executes argv, waits for it to finish, and classifies the exit
// status. The subprocess reads from the null device; stdout and stderr are
// captured together for diagnostics.
func runProbe(p Params, plan Plan, argv []string) (Result, error) {
	logrus.Debugf("running: %s", strings.Join(argv, " "))

	cmd := exec.Command(argv[0], argv[1:]...)
	start := time.Now()
	out, runErr := cmd.CombinedOutput()
	elapsed := time.Since(start)

	status, err := exitStatus(runErr)
	if err != nil {
		return Result{}, fmt.Errorf("starting %s: %w", argv[0], err)
	}

	logrus.WithFields(logrus.Fields{
		"status":  status,
		"elapsed": elapsed.Round(time.Microsecond).String(),
	}).Debug("probe finished")
	if len(out) > 0 {
		logrus.Debugf("probe output:\n%s", out)
	}

	outcome, ok := classify(status, plan.Enforced())
	if !ok {
		return Result{}, &ToolError{Argv: argv, Status: status, Output: string(out)}
	}
	return Result{
		Params:  p,
		Plan:    plan,
		Outcome: outcome,
		Status:  status,
		Output:  string(out),
		Argv:    argv,
		Elapsed: elapsed,
	}, nil
}

// exitStatus extracts the subprocess exit status from a CombinedOutput
// error. A nil error is status 0; anything that is not an *exec.ExitError
// means the process never ran and is returned as-is.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

// classify maps a raw exit status to an outcome. The enforcer's timeout
// status only counts as timed-out when the enforcer was actually in use;
// otherwise it is as unexpected as any other status.
func classify(status int, enforced bool) (Outcome, bool) {
	switch {
	case status == 0:
		return Open, true
	case status == enforcerTimedOut && enforced:
		return TimedOut, true
	case status == 1:
		return Closed, true
	}
	return 0, false
}
