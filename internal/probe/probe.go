// Package probe performs a single TCP reachability check by delegating the
// connection attempt to an external netcat-style connector, optionally
// wrapped in a deadline enforcer, and classifying the subprocess exit
// status into an outcome.
package probe

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout is the connection deadline, in seconds, used when the
// caller does not request one.
const DefaultTimeout = 0.25

// Params describes one probe attempt.
type Params struct {
	Host           string
	Port           int
	TimeoutSeconds float64
}

// Outcome is the classified result of a probe attempt. Timed-out is kept
// distinct from closed so diagnostics can say which happened, even though
// both mean "unreachable" to callers.
type Outcome int

const (
	Open Outcome = iota
	Closed
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Open:
		return "open"
	case Closed:
		return "closed"
	case TimedOut:
		return "timed out"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result carries everything observed during one probe attempt. Output and
// Argv exist for diagnostic printing only; classification depends solely on
// Status.
type Result struct {
	Params  Params
	Plan    Plan
	Outcome Outcome
	Status  int
	Output  string
	Argv    []string
	Elapsed time.Duration
}

// Probe resolves the toolchain, issues exactly one connection attempt to
// host:port, and classifies the result. Unexpected subprocess statuses are
// returned as a *ToolError rather than a Result.
func Probe(p Params) (Result, error) {
	if p.Host == "" {
		return Result{}, errors.New("host must not be empty")
	}
	if p.Port < 1 || p.Port > 65535 {
		return Result{}, fmt.Errorf("port %d out of range 1-65535", p.Port)
	}

	plan := BuildPlan(p.TimeoutSeconds)
	logrus.WithFields(logrus.Fields{
		"host":     p.Host,
		"port":     p.Port,
		"timeout":  p.TimeoutSeconds,
		"window":   plan.Window,
		"deadline": plan.Deadline,
		"numeric":  NumericHost(p.Host),
	}).Debug("probe parameters")

	tc, err := Discover(plan)
	if err != nil {
		return Result{}, err
	}

	return runProbe(p, plan, Argv(tc, plan, p.Host, p.Port))
}
