package probe

import (
	"math"
	"regexp"
	"strconv"
)

// Plan holds the dual timeouts for one probe attempt: the precise external
// deadline handed to the enforcer, and the whole-second acceptance window
// handed to the connector itself.
type Plan struct {
	// Deadline is the enforcer's argument, formatted exactly as the
	// requested value round-trips ("0.25", "1.5", "2"). Empty when the
	// attempt runs without an external deadline.
	Deadline string
	// Window is the connector's own -w timeout in seconds.
	Window int
}

// Enforced reports whether the attempt is wrapped in the external deadline
// enforcer.
func (p Plan) Enforced() bool { return p.Deadline != "" }

// BuildPlan derives the dual timeouts from the requested timeout in
// seconds. A non-positive request disables the external deadline and leaves
// the connector its minimal one-second window. Otherwise the enforcer
// carries the exact value and the window is floor(seconds)+1, so the
// precise deadline always fires before the connector's coarse one.
func BuildPlan(seconds float64) Plan {
	if seconds <= 0 {
		return Plan{Window: 1}
	}
	return Plan{
		Deadline: strconv.FormatFloat(seconds, 'f', -1, 64),
		Window:   int(math.Floor(seconds)) + 1,
	}
}

var dottedQuad = regexp.MustCompile(`^[0-9]{1,3}(\.[0-9]{1,3}){3}$`)

// NumericHost reports whether host looks like a dotted-quad IPv4 literal,
// in which case the connector is told to skip name resolution. This is a
// pattern check only; octets are not range-validated.
func NumericHost(host string) bool {
	return dottedQuad.MatchString(host)
}

// Argv assembles the exact command line for one probe attempt: the
// connector in zero-I/O scan mode with its acceptance window, prefixed by
// the enforcer and its deadline when the plan calls for one.
func Argv(tc Toolchain, plan Plan, host string, port int) []string {
	argv := []string{tc.Connector, "-z"}
	if NumericHost(host) {
		argv = append(argv, "-n")
	}
	argv = append(argv, "-w", strconv.Itoa(plan.Window), host, strconv.Itoa(port))
	if plan.Enforced() {
		argv = append([]string{tc.Enforcer, plan.Deadline}, argv...)
	}
	return argv
}
