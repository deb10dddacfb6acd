// portprobe reports whether a TCP service is reachable on a given host and
// port within a bounded time, through its exit status alone. It delegates
// the connection attempt to a netcat-style connector, wrapped in an
// external deadline enforcer when a positive timeout is requested, and
// translates the toolchain's exit status into its own contract:
//
//	0  service reachable
//	1  service unreachable (refused, no route, or timed out)
//	2  help or version requested
//	3  command-line usage error
//	4  required external tool missing, or unsupported platform
//	10 unexpected probe-tool failure
//
// At verbosity 0 expected outcomes produce no output at all.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"portprobe/internal/probe"
)

const version = "1.1.0"

// Exit codes. Only 0 and 1 are answers; everything else means no yes/no
// answer was produced.
const (
	exitOpen     = 0
	exitClosed   = 1
	exitInfo     = 2
	exitUsage    = 3
	exitNoTool   = 4
	exitInternal = 10
)

const defaultPort = 22

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, performs the probe, and returns the process exit code.
// All output goes through stdout/stderr so tests can capture it.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("portprobe", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parse errors and usage are reported by hand

	var (
		help        = fs.BoolP("help", "h", false, "show this help and exit")
		showVersion = fs.BoolP("version", "V", false, "show version and exit")
		verbosity   = fs.CountP("verbose", "v", "increase verbosity (repeatable, or --verbose=N)")
		timeout     = fs.Float64P("timeout", "t", probe.DefaultTimeout, "seconds to wait for the connection")
	)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "portprobe: %v\n", err)
		printUsage(stderr)
		return exitUsage
	}

	if *help {
		printUsage(stdout)
		return exitInfo
	}
	if *showVersion {
		fmt.Fprintln(stdout, versionLine())
		return exitInfo
	}

	host, port, err := targetArgs(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "portprobe: %v\n", err)
		printUsage(stderr)
		return exitUsage
	}

	setupLogging(*verbosity, stderr)

	res, err := probe.Probe(probe.Params{
		Host:           host,
		Port:           port,
		TimeoutSeconds: *timeout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "portprobe: %v\n", err)
		switch {
		case errors.Is(err, probe.ErrUnsupportedPlatform),
			errors.Is(err, probe.ErrConnectorNotFound),
			errors.Is(err, probe.ErrEnforcerNotFound):
			return exitNoTool
		default:
			return exitInternal
		}
	}

	if *verbosity >= 1 {
		fmt.Fprintln(stdout, resultLine(res))
	}
	if res.Outcome == probe.Open {
		return exitOpen
	}
	return exitClosed
}

// targetArgs validates the positional arguments: a required host and an
// optional port defaulting to 22.
func targetArgs(rest []string) (string, int, error) {
	switch {
	case len(rest) == 0:
		return "", 0, errors.New("missing required HOST argument")
	case len(rest) > 2:
		return "", 0, fmt.Errorf("too many arguments: %s", strings.Join(rest[2:], " "))
	}
	host := rest[0]
	if host == "" {
		return "", 0, errors.New("HOST must not be empty")
	}
	port := defaultPort
	if len(rest) == 2 {
		p, err := strconv.Atoi(rest[1])
		if err != nil || p < 1 || p > 65535 {
			return "", 0, fmt.Errorf("invalid port %q (want an integer in 1-65535)", rest[1])
		}
		port = p
	}
	return host, port, nil
}

// setupLogging maps the verbosity level onto the logrus level: warnings
// only by default, info at 1, full debug traces (resolved parameters,
// external command line, captured output) at 3 and above.
func setupLogging(verbosity int, stderr io.Writer) {
	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case verbosity >= 3:
		logrus.SetLevel(logrus.DebugLevel)
	case verbosity >= 1:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

var outcomeColors = map[probe.Outcome]*color.Color{
	probe.Open:     color.New(color.FgGreen),
	probe.Closed:   color.New(color.FgRed),
	probe.TimedOut: color.New(color.FgYellow),
}

// resultLine renders the one-line statement of the attempt and its result
// shown at verbosity >= 1.
func resultLine(r probe.Result) string {
	word := r.Outcome.String()
	if c, ok := outcomeColors[r.Outcome]; ok {
		word = c.Sprint(word)
	}
	if r.Outcome == probe.TimedOut {
		return fmt.Sprintf("%s port %d: %s after %ss", r.Params.Host, r.Params.Port, word, r.Plan.Deadline)
	}
	return fmt.Sprintf("%s port %d: %s (%s)", r.Params.Host, r.Params.Port, word,
		r.Elapsed.Round(time.Microsecond))
}

func versionLine() string {
	goVer := "unknown"
	if bi, ok := debug.ReadBuildInfo(); ok {
		goVer = bi.GoVersion
	}
	return fmt.Sprintf("portprobe %s (built with %s)", version, goVer)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `portprobe %s - test whether a TCP port accepts connections

Usage: portprobe [options] HOST [PORT]

Makes a single TCP connection attempt to HOST on PORT (default %d) and
reports the outcome through the exit status. A dotted-quad HOST is probed
without name resolution. Expected outcomes print nothing unless -v is
given.

Options:
  -t, --timeout SECONDS  seconds to wait for the connection (default %v);
                         zero or less waits without an external deadline
  -v, --verbose          increase verbosity (repeatable, or --verbose=N)
  -h, --help             show this help and exit
  -V, --version          show version and exit

Exit status:
  0   port is open
  1   port is closed, unreachable, or the attempt timed out
  2   help or version was requested
  3   command-line usage error
  4   required external tool missing, or unsupported platform
  10  unexpected failure of the external toolchain

Environment:
  PORTPROBE_NC           connector binary (default: first of nc, ncat, netcat)
  PORTPROBE_TIMEOUT_BIN  deadline enforcer (default: first of timeout, gtimeout)

Example:
  portprobe -v -t 1.5 build01.example.net 8443
`, version, defaultPort, probe.DefaultTimeout)
}
