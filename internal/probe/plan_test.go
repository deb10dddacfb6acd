package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPlan(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    Plan
	}{
		{"subsecond", 0.25, Plan{Deadline: "0.25", Window: 1}},
		{"fractional", 1.5, Plan{Deadline: "1.5", Window: 2}},
		{"whole seconds", 2, Plan{Deadline: "2", Window: 3}},
		{"just under one", 0.999, Plan{Deadline: "0.999", Window: 1}},
		{"large", 10, Plan{Deadline: "10", Window: 11}},
		{"zero disables the deadline", 0, Plan{Window: 1}},
		{"negative disables the deadline", -3, Plan{Window: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPlan(tt.seconds)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Deadline != "", got.Enforced())
		})
	}
}

func TestNumericHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"192.168.0.1", true},
		{"8.8.8.8", true},
		{"0.0.0.0", true},
		// pattern check only, octets are not range-validated
		{"256.300.1.2", true},
		{"example.com", false},
		{"1.2.3", false},
		{"1.2.3.4.5", false},
		{"1234.1.1.1", false},
		{"::1", false},
		{"1.2.3.4a", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, NumericHost(tt.host))
		})
	}
}

func TestArgv(t *testing.T) {
	tc := Toolchain{Connector: "/usr/bin/nc", Enforcer: "/usr/bin/timeout"}
	tests := []struct {
		name string
		plan Plan
		host string
		port int
		want []string
	}{
		{
			"hostname without deadline",
			Plan{Window: 1},
			"example.com", 22,
			[]string{"/usr/bin/nc", "-z", "-w", "1", "example.com", "22"},
		},
		{
			"numeric host without deadline",
			Plan{Window: 1},
			"10.0.0.1", 22,
			[]string{"/usr/bin/nc", "-z", "-n", "-w", "1", "10.0.0.1", "22"},
		},
		{
			"hostname with deadline",
			Plan{Deadline: "1.5", Window: 2},
			"db.internal", 5432,
			[]string{"/usr/bin/timeout", "1.5", "/usr/bin/nc", "-z", "-w", "2", "db.internal", "5432"},
		},
		{
			"numeric host with deadline",
			Plan{Deadline: "0.25", Window: 1},
			"10.0.0.1", 443,
			[]string{"/usr/bin/timeout", "0.25", "/usr/bin/nc", "-z", "-n", "-w", "1", "10.0.0.1", "443"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Argv(tc, tt.plan, tt.host, tt.port))
		})
	}
}
