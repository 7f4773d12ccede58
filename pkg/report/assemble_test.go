package report

import (
	"testing"
	"time"
)

func TestAssemblePreservesOrder(t *testing.T) {
	snaps := []Snapshot{
		{Domain: "System", Anchor: "system"},
		{Domain: "CPU", Anchor: "cpu"},
		{Domain: "Memory", Anchor: "memory"},
	}
	missing := []MissingDep{{Name: "nvml", Guidance: "install the NVIDIA driver"}}

	m := Assemble(Host{Hostname: "box", OS: "Ubuntu 24.04", OSVersion: "6.8.0"}, snaps, missing)

	if m.Hostname != "box" || m.OS != "Ubuntu 24.04" || m.OSVersion != "6.8.0" {
		t.Errorf("host identity not carried over: %+v", m)
	}
	for i, want := range []string{"System", "CPU", "Memory"} {
		if m.Snapshots[i].Domain != want {
			t.Errorf("snapshot %d = %q, want %q", i, m.Snapshots[i].Domain, want)
		}
	}
	if len(m.Missing) != 1 || m.Missing[0].Name != "nvml" {
		t.Errorf("missing deps not carried over: %+v", m.Missing)
	}
	if time.Since(m.GeneratedAt) > time.Minute {
		t.Errorf("GeneratedAt not stamped: %v", m.GeneratedAt)
	}
}

func TestAssembleEmpty(t *testing.T) {
	m := Assemble(Host{}, nil, nil)
	if len(m.Snapshots) != 0 || len(m.Missing) != 0 {
		t.Errorf("expected empty model, got %+v", m)
	}
}
