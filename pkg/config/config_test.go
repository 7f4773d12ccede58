package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.General.OutputName != "hardware_report" {
		t.Errorf("output name = %q", cfg.General.OutputName)
	}
	if !cfg.General.OpenViewer {
		t.Error("viewer should open by default")
	}
	if cfg.Probe.Timeout.Duration != 10*time.Second {
		t.Errorf("timeout = %v", cfg.Probe.Timeout.Duration)
	}
	if cfg.Probe.SampleWindow.Duration != time.Second {
		t.Errorf("sample window = %v", cfg.Probe.SampleWindow.Duration)
	}
}

func TestLoadFromReader(t *testing.T) {
	input := `
[general]
output_name = "machine_audit"
open_viewer = false
log_level = "debug"

[probe]
timeout = "30s"
sample_window = "250ms"
`
	cfg, err := LoadFromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.General.OutputName != "machine_audit" {
		t.Errorf("output name = %q", cfg.General.OutputName)
	}
	if cfg.General.OpenViewer {
		t.Error("open_viewer = true, want false")
	}
	if cfg.Probe.Timeout.Duration != 30*time.Second {
		t.Errorf("timeout = %v", cfg.Probe.Timeout.Duration)
	}
	if cfg.Probe.SampleWindow.Duration != 250*time.Millisecond {
		t.Errorf("sample window = %v", cfg.Probe.SampleWindow.Duration)
	}
}

func TestLoadFromReaderPartial(t *testing.T) {
	// Unset fields keep their defaults.
	cfg, err := LoadFromReader(strings.NewReader("[probe]\ntimeout = \"5s\"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Probe.Timeout.Duration != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Probe.Timeout.Duration)
	}
	if cfg.General.OutputName != "hardware_report" {
		t.Errorf("default output name lost: %q", cfg.General.OutputName)
	}
}

func TestLoadFromReaderInvalidTOML(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("not = [valid")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HWREPORT_OUTPUT", "env_report")
	t.Setenv("HWREPORT_TIMEOUT", "3s")

	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.General.OutputName != "env_report" {
		t.Errorf("output name = %q, want env override", cfg.General.OutputName)
	}
	if cfg.Probe.Timeout.Duration != 3*time.Second {
		t.Errorf("timeout = %v, want env override", cfg.Probe.Timeout.Duration)
	}
}

func TestEnvTimeoutInvalidIgnored(t *testing.T) {
	t.Setenv("HWREPORT_TIMEOUT", "not-a-duration")
	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Probe.Timeout.Duration != 10*time.Second {
		t.Errorf("timeout = %v, want default kept", cfg.Probe.Timeout.Duration)
	}
}

func TestDurationUnmarshal(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90s")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Duration != 90*time.Second {
		t.Errorf("duration = %v", d.Duration)
	}

	if err := d.UnmarshalText([]byte("-5s")); err == nil {
		t.Error("negative duration accepted")
	} else if !strings.Contains(err.Error(), "probe duration") {
		t.Errorf("error does not name the offending key class: %v", err)
	}
	if err := d.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("malformed duration accepted")
	}
}
