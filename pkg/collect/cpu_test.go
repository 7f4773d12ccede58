package collect

import (
	"context"
	"reflect"
	"testing"

	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
)

// TestCPUSensorTempsResult drives the sensor adapter against the live host.
// Readings vary by machine, so only the result contract is asserted: either
// a populated temperature table or a clean Unavailable.
func TestCPUSensorTempsResult(t *testing.T) {
	res := cpuSensorTemps(context.Background(), testEnv(notFoundExec, CapSensors))
	switch res.Status {
	case probe.StatusOK:
		if len(res.Sections) == 0 || !res.Sections[0].IsTable() {
			t.Errorf("OK result without a temperature table: %+v", res.Sections)
		}
	case probe.StatusUnavailable:
		if res.Reason == "" {
			t.Error("Unavailable result without a reason")
		}
	default:
		t.Errorf("unexpected status %v", res.Status)
	}
}

const sampleThermalZones = `[
  {
    "InstanceName": "ACPI\\ThermalZone\\TZ00_0",
    "CurrentTemperature": 3181
  },
  {
    "InstanceName": "ACPI\\ThermalZone\\TZ01_0",
    "CurrentTemperature": 3032
  }
]`

func TestParseThermalZones(t *testing.T) {
	rows, err := parseThermalZones(sampleThermalZones)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// 3181 tenths of a Kelvin = 318.1 K = 44.95°C
	if rows[0][1] != "45.0°C" {
		t.Errorf("zone 0 = %q, want 45.0°C", rows[0][1])
	}
	if rows[1][1] != "30.1°C" {
		t.Errorf("zone 1 = %q, want 30.1°C", rows[1][1])
	}
}

func TestParseThermalZonesSingleObject(t *testing.T) {
	rows, err := parseThermalZones(`{"InstanceName": "", "CurrentTemperature": 2982}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][0] != "Unknown" {
		t.Errorf("name = %q, want Unknown for empty instance", rows[0][0])
	}
}

func TestFmtCelsius(t *testing.T) {
	if got := fmtCelsius(0); got != "N/A" {
		t.Errorf("fmtCelsius(0) = %q, want N/A", got)
	}
	if got := fmtCelsius(71.25); got != "71.2°C" && got != "71.3°C" {
		t.Errorf("fmtCelsius(71.25) = %q", got)
	}
	if got := fmtCelsius(45); got != "45.0°C" {
		t.Errorf("fmtCelsius(45) = %q, want 45.0°C", got)
	}
}

func TestIntersectFlags(t *testing.T) {
	have := []string{"FPU", "MMX", "AVX2", "aes", "sse4_2"}
	got := intersectFlags(have, notableCPUFlags)
	want := []string{"sse4_2", "avx2", "aes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("intersectFlags = %v, want %v", got, want)
	}

	if got := intersectFlags(nil, notableCPUFlags); len(got) != 0 {
		t.Errorf("empty flag set produced %v", got)
	}
}
