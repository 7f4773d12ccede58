package collect

import (
	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/sensors"

	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// Names of the optional in-process capabilities. Each is attempted once at
// startup; collectors gate their library adapters on the resolved set so a
// fixed set can be substituted in tests.
const (
	CapSysMetrics = "sysmetrics"
	CapSensors    = "sensors"
	CapInventory  = "hwinventory"
	CapNVML       = "nvml"
)

// Capabilities returns the configured optional capabilities with their
// startup probes and the guidance shown when one is missing.
func Capabilities() []probe.Capability {
	return []probe.Capability{
		{
			Name:     CapSysMetrics,
			Guidance: "host metrics are unreadable on this system; CPU, memory, disk and network usage will be missing",
			Probe: func() bool {
				_, err := host.Info()
				return err == nil
			},
		},
		{
			Name:     CapSensors,
			Guidance: "no temperature sensors readable (install lm-sensors on Linux)",
			Probe: func() bool {
				temps, err := sensors.SensorsTemperatures()
				return err == nil && len(temps) > 0
			},
		},
		{
			Name:     CapInventory,
			Guidance: "hardware inventory unreadable (DMI/sysfs access may require root)",
			Probe: func() bool {
				blk, err := ghw.Block()
				return err == nil && blk != nil
			},
		},
		{
			Name:     CapNVML,
			Guidance: "NVIDIA management library not loadable (install the NVIDIA driver for GPU telemetry)",
			Probe:    nvmlAvailable,
		},
	}
}

// MissingDeps converts the unavailable capabilities into the report's
// warning-banner entries.
func MissingDeps(caps *probe.Set) []report.MissingDep {
	var deps []report.MissingDep
	for _, c := range caps.Missing() {
		deps = append(deps, report.MissingDep{Name: c.Name, Guidance: c.Guidance})
	}
	return deps
}
