package collect

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/sensors"

	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// notableCPUFlags are the instruction-set extensions worth surfacing in the
// specifications table.
var notableCPUFlags = []string{"sse4_2", "avx", "avx2", "avx512f", "aes", "fma", "fma3", "fma4"}

// CPU collects processor specifications, live usage, and temperature.
func CPU(ctx context.Context, env Env) report.Snapshot {
	specs := probe.Chain{
		Topic:    "Specifications",
		Guidance: "CPU details not readable on this system",
		Candidates: []probe.Candidate{
			{Name: "gopsutil-cpuinfo", Run: func(ctx context.Context) probe.Result {
				return cpuSpecifications(ctx, env)
			}},
		},
	}

	usage := probe.Chain{
		Topic:    "Usage",
		Guidance: "Live CPU usage not readable on this system",
		Candidates: []probe.Candidate{
			{Name: "gopsutil-percent", Run: func(ctx context.Context) probe.Result {
				return cpuUsage(ctx, env)
			}},
		},
	}

	temperature := probe.Chain{
		Topic:    "Temperature",
		Guidance: "Temperature data not available (install lm-sensors on Linux, or run an elevated shell on Windows)",
		Candidates: []probe.Candidate{
			{Name: "gopsutil-sensors", Run: func(ctx context.Context) probe.Result {
				return cpuSensorTemps(ctx, env)
			}},
			{Name: "lm-sensors", OS: []string{"linux"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "sensors")
				if err != nil || out == "" {
					return probe.Unavailable("sensors unavailable")
				}
				return probe.OK(report.Text("Temperature", out))
			}},
			{Name: "wmi-thermalzone", OS: []string{"windows"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "powershell", "-Command",
					"Get-CimInstance MSAcpi_ThermalZoneTemperature -Namespace root/wmi "+
						"| Select-Object InstanceName,CurrentTemperature | ConvertTo-Json")
				if err != nil {
					return probe.Unavailable("thermal zone query failed")
				}
				rows, err := parseThermalZones(out)
				if err != nil {
					return probe.Unavailable("unparseable thermal zone output")
				}
				return probe.OK(report.KeyValue("Temperature", rows))
			}},
		},
	}

	var sections []report.Section
	sections = append(sections, specs.Run(ctx, env.OS)...)
	sections = append(sections, usage.Run(ctx, env.OS)...)
	sections = append(sections, temperature.Run(ctx, env.OS)...)

	return report.Snapshot{Domain: "CPU", Anchor: "cpu", Icon: "⚡", Sections: sections}
}

func cpuSpecifications(ctx context.Context, env Env) probe.Result {
	if !env.Caps.Has(CapSysMetrics) {
		return probe.Unavailable("host metrics capability missing")
	}
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil || len(infos) == 0 {
		return probe.Unavailable("cpu info unreadable")
	}
	info := infos[0]

	rows := [][]string{
		{"Brand", orNA(info.ModelName)},
		{"Vendor", orNA(info.VendorID)},
		{"Family / Model / Stepping", fmt.Sprintf("%s / %s / %d", orNA(info.Family), orNA(info.Model), info.Stepping)},
	}
	if info.Mhz > 0 {
		rows = append(rows, []string{"Base Frequency", fmt.Sprintf("%.2f MHz", info.Mhz)})
	}
	if info.CacheSize > 0 {
		rows = append(rows, []string{"Cache", fmt.Sprintf("%d KB", info.CacheSize)})
	}
	if notable := intersectFlags(info.Flags, notableCPUFlags); len(notable) > 0 {
		rows = append(rows, []string{"Notable Extensions", strings.Join(notable, ", ")})
	}

	if physical, err := cpu.CountsWithContext(ctx, false); err == nil && physical > 0 {
		rows = append(rows, []string{"Physical Cores", fmt.Sprintf("%d", physical)})
	}
	if logical, err := cpu.CountsWithContext(ctx, true); err == nil && logical > 0 {
		rows = append(rows, []string{"Logical Cores", fmt.Sprintf("%d", logical)})
	}

	return probe.OK(report.KeyValue("Specifications", rows))
}

// cpuUsage samples aggregate usage over the configured window, then per-core
// usage over half of it. Both are deliberate, bounded local waits; this is
// the only timing-sensitive collection in the pipeline.
func cpuUsage(ctx context.Context, env Env) probe.Result {
	if !env.Caps.Has(CapSysMetrics) {
		return probe.Unavailable("host metrics capability missing")
	}

	total, err := cpu.PercentWithContext(ctx, env.SampleWindow, false)
	if err != nil || len(total) == 0 {
		return probe.Unavailable("cpu sampling failed")
	}
	metrics := []report.Metric{{Label: "Overall CPU Usage", Percent: report.Clamp(total[0])}}

	if perCore, err := cpu.PercentWithContext(ctx, env.SampleWindow/2, true); err == nil {
		for i, u := range perCore {
			metrics = append(metrics, report.Metric{
				Label:   fmt.Sprintf("Core %d", i),
				Percent: report.Clamp(u),
			})
		}
	}

	return probe.OK(report.Gauge("Usage", metrics, nil))
}

func cpuSensorTemps(ctx context.Context, env Env) probe.Result {
	if !env.Caps.Has(CapSensors) {
		return probe.Unavailable("sensors capability missing")
	}
	temps, err := sensors.TemperaturesWithContext(ctx)
	if err != nil || len(temps) == 0 {
		return probe.Unavailable("no sensor readings")
	}

	rows := make([][]string, 0, len(temps))
	for _, t := range temps {
		rows = append(rows, []string{
			t.SensorKey,
			fmtCelsius(t.Temperature),
			fmtCelsius(t.High),
			fmtCelsius(t.Critical),
		})
	}
	return probe.OK(report.Table("Temperature", []string{"Sensor", "Current", "High", "Critical"}, rows))
}

// fmtCelsius renders a sensor reading, treating zero as unknown (gopsutil
// reports 0 for thresholds many chips do not expose).
func fmtCelsius(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f°C", v)
}

// intersectFlags returns the wanted flags present in have, in wanted order.
func intersectFlags(have, wanted []string) []string {
	set := make(map[string]bool, len(have))
	for _, f := range have {
		set[strings.ToLower(f)] = true
	}
	var out []string
	for _, w := range wanted {
		if set[w] {
			out = append(out, w)
		}
	}
	return out
}

// thermalZone is one record of the Windows MSAcpi_ThermalZoneTemperature
// query; CurrentTemperature is in tenths of a Kelvin.
type thermalZone struct {
	InstanceName       string  `json:"InstanceName"`
	CurrentTemperature float64 `json:"CurrentTemperature"`
}

// parseThermalZones converts the ConvertTo-Json thermal zone output into
// key-value rows in Celsius.
func parseThermalZones(data string) ([][]string, error) {
	zones, err := decodeJSONList[thermalZone](data)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(zones))
	for _, z := range zones {
		celsius := z.CurrentTemperature/10 - 273.15
		name := z.InstanceName
		if name == "" {
			name = "Unknown"
		}
		rows = append(rows, []string{name, fmt.Sprintf("%.1f°C", celsius)})
	}
	return rows, nil
}
