package collect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v4/mem"

	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// memoryModuleHeader is the column set shared by all module-inventory
// adapters so the table shape is stable regardless of which source won.
var memoryModuleHeader = []string{"Slot", "Size", "Type", "Speed", "Manufacturer", "Part Number"}

// smbiosMemoryTypes maps SMBIOS memory device type codes to generation
// labels. Codes outside the map render as "Type N".
var smbiosMemoryTypes = map[int]string{
	20: "DDR",
	21: "DDR2",
	22: "DDR2",
	24: "DDR3",
	26: "DDR4",
	34: "DDR5",
}

// smbiosMemoryType renders an SMBIOS memory type code as a human label.
func smbiosMemoryType(code int) string {
	if label, ok := smbiosMemoryTypes[code]; ok {
		return label
	}
	return fmt.Sprintf("Type %d", code)
}

// Memory collects live usage and the installed-module inventory.
func Memory(ctx context.Context, env Env) report.Snapshot {
	usage := probe.Chain{
		Topic:    "Usage",
		Guidance: "Memory usage not readable on this system",
		Candidates: []probe.Candidate{
			{Name: "gopsutil-mem", Run: func(ctx context.Context) probe.Result {
				return memoryUsage(ctx, env)
			}},
		},
	}

	modules := probe.Chain{
		Topic:    "Module Details",
		Guidance: "Module details not available (may require sudo on Linux, or an elevated shell on Windows)",
		Candidates: []probe.Candidate{
			{Name: "ghw-memory", Run: func(ctx context.Context) probe.Result {
				return ghwMemoryModules(env)
			}},
			{Name: "dmidecode", OS: []string{"linux"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.execSudo(ctx, "dmidecode", "-t", "memory")
				if errors.Is(err, probe.ErrDenied) {
					return probe.Denied("run with sudo for memory module details")
				}
				if err != nil || out == "" {
					return probe.Unavailable("dmidecode unavailable")
				}
				rows := parseDmidecodeMemory(out)
				if len(rows) == 0 {
					return probe.Unavailable("no populated memory devices in dmidecode output")
				}
				return probe.OK(report.Table("Module Details", memoryModuleHeader, rows))
			}},
			{Name: "wmi-physicalmemory", OS: []string{"windows"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "powershell", "-Command",
					"Get-CimInstance Win32_PhysicalMemory | "+
						"Select-Object BankLabel,Capacity,SMBIOSMemoryType,Speed,"+
						"Manufacturer,PartNumber | ConvertTo-Json")
				if err != nil {
					return probe.Unavailable("physical memory query failed")
				}
				rows, err := parsePhysicalMemoryJSON(out)
				if err != nil || len(rows) == 0 {
					return probe.Unavailable("unparseable physical memory output")
				}
				return probe.OK(report.Table("Module Details", memoryModuleHeader, rows))
			}},
			{Name: "system-profiler", OS: []string{"darwin"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "system_profiler", "SPMemoryDataType")
				if err != nil || out == "" {
					return probe.Unavailable("system_profiler unavailable")
				}
				return probe.OK(report.Text("Module Details", out))
			}},
		},
	}

	var sections []report.Section
	sections = append(sections, usage.Run(ctx, env.OS)...)
	sections = append(sections, modules.Run(ctx, env.OS)...)

	return report.Snapshot{Domain: "Memory", Anchor: "memory", Icon: "🧠", Sections: sections}
}

func memoryUsage(ctx context.Context, env Env) probe.Result {
	if !env.Caps.Has(CapSysMetrics) {
		return probe.Unavailable("host metrics capability missing")
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return probe.Unavailable(err.Error())
	}

	metrics := []report.Metric{{
		Label:   fmt.Sprintf("RAM (%s / %s)", fmtBytes(vm.Used), fmtBytes(vm.Total)),
		Percent: report.Clamp(vm.UsedPercent),
	}}

	// Swap is shown only when the host has swap capacity at all.
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil && swap.Total > 0 {
		metrics = append(metrics, report.Metric{
			Label:   fmt.Sprintf("Swap (%s / %s)", fmtBytes(swap.Used), fmtBytes(swap.Total)),
			Percent: report.Clamp(swap.UsedPercent),
		})
	}

	rows := [][]string{
		{"Total RAM", fmtBytes(vm.Total)},
		{"Available", fmtBytes(vm.Available)},
		{"Used", fmtBytes(vm.Used)},
		{"Cached", fmtBytes(vm.Cached)},
		{"Buffers", fmtBytes(vm.Buffers)},
	}
	return probe.OK(report.Gauge("Usage", metrics, rows))
}

// ghwMemoryModules reads the module inventory via the hardware-inventory
// library. ghw does not expose type or speed, so those columns degrade to
// N/A; a lower-priority adapter is not consulted because at most one source
// feeds a sub-topic.
func ghwMemoryModules(env Env) probe.Result {
	if !env.Caps.Has(CapInventory) {
		return probe.Unavailable("hardware inventory capability missing")
	}
	info, err := ghw.Memory()
	if err != nil || info == nil || len(info.Modules) == 0 {
		return probe.Unavailable("no memory modules enumerated")
	}

	rows := make([][]string, 0, len(info.Modules))
	for _, m := range info.Modules {
		size := "N/A"
		if m.SizeBytes > 0 {
			size = fmtBytes(uint64(m.SizeBytes))
		}
		rows = append(rows, []string{
			orNA(m.Location), size, "N/A", "N/A", orNA(m.Vendor), orNA(m.SerialNumber),
		})
	}
	return probe.OK(report.Table("Module Details", memoryModuleHeader, rows))
}

// dmidecodeMemoryKeys are the per-device fields extracted from
// "dmidecode -t memory" output.
var dmidecodeMemoryKeys = []string{
	"Size", "Type", "Speed", "Configured Memory Speed",
	"Manufacturer", "Part Number", "Locator", "Form Factor",
}

// parseDmidecodeMemory extracts populated memory devices from dmidecode
// output. Each "Memory Device" block becomes one row; slots reporting
// "No Module Installed" are skipped.
func parseDmidecodeMemory(output string) [][]string {
	var rows [][]string
	device := map[string]string{}

	flush := func() {
		size := device["Size"]
		if size != "" && !strings.Contains(size, "No Module") {
			rows = append(rows, []string{
				orNA(device["Locator"]),
				orNA(device["Size"]),
				orNA(device["Type"]),
				orNA(device["Speed"]),
				orNA(device["Manufacturer"]),
				orNA(device["Part Number"]),
			})
		}
		device = map[string]string{}
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Memory Device") {
			flush()
			continue
		}
		for _, key := range dmidecodeMemoryKeys {
			if strings.HasPrefix(line, key+":") {
				device[key] = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
				break
			}
		}
	}
	flush()
	return rows
}

// physicalMemory is one record of the Win32_PhysicalMemory query.
type physicalMemory struct {
	BankLabel        string `json:"BankLabel"`
	Capacity         uint64 `json:"Capacity"`
	SMBIOSMemoryType int    `json:"SMBIOSMemoryType"`
	Speed            int    `json:"Speed"`
	Manufacturer     string `json:"Manufacturer"`
	PartNumber       string `json:"PartNumber"`
}

// parsePhysicalMemoryJSON converts ConvertTo-Json Win32_PhysicalMemory
// output into module table rows.
func parsePhysicalMemoryJSON(data string) ([][]string, error) {
	mods, err := decodeJSONList[physicalMemory](data)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(mods))
	for _, m := range mods {
		speed := "N/A"
		if m.Speed > 0 {
			speed = fmt.Sprintf("%d MT/s", m.Speed)
		}
		rows = append(rows, []string{
			orNA(m.BankLabel),
			fmtBytes(m.Capacity),
			smbiosMemoryType(m.SMBIOSMemoryType),
			speed,
			orNA(m.Manufacturer),
			orNA(m.PartNumber),
		})
	}
	return rows, nil
}
