package collect

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaypipes/ghw"

	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// nvidiaSMIQuery is the fixed field list requested from nvidia-smi; the
// parser below depends on this order.
const nvidiaSMIQuery = "--query-gpu=index,name,driver_version,temperature.gpu,utilization.gpu," +
	"utilization.memory,memory.total,memory.used,memory.free,clocks.gr,clocks.mem," +
	"clocks.max.gr,clocks.max.mem,power.draw,power.limit"

// rocmDumpLimit caps how much of the rocm-smi free-text dump is embedded.
const rocmDumpLimit = 4000

// nvmlDevice is one GPU enumerated through the NVIDIA management library.
// Population happens in gpu_nvml.go (linux+cgo) or not at all (stub).
type nvmlDevice struct {
	Index          int
	Name           string
	Driver         string
	MemoryTotal    uint64
	MemoryUsed     uint64
	MemoryFree     uint64
	Temperature    float64
	Utilization    float64
	MemUtilization float64
}

// GPU collects graphics devices vendor-first: NVIDIA library enumeration,
// direct NVIDIA tool query, AMD tool, then OS device lists. A generic
// display-adapter listing is collected separately: it is appended as a
// secondary section whenever it yields rows, but counts as the domain's
// primary source only when no vendor-specific adapter succeeded.
func GPU(ctx context.Context, env Env) report.Snapshot {
	vendor := probe.Chain{
		Topic:    "Devices",
		Guidance: "No GPU information available (install the vendor driver and tools, e.g. nvidia-smi or rocm-smi)",
		Candidates: []probe.Candidate{
			{Name: "nvml", Run: func(ctx context.Context) probe.Result {
				return nvmlGPUs(env)
			}},
			{Name: "nvidia-smi", Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "nvidia-smi", nvidiaSMIQuery, "--format=csv,noheader,nounits")
				if err != nil || out == "" {
					return probe.Unavailable("nvidia-smi unavailable")
				}
				sections := parseNvidiaSMI(out)
				if len(sections) == 0 {
					return probe.Unavailable("unparseable nvidia-smi output")
				}
				return probe.OK(sections...)
			}},
			{Name: "rocm-smi", Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "rocm-smi", "--showallinfo")
				if err != nil || out == "" {
					return probe.Unavailable("rocm-smi unavailable")
				}
				if len(out) > rocmDumpLimit {
					out = out[:rocmDumpLimit]
				}
				return probe.OK(report.Text("AMD GPU (rocm-smi)", out))
			}},
			{Name: "wmi-videocontroller", OS: []string{"windows"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "powershell", "-Command",
					"Get-CimInstance Win32_VideoController | "+
						"Select-Object Name,DriverVersion,AdapterRAM,VideoProcessor,"+
						"CurrentRefreshRate,Status | ConvertTo-Json")
				if err != nil {
					return probe.Unavailable("video controller query failed")
				}
				sections, err := parseVideoControllerJSON(out)
				if err != nil || len(sections) == 0 {
					return probe.Unavailable("unparseable video controller output")
				}
				return probe.OK(sections...)
			}},
			{Name: "system-profiler", OS: []string{"darwin"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "system_profiler", "SPDisplaysDataType")
				if err != nil || out == "" {
					return probe.Unavailable("system_profiler unavailable")
				}
				return probe.OK(report.Text("GPU (system_profiler)", out))
			}},
		},
	}

	listing := probe.Chain{
		Topic: "Detected Display Adapters",
		Candidates: []probe.Candidate{
			{Name: "lspci", OS: []string{"linux"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "lspci")
				if err != nil || out == "" {
					return probe.Unavailable("lspci unavailable")
				}
				rows := filterDisplayAdapters(out)
				if len(rows) == 0 {
					return probe.Unavailable("no display adapters in lspci output")
				}
				return probe.OK(report.Table("Detected Display Adapters", []string{"Adapter"}, rows))
			}},
			{Name: "ghw-pci", Run: func(ctx context.Context) probe.Result {
				return ghwGraphicsCards(env)
			}},
		},
	}

	vendorSections, vendorFound := vendor.Collect(ctx, env.OS)
	listingSections, listingFound := listing.Collect(ctx, env.OS)

	var sections []report.Section
	switch {
	case vendorFound:
		sections = vendorSections
		if listingFound {
			sections = append(sections, listingSections...)
		}
	case listingFound:
		sections = listingSections
	default:
		sections = vendorSections // the vendor chain's degraded note
	}

	return report.Snapshot{Domain: "GPU", Anchor: "gpu", Icon: "🎮", Sections: sections}
}

// nvmlGPUs enumerates devices through NVML and normalizes each into its own
// gauge section.
func nvmlGPUs(env Env) probe.Result {
	if !env.Caps.Has(CapNVML) {
		return probe.Unavailable("NVML capability missing")
	}
	devices, err := nvmlDevices()
	if err != nil || len(devices) == 0 {
		return probe.Unavailable("NVML enumeration failed")
	}

	sections := make([]report.Section, 0, len(devices))
	for _, d := range devices {
		memPct := 0.0
		if d.MemoryTotal > 0 {
			memPct = float64(d.MemoryUsed) / float64(d.MemoryTotal) * 100
		}
		metrics := []report.Metric{
			{Label: "GPU Load", Percent: report.Clamp(d.Utilization)},
			{
				Label:   fmt.Sprintf("VRAM (%s / %s)", fmtBytes(d.MemoryUsed), fmtBytes(d.MemoryTotal)),
				Percent: report.Clamp(memPct),
			},
		}
		rows := [][]string{
			{"GPU ID", fmt.Sprintf("%d", d.Index)},
			{"Name", orNA(d.Name)},
			{"Driver", orNA(d.Driver)},
			{"Memory Total", fmtBytes(d.MemoryTotal)},
			{"Memory Used", fmtBytes(d.MemoryUsed)},
			{"Memory Free", fmtBytes(d.MemoryFree)},
			{"Temperature", fmt.Sprintf("%.0f°C", d.Temperature)},
		}
		title := fmt.Sprintf("NVIDIA GPU %d: %s", d.Index, d.Name)
		sections = append(sections, report.Gauge(title, metrics, rows))
	}
	return probe.OK(sections...)
}

// parseNvidiaSMI converts the CSV output of the fixed nvidia-smi query into
// one key-value section per device. Lines with fewer fields than the query
// requests are skipped.
func parseNvidiaSMI(output string) []report.Section {
	var sections []report.Section
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p := strings.Split(line, ",")
		for i := range p {
			p[i] = strings.TrimSpace(p[i])
		}
		if len(p) < 15 {
			continue
		}
		rows := [][]string{
			{"Index", p[0]}, {"Name", p[1]}, {"Driver", p[2]},
			{"Temperature", p[3] + "°C"},
			{"GPU Utilization", p[4] + "%"}, {"Memory Utilization", p[5] + "%"},
			{"Memory Total", p[6] + " MiB"}, {"Memory Used", p[7] + " MiB"},
			{"Memory Free", p[8] + " MiB"},
			{"GPU Clock", p[9] + " MHz"}, {"Memory Clock", p[10] + " MHz"},
			{"Max GPU Clock", p[11] + " MHz"}, {"Max Memory Clock", p[12] + " MHz"},
			{"Power Draw", p[13] + " W"}, {"Power Limit", p[14] + " W"},
		}
		title := fmt.Sprintf("NVIDIA GPU %s: %s", p[0], p[1])
		sections = append(sections, report.KeyValue(title, rows))
	}
	return sections
}

// filterDisplayAdapters keeps the lspci lines describing display hardware.
func filterDisplayAdapters(output string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "VGA") || strings.Contains(line, "3D") || strings.Contains(line, "Display") {
			rows = append(rows, []string{strings.TrimSpace(line)})
		}
	}
	return rows
}

// ghwGraphicsCards lists graphics devices from the PCI bus inventory.
func ghwGraphicsCards(env Env) probe.Result {
	if !env.Caps.Has(CapInventory) {
		return probe.Unavailable("hardware inventory capability missing")
	}
	info, err := ghw.GPU()
	if err != nil || info == nil || len(info.GraphicsCards) == 0 {
		return probe.Unavailable("no graphics cards enumerated")
	}

	rows := make([][]string, 0, len(info.GraphicsCards))
	for _, card := range info.GraphicsCards {
		vendor, product := "N/A", "N/A"
		if card.DeviceInfo != nil {
			if card.DeviceInfo.Vendor != nil {
				vendor = orNA(card.DeviceInfo.Vendor.Name)
			}
			if card.DeviceInfo.Product != nil {
				product = orNA(card.DeviceInfo.Product.Name)
			}
		}
		rows = append(rows, []string{orNA(card.Address), vendor, product})
	}
	return probe.OK(report.Table("Detected Display Adapters", []string{"Address", "Vendor", "Product"}, rows))
}

// videoController is one record of the Win32_VideoController query.
type videoController struct {
	Name               string `json:"Name"`
	DriverVersion      string `json:"DriverVersion"`
	AdapterRAM         uint64 `json:"AdapterRAM"`
	VideoProcessor     string `json:"VideoProcessor"`
	CurrentRefreshRate int    `json:"CurrentRefreshRate"`
	Status             string `json:"Status"`
}

// parseVideoControllerJSON converts ConvertTo-Json Win32_VideoController
// output into one key-value section per adapter.
func parseVideoControllerJSON(data string) ([]report.Section, error) {
	cards, err := decodeJSONList[videoController](data)
	if err != nil {
		return nil, err
	}
	sections := make([]report.Section, 0, len(cards))
	for _, c := range cards {
		ram := "N/A"
		if c.AdapterRAM > 0 {
			ram = fmtBytes(c.AdapterRAM)
		}
		refresh := "N/A"
		if c.CurrentRefreshRate > 0 {
			refresh = fmt.Sprintf("%d Hz", c.CurrentRefreshRate)
		}
		rows := [][]string{
			{"Name", orNA(c.Name)},
			{"Video Processor", orNA(c.VideoProcessor)},
			{"Driver Version", orNA(c.DriverVersion)},
			{"Adapter RAM", ram},
			{"Refresh Rate", refresh},
			{"Status", orNA(c.Status)},
		}
		sections = append(sections, report.KeyValue("GPU: "+orNA(c.Name), rows))
	}
	return sections, nil
}
