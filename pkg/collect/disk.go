package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v4/disk"

	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// physicalDiskHeader is the inventory table shape shared by all physical
// disk adapters.
var physicalDiskHeader = []string{"Device", "Size", "Type", "Vendor", "Model", "Serial", "Transport"}

// partitionSuffix strips trailing partition numbers ("/dev/sda1",
// "/dev/nvme0n1p2") to reach the base block device for SMART queries.
var partitionSuffix = regexp.MustCompile(`p?\d+$`)

// Disk collects partition usage, I/O counters, the physical-device
// inventory, and optional SMART diagnostics.
func Disk(ctx context.Context, env Env) report.Snapshot {
	partitions, partSections := diskPartitions(ctx, env)

	ioChain := probe.Chain{
		Topic:    "I/O Counters",
		Guidance: "Disk I/O counters not readable on this system",
		Candidates: []probe.Candidate{
			{Name: "gopsutil-diskio", Run: func(ctx context.Context) probe.Result {
				return diskIOCounters(ctx, env)
			}},
		},
	}

	physical := probe.Chain{
		Topic:    "Physical Disks",
		Guidance: "Physical disk details not available (install smartmontools on Linux, or run an elevated shell on Windows)",
		Candidates: []probe.Candidate{
			{Name: "ghw-block", Run: func(ctx context.Context) probe.Result {
				return ghwBlockDevices(env)
			}},
			{Name: "lsblk", OS: []string{"linux"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "lsblk",
					"-o", "NAME,SIZE,TYPE,ROTA,MODEL,SERIAL,TRAN,REV,VENDOR",
					"--nodeps", "--json")
				if err != nil || out == "" {
					return probe.Unavailable("lsblk unavailable")
				}
				rows, err := parseLsblkJSON(out)
				if err != nil || len(rows) == 0 {
					return probe.Unavailable("unparseable lsblk output")
				}
				return probe.OK(report.Table("Physical Disks", physicalDiskHeader, rows))
			}},
			{Name: "wmi-diskdrive", OS: []string{"windows"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "powershell", "-Command",
					"Get-CimInstance Win32_DiskDrive | "+
						"Select-Object DeviceID,Model,Size,MediaType,InterfaceType,"+
						"SerialNumber,FirmwareRevision,Partitions,Status | ConvertTo-Json")
				if err != nil {
					return probe.Unavailable("disk drive query failed")
				}
				rows, err := parseDiskDriveJSON(out)
				if err != nil || len(rows) == 0 {
					return probe.Unavailable("unparseable disk drive output")
				}
				header := []string{"Device", "Model", "Size", "Media Type", "Interface", "Serial", "Partitions", "Status"}
				return probe.OK(report.Table("Physical Disks", header, rows))
			}},
			{Name: "system-profiler", OS: []string{"darwin"}, Run: func(ctx context.Context) probe.Result {
				out, err := env.exec(ctx, "system_profiler", "SPStorageDataType")
				if err != nil || out == "" {
					return probe.Unavailable("system_profiler unavailable")
				}
				return probe.OK(report.Text("Physical Disks", out))
			}},
		},
	}

	var sections []report.Section
	sections = append(sections, partSections...)
	sections = append(sections, ioChain.Run(ctx, env.OS)...)
	sections = append(sections, physical.Run(ctx, env.OS)...)

	// SMART dumps are opportunistic: the sub-topic is simply omitted when
	// smartctl is absent or yields nothing.
	sections = append(sections, smartSections(ctx, env, partitions)...)

	return report.Snapshot{Domain: "Disks", Anchor: "disks", Icon: "💾", Sections: sections}
}

// diskPartitions enumerates mounted non-virtual partitions. Each becomes its
// own section; unreadable partitions get a NO ACCESS badge instead of
// aborting the iteration. The partition list is also returned for the SMART
// sub-topic.
func diskPartitions(ctx context.Context, env Env) ([]disk.PartitionStat, []report.Section) {
	chain := probe.Chain{
		Topic:    "Partitions & Usage",
		Guidance: "Partition information not readable on this system",
	}

	if !env.Caps.Has(CapSysMetrics) {
		return nil, chain.Run(ctx, env.OS)
	}
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, chain.Run(ctx, env.OS)
	}

	var kept []disk.PartitionStat
	var sections []report.Section
	for _, p := range parts {
		if isVirtualFS(p.Fstype) {
			continue
		}
		kept = append(kept, p)

		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			sections = append(sections, report.Section{
				Title:     p.Device,
				Kind:      report.KindNote,
				Text:      "Usage details unavailable for this partition",
				Meta:      "Mount: " + p.Mountpoint,
				Badge:     "NO ACCESS",
				BadgeDown: true,
			})
			continue
		}

		metrics := []report.Metric{{
			Label:   fmt.Sprintf("Usage (%s / %s)", fmtBytes(usage.Used), fmtBytes(usage.Total)),
			Percent: report.Clamp(usage.UsedPercent),
		}}
		rows := [][]string{
			{"Total", fmtBytes(usage.Total)},
			{"Used", fmtBytes(usage.Used)},
			{"Free", fmtBytes(usage.Free)},
			{"Filesystem", orNA(p.Fstype)},
			{"Mount Point", p.Mountpoint},
			{"Mount Options", orNA(strings.Join(p.Opts, ","))},
		}
		section := report.Gauge(p.Device, metrics, rows)
		section.Badge = p.Fstype
		section.Meta = "Mount: " + p.Mountpoint
		sections = append(sections, section)
	}

	if len(sections) == 0 {
		return kept, chain.Run(ctx, env.OS)
	}
	return kept, sections
}

func diskIOCounters(ctx context.Context, env Env) probe.Result {
	if !env.Caps.Has(CapSysMetrics) {
		return probe.Unavailable("host metrics capability missing")
	}
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil || len(counters) == 0 {
		return probe.Unavailable("no disk I/O counters")
	}

	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		c := counters[name]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", c.ReadCount),
			fmt.Sprintf("%d", c.WriteCount),
			fmtBytes(c.ReadBytes),
			fmtBytes(c.WriteBytes),
			fmt.Sprintf("%d ms", c.ReadTime),
			fmt.Sprintf("%d ms", c.WriteTime),
		})
	}
	header := []string{"Disk", "Reads", "Writes", "Read Bytes", "Written Bytes", "Read Time", "Write Time"}
	return probe.OK(report.Table("I/O Counters", header, rows))
}

// ghwBlockDevices reads the physical disk inventory from the
// hardware-inventory library.
func ghwBlockDevices(env Env) probe.Result {
	if !env.Caps.Has(CapInventory) {
		return probe.Unavailable("hardware inventory capability missing")
	}
	info, err := ghw.Block()
	if err != nil || info == nil || len(info.Disks) == 0 {
		return probe.Unavailable("no block devices enumerated")
	}

	rows := make([][]string, 0, len(info.Disks))
	for _, d := range info.Disks {
		size := "N/A"
		if d.SizeBytes > 0 {
			size = fmtBytes(d.SizeBytes)
		}
		rows = append(rows, []string{
			orNA(d.Name),
			size,
			d.DriveType.String(),
			orNA(d.Vendor),
			orNA(d.Model),
			orNA(d.SerialNumber),
			d.StorageController.String(),
		})
	}
	return probe.OK(report.Table("Physical Disks", physicalDiskHeader, rows))
}

// smartSections queries SMART data per base device, one collapsible dump
// each. Partition suffixes are stripped on Linux so /dev/sda1 and /dev/sda2
// query /dev/sda once.
func smartSections(ctx context.Context, env Env, parts []disk.PartitionStat) []report.Section {
	var sections []report.Section
	seen := make(map[string]bool)

	for _, p := range parts {
		if !strings.HasPrefix(p.Device, "/dev/") {
			continue
		}
		base := p.Device
		if env.OS == "linux" {
			base = partitionSuffix.ReplaceAllString(base, "")
		}
		if base == "" || seen[base] {
			continue
		}
		seen[base] = true

		out, err := env.execSudo(ctx, "smartctl", "-i", "-H", "-A", base)
		if err != nil || out == "" {
			continue
		}
		section := report.Text(base, out)
		section.Collapsed = true
		sections = append(sections, section)
	}

	if len(sections) > 0 {
		// Group the dumps under a single heading section.
		header := report.Note("SMART Diagnostics", "Per-device SMART identity, health, and attribute dump")
		return append([]report.Section{header}, sections...)
	}
	return nil
}

// lsblkDevice is one entry of `lsblk --json --nodeps` output. Depending on
// the lsblk version, ROTA is a bool or the strings "1"/"0", hence flexBool.
type lsblkDevice struct {
	Name   string   `json:"name"`
	Size   string   `json:"size"`
	Type   string   `json:"type"`
	Rota   flexBool `json:"rota"`
	Model  string   `json:"model"`
	Serial string   `json:"serial"`
	Tran   string   `json:"tran"`
	Vendor string   `json:"vendor"`
}

// flexBool accepts JSON true/false, "1"/"0", and "true"/"false".
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*b = flexBool(s == "true" || s == "1")
	return nil
}

// parseLsblkJSON converts lsblk JSON output into physical disk rows,
// keeping only whole-disk entries.
func parseLsblkJSON(data string) ([][]string, error) {
	var parsed struct {
		BlockDevices []lsblkDevice `json:"blockdevices"`
	}
	if err := json.Unmarshal([]byte(data), &parsed); err != nil {
		return nil, err
	}

	var rows [][]string
	for _, d := range parsed.BlockDevices {
		if d.Type != "disk" {
			continue
		}
		kind := "SSD"
		if d.Rota {
			kind = "HDD"
		}
		rows = append(rows, []string{
			orNA(d.Name),
			orNA(d.Size),
			kind,
			orNA(d.Vendor),
			orNA(d.Model),
			orNA(d.Serial),
			strings.ToUpper(orNA(d.Tran)),
		})
	}
	return rows, nil
}

// diskDrive is one record of the Win32_DiskDrive query.
type diskDrive struct {
	DeviceID         string `json:"DeviceID"`
	Model            string `json:"Model"`
	Size             uint64 `json:"Size"`
	MediaType        string `json:"MediaType"`
	InterfaceType    string `json:"InterfaceType"`
	SerialNumber     string `json:"SerialNumber"`
	FirmwareRevision string `json:"FirmwareRevision"`
	Partitions       int    `json:"Partitions"`
	Status           string `json:"Status"`
}

// parseDiskDriveJSON converts ConvertTo-Json Win32_DiskDrive output into
// physical disk rows.
func parseDiskDriveJSON(data string) ([][]string, error) {
	drives, err := decodeJSONList[diskDrive](data)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(drives))
	for _, d := range drives {
		size := "N/A"
		if d.Size > 0 {
			size = fmtBytes(d.Size)
		}
		rows = append(rows, []string{
			orNA(d.DeviceID),
			orNA(d.Model),
			size,
			orNA(d.MediaType),
			orNA(d.InterfaceType),
			orNA(d.SerialNumber),
			fmt.Sprintf("%d", d.Partitions),
			orNA(d.Status),
		})
	}
	return rows, nil
}

// isVirtualFS returns true for filesystem types that do not represent real
// storage and should be skipped during enumeration.
func isVirtualFS(fstype string) bool {
	switch fstype {
	case "devfs", "devtmpfs", "tmpfs", "sysfs", "proc", "cgroup", "cgroup2",
		"autofs", "mqueue", "hugetlbfs", "debugfs", "tracefs", "securityfs",
		"pstore", "bpf", "fusectl", "configfs", "ramfs", "rpc_pipefs",
		"nfsd", "map", "devpts", "squashfs", "overlay":
		return true
	}
	return false
}
