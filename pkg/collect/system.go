package collect

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// System collects the host summary: OS identity, kernel, architecture, and
// boot time.
func System(ctx context.Context, env Env) report.Snapshot {
	chain := probe.Chain{
		Topic:    "Summary",
		Guidance: "Host details not available on this system",
		Candidates: []probe.Candidate{
			{Name: "gopsutil-host", Run: func(ctx context.Context) probe.Result {
				return systemSummary(ctx, env)
			}},
		},
	}

	return report.Snapshot{
		Domain:   "System Overview",
		Anchor:   "system",
		Icon:     "🖥️",
		Sections: chain.Run(ctx, env.OS),
	}
}

func systemSummary(ctx context.Context, env Env) probe.Result {
	if !env.Caps.Has(CapSysMetrics) {
		return probe.Unavailable("host metrics capability missing")
	}
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return probe.Unavailable(err.Error())
	}

	rows := [][]string{
		{"Operating System", orNA(info.Platform + " " + info.PlatformVersion)},
		{"Kernel", orNA(info.KernelVersion)},
		{"Machine Architecture", orNA(info.KernelArch)},
		{"Node Name", orNA(info.Hostname)},
		{"Go Runtime", runtime.Version()},
	}
	if info.BootTime > 0 {
		boot := time.Unix(int64(info.BootTime), 0)
		rows = append(rows, []string{"Boot Time", boot.Format("2006-01-02 15:04:05")})
	}
	if info.Uptime > 0 {
		rows = append(rows, []string{"Uptime", (time.Duration(info.Uptime) * time.Second).String()})
	}
	if info.VirtualizationSystem != "" {
		rows = append(rows, []string{"Virtualization", fmt.Sprintf("%s (%s)", info.VirtualizationSystem, info.VirtualizationRole)})
	}
	return probe.OK(report.KeyValue("Summary", rows))
}

// HostIdentity resolves the header fields for the report: hostname and a
// human OS description. Best-effort; falls back to GOOS when gopsutil
// cannot read platform details.
func HostIdentity(ctx context.Context) report.Host {
	hostname, _ := os.Hostname()
	h := report.Host{Hostname: hostname, OS: runtime.GOOS}

	if info, err := host.InfoWithContext(ctx); err == nil {
		if info.Platform != "" {
			h.OS = info.Platform + " " + info.PlatformVersion
		}
		h.OSVersion = info.KernelVersion
		if h.Hostname == "" {
			h.Hostname = info.Hostname
		}
	}
	return h
}
