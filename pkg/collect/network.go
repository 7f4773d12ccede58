package collect

import (
	"context"
	"fmt"
	"net"
	"os"
	"sort"
	"strings"

	gopsnet "github.com/shirou/gopsutil/v4/net"

	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// Network collects host identity, per-interface addresses and status,
// aggregate I/O counters, and the live connection-state histogram.
func Network(ctx context.Context, env Env) report.Snapshot {
	hostChain := probe.Chain{
		Topic:    "Host",
		Guidance: "Host identity not resolvable",
		Candidates: []probe.Candidate{
			{Name: "resolver", Run: func(ctx context.Context) probe.Result {
				return hostIdentityRows(ctx)
			}},
		},
	}

	ifaceChain := probe.Chain{
		Topic:    "Interfaces",
		Guidance: "Network interfaces not readable on this system",
		Candidates: []probe.Candidate{
			{Name: "gopsutil-interfaces", Run: func(ctx context.Context) probe.Result {
				return interfaceSections(ctx, env)
			}},
		},
	}

	ioChain := probe.Chain{
		Topic:    "I/O Statistics",
		Guidance: "Network I/O counters not readable on this system",
		Candidates: []probe.Candidate{
			{Name: "gopsutil-netio", Run: func(ctx context.Context) probe.Result {
				return netIOCounters(ctx, env)
			}},
		},
	}

	connChain := probe.Chain{
		Topic:    "Active Connections",
		Guidance: "Connection details not readable on this system",
		Candidates: []probe.Candidate{
			{Name: "gopsutil-connections", Run: func(ctx context.Context) probe.Result {
				return connectionHistogram(ctx, env)
			}},
		},
	}

	var sections []report.Section
	sections = append(sections, hostChain.Run(ctx, env.OS)...)
	sections = append(sections, ifaceChain.Run(ctx, env.OS)...)
	sections = append(sections, ioChain.Run(ctx, env.OS)...)
	sections = append(sections, connChain.Run(ctx, env.OS)...)

	return report.Snapshot{Domain: "Network", Anchor: "network", Icon: "🌐", Sections: sections}
}

// hostIdentityRows resolves hostname, FQDN, and the default IP. Each field
// is best-effort; the hostname alone is enough for success.
func hostIdentityRows(ctx context.Context) probe.Result {
	hostname, err := os.Hostname()
	if err != nil {
		return probe.Unavailable(err.Error())
	}
	rows := [][]string{{"Hostname", hostname}}

	resolver := net.DefaultResolver
	if ips, err := resolver.LookupHost(ctx, hostname); err == nil && len(ips) > 0 {
		rows = append(rows, []string{"Default IP", ips[0]})
		if names, err := resolver.LookupAddr(ctx, ips[0]); err == nil && len(names) > 0 {
			rows = append(rows, []string{"FQDN", strings.TrimSuffix(names[0], ".")})
		}
	}
	return probe.OK(report.KeyValue("Host", rows))
}

// interfaceSections builds one section per interface: UP/DOWN badge, MTU
// and speed in the header, and an address table.
func interfaceSections(ctx context.Context, env Env) probe.Result {
	if !env.Caps.Has(CapSysMetrics) {
		return probe.Unavailable("host metrics capability missing")
	}
	ifaces, err := gopsnet.InterfacesWithContext(ctx)
	if err != nil || len(ifaces) == 0 {
		return probe.Unavailable("no interfaces enumerated")
	}

	sections := make([]report.Section, 0, len(ifaces))
	for _, iface := range ifaces {
		up := hasFlag(iface.Flags, "up")

		meta := fmt.Sprintf("MTU: %d", iface.MTU)
		if speed := interfaceSpeed(env.OS, iface.Name); speed != "" {
			meta = "Speed: " + speed + " · " + meta
		}
		if iface.HardwareAddr != "" {
			meta += " · MAC: " + iface.HardwareAddr
		}

		rows := make([][]string, 0, len(iface.Addrs))
		for _, addr := range iface.Addrs {
			family := "IPv4"
			if strings.Contains(addr.Addr, ":") {
				family = "IPv6"
			}
			rows = append(rows, []string{family, addr.Addr})
		}

		section := report.Table(iface.Name, []string{"Family", "Address"}, rows)
		section.Meta = meta
		if up {
			section.Badge = "UP"
		} else {
			section.Badge = "DOWN"
			section.BadgeDown = true
		}
		sections = append(sections, section)
	}
	return probe.OK(sections...)
}

// interfaceSpeed reads the link speed where the OS exposes it cheaply.
// Linux publishes Mbps in sysfs; other platforms return "".
func interfaceSpeed(osName, iface string) string {
	if osName != "linux" {
		return ""
	}
	data, err := os.ReadFile("/sys/class/net/" + iface + "/speed")
	if err != nil {
		return ""
	}
	speed := strings.TrimSpace(string(data))
	if speed == "" || strings.HasPrefix(speed, "-") {
		return ""
	}
	return speed + " Mbps"
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

func netIOCounters(ctx context.Context, env Env) probe.Result {
	if !env.Caps.Has(CapSysMetrics) {
		return probe.Unavailable("host metrics capability missing")
	}
	counters, err := gopsnet.IOCountersWithContext(ctx, true)
	if err != nil || len(counters) == 0 {
		return probe.Unavailable("no network I/O counters")
	}

	sort.Slice(counters, func(i, j int) bool { return counters[i].Name < counters[j].Name })

	rows := make([][]string, 0, len(counters))
	for _, c := range counters {
		rows = append(rows, []string{
			c.Name,
			fmtBytes(c.BytesSent),
			fmtBytes(c.BytesRecv),
			fmt.Sprintf("%d", c.PacketsSent),
			fmt.Sprintf("%d", c.PacketsRecv),
			fmt.Sprintf("%d", c.Errin+c.Errout),
			fmt.Sprintf("%d", c.Dropin+c.Dropout),
		})
	}
	header := []string{"Interface", "Sent", "Received", "Pkts Sent", "Pkts Recv", "Errors", "Drops"}
	return probe.OK(report.Table("I/O Statistics", header, rows))
}

// connectionHistogram counts live inet connections grouped by state.
// Permission failures surface as Denied so the chain renders the distinct
// elevated-privileges note rather than the generic guidance.
func connectionHistogram(ctx context.Context, env Env) probe.Result {
	if !env.Caps.Has(CapSysMetrics) {
		return probe.Unavailable("host metrics capability missing")
	}
	conns, err := gopsnet.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		if isPermissionError(err) {
			return probe.Denied("run as root/admin for connection details")
		}
		return probe.Unavailable(err.Error())
	}
	if len(conns) == 0 {
		return probe.Unavailable("no connections visible")
	}

	counts := make(map[string]int)
	for _, c := range conns {
		state := c.Status
		if state == "" {
			state = "NONE"
		}
		counts[state]++
	}

	states := make([]string, 0, len(counts))
	for s := range counts {
		states = append(states, s)
	}
	sort.Strings(states)

	rows := make([][]string, 0, len(states))
	for _, s := range states {
		rows = append(rows, []string{s, fmt.Sprintf("%d", counts[s])})
	}
	return probe.OK(report.Table("Active Connections", []string{"Status", "Count"}, rows))
}

// isPermissionError matches the permission failure shapes gopsutil
// surfaces across platforms.
func isPermissionError(err error) bool {
	if os.IsPermission(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "operation not permitted") ||
		strings.Contains(msg, "access is denied")
}
