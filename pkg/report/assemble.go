package report

import "time"

// Host carries the identity fields stamped onto the report header.
type Host struct {
	Hostname  string
	OS        string
	OSVersion string
}

// Assemble merges the domain snapshots and the missing-capability set into a
// single Model. It is pure aggregation: snapshot order is preserved exactly
// as given (the collector runs domains in the fixed display order), and no
// snapshot's content affects another's presence.
func Assemble(host Host, snapshots []Snapshot, missing []MissingDep) Model {
	return Model{
		Hostname:    host.Hostname,
		OS:          host.OS,
		OSVersion:   host.OSVersion,
		GeneratedAt: time.Now(),
		Missing:     missing,
		Snapshots:   snapshots,
	}
}
