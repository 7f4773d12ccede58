// Package collect implements the six domain collectors (system, CPU, memory,
// GPU, disk, network). Each domain defines, per sub-topic, an ordered
// candidate list of probe adapters appropriate to the running OS; the shared
// probe.Chain engine tries them in priority order and degrades to a guidance
// note when none succeed. A collector therefore always returns a renderable
// snapshot, no matter how many of its sources are missing.
package collect

import (
	"context"
	"runtime"
	"time"

	"gitlab.com/tinyland/lab/hardware-report/pkg/config"
	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// Env is the immutable per-run environment injected into every collector:
// OS identity, the startup capability set, timing budgets, and the external
// command executor (swapped out in tests).
type Env struct {
	OS           string
	Caps         *probe.Set
	Timeout      time.Duration
	SampleWindow time.Duration
	Exec         probe.ExecFunc
}

// NewEnv builds the production environment from resolved capabilities and
// configuration.
func NewEnv(caps *probe.Set, cfg *config.Config) Env {
	return Env{
		OS:           runtime.GOOS,
		Caps:         caps,
		Timeout:      cfg.Probe.Timeout.Duration,
		SampleWindow: cfg.Probe.SampleWindow.Duration,
		Exec:         probe.Output,
	}
}

// exec invokes an external tool under the run's timeout budget.
func (e Env) exec(ctx context.Context, name string, args ...string) (string, error) {
	return e.Exec(ctx, e.Timeout, name, args...)
}

// execSudo invokes a root-preferring tool: non-interactive sudo first, then
// a plain invocation.
func (e Env) execSudo(ctx context.Context, name string, args ...string) (string, error) {
	return probe.OutputSudo(ctx, e.Exec, e.Timeout, name, args...)
}

// DomainCount is the number of snapshots Domains produces.
const DomainCount = 6

// Domains runs all collectors strictly one after another and returns their
// snapshots in the fixed display order: System, CPU, Memory, GPU, Disk,
// Network. Sequential execution keeps "first success" well-defined within
// each chain and bounds the number of spawned probe processes. The optional
// progress callback fires before each domain starts.
func Domains(ctx context.Context, env Env, progress func(step int, domain string)) []report.Snapshot {
	steps := []struct {
		name string
		run  func(context.Context, Env) report.Snapshot
	}{
		{"System", System},
		{"CPU", CPU},
		{"Memory", Memory},
		{"GPU", GPU},
		{"Disk", Disk},
		{"Network", Network},
	}

	snapshots := make([]report.Snapshot, 0, len(steps))
	for i, s := range steps {
		if progress != nil {
			progress(i+1, s.name)
		}
		snapshots = append(snapshots, s.run(ctx, env))
	}
	return snapshots
}
