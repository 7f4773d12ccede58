// Package probe implements the data-acquisition primitives shared by all
// domain collectors: the Result outcome type that every adapter collapses
// its failures into, bounded external command execution, the CapabilitySet
// resolved once at startup, and the ordered fallback Chain that picks the
// first working source for a sub-topic.
package probe

import "gitlab.com/tinyland/lab/hardware-report/pkg/report"

// Status classifies the outcome of invoking one adapter.
type Status int

const (
	// StatusOK means the adapter produced usable sections.
	StatusOK Status = iota

	// StatusUnavailable means the source was absent, failed, timed out, or
	// produced unparseable output. Never fatal.
	StatusUnavailable

	// StatusDenied means the source exists but needs elevated privileges.
	// Rendered as a distinct note rather than the generic guidance.
	StatusDenied
)

// Result is the outcome of invoking one adapter. Adapters never return
// errors to the caller: every failure mode (missing binary, timeout,
// non-zero exit, malformed output) collapses to Unavailable, and permission
// problems to Denied.
type Result struct {
	Status   Status
	Sections []report.Section
	Reason   string
}

// OK wraps successfully normalized sections. An OK result with no sections
// is treated by the chain as "source worked but found nothing" and the next
// candidate is tried.
func OK(sections ...report.Section) Result {
	return Result{Status: StatusOK, Sections: sections}
}

// Unavailable marks the adapter's source as unusable for this run.
func Unavailable(reason string) Result {
	return Result{Status: StatusUnavailable, Reason: reason}
}

// Denied marks the adapter's source as permission-gated.
func Denied(reason string) Result {
	return Result{Status: StatusDenied, Reason: reason}
}
