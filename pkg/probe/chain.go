package probe

import (
	"context"

	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// Candidate is one entry in a sub-topic's ordered fallback list: a named
// adapter plus the platforms it applies to. An empty OS list means the
// candidate applies everywhere.
type Candidate struct {
	Name string
	OS   []string
	Run  func(ctx context.Context) Result
}

// applies reports whether the candidate should be tried on the given GOOS.
func (c Candidate) applies(goos string) bool {
	if len(c.OS) == 0 {
		return true
	}
	for _, os := range c.OS {
		if os == goos {
			return true
		}
	}
	return false
}

// Chain is the ordered candidate list for one sub-topic, with the guidance
// note shown when every candidate fails. The same algorithm serves all five
// hardware domains; only the candidate lists and normalization differ.
type Chain struct {
	Topic      string
	Guidance   string
	Candidates []Candidate
}

// Collect invokes the applicable candidates in priority order and returns
// the sections of the first success; once a candidate succeeds the rest are
// never invoked. If all candidates fail, it returns a single degraded
// section — the elevated-privileges note when any candidate was Denied,
// otherwise the chain's install guidance — and found is false.
func (c Chain) Collect(ctx context.Context, goos string) (sections []report.Section, found bool) {
	var denied string
	for _, cand := range c.Candidates {
		if !cand.applies(goos) {
			continue
		}
		res := cand.Run(ctx)
		switch res.Status {
		case StatusOK:
			if len(res.Sections) == 0 {
				continue // source worked but found nothing
			}
			return res.Sections, true
		case StatusDenied:
			if denied == "" {
				denied = res.Reason
			}
		}
	}

	if denied != "" {
		return []report.Section{report.Note(c.Topic, "Requires elevated privileges — "+denied)}, false
	}
	return []report.Section{report.Note(c.Topic, c.Guidance)}, false
}

// Run is Collect without the success flag, for sub-topics where the caller
// does not distinguish primary from degraded sections.
func (c Chain) Run(ctx context.Context, goos string) []report.Section {
	sections, _ := c.Collect(ctx, goos)
	return sections
}
