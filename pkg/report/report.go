// Package report defines the normalized data model shared between the domain
// collectors and the HTML renderer. Collectors reduce every data source to a
// flat Section of one of a few fixed kinds; the renderer consumes the final
// Model without performing any collection of its own.
package report

import "time"

// Kind identifies how a Section's payload should be laid out.
type Kind int

const (
	// KindTable is a multi-column table with a header row.
	KindTable Kind = iota

	// KindKeyValue is a two-column label/value table without a header.
	KindKeyValue

	// KindText is a pre-formatted text block (raw tool output).
	KindText

	// KindNote is short guidance text shown when a sub-topic degraded or
	// needs operator action.
	KindNote

	// KindGauge is one or more percentage metrics rendered as progress
	// bars, optionally followed by key-value detail rows.
	KindGauge
)

// Metric is a single percentage value with its display label.
type Metric struct {
	Label   string
	Percent float64
}

// Section is one display unit inside a domain snapshot. Which fields are
// populated depends on Kind; Meta and Badge are optional header decorations
// valid for any kind.
type Section struct {
	Title string
	Kind  Kind

	Header  []string   // table column names (KindTable)
	Rows    [][]string // table or key-value rows
	Text    string     // pre-formatted block (KindText) or note (KindNote)
	Metrics []Metric   // progress bars (KindGauge)

	Meta      string // secondary header text, e.g. "Mount: / · Opts: rw"
	Badge     string // short status label, e.g. "UP", "NO ACCESS"
	BadgeDown bool   // render the badge in the failure style
	Collapsed bool   // render KindText inside a collapsible block
}

// IsTable reports whether the section renders as a header table.
func (s Section) IsTable() bool { return s.Kind == KindTable }

// IsKeyValue reports whether the section renders as a key-value table.
func (s Section) IsKeyValue() bool { return s.Kind == KindKeyValue }

// IsText reports whether the section renders as a pre-formatted block.
func (s Section) IsText() bool { return s.Kind == KindText }

// IsNote reports whether the section renders as a guidance note.
func (s Section) IsNote() bool { return s.Kind == KindNote }

// IsGauge reports whether the section renders progress bars.
func (s Section) IsGauge() bool { return s.Kind == KindGauge }

// Table builds a KindTable section.
func Table(title string, header []string, rows [][]string) Section {
	return Section{Title: title, Kind: KindTable, Header: header, Rows: rows}
}

// KeyValue builds a KindKeyValue section.
func KeyValue(title string, rows [][]string) Section {
	return Section{Title: title, Kind: KindKeyValue, Rows: rows}
}

// Text builds a KindText section.
func Text(title, text string) Section {
	return Section{Title: title, Kind: KindText, Text: text}
}

// Note builds a KindNote section.
func Note(title, text string) Section {
	return Section{Title: title, Kind: KindNote, Text: text}
}

// Gauge builds a KindGauge section with optional detail rows.
func Gauge(title string, metrics []Metric, rows [][]string) Section {
	return Section{Title: title, Kind: KindGauge, Metrics: metrics, Rows: rows}
}

// Clamp bounds a percentage to [0, 100] for display. Out-of-range values do
// occur: some tools report momentary usage above 100% and sensors can go
// negative on error.
func Clamp(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Snapshot is the normalized output of one domain's collection pass. Section
// order is fixed by the collector and significant for display.
type Snapshot struct {
	Domain   string // display name, e.g. "CPU"
	Anchor   string // nav anchor, e.g. "cpu"
	Icon     string // header icon
	Sections []Section
}

// MissingDep names an optional capability that was unavailable at startup,
// with guidance on how to obtain it. Rendered in the report's warning banner.
type MissingDep struct {
	Name     string
	Guidance string
}

// Model is the complete input to the renderer: host identity, the ordered
// domain snapshots, and the missing-capability set.
type Model struct {
	Hostname    string
	OS          string // e.g. "Ubuntu 24.04", "macOS 15.2"
	OSVersion   string // kernel or build detail
	GeneratedAt time.Time
	Missing     []MissingDep
	Snapshots   []Snapshot
}
