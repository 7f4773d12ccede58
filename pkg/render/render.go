// Package render turns a report.Model into the final self-contained HTML
// document. It is a pure sink: no collection happens here, and every value
// that originated in external tool output passes through html/template's
// contextual autoescaping, so raw probe text can never become live markup.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

// funcs are the formatting helpers available inside the template.
var funcs = template.FuncMap{
	// pct formats a clamped percentage for the gauge label and width.
	"pct": func(v float64) string {
		return fmt.Sprintf("%.1f", report.Clamp(v))
	},
	// level buckets a percentage into the gauge color classes.
	"level": func(v float64) string {
		switch {
		case v < 60:
			return "ok"
		case v < 85:
			return "warn"
		default:
			return "crit"
		}
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(funcs).Parse(reportTemplate))

// Render produces the complete HTML document for the model.
func Render(m report.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, m); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
