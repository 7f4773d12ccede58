package render

// reportTemplate is the single-document layout: header, missing-capability
// banner, nav, one card per domain snapshot, footer. Styling is inlined so
// the report is a single self-contained file.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Hardware Report &mdash; {{.Hostname}}</title>
<style>
  :root {
    --bg: #0b0e14;
    --surface: #12161f;
    --surface2: #181d29;
    --border: #1f2533;
    --border-glow: #2a3344;
    --text: #c5cdd9;
    --text-dim: #6b7a8d;
    --text-bright: #e8edf3;
    --accent: #58a6ff;
    --accent-dim: #1a3a5c;
    --green: #3fb950;
    --yellow: #d29922;
    --red: #f85149;
    --radius: 10px;
  }

  *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

  body {
    font-family: system-ui, -apple-system, sans-serif;
    background: var(--bg);
    color: var(--text);
    line-height: 1.6;
    min-height: 100vh;
    padding: 2rem;
  }

  .container { max-width: 1100px; margin: 0 auto; }

  .report-header {
    text-align: center;
    padding: 3rem 1rem 2rem;
    margin-bottom: 2rem;
    border-bottom: 1px solid var(--border);
  }
  .report-header h1 {
    font-size: 2rem; font-weight: 700;
    color: var(--text-bright); letter-spacing: -0.02em;
  }
  .report-header h1 span { color: var(--accent); }
  .report-meta {
    font-family: ui-monospace, monospace;
    font-size: 0.78rem; color: var(--text-dim); margin-top: 0.6rem;
  }
  .report-meta span + span::before { content: '\00b7'; margin: 0 0.6rem; }

  .missing-banner {
    background: var(--surface);
    border: 1px solid var(--yellow); border-left: 4px solid var(--yellow);
    border-radius: var(--radius); padding: 0.9rem 1.2rem;
    margin-bottom: 1.8rem; font-size: 0.88rem; color: var(--yellow);
  }
  .missing-banner code {
    font-family: ui-monospace, monospace;
    background: var(--surface2); padding: 0.15em 0.4em; border-radius: 4px; font-size: 0.82rem;
  }
  .missing-banner ul { margin: 0.3rem 0 0 1.4rem; }

  .nav { display: flex; gap: 0.5rem; justify-content: center; flex-wrap: wrap; margin-bottom: 2rem; }
  .nav a {
    font-family: ui-monospace, monospace; font-size: 0.78rem;
    color: var(--text-dim); text-decoration: none;
    padding: 0.4rem 1rem; border: 1px solid var(--border); border-radius: 20px;
    transition: all 0.2s;
  }
  .nav a:hover { color: var(--accent); border-color: var(--accent); background: var(--accent-dim); }

  .card {
    background: var(--surface); border: 1px solid var(--border);
    border-radius: var(--radius); margin-bottom: 1.8rem; overflow: hidden;
  }
  .card:hover { border-color: var(--border-glow); }
  .card-header {
    display: flex; align-items: center; gap: 0.7rem;
    padding: 1rem 1.4rem; border-bottom: 1px solid var(--border); background: var(--surface2);
  }
  .card-icon { font-size: 1.3rem; }
  .card-header h2 {
    font-size: 1.05rem; font-weight: 600;
    color: var(--text-bright); letter-spacing: -0.01em;
  }
  .card-body { padding: 1.2rem 1.4rem; }

  .sub-section { margin-bottom: 1.5rem; }
  .sub-section:last-child { margin-bottom: 0; }
  .sub-section h3 {
    display: flex; align-items: center; gap: 0.7rem; flex-wrap: wrap;
    font-size: 0.82rem; font-weight: 600; text-transform: uppercase;
    letter-spacing: 0.08em; color: var(--accent);
    margin-bottom: 0.7rem; padding-bottom: 0.35rem; border-bottom: 1px dashed var(--border);
  }
  .sub-meta { font-size: 0.78rem; color: var(--text-dim); text-transform: none; letter-spacing: normal; font-weight: 400; }

  table { width: 100%; border-collapse: collapse; font-size: 0.88rem; }
  thead th {
    font-family: ui-monospace, monospace; font-size: 0.72rem;
    text-transform: uppercase; letter-spacing: 0.06em;
    color: var(--text-dim); text-align: left;
    padding: 0.5rem 0.8rem; border-bottom: 1px solid var(--border); background: var(--surface2);
  }
  tbody td { padding: 0.45rem 0.8rem; border-bottom: 1px solid var(--border); vertical-align: top; }
  tbody tr:last-child td { border-bottom: none; }
  tbody tr:hover td { background: rgba(88, 166, 255, 0.04); }
  .kv td { padding: 0.35rem 0.8rem; }
  .kv-key {
    font-family: ui-monospace, monospace; font-size: 0.8rem;
    color: var(--text-dim); white-space: nowrap; width: 220px;
  }
  .kv-val { color: var(--text-bright); word-break: break-all; }

  .metric-row { display: flex; align-items: center; gap: 0.8rem; margin-bottom: 0.4rem; }
  .metric-label {
    font-family: ui-monospace, monospace; font-size: 0.78rem;
    color: var(--text-dim); min-width: 140px; flex-shrink: 0;
  }
  .progress-bar {
    flex: 1; height: 20px; background: var(--surface2);
    border-radius: 4px; overflow: hidden; position: relative; border: 1px solid var(--border);
  }
  .progress-fill { height: 100%; border-radius: 3px; }
  .fill-ok { background: var(--green); }
  .fill-warn { background: var(--yellow); }
  .fill-crit { background: var(--red); }
  .progress-label {
    position: absolute; right: 8px; top: 50%; transform: translateY(-50%);
    font-family: ui-monospace, monospace; font-size: 0.7rem;
    color: var(--text-bright); text-shadow: 0 1px 3px rgba(0,0,0,0.6);
  }

  .status-badge {
    font-family: ui-monospace, monospace; font-size: 0.68rem; font-weight: 600;
    padding: 0.15em 0.6em; border-radius: 10px; text-transform: uppercase; letter-spacing: 0.05em;
  }
  .status-up { background: rgba(63,185,80,0.15); color: var(--green); border: 1px solid rgba(63,185,80,0.3); }
  .status-down { background: rgba(248,81,73,0.15); color: var(--red); border: 1px solid rgba(248,81,73,0.3); }

  .note { color: var(--text-dim); font-size: 0.85rem; font-style: italic; }
  pre {
    font-family: ui-monospace, monospace; font-size: 0.78rem;
    background: var(--surface2); border: 1px solid var(--border);
    border-radius: 6px; padding: 1rem; overflow-x: auto; color: var(--text);
    white-space: pre-wrap;
  }
  details.dump {
    margin-bottom: 0.6rem; border: 1px solid var(--border); border-radius: 6px; overflow: hidden;
  }
  details.dump summary {
    font-family: ui-monospace, monospace; font-size: 0.82rem; font-weight: 600;
    padding: 0.6rem 0.8rem; cursor: pointer; background: var(--surface2);
    color: var(--text-bright);
  }
  details.dump summary:hover { background: var(--accent-dim); }
  details.dump[open] summary { color: var(--accent); border-bottom: 1px solid var(--border); }
  details.dump pre { margin: 0; border: none; border-radius: 0; }
  .footer {
    text-align: center; padding: 2rem 0; color: var(--text-dim);
    font-size: 0.78rem; border-top: 1px solid var(--border); margin-top: 1rem;
  }

  @media (max-width: 700px) {
    body { padding: 1rem; }
    .kv-key { width: auto; min-width: 100px; }
    .metric-row { flex-direction: column; gap: 0.3rem; }
    .metric-label { min-width: unset; }
  }
</style>
</head>
<body>
<div class="container">
  <div class="report-header">
    <h1>System <span>Hardware</span> Report</h1>
    <div class="report-meta">
      <span>{{.Hostname}}</span>
      <span>{{.GeneratedAt.Format "2006-01-02 15:04:05"}}</span>
      <span>{{.OS}}</span>
    </div>
  </div>

{{- if .Missing}}
  <div class="missing-banner">&#9888; Optional capabilities unavailable:
    <ul>
    {{- range .Missing}}
      <li><code>{{.Name}}</code> &mdash; {{.Guidance}}</li>
    {{- end}}
    </ul>
  </div>
{{- end}}

  <nav class="nav">
  {{- range .Snapshots}}
    <a href="#{{.Anchor}}">{{.Domain}}</a>
  {{- end}}
  </nav>

{{- range .Snapshots}}
  <section class="card" id="{{.Anchor}}">
    <div class="card-header"><span class="card-icon">{{.Icon}}</span><h2>{{.Domain}}</h2></div>
    <div class="card-body">
    {{- range .Sections}}
      {{- if and .IsText .Collapsed}}
      <details class="dump"><summary>{{.Title}}</summary><pre>{{.Text}}</pre></details>
      {{- else}}
      <div class="sub-section">
        <h3>{{.Title}}
          {{- if .Badge}} <span class="status-badge {{if .BadgeDown}}status-down{{else}}status-up{{end}}">{{.Badge}}</span>{{end}}
          {{- if .Meta}} <span class="sub-meta">{{.Meta}}</span>{{end}}
        </h3>
        {{- if .IsNote}}
        <p class="note">{{.Text}}</p>
        {{- else if .IsText}}
        <pre>{{.Text}}</pre>
        {{- else if .IsGauge}}
        {{- range .Metrics}}
        <div class="metric-row"><span class="metric-label">{{.Label}}</span><div class="progress-bar"><div class="progress-fill fill-{{level .Percent}}" style="width:{{pct .Percent}}%"></div><span class="progress-label">{{pct .Percent}}%</span></div></div>
        {{- end}}
        {{- if .Rows}}
        <table class="kv"><tbody>
        {{- range .Rows}}
          <tr><td class="kv-key">{{index . 0}}</td><td class="kv-val">{{index . 1}}</td></tr>
        {{- end}}
        </tbody></table>
        {{- end}}
        {{- else if .IsKeyValue}}
        <table class="kv"><tbody>
        {{- range .Rows}}
          <tr><td class="kv-key">{{index . 0}}</td><td class="kv-val">{{index . 1}}</td></tr>
        {{- end}}
        </tbody></table>
        {{- else if .IsTable}}
        <table>
          <thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
          <tbody>
          {{- range .Rows}}
            <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
          {{- end}}
          </tbody>
        </table>
        {{- end}}
      </div>
      {{- end}}
    {{- end}}
    </div>
  </section>
{{- end}}

  <div class="footer">
    Generated by hardware-report &middot; {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
  </div>
</div>
</body>
</html>
`
