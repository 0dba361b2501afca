package web

import (
	"html/template"
	"net/url"

	"github.com/theirongolddev/loandash/internal/cli"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/model"
)

type panelView struct {
	dashboard.Panel
	SVG   template.HTML
	Empty bool
	Link  string
}

type pageView struct {
	Title         string
	Icon          string
	Headline      string
	SidebarHeader string
	Features      []dashboard.Feature

	Metrics []dashboard.Metric

	SectionCondition string
	SectionAnalysis  string
	SelectLabel      string
	Conditions       []string
	Condition        string
	Selected         string // e.g. "2,345 loans"

	Panels []panelView
}

func newPageView(d dashboard.Dashboard) pageView {
	v := pageView{
		Title:            dashboard.PageTitle,
		Icon:             dashboard.PageIcon,
		Headline:         dashboard.Headline,
		SidebarHeader:    dashboard.SidebarHeader,
		Features:         dashboard.Features,
		Metrics:          d.Metrics,
		SectionCondition: dashboard.SectionCondition,
		SectionAnalysis:  dashboard.SectionAnalysis,
		SelectLabel:      dashboard.SelectLabel,
		Conditions:       model.Conditions,
		Condition:        d.Condition,
		Selected:         cli.FormatCount(d.Selected.TotalLoans) + " loans",
	}

	q := url.Values{"condition": {d.Condition}}.Encode()
	for _, p := range dashboard.Panels {
		v.Panels = append(v.Panels, panelView{
			Panel: p,
			Link:  "/charts/" + string(p.ID) + ".png?" + q,
		})
	}
	return v
}

// panels returns the views for ids in order.
func (v pageView) panels(ids ...dashboard.PanelID) []panelView {
	var out []panelView
	for _, id := range ids {
		for _, p := range v.Panels {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out
}

// Time returns the tabbed time-based panels.
func (v pageView) Time() []panelView {
	return v.panels(dashboard.PanelIssued, dashboard.PanelAmount, dashboard.PanelWeekday)
}

// LoanCondition returns the condition section panels.
func (v pageView) LoanCondition() []panelView {
	return v.panels(dashboard.PanelCondition, dashboard.PanelGrade)
}

// Analysis returns the filtered analysis panels.
func (v pageView) Analysis() []panelView {
	return v.panels(dashboard.PanelHistogram, dashboard.PanelBoxPlot)
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Icon}} {{.Title}}</title>
<style>
body { margin: 0; font-family: sans-serif; background: #FFFCF0; color: #100F0F; display: flex; }
aside { width: 280px; padding: 1.5rem; background: #F2F0E5; min-height: 100vh; box-sizing: border-box; }
main { flex: 1; padding: 1.5rem 2rem; max-width: 1100px; }
.box { border: 1px solid #CECDC3; border-radius: 8px; padding: 1rem; margin-bottom: 1.5rem; }
.metrics { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; }
.metric .label { color: #6F6E69; font-weight: bold; }
.metric .value { font-size: 2rem; }
.panels { display: flex; flex-wrap: wrap; gap: 1rem; }
details summary { cursor: pointer; font-weight: bold; }
.empty { color: #6F6E69; font-style: italic; }
</style>
</head>
<body>
<aside>
<h2>{{.SidebarHeader}}</h2>
<ul>
{{range .Features}}<li><strong>{{.Name}}</strong>: {{.Description}}</li>
{{end}}</ul>
</aside>
<main>
<h1>{{.Headline}}</h1>
<hr>
<div class="box metrics">
{{range .Metrics}}<div class="metric" title="{{.Help}}"><div class="label">💡 {{.Label}}</div><div class="value">{{.Value}}</div></div>
{{end}}</div>

<div class="box">
{{range .Time}}<details{{if eq .ID "issued"}} open{{end}}><summary>{{.Tab}}</summary>
{{template "panel" .}}
</details>
{{end}}</div>

<h2>{{.SectionCondition}}</h2>
<details class="box"><summary></summary>
<div class="panels">
{{range .LoanCondition}}{{template "panel" .}}{{end}}
</div>
</details>

<h2>{{.SectionAnalysis}}</h2>
<form method="get" action="/">
<label for="condition">{{.SelectLabel}}</label>
<select id="condition" name="condition" onchange="this.form.submit()">
{{$cur := .Condition}}{{range .Conditions}}<option value="{{.}}"{{if eq . $cur}} selected{{end}}>{{.}}</option>
{{end}}</select>
<noscript><button type="submit">Apply</button></noscript>
<span class="empty">{{.Selected}}</span>
</form>
<div class="box">
{{range .Analysis}}<details open><summary>{{.Tab}}</summary>
{{template "panel" .}}
</details>
{{end}}</div>
</main>
</body>
</html>
{{define "panel"}}<figure id="{{.ID}}">
{{if .Empty}}<p class="empty">No loans match the selected condition.</p>{{else}}{{.SVG}}
<figcaption><a href="{{.Link}}">{{.Title}} (PNG)</a></figcaption>{{end}}
</figure>{{end}}
`
