// Package badge renders a shields-style SVG coverage badge.
package badge

import (
	"fmt"
	"html/template"
	"io"

	"jacoscope/internal/domain"
)

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="{{.Width}}" height="20" role="img" aria-label="{{.Label}}: {{.Value}}">
  <title>{{.Label}}: {{.Value}}</title>
  <linearGradient id="s" x2="0" y2="100%">
    <stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
    <stop offset="1" stop-opacity=".1"/>
  </linearGradient>
  <clipPath id="r">
    <rect width="{{.Width}}" height="20" rx="3" fill="#fff"/>
  </clipPath>
  <g clip-path="url(#r)">
    <rect width="{{.LabelWidth}}" height="20" fill="#555"/>
    <rect x="{{.LabelWidth}}" width="{{.ValueWidth}}" height="20" fill="{{.Color}}"/>
    <rect width="{{.Width}}" height="20" fill="url(#s)"/>
  </g>
  <g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="110">
    <text aria-hidden="true" x="{{.LabelX}}" y="150" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="{{.LabelTextWidth}}">{{.Label}}</text>
    <text x="{{.LabelX}}" y="140" transform="scale(.1)" fill="#fff" textLength="{{.LabelTextWidth}}">{{.Label}}</text>
    <text aria-hidden="true" x="{{.ValueX}}" y="150" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="{{.ValueTextWidth}}">{{.Value}}</text>
    <text x="{{.ValueX}}" y="140" transform="scale(.1)" fill="#fff" textLength="{{.ValueTextWidth}}">{{.Value}}</text>
  </g>
</svg>`

var badgeTmpl = template.Must(template.New("badge").Parse(svgTemplate))

type badgeData struct {
	Label          string
	Value          string
	Color          string
	Width          int
	LabelWidth     int
	ValueWidth     int
	LabelX         int
	ValueX         int
	LabelTextWidth int
	ValueTextWidth int
}

// Write renders a line-coverage badge for a successful summary. Failed
// summaries render as an "unknown" badge so CI artifacts stay valid.
func Write(w io.Writer, summary domain.Summary) error {
	label := "coverage"
	value := "unknown"
	color := "#9f9f9f"
	if summary.Success {
		value = formatPercent(summary.LineCoverage * 100)
		color = colorFor(summary.LineCoverage * 100)
	}

	// Widths follow the shields.io Verdana approximation of 7px per
	// character plus 10px padding.
	labelWidth := len(label)*7 + 10
	valueWidth := len(value)*7 + 10

	data := badgeData{
		Label:          label,
		Value:          value,
		Color:          color,
		Width:          labelWidth + valueWidth,
		LabelWidth:     labelWidth,
		ValueWidth:     valueWidth,
		LabelX:         labelWidth * 5,
		ValueX:         (labelWidth + valueWidth/2) * 10,
		LabelTextWidth: len(label) * 7 * 10,
		ValueTextWidth: len(value) * 7 * 10,
	}

	if err := badgeTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render badge: %w", err)
	}
	return nil
}

func formatPercent(p float64) string {
	if p == float64(int(p)) {
		return fmt.Sprintf("%.0f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

func colorFor(p float64) string {
	switch {
	case p >= 90:
		return "#4c1"
	case p >= 75:
		return "#97ca00"
	case p >= 60:
		return "#dfb317"
	default:
		return "#e05d44"
	}
}
