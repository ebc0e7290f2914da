// Package charts renders the dashboard and analyzer visuals as inline SVG.
// Pie and bar charts come from go-chart; the banded gauge is drawn here.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Datum is one labelled value.
type Datum struct {
	Label string
	Value float64
}

var palette = []string{"667eea", "ff7f0e", "2ca02c", "d62728", "9467bd", "8c564b", "e377c2", "17becf"}

func color(i int) drawing.Color { return drawing.ColorFromHex(palette[i%len(palette)]) }

const (
	width  = 420
	height = 280
)

func header(sb *strings.Builder, title string, w, h int) {
	fmt.Fprintf(sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-label="%s">`, w, h, html.EscapeString(title))
	fmt.Fprintf(sb, `<text x="%d" y="20" text-anchor="middle" font-size="15" font-weight="600">%s</text>`, w/2, html.EscapeString(title))
}

// go-chart writes text nodes as given.
func values(data []Datum) []chart.Value {
	out := make([]chart.Value, 0, len(data))
	for i, d := range data {
		out = append(out, chart.Value{
			Label: html.EscapeString(d.Label),
			Value: d.Value,
			Style: chart.Style{FillColor: color(i), StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		})
	}
	return out
}

func svg(r interface {
	Render(chart.RendererProvider, io.Writer) error
}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(chart.SVG, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Pie draws one labelled slice per positive value.
func Pie(data []Datum) (template.HTML, error) {
	var slices []Datum
	for _, d := range data {
		if d.Value > 0 {
			slices = append(slices, Datum{Label: fmt.Sprintf("%s (%s)", d.Label, formatValue(d.Value)), Value: d.Value})
		}
	}
	if len(slices) == 0 {
		return "", errors.New("pie chart needs a positive value")
	}
	return svg(chart.PieChart{Width: width, Height: height, Values: values(slices)})
}

// Bar draws one vertical bar per datum, in the given order, on a zero based axis.
func Bar(data []Datum) (template.HTML, error) {
	if len(data) == 0 {
		return "", errors.New("bar chart needs at least one bar")
	}
	mx := 0.0
	for _, d := range data {
		mx = math.Max(mx, d.Value)
	}
	if mx <= 0 {
		return "", errors.New("bar chart needs a positive value")
	}
	bars := values(data)
	for i := range bars {
		bars[i].Style.FillColor = color(0)
	}
	barW := max(8, min(40, (width-80)/len(data)-10))
	return svg(chart.BarChart{
		Width:      width,
		Height:     height,
		BarWidth:   barW,
		BarSpacing: 10,
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: mx},
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	})
}

// Gauge draws a half-dial over [0,limit] with low/mid/high bands
// (0-3, 3-7, 7-10 of a ten point scale) and a threshold mark at 8.
func Gauge(title string, value, limit float64) template.HTML {
	if limit <= 0 {
		limit = 10
	}
	value = math.Min(math.Max(value, 0), limit)

	var sb strings.Builder
	h := 200
	header(&sb, title, width, h)
	cx, cy, r := float64(width)/2, 170.0, 120.0

	point := func(v, radius float64) (float64, float64) {
		a := math.Pi * (1 - v/limit)
		return cx + radius*math.Cos(a), cy - radius*math.Sin(a)
	}
	arc := func(from, to float64, stroke string, w int) {
		x1, y1 := point(from, r)
		x2, y2 := point(to, r)
		fmt.Fprintf(&sb, `<path d="M%.2f,%.2f A%.0f,%.0f 0 0 1 %.2f,%.2f" fill="none" stroke="%s" stroke-width="%d"/>`, x1, y1, r, r, x2, y2, stroke, w)
	}
	scale := limit / 10
	arc(0, 3*scale, "lightgray", 24)
	arc(3*scale, 7*scale, "gray", 24)
	arc(7*scale, limit, "lightgreen", 24)
	if value > 0 {
		arc(0, value, "darkblue", 10)
	}

	tx1, ty1 := point(8*scale, r-16)
	tx2, ty2 := point(8*scale, r+16)
	fmt.Fprintf(&sb, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="red" stroke-width="4"/>`, tx1, ty1, tx2, ty2)
	fmt.Fprintf(&sb, `<text x="%.0f" y="%.0f" text-anchor="middle" font-size="32" font-weight="700">%s</text>`, cx, cy-10, formatValue(value))
	sb.WriteString(`</svg>`)
	return template.HTML(sb.String())
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
