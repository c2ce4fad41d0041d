// Package render turns layout output into an SVG document. It is purely
// presentational: all geometry decisions happen in internal/timeline, all
// interaction state lives in internal/selection. The document is rebuilt
// wholesale on every update cycle.
package render

import (
	"fmt"
	"strings"

	"timelanes/internal/config"
	"timelanes/internal/dataview"
	"timelanes/internal/palette"
	"timelanes/internal/sanitize"
	"timelanes/internal/selection"
	"timelanes/internal/timeline"
)

// BannerShift is how much plot height a header or footer banner consumes.
const BannerShift = 105

// Visual styling constants.
const (
	barWidth     = 4
	dialRadius   = 4
	axisColor    = "#444444"
	bandLight    = "#f5f5f5"
	bandDark     = "#e4e4e4"
	glyphStrokeW = 2.0
)

// Input carries everything one render pass needs. It is assembled fresh by
// the update cycle and discarded afterwards.
type Input struct {
	Chart      config.Chart
	Placements []timeline.Placement
	Scale      timeline.TimeScale
	YS         timeline.YScale
	Colors     *palette.Assignment
	BaseURL    string

	// Active is the currently selected record identity, if any; its glyph
	// renders with the highlight stroke.
	Active dataview.SelectionID
}

// SVG renders the complete chart document.
func SVG(in Input) string {
	var svg strings.Builder

	fmt.Fprintf(&svg, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" font-family="Arial, sans-serif" font-size="%d" data-ready="true">`,
		in.Chart.Width, in.Chart.Height, in.Chart.Width, in.Chart.Height, in.Chart.FontSize)
	svg.WriteString("\n")

	writeGradients(&svg, in)
	writeBands(&svg, in)
	writeBanner(&svg, in)
	writeAxis(&svg, in)
	for _, p := range in.Placements {
		writeEvent(&svg, in, p)
	}
	writeCaption(&svg, in)

	svg.WriteString("</svg>\n")
	return svg.String()
}

// writeGradients emits one linear gradient per distinct title and
// direction. Even-indexed (above-axis) events fade top-to-bottom from the
// distal light shade into the axis-proximal dark shade; odd-indexed events
// fade the other way.
func writeGradients(svg *strings.Builder, in Input) {
	svg.WriteString("<defs>\n")
	seen := make(map[string]bool)
	for _, p := range in.Placements {
		id := gradientID(in.Colors, p)
		if seen[id] {
			continue
		}
		seen[id] = true

		triple := in.Colors.Lookup(p.Record.Title)
		top, bottom := triple.Light, triple.Dark
		if !p.Lane.Above() {
			top, bottom = triple.Dark, triple.Light
		}
		fmt.Fprintf(svg, `<linearGradient id="%s" x1="0" y1="0" x2="0" y2="1"><stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient>`,
			id, top, bottom)
		svg.WriteString("\n")
	}
	svg.WriteString("</defs>\n")
}

// gradientID keys gradients by first-seen title order plus bar direction,
// which keeps ids stable within a cycle without embedding raw titles in
// markup.
func gradientID(colors *palette.Assignment, p timeline.Placement) string {
	triple := colors.Lookup(p.Record.Title)
	dir := "down"
	if !p.Lane.Above() {
		dir = "up"
	}
	return fmt.Sprintf("grad-%s-%s", strings.TrimPrefix(triple.Medium, "#"), dir)
}

// writeBands draws the alternating quarterly background bands. The color
// toggles on every 4th quarter tick, so bands alternate year by year.
func writeBands(svg *strings.Builder, in Input) {
	quarters := in.Scale.QuarterTicks()
	fill := bandLight
	for i, q := range quarters {
		if i%4 == 0 {
			if fill == bandLight {
				fill = bandDark
			} else {
				fill = bandLight
			}
		}
		x := in.Scale.X(q.Time)
		var xNext float64
		if i+1 < len(quarters) {
			xNext = in.Scale.X(quarters[i+1].Time)
		} else {
			xNext = in.Scale.Width
		}
		if xNext <= x {
			continue
		}
		fmt.Fprintf(svg, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
			x, in.YS.MarginTop, xNext-x, in.YS.PlotHeight-in.YS.MarginTop, fill)
		svg.WriteString("\n")
	}
}

// writeBanner draws the header or footer image strip, or the bordered
// default frame when no banner is active. The two are mutually exclusive.
func writeBanner(svg *strings.Builder, in Input) {
	imgURL := sanitize.URL(in.Chart.ImgURL)
	switch in.Chart.Layout {
	case config.LayoutHeader:
		if imgURL != "" {
			fmt.Fprintf(svg, `<image x="0" y="0" width="%d" height="%d" href="%s" preserveAspectRatio="xMidYMid slice"/>`,
				in.Chart.Width, BannerShift, escapeXML(imgURL))
			svg.WriteString("\n")
		}
	case config.LayoutFooter:
		if imgURL != "" {
			fmt.Fprintf(svg, `<image x="0" y="%d" width="%d" height="%d" href="%s" preserveAspectRatio="xMidYMid slice"/>`,
				in.Chart.Height-BannerShift, in.Chart.Width, BannerShift, escapeXML(imgURL))
			svg.WriteString("\n")
		}
	default:
		fmt.Fprintf(svg, `<rect x="1" y="1" width="%d" height="%d" fill="none" stroke="%s" stroke-width="1"/>`,
			in.Chart.Width-2, in.Chart.Height-2, axisColor)
		svg.WriteString("\n")
	}
}

// writeAxis draws the time axis line, the labeled ticks and the dial
// decorations sitting on the axis.
func writeAxis(svg *strings.Builder, in Input) {
	axisY := in.YS.AxisY()
	fmt.Fprintf(svg, `<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`,
		axisY, in.Scale.Width, axisY, axisColor)
	svg.WriteString("\n")

	for _, tick := range in.Scale.Ticks() {
		x := in.Scale.X(tick.Time)
		fmt.Fprintf(svg, `<circle cx="%.1f" cy="%.1f" r="%d" fill="%s"/>`,
			x, axisY, dialRadius, axisColor)
		fmt.Fprintf(svg, `<text x="%.1f" y="%.1f" text-anchor="middle" fill="%s">%s</text>`,
			x, axisY+float64(in.Chart.FontSize)+6, axisColor, escapeXML(tick.Label))
		svg.WriteString("\n")
	}
}

// writeEvent draws one event: two gradient connector bars, the glyph and
// the label box, all inside a group translated to the event anchor.
func writeEvent(svg *strings.Builder, in Input, p timeline.Placement) {
	triple := in.Colors.Lookup(p.Record.Title)
	gradient := gradientID(in.Colors, p)

	fmt.Fprintf(svg, `<g class="event" data-selection="%s" transform="translate(%.1f,%.1f)">`,
		escapeXML(string(p.Record.Selection)), p.X, p.AnchorY)
	svg.WriteString("\n")

	// Connector bars at the start and end edges, positioned in absolute y.
	for _, barX := range []float64{0, p.Diff} {
		fmt.Fprintf(svg, `<rect x="%.1f" y="%.1f" width="%d" height="%.1f" fill="url(#%s)"/>`,
			barX-barWidth/2.0, p.Bar.Y-p.AnchorY, barWidth, p.Bar.Height, gradient)
		svg.WriteString("\n")
	}

	// The highlight stroke comes from the selection package so the value
	// the controller works with and the value drawn never drift apart.
	stroke, strokeW := triple.Medium, glyphStrokeW
	if in.Active != "" && p.Record.Selection == in.Active {
		stroke, strokeW = selection.Highlight.Stroke, selection.Highlight.Width
	}

	switch p.Glyph.Shape {
	case timeline.GlyphCircle:
		innerFill := "none"
		if in.Chart.CircleBackground == "opaque" {
			innerFill = "#ffffff"
		}
		fmt.Fprintf(svg, `<g class="glyph"><circle cx="%.1f" cy="0" r="%.0f" fill="%s" stroke="none"/><circle cx="%.1f" cy="0" r="%.0f" fill="none" stroke="%s" stroke-width="%g"/></g>`,
			p.Glyph.CenterX, p.Glyph.InnerR, innerFill,
			p.Glyph.CenterX, p.Glyph.OuterR, stroke, strokeW)
	case timeline.GlyphEllipse:
		fmt.Fprintf(svg, `<ellipse class="glyph" cx="%.1f" cy="0" rx="%.1f" ry="%.0f" fill="%s" fill-opacity="0.55" stroke="%s" stroke-width="%g"/>`,
			p.Glyph.CenterX, p.Glyph.RX, p.Glyph.RY, triple.Light, stroke, strokeW)
	}
	svg.WriteString("\n")

	writeLabel(svg, in, p)
	svg.WriteString("</g>\n")
}

// writeLabel composes the rich-text label box. The visible body keeps
// sanitized HTML; the tooltip gets the tag-stripped plain form.
func writeLabel(svg *strings.Builder, in Input, p timeline.Placement) {
	title := sanitize.RichText(p.Record.Title)
	desc := sanitize.RichText(p.Record.Description)
	tooltip := sanitize.PlainText(p.Record.Title + " " + p.Record.Description)

	heading := title
	if link := sanitize.Resolve(in.BaseURL, p.Record.CompanyLink); link != "" {
		heading = fmt.Sprintf(`<a href="%s" data-link="%s">%s</a>`, escapeXML(link), escapeXML(link), title)
	}

	x := p.Glyph.CenterX - p.Label.Width/2
	fmt.Fprintf(svg, `<foreignObject x="%.1f" y="%.1f" width="%.1f" height="%.1f"><div xmlns="http://www.w3.org/1999/xhtml" class="label" title="%s"><strong>%s</strong><div>%s</div></div></foreignObject>`,
		x, p.Label.OffsetY, p.Label.Width, p.Label.Height, escapeXML(tooltip), heading, desc)
	svg.WriteString("\n")
}

// writeCaption draws the chart title along the top edge.
func writeCaption(svg *strings.Builder, in Input) {
	if in.Chart.Title == "" {
		return
	}
	y := float64(in.Chart.FontSize) + 4
	if in.Chart.Layout == config.LayoutHeader {
		y += BannerShift
	}
	fmt.Fprintf(svg, `<text x="%d" y="%.1f" font-weight="bold" fill="%s">%s</text>`,
		8, y, axisColor, escapeXML(sanitize.PlainText(in.Chart.Title)))
	svg.WriteString("\n")
}

// escapeXML escapes special XML characters so attribute values and text
// nodes stay well-formed.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
