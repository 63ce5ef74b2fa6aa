package diagram

import (
	"fmt"
	"html"
	"strings"
)

// SVGOptions controls SVG rendering of a scene.
type SVGOptions struct {
	Width     int    // canvas width in pixels
	Height    int    // canvas height in pixels
	Title     string // diagram title
	FontSize  int    // base font size for entity labels
	BadgeSize int    // font size for cardinality badges (0 = FontSize - 3)
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:    1200,
		Height:   800,
		FontSize: 14,
	}
}

// RenderSVG draws a scene through a viewport transform to an SVG document.
// This is a thin adapter: all positioning decisions already happened in the
// scene; here we only project world coordinates to screen and emit markup.
func RenderSVG(scene *Scene, v *Viewport, opts SVGOptions) string {
	if opts.Width == 0 {
		opts.Width = 1200
	}
	if opts.Height == 0 {
		opts.Height = 800
	}
	if opts.FontSize == 0 {
		opts.FontSize = 14
	}
	if opts.BadgeSize == 0 {
		opts.BadgeSize = opts.FontSize - 3
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<style>
  .entity { fill: #ffffff; stroke: #455a64; stroke-width: 1.5; }
  .entity-selected { fill: #e3f2fd; stroke: #1565c0; stroke-width: 2.5; }
  .entity-fact { fill: #fff8e1; stroke: #8d6e63; stroke-width: 1.5; }
  .entity-dimension { fill: #f3e5f5; stroke: #6a1b9a; stroke-width: 1.5; }
  .entity-label { font-family: sans-serif; font-size: %dpx; text-anchor: middle; dominant-baseline: middle; }
  .entity-kind { font-family: sans-serif; font-size: %dpx; fill: #78909c; text-anchor: middle; }
  .edge { fill: none; stroke: #546e7a; stroke-width: 1.5; }
  .edge-selected { fill: none; stroke: #1565c0; stroke-width: 2.5; }
  .edge-hit { fill: none; stroke: transparent; pointer-events: stroke; }
  .badge { fill: #ffffff; stroke: #546e7a; stroke-width: 1; }
  .badge-label { font-family: sans-serif; font-size: %dpx; text-anchor: middle; dominant-baseline: middle; }
  .binding { fill: none; stroke: #90a4ae; stroke-width: 1; stroke-dasharray: 5 4; }
  .table { fill: #eceff1; stroke: #607d8b; stroke-width: 1.5; }
  .table-selected { fill: #e3f2fd; stroke: #1565c0; stroke-width: 2.5; }
  .table-label { font-family: monospace; font-size: %dpx; text-anchor: middle; dominant-baseline: middle; }
  .title { font-family: sans-serif; font-size: %dpx; font-weight: bold; text-anchor: middle; }
  .status { font-family: sans-serif; font-size: %dpx; fill: #78909c; }
</style>
`, opts.Width, opts.Height, opts.Width, opts.Height,
		opts.FontSize, opts.BadgeSize, opts.BadgeSize, opts.BadgeSize,
		opts.FontSize+4, opts.BadgeSize))

	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="#fafafa"/>
`, opts.Width, opts.Height))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="28" class="title">%s</text>
`, opts.Width/2, html.EscapeString(opts.Title)))
	}

	// Binding lines first (under everything).
	for _, b := range scene.Bindings {
		from := v.WorldToScreen(b.From)
		to := v.WorldToScreen(b.To)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="binding"/>
`, from.X, from.Y, to.X, to.Y))
	}

	// Edges under nodes.
	for _, e := range scene.Edges {
		path := edgePath(e.Curve, v)
		class := "edge"
		if e.Selected {
			class = "edge-selected"
		}
		sb.WriteString(fmt.Sprintf(`<path d="%s" class="%s"/>
`, path, class))
		// Invisible wide stroke over the visible line: the click target.
		sb.WriteString(fmt.Sprintf(`<path d="%s" class="edge-hit" stroke-width="%.1f"/>
`, path, e.HitWidth))

		// Cardinality badge at the curve midpoint.
		mid := v.WorldToScreen(e.LabelAt)
		badgeW := float64(len(e.Label)*opts.BadgeSize)*0.7 + 10
		badgeH := float64(opts.BadgeSize) + 8
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" class="badge"/>
`, mid.X-badgeW/2, mid.Y-badgeH/2, badgeW, badgeH))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="badge-label">%s</text>
`, mid.X, mid.Y, html.EscapeString(e.Label)))
	}

	// Physical-table nodes.
	for _, t := range scene.Tables {
		rect := screenRect(t.Rect, v)
		class := "table"
		if t.Selected {
			class = "table-selected"
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" class="%s"/>
`, rect.X-rect.W/2, rect.Y-rect.H/2, rect.W, rect.H, class))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="table-label">%s</text>
`, rect.X, rect.Y, html.EscapeString(t.ID)))
	}

	// Entity cards on top.
	for _, n := range scene.Nodes {
		rect := screenRect(n.Rect, v)
		class := nodeClass(n)
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" class="%s"/>
`, rect.X-rect.W/2, rect.Y-rect.H/2, rect.W, rect.H, class))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="entity-label">%s</text>
`, rect.X, rect.Y-4, html.EscapeString(n.Name)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="entity-kind">%s</text>
`, rect.X, rect.Y+float64(opts.FontSize), html.EscapeString(n.Kind)))
	}

	// Status readout bottom-left; an empty model still renders this.
	sb.WriteString(fmt.Sprintf(`<text x="12" y="%d" class="status">%s</text>
`, opts.Height-12, html.EscapeString(scene.Status)))

	sb.WriteString("</svg>\n")
	return sb.String()
}

func nodeClass(n NodeView) string {
	if n.Selected {
		return "entity-selected"
	}
	switch n.Kind {
	case "FACT":
		return "entity-fact"
	case "DIMENSION":
		return "entity-dimension"
	}
	return "entity"
}

// edgePath projects a world-space cubic to an SVG path string.
func edgePath(c Curve, v *Viewport) string {
	p0 := v.WorldToScreen(c[0])
	p1 := v.WorldToScreen(c[1])
	p2 := v.WorldToScreen(c[2])
	p3 := v.WorldToScreen(c[3])
	return fmt.Sprintf("M%.1f,%.1f C%.1f,%.1f %.1f,%.1f %.1f,%.1f",
		p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
}

// screenRect projects a world rect through the viewport, scaling size by
// zoom.
func screenRect(r Rect, v *Viewport) Rect {
	centre := v.WorldToScreen(r.Center())
	return Rect{X: centre.X, Y: centre.Y, W: r.W * v.Zoom, H: r.H * v.Zoom}
}
