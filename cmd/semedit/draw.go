package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/semgraph/pkg/diagram"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleEntity   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFact     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleSelected = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleEdge     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleEdgeSel  = tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorBlack)
	styleBinding  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTable    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleSidebar  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSidebarH = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHidden   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleInput    = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	v.drawCanvas()
	v.drawSidebar(w, h)
	v.drawStatusBar(w, h)
}

// screenToCell converts diagram screen units to a terminal cell.
func screenToCell(p diagram.Point) (int, int) {
	return int(p.X / cellW), int(p.Y / cellH)
}

func (v *Viewer) drawCanvas() {
	cw, ch := v.canvasSize()
	vp := v.d.Viewport()
	scene := v.d.Scene()

	// Bindings under everything, then edges, then boxes on top.
	for _, b := range scene.Bindings {
		v.drawSampledLine(b.From, b.To, vp, cw, ch, styleBinding, '·')
	}

	for _, e := range scene.Edges {
		style := styleEdge
		if e.Selected {
			style = styleEdgeSel
		}
		v.drawCurve(e.Curve, vp, cw, ch, style)

		mx, my := screenToCell(vp.WorldToScreen(e.LabelAt))
		v.drawClipped(mx-len(e.Label)/2, my, e.Label, cw, ch, style)
	}

	for _, t := range scene.Tables {
		v.drawNodeBox(t.Rect, t.ID, "", vp, cw, ch, tableStyle(t.Selected))
	}

	for _, n := range scene.Nodes {
		v.drawNodeBox(n.Rect, n.Name, n.Kind, vp, cw, ch, nodeStyle(n))
	}
}

func nodeStyle(n diagram.NodeView) tcell.Style {
	if n.Selected {
		return styleSelected
	}
	switch n.Kind {
	case "FACT":
		return styleFact
	case "DIMENSION":
		return styleDim
	}
	return styleEntity
}

func tableStyle(selected bool) tcell.Style {
	if selected {
		return styleSelected
	}
	return styleTable
}

// drawNodeBox draws a world rect as a bordered cell box with a centred
// label, clipped to the canvas.
func (v *Viewer) drawNodeBox(rect diagram.Rect, label, sublabel string, vp *diagram.Viewport, cw, ch int, style tcell.Style) {
	topLeft := vp.WorldToScreen(diagram.Point{X: rect.X - rect.W/2, Y: rect.Y - rect.H/2})
	botRight := vp.WorldToScreen(diagram.Point{X: rect.X + rect.W/2, Y: rect.Y + rect.H/2})

	x1, y1 := screenToCell(topLeft)
	x2, y2 := screenToCell(botRight)
	if x2-x1 < 2 {
		x2 = x1 + 2
	}
	if y2-y1 < 2 {
		y2 = y1 + 2
	}
	if x2 < 0 || y2 < 0 || x1 >= cw || y1 >= ch {
		return
	}

	for x := x1; x <= x2; x++ {
		v.setClipped(x, y1, '─', cw, ch, style)
		v.setClipped(x, y2, '─', cw, ch, style)
	}
	for y := y1; y <= y2; y++ {
		v.setClipped(x1, y, '│', cw, ch, style)
		v.setClipped(x2, y, '│', cw, ch, style)
	}
	v.setClipped(x1, y1, '┌', cw, ch, style)
	v.setClipped(x2, y1, '┐', cw, ch, style)
	v.setClipped(x1, y2, '└', cw, ch, style)
	v.setClipped(x2, y2, '┘', cw, ch, style)

	// Clear the interior so edges don't show through the card.
	for y := y1 + 1; y < y2; y++ {
		for x := x1 + 1; x < x2; x++ {
			v.setClipped(x, y, ' ', cw, ch, style)
		}
	}

	inner := x2 - x1 - 1
	name := truncate(label, inner)
	midY := (y1 + y2) / 2
	v.drawClipped(x1+1+(inner-len(name))/2, midY, name, cw, ch, style)
	if sublabel != "" && y2-y1 >= 3 {
		sub := truncate(sublabel, inner)
		v.drawClipped(x1+1+(inner-len(sub))/2, midY+1, sub, cw, ch, style)
	}
}

// drawCurve samples the cubic and plots it cell by cell.
func (v *Viewer) drawCurve(c diagram.Curve, vp *diagram.Viewport, cw, ch int, style tcell.Style) {
	steps := 60
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := screenToCell(vp.WorldToScreen(c.Eval(t)))
		v.setClipped(x, y, '•', cw, ch, style)
	}
}

// drawSampledLine plots a straight world line as dotted cells.
func (v *Viewer) drawSampledLine(from, to diagram.Point, vp *diagram.Viewport, cw, ch int, style tcell.Style, r rune) {
	steps := 30
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := diagram.Point{
			X: from.X + (to.X-from.X)*t,
			Y: from.Y + (to.Y-from.Y)*t,
		}
		x, y := screenToCell(vp.WorldToScreen(p))
		v.setClipped(x, y, r, cw, ch, style)
	}
}

func (v *Viewer) drawSidebar(w, h int) {
	cw, _ := v.canvasSize()

	for y := 0; y < h-1; y++ {
		v.screen.SetContent(cw, y, '│', nil, styleBorder)
	}

	v.drawString(cw+2, 0, "Categories", styleSidebarH)

	idx := v.d.Index()
	filter := v.d.Filter()
	row := 2
	for i, cat := range idx.GroupOrder {
		mark := "[ ]"
		style := styleHidden
		if filter.SelectedCategories[cat] {
			mark = "[x]"
			style = styleSidebar
		}
		line := fmt.Sprintf("%d %s %s (%d)", i+1, mark, cat, len(idx.Groups[cat]))
		v.drawString(cw+2, row, truncate(line, w-cw-3), style)
		row++
	}

	row += 2
	v.drawString(cw+2, row, "Keys", styleSidebarH)
	row += 2
	for _, help := range []string{
		"drag node  move it",
		"drag bg    pan",
		"wheel +/-  zoom",
		"/          search",
		"1-9        toggle cat",
		"f          focus cat",
		"a          show all",
		"c          clear moves",
		"r          reset view",
		"q          quit",
	} {
		v.drawString(cw+2, row, truncate(help, w-cw-3), styleSidebar)
		row++
	}
}

func (v *Viewer) drawStatusBar(w, h int) {
	y := h - 1
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	if v.mode == ModeSearch {
		v.drawString(0, y, " search: "+v.searchInput+"▌", styleInput)
		return
	}

	scene := v.d.Scene()
	vp := v.d.Viewport()
	status := fmt.Sprintf(" %s │ zoom %.1f", scene.Status, vp.Zoom)
	if q := v.d.Filter().SearchQuery; q != "" {
		status += fmt.Sprintf(" │ filter: %q", q)
	}
	if v.message != "" {
		status += " │ " + v.message
	}
	v.drawString(0, y, truncate(status, w), styleStatus)
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// drawClipped draws a string clipped to the canvas area.
func (v *Viewer) drawClipped(x, y int, s string, cw, ch int, style tcell.Style) {
	for i, r := range s {
		v.setClipped(x+i, y, r, cw, ch, style)
	}
}

func (v *Viewer) setClipped(x, y int, r rune, cw, ch int, style tcell.Style) {
	if x < 0 || y < 0 || x >= cw || y >= ch {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}
