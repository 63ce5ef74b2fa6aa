// Native PNG rendering for diagram scenes.
// Mirrors the SVG renderer output using Go's image packages.

package diagram

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Width    int
	Height   int
	FontSize int
	Title    string
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Width:    1200,
		Height:   800,
		FontSize: 14,
	}
}

// Colors used in rendering
var (
	colorBackground = color.RGBA{250, 250, 250, 255} // #fafafa
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorCardBorder = color.RGBA{69, 90, 100, 255}   // #455a64
	colorSelected   = color.RGBA{21, 101, 192, 255}  // #1565c0
	colorSelFill    = color.RGBA{227, 242, 253, 255} // #e3f2fd
	colorFactFill   = color.RGBA{255, 248, 225, 255} // #fff8e1
	colorFactBdr    = color.RGBA{141, 110, 99, 255}  // #8d6e63
	colorDimFill    = color.RGBA{243, 229, 245, 255} // #f3e5f5
	colorDimBdr     = color.RGBA{106, 27, 154, 255}  // #6a1b9a
	colorEdge       = color.RGBA{84, 110, 122, 255}  // #546e7a
	colorBinding    = color.RGBA{144, 164, 174, 255} // #90a4ae
	colorTableFill  = color.RGBA{236, 239, 241, 255} // #eceff1
	colorTableBdr   = color.RGBA{96, 125, 139, 255}  // #607d8b
	colorMuted      = color.RGBA{120, 144, 156, 255} // #78909c
	colorText       = color.RGBA{51, 51, 51, 255}    // #333
)

// renderContext holds rendering parameters including scale.
type renderContext struct {
	img       *image.RGBA
	scale     float64 // multiplier for line thickness and text size
	lineWidth float64
	face      font.Face // primary face for entity labels
	smallFace font.Face // smaller face for badges and table names
}

func newRenderContext(img *image.RGBA, scale int, fontSize int) *renderContext {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // should never happen with embedded font
	}

	makeFace := func(size int) font.Face {
		face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    float64(size * scale),
			DPI:     72,
			Hinting: font.HintingNone, // no hinting, supersampling smooths instead
		})
		if err != nil {
			panic(err)
		}
		return face
	}

	return &renderContext{
		img:       img,
		scale:     float64(scale),
		lineWidth: float64(scale) * 1.5,
		face:      makeFace(fontSize),
		smallFace: makeFace(fontSize - 3),
	}
}

// RenderPNG renders a scene through a viewport to PNG format.
// Uses 4x supersampling for smoother output.
func RenderPNG(scene *Scene, v *Viewport, w io.Writer, opts PNGOptions) error {
	if opts.Width == 0 {
		opts.Width = 1200
	}
	if opts.Height == 0 {
		opts.Height = 800
	}
	if opts.FontSize == 0 {
		opts.FontSize = 14
	}

	scale := 4
	largeImg := renderPNGInternal(scene, v, opts, scale)

	finalImg := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(finalImg, finalImg.Bounds(), largeImg, largeImg.Bounds(), draw.Over, nil)

	return png.Encode(w, finalImg)
}

// renderPNGInternal draws the scene at scale-times the target size. The
// viewport transform is composed with the supersampling scale so world
// geometry lands at the same screen position as in the SVG output.
func renderPNGInternal(scene *Scene, v *Viewport, opts PNGOptions, scale int) *image.RGBA {
	width := opts.Width * scale
	height := opts.Height * scale
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	ctx := newRenderContext(img, scale, opts.FontSize)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, colorBackground)
		}
	}

	// Scaled copy of the viewport: screen = (world*zoom + pan) * scale.
	sv := Viewport{
		Zoom: v.Zoom * float64(scale),
		PanX: v.PanX * float64(scale),
		PanY: v.PanY * float64(scale),
	}

	for _, b := range scene.Bindings {
		from := sv.WorldToScreen(b.From)
		to := sv.WorldToScreen(b.To)
		drawDashedLine(ctx, from, to, colorBinding)
	}

	for _, e := range scene.Edges {
		c := colorEdge
		if e.Selected {
			c = colorSelected
		}
		drawCubicBezier(ctx, e.Curve, &sv, c)

		mid := sv.WorldToScreen(e.LabelAt)
		badgeW := (float64(len(e.Label)*(opts.FontSize-3))*0.7 + 10) * ctx.scale
		badgeH := (float64(opts.FontSize-3) + 8) * ctx.scale
		drawRect(ctx, mid.X-badgeW/2, mid.Y-badgeH/2, badgeW, badgeH, colorWhite, colorEdge)
		drawTextCentered(ctx, ctx.smallFace, int(mid.X), int(mid.Y), e.Label, colorText)
	}

	for _, t := range scene.Tables {
		fill, border := colorTableFill, colorTableBdr
		if t.Selected {
			fill, border = colorSelFill, colorSelected
		}
		rect := screenRect(t.Rect, &sv)
		drawRect(ctx, rect.X-rect.W/2, rect.Y-rect.H/2, rect.W, rect.H, fill, border)
		drawTextCentered(ctx, ctx.smallFace, int(rect.X), int(rect.Y), t.ID, colorText)
	}

	for _, n := range scene.Nodes {
		fill, border := nodeColors(n)
		rect := screenRect(n.Rect, &sv)
		drawRect(ctx, rect.X-rect.W/2, rect.Y-rect.H/2, rect.W, rect.H, fill, border)
		drawTextCentered(ctx, ctx.face, int(rect.X), int(rect.Y)-int(4*ctx.scale), n.Name, colorText)
		drawTextCentered(ctx, ctx.smallFace, int(rect.X), int(rect.Y)+int(float64(opts.FontSize)*ctx.scale), n.Kind, colorMuted)
	}

	if opts.Title != "" {
		drawTextCentered(ctx, ctx.face, width/2, int(28*ctx.scale), opts.Title, colorText)
	}
	drawTextCentered(ctx, ctx.smallFace, int(100*ctx.scale), height-int(12*ctx.scale), scene.Status, colorMuted)

	return img
}

func nodeColors(n NodeView) (fill, border color.Color) {
	if n.Selected {
		return colorSelFill, colorSelected
	}
	switch n.Kind {
	case "FACT":
		return colorFactFill, colorFactBdr
	case "DIMENSION":
		return colorDimFill, colorDimBdr
	}
	return colorWhite, colorCardBorder
}

// drawRect fills a rectangle and strokes its border.
func drawRect(ctx *renderContext, x, y, w, h float64, fill, border color.Color) {
	img := ctx.img
	for dy := 0.0; dy <= h; dy++ {
		for dx := 0.0; dx <= w; dx++ {
			img.Set(int(x+dx), int(y+dy), fill)
		}
	}
	drawLine(ctx, x, y, x+w, y, border)
	drawLine(ctx, x+w, y, x+w, y+h, border)
	drawLine(ctx, x+w, y+h, x, y+h, border)
	drawLine(ctx, x, y+h, x, y, border)
}

// drawLine draws a line between two points with thickness from context.
func drawLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	img := ctx.img
	thickness := ctx.lineWidth

	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}

	halfThick := thickness / 2

	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				img.Set(int(x1+tx), int(y1+ty), c)
			}
		}
		return
	}

	perpX := -dy / dist
	perpY := dx / dist

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t

		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			img.Set(int(cx+perpX*offset), int(cy+perpY*offset), c)
		}
	}
}

// drawDashedLine draws a dashed line with a 5/4 pattern scaled by context.
func drawDashedLine(ctx *renderContext, from, to Point, c color.Color) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		return
	}

	dashLen := 5 * ctx.scale
	gapLen := 4 * ctx.scale
	nx := dx / dist
	ny := dy / dist

	pos := 0.0
	for pos < dist {
		end := math.Min(pos+dashLen, dist)
		drawLine(ctx,
			from.X+nx*pos, from.Y+ny*pos,
			from.X+nx*end, from.Y+ny*end, c)
		pos = end + gapLen
	}
}

// drawCubicBezier draws a world-space cubic curve through the viewport.
func drawCubicBezier(ctx *renderContext, curve Curve, v *Viewport, c color.Color) {
	steps := 100.0
	var prev Point

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		p := v.WorldToScreen(curve.Eval(t))
		if i > 0 {
			drawLine(ctx, prev.X, prev.Y, p.X, p.Y, c)
		}
		prev = p
	}
}

// drawTextCentered draws text centered at the given position.
func drawTextCentered(ctx *renderContext, face font.Face, x, y int, text string, c color.Color) {
	width := font.MeasureString(face, text).Ceil()

	// Baseline sits below the visual centre by a fraction of the ascent.
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	baselineY := y + int(float64(ascent)*0.15)

	point := fixed.Point26_6{
		X: fixed.I(x - width/2),
		Y: fixed.I(baselineY),
	}

	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  point,
	}
	d.DrawString(text)
}
