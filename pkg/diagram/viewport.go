package diagram

// Viewport maintains the zoom/pan mapping between world and screen
// coordinate spaces. Zoom always stays inside [MinZoom, MaxZoom]:
// out-of-range requests are clamped, never rejected.
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64

	cfg Config
}

// NewViewport returns a viewport at the default zoom with zero pan.
func NewViewport(cfg Config) Viewport {
	return Viewport{Zoom: cfg.DefaultZoom, cfg: cfg}
}

// ZoomBy adjusts zoom by delta, clamping to the configured range.
func (v *Viewport) ZoomBy(delta float64) {
	v.SetZoom(v.Zoom + delta)
}

// SetZoom sets the zoom level, clamped to the configured range.
func (v *Viewport) SetZoom(zoom float64) {
	v.Zoom = clamp(zoom, v.cfg.MinZoom, v.cfg.MaxZoom)
}

// WheelTick applies one scroll tick: positive direction zooms in.
func (v *Viewport) WheelTick(direction int) {
	if direction > 0 {
		v.ZoomBy(v.cfg.WheelStep)
	} else if direction < 0 {
		v.ZoomBy(-v.cfg.WheelStep)
	}
}

// ScreenToWorld converts a screen point to world coordinates.
func (v *Viewport) ScreenToWorld(s Point) Point {
	return Point{
		X: (s.X - v.PanX) / v.Zoom,
		Y: (s.Y - v.PanY) / v.Zoom,
	}
}

// WorldToScreen converts a world point to screen coordinates.
func (v *Viewport) WorldToScreen(w Point) Point {
	return Point{
		X: w.X*v.Zoom + v.PanX,
		Y: w.Y*v.Zoom + v.PanY,
	}
}

// Reset restores the default zoom and zero pan.
func (v *Viewport) Reset() {
	v.Zoom = v.cfg.DefaultZoom
	v.PanX = 0
	v.PanY = 0
}

// Focus sets the fixed focus zoom and pans so the bounding box centre maps
// to the container centre. A degenerate box (no entities) is a no-op: the
// previous viewport is retained.
func (v *Viewport) Focus(bounds Bounds, containerW, containerH float64) {
	if bounds.Empty() {
		return
	}
	v.SetZoom(v.cfg.FocusZoom)
	centre := bounds.Center()
	v.PanX = containerW/2 - centre.X*v.Zoom
	v.PanY = containerH/2 - centre.Y*v.Zoom
}
