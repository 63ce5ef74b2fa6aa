// Package diagram implements the interactive graph-layout and viewport
// engine for semantic models: radial category layout, screen/world
// coordinate transforms, gesture handling, and render-agnostic scene output.
package diagram

import "github.com/ha1tch/semgraph/pkg/model"

// Config holds the tuned layout and interaction constants. The values were
// chosen visually; nothing depends on the exact numbers beyond producing a
// readable, non-overlapping layout, so they are configuration rather than
// derived quantities.
type Config struct {
	// CategoryOrder fixes the angular slot of each category on the ring.
	// Hidden categories keep their slot; the table never re-indexes.
	CategoryOrder []string

	// CategoryRadius is the distance from the world origin to each
	// category's anchor point.
	CategoryRadius float64

	// NodeRadius is the fan-out distance from a category anchor to its
	// member nodes.
	NodeRadius float64

	// NodeJitter is the deterministic per-index radius variation applied
	// within a fan to reduce overlap.
	NodeJitter float64

	// MaxSpread caps the angular window (radians) a category's members
	// fan across, so dense categories don't visually explode.
	MaxSpread float64

	// FanStep is the preferred angular gap between adjacent members
	// before MaxSpread capping kicks in.
	FanStep float64

	// NodeWidth and NodeHeight are the fixed entity card dimensions in
	// world units.
	NodeWidth  float64
	NodeHeight float64

	// TableWidth and TableHeight are the physical-table node dimensions.
	TableWidth  float64
	TableHeight float64

	// TableRowGap is the vertical gap between the entity bounding box and
	// the physical-table row.
	TableRowGap float64

	// MinZoom and MaxZoom bound the viewport zoom; out-of-range requests
	// are clamped, never rejected.
	MinZoom float64
	MaxZoom float64

	// DefaultZoom is restored by a viewport reset.
	DefaultZoom float64

	// FocusZoom is the fixed zoom level applied when focusing a category.
	FocusZoom float64

	// WheelStep is the zoom delta applied per scroll tick.
	WheelStep float64

	// ClickThreshold is the pointer displacement (screen pixels) below
	// which a press-release counts as a click rather than a drag.
	ClickThreshold float64

	// EdgeHitWidth is the invisible stroke width used for relationship
	// hit-testing, wider than the visible line so thin curves are
	// clickable.
	EdgeHitWidth float64
}

// DefaultConfig returns the standard constants.
func DefaultConfig() Config {
	return Config{
		CategoryOrder:  model.DefaultCategoryOrder,
		CategoryRadius: 320.0,
		NodeRadius:     130.0,
		NodeJitter:     18.0,
		MaxSpread:      1.9,
		FanStep:        0.55,
		NodeWidth:      180.0,
		NodeHeight:     72.0,
		TableWidth:     150.0,
		TableHeight:    44.0,
		TableRowGap:    90.0,
		MinZoom:        0.3,
		MaxZoom:        2.0,
		DefaultZoom:    1.0,
		FocusZoom:      1.2,
		WheelStep:      0.1,
		ClickThreshold: 4.0,
		EdgeHitWidth:   12.0,
	}
}

// categorySlot returns the fixed angular index of a category, appending
// unknown categories conceptually after the configured order. The slot
// count includes every configured category whether or not it is visible.
func (c Config) categorySlot(category string) (index, count int) {
	count = len(c.CategoryOrder)
	for i, name := range c.CategoryOrder {
		if name == category {
			return i, count
		}
	}
	// Unknown category: share the last slot with the sentinel.
	return count - 1, count
}
