package diagram

import (
	"math"

	"github.com/ha1tch/semgraph/pkg/model"
)

// NodePosition is a derived, ephemeral world-space position for an entity.
type NodePosition struct {
	X, Y     float64
	Category string
}

// Point returns the position as a Point.
func (n NodePosition) Point() Point {
	return Point{n.X, n.Y}
}

// Layout deterministically assigns each visible entity a world-space
// position using a two-level radial layout: category anchors on a fixed
// ring around the world origin, members fanned out around their anchor.
//
// The result is a pure function of (visible-entity order, category
// assignment, config): calling it twice with identical inputs yields an
// identical position map. Hidden categories keep their angular slot, so the
// ring does not re-centre when categories are filtered out.
func Layout(visible []model.Entity, cats model.CategoryMap, cfg Config) map[string]NodePosition {
	positions := make(map[string]NodePosition, len(visible))
	if len(visible) == 0 {
		return positions
	}

	// Partition by category, preserving first-seen order within each.
	groups := make(map[string][]model.Entity)
	var order []string
	for _, e := range visible {
		cat := cats.Category(e.ID)
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], e)
	}

	for _, cat := range order {
		members := groups[cat]
		anchorAngle := categoryAngle(cat, cfg)
		anchor := Point{
			X: cfg.CategoryRadius * math.Cos(anchorAngle),
			Y: cfg.CategoryRadius * math.Sin(anchorAngle),
		}

		n := len(members)
		spread := 0.0
		if n > 1 {
			spread = cfg.FanStep * float64(n-1)
			if spread > cfg.MaxSpread {
				spread = cfg.MaxSpread
			}
		}

		for i, e := range members {
			angle := anchorAngle
			if n > 1 {
				angle += -spread/2 + spread*float64(i)/float64(n-1)
			}
			// Small deterministic radius jitter so fan neighbours don't
			// sit on a perfect arc and overlap at tight spreads.
			radius := cfg.NodeRadius + cfg.NodeJitter*float64(i%3)

			positions[e.ID] = NodePosition{
				X:        anchor.X + radius*math.Cos(angle),
				Y:        anchor.Y + radius*math.Sin(angle),
				Category: cat,
			}
		}
	}

	return positions
}

// categoryAngle returns the fixed ring angle for a category. Slots come
// from the configured order (starting at the top, clockwise), independent
// of which categories are currently visible.
func categoryAngle(category string, cfg Config) float64 {
	index, count := cfg.categorySlot(category)
	if count == 0 {
		return -math.Pi / 2
	}
	return 2*math.Pi*float64(index)/float64(count) - math.Pi/2
}

// LayoutBounds returns the bounding box of a set of resolved positions,
// grown by the node card size so focus framing includes whole cards.
func LayoutBounds(positions map[string]NodePosition, cfg Config) Bounds {
	var b Bounds
	for _, pos := range positions {
		b.ExtendRect(Rect{X: pos.X, Y: pos.Y, W: cfg.NodeWidth, H: cfg.NodeHeight})
	}
	return b
}
