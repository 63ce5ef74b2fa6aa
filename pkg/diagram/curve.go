// Cubic Bézier construction and evaluation for relationship edges.
// Curves anchor at card edges with direction-aware control offsets: roughly
// horizontal pairs route as an S-curve, vertically separated pairs route
// through vertical control points.

package diagram

import "math"

// Curve is a single cubic Bézier segment: start, two control points, end.
type Curve [4]Point

// RelationshipCurve builds the edge curve between two entity cards. Start
// and end sit on the facing edges of the rectangles, not their centres.
func RelationshipCurve(source, target Rect) Curve {
	start := source.EdgePoint(target.Center())
	end := target.EdgePoint(source.Center())

	dx := end.X - start.X
	dy := end.Y - start.Y

	if math.Abs(dx) >= math.Abs(dy) {
		// Mostly horizontal: S-curve with horizontal control offsets.
		off := math.Abs(dx) * 0.4
		if off < 30 {
			off = 30
		}
		sign := 1.0
		if dx < 0 {
			sign = -1
		}
		return Curve{
			start,
			Point{start.X + off*sign, start.Y},
			Point{end.X - off*sign, end.Y},
			end,
		}
	}

	// Same-column or steep pairs: route vertically so the curve leaves and
	// enters through the horizontal card edges.
	off := math.Abs(dy) * 0.4
	if off < 30 {
		off = 30
	}
	sign := 1.0
	if dy < 0 {
		sign = -1
	}
	return Curve{
		start,
		Point{start.X, start.Y + off*sign},
		Point{end.X, end.Y - off*sign},
		end,
	}
}

// BindingLine returns the straight dashed-line endpoints from an entity
// card to a physical-table node.
func BindingLine(entity, table Rect) (Point, Point) {
	return entity.EdgePoint(table.Center()), table.EdgePoint(entity.Center())
}

// Eval computes the point on the curve at parameter t in [0,1].
func (c Curve) Eval(t float64) Point {
	t = clamp(t, 0, 1)
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	return Point{
		X: mt3*c[0].X + 3*mt2*t*c[1].X + 3*mt*t2*c[2].X + t3*c[3].X,
		Y: mt3*c[0].Y + 3*mt2*t*c[1].Y + 3*mt*t2*c[2].Y + t3*c[3].Y,
	}
}

// Midpoint returns the point at t=0.5, where the cardinality badge sits.
func (c Curve) Midpoint() Point {
	return c.Eval(0.5)
}

// curveHitSamples is the sampling density for distance queries. Edges are
// short enough that 32 samples keeps the error well under a pixel.
const curveHitSamples = 32

// DistanceTo returns the approximate minimum distance from p to the curve,
// found by sampling. Used for wide-stroke edge hit-testing.
func (c Curve) DistanceTo(p Point) float64 {
	best := math.MaxFloat64
	for i := 0; i <= curveHitSamples; i++ {
		t := float64(i) / curveHitSamples
		d := c.Eval(t).Dist(p)
		if d < best {
			best = d
		}
	}
	return best
}

// Length approximates the curve length by sampling.
func (c Curve) Length() float64 {
	length := 0.0
	prev := c.Eval(0)
	for i := 1; i <= curveHitSamples; i++ {
		t := float64(i) / curveHitSamples
		curr := c.Eval(t)
		length += prev.Dist(curr)
		prev = curr
	}
	return length
}
