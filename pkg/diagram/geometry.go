// Geometric primitives shared by layout, hit-testing and rendering.

package diagram

import "math"

// Point represents a 2D coordinate in world or screen space.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned rectangle identified by its centre.
type Rect struct {
	X, Y float64 // Centre
	W, H float64 // Full width and height
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X-r.W/2 && p.X <= r.X+r.W/2 &&
		p.Y >= r.Y-r.H/2 && p.Y <= r.Y+r.H/2
}

// Center returns the rectangle centre.
func (r Rect) Center() Point {
	return Point{r.X, r.Y}
}

// EdgePoint returns the point on the rectangle's boundary nearest to the
// direction of the target, used to anchor relationship curves at card edges
// rather than centres. The anchor is the midpoint of the facing edge.
func (r Rect) EdgePoint(toward Point) Point {
	dx := toward.X - r.X
	dy := toward.Y - r.Y
	if dx == 0 && dy == 0 {
		return r.Center()
	}
	// Pick the edge by dominant axis of the direction.
	if math.Abs(dx)*r.H >= math.Abs(dy)*r.W {
		if dx > 0 {
			return Point{r.X + r.W/2, r.Y}
		}
		return Point{r.X - r.W/2, r.Y}
	}
	if dy > 0 {
		return Point{r.X, r.Y + r.H/2}
	}
	return Point{r.X, r.Y - r.H/2}
}

// RectOverlap returns the overlap area between two rectangles, 0 if they
// don't overlap.
func RectOverlap(a, b Rect) float64 {
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)

	overlapX := (a.W+b.W)/2 - dx
	overlapY := (a.H+b.H)/2 - dy

	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// Bounds is an expanding bounding box accumulator.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
	set                    bool
}

// Extend grows the bounds to include the point.
func (b *Bounds) Extend(p Point) {
	if !b.set {
		b.MinX, b.MaxX = p.X, p.X
		b.MinY, b.MaxY = p.Y, p.Y
		b.set = true
		return
	}
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
}

// ExtendRect grows the bounds to include the whole rectangle.
func (b *Bounds) ExtendRect(r Rect) {
	b.Extend(Point{r.X - r.W/2, r.Y - r.H/2})
	b.Extend(Point{r.X + r.W/2, r.Y + r.H/2})
}

// Empty reports whether the bounds contain no points. Degenerate bounds
// make viewport focus a no-op.
func (b *Bounds) Empty() bool {
	return !b.set
}

// Center returns the bounding box centre, or the origin for empty bounds.
func (b *Bounds) Center() Point {
	if !b.set {
		return Point{}
	}
	return Point{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
