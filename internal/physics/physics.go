// Package physics provides collision detection and distance utilities.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is strictly within radius of a target
// position. A point on the circle does not count.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) < radius*radius
}

// Rect is an axis-aligned box described by its center and half extents.
type Rect struct {
	CX, CY       float64
	HalfW, HalfH float64
}

// RectsOverlap reports whether two boxes intersect. Touching edges do not count.
func RectsOverlap(a, b Rect) bool {
	return math.Abs(a.CX-b.CX) < a.HalfW+b.HalfW &&
		math.Abs(a.CY-b.CY) < a.HalfH+b.HalfH
}
