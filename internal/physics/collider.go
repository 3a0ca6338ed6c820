package physics

import "fmt"

// CollisionMode selects how two bodies are tested against each other.
type CollisionMode string

const (
	// ModeAABB intersects the sprite boxes built from each body's half extents.
	ModeAABB CollisionMode = "aabb"
	// ModeRadius compares the center distance against a single threshold.
	ModeRadius CollisionMode = "radius"
)

// ParseCollisionMode converts a tuning value into a CollisionMode.
func ParseCollisionMode(s string) (CollisionMode, error) {
	switch CollisionMode(s) {
	case ModeAABB, "":
		return ModeAABB, nil
	case ModeRadius:
		return ModeRadius, nil
	default:
		return ModeAABB, fmt.Errorf("unknown collision mode %q", s)
	}
}

// Collider tests pairs of boxes with a fixed policy.
type Collider struct {
	Mode      CollisionMode
	Threshold float64 // Center distance used by ModeRadius
}

// Collides reports whether a and b are touching under the collider's policy.
func (c Collider) Collides(a, b Rect) bool {
	if c.Mode == ModeRadius {
		return PointInCircle(a.CX, a.CY, b.CX, b.CY, c.Threshold)
	}
	return RectsOverlap(a, b)
}

// Reach returns the largest center distance at which two bodies with the given
// half extents could still collide. Used to size the broad-phase grid.
func (c Collider) Reach(maxHalfW, maxHalfH float64) float64 {
	if c.Mode == ModeRadius {
		return c.Threshold
	}
	if maxHalfW > maxHalfH {
		return 2 * maxHalfW
	}
	return 2 * maxHalfH
}
