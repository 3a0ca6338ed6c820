package object

import (
	"fmt"
	"strings"
)

// EnemyKind represents the variety of an enemy.
type EnemyKind int

const (
	EnemyRegular EnemyKind = iota
	EnemyFast
	EnemyStrong
)

// Per-kind movement and sprite properties.
var enemySpeeds = map[EnemyKind]float64{
	EnemyRegular: 2.0,
	EnemyFast:    4.0,
	EnemyStrong:  1.0,
}

var enemySizes = map[EnemyKind]float64{
	EnemyRegular: 72.0,
	EnemyFast:    56.0,
	EnemyStrong:  96.0,
}

// String returns the lowercase kind name.
func (k EnemyKind) String() string {
	switch k {
	case EnemyRegular:
		return "regular"
	case EnemyFast:
		return "fast"
	case EnemyStrong:
		return "strong"
	default:
		return fmt.Sprintf("EnemyKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k EnemyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EnemyKind) UnmarshalText(b []byte) error {
	kind, err := ParseEnemyKind(string(b))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseEnemyKind converts a name like "fast" into an EnemyKind.
func ParseEnemyKind(s string) (EnemyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "":
		return EnemyRegular, nil
	case "fast":
		return EnemyFast, nil
	case "strong":
		return EnemyStrong, nil
	default:
		return EnemyRegular, fmt.Errorf("unknown enemy kind %q", s)
	}
}

// DefaultSpeed returns the built-in downward speed of the kind.
func (k EnemyKind) DefaultSpeed() float64 {
	return enemySpeeds[k]
}

// DefaultSize returns the built-in sprite edge length of the kind.
func (k EnemyKind) DefaultSize() float64 {
	return enemySizes[k]
}

// Enemy descends from the top of the playfield.
type Enemy struct {
	X, Y          float64   // Position (center)
	Speed         float64   // Downward distance per tick
	Width, Height float64   // Sprite size
	Kind          EnemyKind // Variety
	destroyed     bool      // Mark for removal
}

// NewEnemy creates an enemy of the given kind at (x, y) with that kind's defaults.
func NewEnemy(x, y float64, kind EnemyKind) *Enemy {
	size := kind.DefaultSize()
	return &Enemy{
		X:      x,
		Y:      y,
		Speed:  kind.DefaultSpeed(),
		Width:  size,
		Height: size,
		Kind:   kind,
	}
}

// MoveDown advances the enemy by one tick.
func (e *Enemy) MoveDown() {
	e.Y += e.Speed
}

// OutOfBounds reports whether the enemy has reached the bottom of a playfield
// of the given height.
func (e *Enemy) OutOfBounds(height float64) bool {
	return e.Y >= height
}

// MarkDestroyed marks the enemy for removal (implements Destructible).
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction (implements Destructible).
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// GetPosition returns the enemy's center position.
func (e *Enemy) GetPosition() Position {
	return Position{X: e.X, Y: e.Y}
}

// Extents returns the sprite half extents.
func (e *Enemy) Extents() Extents {
	return ExtentsOf(e.Width, e.Height)
}
