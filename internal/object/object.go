// Package object defines the entities that live on the playfield.
package object

import (
	"errors"

	"github.com/tomz197/skyshot/internal/physics"
)

// ErrInvalidState is returned when an entity is asked to do something its
// current state forbids, such as losing a life it does not have.
var ErrInvalidState = errors.New("invalid state")

// Position is a point on the playfield. Y grows downwards.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Extents holds half of a sprite's width and height.
type Extents struct {
	HalfW float64 `json:"halfW"`
	HalfH float64 `json:"halfH"`
}

// ExtentsOf returns the half extents of a width x height sprite.
func ExtentsOf(width, height float64) Extents {
	return Extents{HalfW: width / 2, HalfH: height / 2}
}

// Playfield represents the simulation area dimensions.
type Playfield struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ClampX clamps x into [0, Width].
func (p Playfield) ClampX(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > p.Width {
		return p.Width
	}
	return x
}

// Body is implemented by every entity that takes part in collisions.
type Body interface {
	GetPosition() Position
	Extents() Extents
}

// Box returns the collision box of a body.
func Box(b Body) physics.Rect {
	pos := b.GetPosition()
	ext := b.Extents()
	return physics.Rect{CX: pos.X, CY: pos.Y, HalfW: ext.HalfW, HalfH: ext.HalfH}
}

// Destructible is implemented by objects that can be marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the current tick.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Compact removes destroyed objects in place, preserving order.
// The returned slice shares the backing array with objs.
func Compact[T Destructible](objs []T) []T {
	kept := objs[:0]
	for _, obj := range objs {
		if !obj.IsDestroyed() {
			kept = append(kept, obj)
		}
	}
	// Drop references held past the new length
	var zero T
	for i := len(kept); i < len(objs); i++ {
		objs[i] = zero
	}
	return kept
}
