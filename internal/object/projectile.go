package object

// ProjectileSpeed is the distance a projectile travels upwards per tick.
const ProjectileSpeed = 5.0

// Projectile sprite size.
const (
	ProjectileWidth  = 10.0
	ProjectileHeight = 20.0
)

// Projectile is a bullet fired by the player.
type Projectile struct {
	X, Y          float64 // Position
	Speed         float64 // Upward distance per tick
	Width, Height float64
	destroyed     bool // Marked for destruction
}

// NewProjectile creates a projectile at position (x,y).
func NewProjectile(x, y float64) *Projectile {
	return &Projectile{
		X:      x,
		Y:      y,
		Speed:  ProjectileSpeed,
		Width:  ProjectileWidth,
		Height: ProjectileHeight,
	}
}

// MoveUp advances the projectile by one tick.
func (p *Projectile) MoveUp() {
	p.Y -= p.Speed
}

// OutOfBounds reports whether the projectile has left the top of the playfield.
func (p *Projectile) OutOfBounds() bool {
	return p.Y <= 0
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// GetPosition returns the projectile's position.
func (p *Projectile) GetPosition() Position {
	return Position{X: p.X, Y: p.Y}
}

// Extents returns the sprite half extents.
func (p *Projectile) Extents() Extents {
	return ExtentsOf(p.Width, p.Height)
}
