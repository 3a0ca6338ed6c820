package object

// ExplosionTicks is how long an explosion marker stays on the playfield.
const ExplosionTicks = 20

// Explosion is a short-lived visual marker left where an enemy was destroyed.
// It never takes part in collisions.
type Explosion struct {
	X, Y     float64 // Position
	Lifetime int     // Ticks remaining
	MaxLife  int     // Initial lifetime (for fade calculation)
	Hit      bool    // True when the enemy struck the player
}

// NewExplosion creates an explosion marker at (x, y).
func NewExplosion(x, y float64, hit bool) *Explosion {
	return &Explosion{
		X:        x,
		Y:        y,
		Lifetime: ExplosionTicks,
		MaxLife:  ExplosionTicks,
		Hit:      hit,
	}
}

// Update ages the explosion. Returns true once it should be removed.
func (e *Explosion) Update() bool {
	e.Lifetime--
	return e.Lifetime <= 0
}

// Fade returns the remaining fraction of the lifetime in (0, 1].
func (e *Explosion) Fade() float64 {
	if e.MaxLife <= 0 {
		return 0
	}
	return float64(e.Lifetime) / float64(e.MaxLife)
}

// IsDestroyed reports whether the explosion has burnt out.
func (e *Explosion) IsDestroyed() bool {
	return e.Lifetime <= 0
}

// MarkDestroyed ends the explosion immediately.
func (e *Explosion) MarkDestroyed() {
	e.Lifetime = 0
}
