package object

import "fmt"

// Player defaults.
const (
	DefaultPlayerLives  = 3
	DefaultPlayerStep   = 30.0
	DefaultPlayerWidth  = 60.0
	DefaultPlayerHeight = 60.0
)

// Player is the ship at the bottom of the playfield.
type Player struct {
	X, Y   float64 // Position (center of sprite)
	Step   float64 // Distance covered by one move command
	Width  float64 // Sprite width
	Height float64 // Sprite height
	life   int
}

// NewPlayer creates a player at the given position with default lives and size.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Step:   DefaultPlayerStep,
		Width:  DefaultPlayerWidth,
		Height: DefaultPlayerHeight,
		life:   DefaultPlayerLives,
	}
}

// SetLife sets the starting life count. Negative values are treated as zero.
func (p *Player) SetLife(life int) {
	if life < 0 {
		life = 0
	}
	p.life = life
}

// MoveLeft moves the player one step to the left. No bound is applied here;
// callers that own the playfield clamp afterwards.
func (p *Player) MoveLeft() {
	p.X -= p.Step
}

// MoveRight moves the player one step to the right. A positive bound caps x.
func (p *Player) MoveRight(bound float64) {
	p.X += p.Step
	if bound > 0 && p.X > bound {
		p.X = bound
	}
}

// DecreaseLife removes one life. At zero life it leaves the count untouched
// and returns ErrInvalidState.
func (p *Player) DecreaseLife() error {
	if p.life <= 0 {
		return fmt.Errorf("decrease life: player has no lives left: %w", ErrInvalidState)
	}
	p.life--
	return nil
}

// GetLife returns the remaining life count.
func (p *Player) GetLife() int {
	return p.life
}

// Alive reports whether the player has any lives left.
func (p *Player) Alive() bool {
	return p.life > 0
}

// GetPosition returns the player's center position.
func (p *Player) GetPosition() Position {
	return Position{X: p.X, Y: p.Y}
}

// Extents returns the sprite half extents.
func (p *Player) Extents() Extents {
	return ExtentsOf(p.Width, p.Height)
}
