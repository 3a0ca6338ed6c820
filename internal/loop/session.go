package loop

import (
	"fmt"
	"math"

	"github.com/tomz197/skyshot/internal/input"
	"github.com/tomz197/skyshot/internal/loop/config"
	"github.com/tomz197/skyshot/internal/object"
	"github.com/tomz197/skyshot/internal/physics"
)

// Session holds all state of one play-through, from NewSession to Game-Over.
// A Session is not safe for concurrent use; callers serialize input, spawns
// and ticks onto one goroutine.
type Session struct {
	tuning   config.Tuning
	field    object.Playfield
	collider physics.Collider
	grid     *physics.SpatialGrid // Broad phase for projectile-enemy pairs

	player      *object.Player
	projectiles []*object.Projectile
	enemies     []*object.Enemy
	explosions  []*object.Explosion

	score    int
	tick     uint64
	state    GameState
	cooldown int // Ticks until the next shot is allowed
	stats    Stats
	last     Snapshot
}

// NewSession starts a session with the player at (x, y). Out-of-range tuning
// is clamped (see config.Tuning.Validate) and the position is clamped into
// the playfield. Non-finite coordinates fail with ErrConfiguration.
func NewSession(tuning config.Tuning, x, y float64) (*Session, error) {
	if !finite(x) || !finite(y) {
		return nil, fmt.Errorf("new session: player position (%v, %v): %w", x, y, ErrConfiguration)
	}
	_ = tuning.Validate() // clamps in place; callers log the report when they load the file

	field := object.Playfield{Width: tuning.Playfield.Width, Height: tuning.Playfield.Height}
	collider := tuning.Collider()

	player := object.NewPlayer(field.ClampX(x), math.Max(0, math.Min(field.Height, y)))
	player.Step = tuning.Player.Step
	player.Width = tuning.Player.Width
	player.Height = tuning.Player.Height
	player.SetLife(tuning.Player.Lives)

	s := &Session{
		tuning:   tuning,
		field:    field,
		collider: collider,
		grid:     physics.NewSpatialGrid(field.Width, field.Height, collider.Reach(maxHalfExtents(tuning))),
		player:   player,
		state:    GameStatePlaying,
	}
	s.last = s.snapshot()
	return s, nil
}

// NewDefaultSession starts a session with the built-in tuning and the
// player at its default start position.
func NewDefaultSession() *Session {
	t := config.Default()
	s, _ := NewSession(t, t.Player.StartX, t.Player.StartY)
	return s
}

// HandleInput applies one gameplay command immediately.
// After Game-Over every command fails with ErrInvalidState and changes nothing.
func (s *Session) HandleInput(cmd input.Command) error {
	if s.state == GameStateOver {
		return fmt.Errorf("handle input %v: %w", cmd, ErrInvalidState)
	}

	switch cmd {
	case input.CommandMoveLeft:
		s.player.MoveLeft()
		s.player.X = s.field.ClampX(s.player.X)
	case input.CommandMoveRight:
		s.player.MoveRight(s.field.Width)
	case input.CommandFire:
		s.fire()
	default:
		return fmt.Errorf("handle input: %v is not a gameplay command", cmd)
	}
	return nil
}

// fire launches a projectile from just above the player unless the gun is
// still cooling down.
func (s *Session) fire() {
	if s.cooldown > 0 {
		return
	}
	p := object.NewProjectile(s.player.X, s.player.Y-s.tuning.Player.MuzzleOffset)
	p.Speed = s.tuning.Projectile.Speed
	p.Width = s.tuning.Projectile.Width
	p.Height = s.tuning.Projectile.Height
	s.projectiles = append(s.projectiles, p)
	s.cooldown = s.tuning.Player.FireCooldownTicks
	s.stats.ShotsFired++
}

// SpawnEnemy adds a regular enemy at (x, 0).
func (s *Session) SpawnEnemy(x float64) error {
	return s.SpawnEnemyKind(object.EnemyRegular, x)
}

// SpawnEnemyKind adds an enemy of the given kind at (x, 0). x is clamped into
// the playfield; a non-finite x fails with ErrConfiguration.
func (s *Session) SpawnEnemyKind(kind object.EnemyKind, x float64) error {
	if s.state == GameStateOver {
		return fmt.Errorf("spawn %v enemy: %w", kind, ErrInvalidState)
	}
	if !finite(x) {
		return fmt.Errorf("spawn %v enemy at x=%v: %w", kind, x, ErrConfiguration)
	}

	cfg := s.tuning.EnemyFor(kind)
	e := object.NewEnemy(s.field.ClampX(x), 0, kind)
	e.Speed = cfg.Speed
	e.Width = cfg.Size
	e.Height = cfg.Size
	s.enemies = append(s.enemies, e)
	s.stats.EnemiesSpawned++
	return nil
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// State returns the current game phase.
func (s *Session) State() GameState {
	return s.state
}

// GameOver reports whether the session has ended.
func (s *Session) GameOver() bool {
	return s.state == GameStateOver
}

// Player returns the session's player.
func (s *Session) Player() *object.Player {
	return s.player
}

// Field returns the playfield dimensions.
func (s *Session) Field() object.Playfield {
	return s.field
}

// Tuning returns the (clamped) tuning the session runs with.
func (s *Session) Tuning() config.Tuning {
	return s.tuning
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// LastSnapshot returns the snapshot produced by the most recent tick.
func (s *Session) LastSnapshot() Snapshot {
	return s.last.clone()
}

// maxHalfExtents returns the largest half width and half height of any body
// the tuning can produce.
func maxHalfExtents(t config.Tuning) (float64, float64) {
	w := math.Max(t.Player.Width, t.Projectile.Width)
	h := math.Max(t.Player.Height, t.Projectile.Height)
	for _, e := range []config.EnemyTuning{t.Enemy.Regular, t.Enemy.Fast, t.Enemy.Strong} {
		w = math.Max(w, e.Size)
		h = math.Max(h, e.Size)
	}
	return w / 2, h / 2
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
