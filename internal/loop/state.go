// Package loop runs one play session: entity updates, collisions, score and lives.
package loop

import (
	"slices"

	"github.com/tomz197/skyshot/internal/loop/config"
	"github.com/tomz197/skyshot/internal/object"
)

// Error taxonomy of the simulation core.
var (
	// ErrInvalidState is returned for operations attempted after Game-Over.
	ErrInvalidState = object.ErrInvalidState
	// ErrConfiguration is returned for coordinates or tuning that cannot be clamped.
	ErrConfiguration = config.ErrConfiguration
)

// GameState represents the phase of a session.
type GameState int

const (
	GameStatePlaying GameState = iota // Active gameplay
	GameStateOver                     // Terminal: player has no lives left
)

func (g GameState) String() string {
	if g == GameStateOver {
		return "game over"
	}
	return "playing"
}

// Stats counts what happened during a session.
type Stats struct {
	ShotsFired       int `json:"shotsFired"`
	EnemiesSpawned   int `json:"enemiesSpawned"`
	EnemiesDestroyed int `json:"enemiesDestroyed"`
	EnemiesEscaped   int `json:"enemiesEscaped"`
	HitsTaken        int `json:"hitsTaken"`
}

// PlayerSnapshot is the player part of a Snapshot.
type PlayerSnapshot struct {
	X    float64        `json:"x"`
	Y    float64        `json:"y"`
	Life int            `json:"life"`
	Size object.Extents `json:"size"`
}

// EnemySnapshot is one enemy in a Snapshot.
type EnemySnapshot struct {
	X    float64          `json:"x"`
	Y    float64          `json:"y"`
	Kind object.EnemyKind `json:"kind"`
	Size object.Extents   `json:"size"`
}

// ExplosionSnapshot is one explosion marker in a Snapshot.
type ExplosionSnapshot struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Fade float64 `json:"fade"`
	Hit  bool    `json:"hit"`
}

// Snapshot is the read-only state handed to a renderer after each tick.
// It shares no memory with the session.
type Snapshot struct {
	Tick           uint64              `json:"tick"`
	Field          object.Playfield    `json:"field"`
	Player         PlayerSnapshot      `json:"player"`
	Projectiles    []object.Position   `json:"projectiles"`
	ProjectileSize object.Extents      `json:"projectileSize"`
	Enemies        []EnemySnapshot     `json:"enemies"`
	Explosions     []ExplosionSnapshot `json:"explosions"`
	Score          int                 `json:"score"`
	GameOver       bool                `json:"gameOver"`
	Stats          Stats               `json:"stats"`
}

// clone returns a copy of s with its own slices.
func (s Snapshot) clone() Snapshot {
	s.Projectiles = slices.Clone(s.Projectiles)
	s.Enemies = slices.Clone(s.Enemies)
	s.Explosions = slices.Clone(s.Explosions)
	return s
}
