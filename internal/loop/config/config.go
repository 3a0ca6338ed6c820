// Package config centralizes all tunable game parameters.
package config

import (
	"time"

	"github.com/tomz197/skyshot/internal/object"
)

// Playfield - the logical simulation area. Shells scale it to their output.
const (
	PlayfieldWidth  = 800
	PlayfieldHeight = 600
)

// Player
const (
	PlayerStartX       = 400
	PlayerStartY       = 500
	InitialLives       = object.DefaultPlayerLives
	PlayerStep         = object.DefaultPlayerStep
	PlayerWidth        = object.DefaultPlayerWidth
	PlayerHeight       = object.DefaultPlayerHeight
	PlayerMuzzleOffset = 25.0 // Projectiles leave this far above the player's center
)

// Projectile
const (
	ProjectileSpeed  = object.ProjectileSpeed
	ProjectileWidth  = object.ProjectileWidth
	ProjectileHeight = object.ProjectileHeight
)

// Scoring
const (
	ScorePerEnemy = 10
)

// Collision
const (
	CollisionMode      = "aabb"
	CollisionThreshold = 150.0 // Center distance used in radius mode
)

// Spawning
const (
	RegularSpawnInterval = 2000 * time.Millisecond
)

// Leaderboard
const (
	TopScoresCount = 5
)

// Game over
const (
	RestartDelaySeconds = 1.5 // Input is ignored this long after Game-Over
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Terminal rendering
const (
	MaxTermWidth  = 160 // Columns beyond this are left empty around a border
	MaxTermHeight = 60
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)
