package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tomz197/skyshot/internal/object"
	"github.com/tomz197/skyshot/internal/physics"
)

// ErrConfiguration marks a tuning value that was out of range.
var ErrConfiguration = errors.New("configuration error")

// Tuning is the full set of gameplay parameters, loadable from a TOML file.
type Tuning struct {
	TickRate   int              `toml:"tick_rate"`
	Playfield  PlayfieldTuning  `toml:"playfield"`
	Player     PlayerTuning     `toml:"player"`
	Projectile ProjectileTuning `toml:"projectile"`
	Enemy      EnemiesTuning    `toml:"enemy"`
	Collision  CollisionTuning  `toml:"collision"`
	Score      ScoreTuning      `toml:"score"`
}

type PlayfieldTuning struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type PlayerTuning struct {
	StartX            float64 `toml:"start_x"`
	StartY            float64 `toml:"start_y"`
	Lives             int     `toml:"lives"`
	Step              float64 `toml:"step"`
	Width             float64 `toml:"width"`
	Height            float64 `toml:"height"`
	MuzzleOffset      float64 `toml:"muzzle_offset"`
	FireCooldownTicks int     `toml:"fire_cooldown_ticks"`
}

type ProjectileTuning struct {
	Speed  float64 `toml:"speed"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// EnemyTuning describes one enemy kind. A zero spawn interval keeps the kind
// out of the automatic schedule.
type EnemyTuning struct {
	Speed           float64 `toml:"speed"`
	Size            float64 `toml:"size"`
	SpawnIntervalMS int     `toml:"spawn_interval_ms"`
}

type EnemiesTuning struct {
	Regular EnemyTuning `toml:"regular"`
	Fast    EnemyTuning `toml:"fast"`
	Strong  EnemyTuning `toml:"strong"`
}

type CollisionTuning struct {
	Mode      string  `toml:"mode"` // "aabb" or "radius"
	Threshold float64 `toml:"threshold"`
}

type ScoreTuning struct {
	Reward int `toml:"reward"`
}

// Default returns the built-in tuning.
func Default() Tuning {
	return Tuning{
		TickRate:  ServerTickRate,
		Playfield: PlayfieldTuning{Width: PlayfieldWidth, Height: PlayfieldHeight},
		Player: PlayerTuning{
			StartX:       PlayerStartX,
			StartY:       PlayerStartY,
			Lives:        InitialLives,
			Step:         PlayerStep,
			Width:        PlayerWidth,
			Height:       PlayerHeight,
			MuzzleOffset: PlayerMuzzleOffset,
		},
		Projectile: ProjectileTuning{
			Speed:  ProjectileSpeed,
			Width:  ProjectileWidth,
			Height: ProjectileHeight,
		},
		Enemy: EnemiesTuning{
			Regular: EnemyTuning{
				Speed:           object.EnemyRegular.DefaultSpeed(),
				Size:            object.EnemyRegular.DefaultSize(),
				SpawnIntervalMS: int(RegularSpawnInterval / time.Millisecond),
			},
			Fast: EnemyTuning{
				Speed: object.EnemyFast.DefaultSpeed(),
				Size:  object.EnemyFast.DefaultSize(),
			},
			Strong: EnemyTuning{
				Speed: object.EnemyStrong.DefaultSpeed(),
				Size:  object.EnemyStrong.DefaultSize(),
			},
		},
		Collision: CollisionTuning{Mode: CollisionMode, Threshold: CollisionThreshold},
		Score:     ScoreTuning{Reward: ScorePerEnemy},
	}
}

// Load decodes the TOML file at path on top of the defaults. Keys the file
// sets that Tuning does not know about are an error.
func Load(path string) (Tuning, error) {
	t := Default()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Default(), fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Default(), fmt.Errorf("decode tuning %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return t, nil
}

// Validate clamps every out-of-range value into range. The returned error
// lists what was changed (each entry wraps ErrConfiguration); the tuning is
// usable either way.
func (t *Tuning) Validate() error {
	var errs []error
	note := func(field string, from, to any) {
		errs = append(errs, fmt.Errorf("%s: %v out of range, using %v: %w", field, from, to, ErrConfiguration))
	}
	positive := func(field string, v *float64, fallback float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			note(field, *v, fallback)
			*v = fallback
		}
	}

	if t.TickRate <= 0 {
		note("tick_rate", t.TickRate, ServerTickRate)
		t.TickRate = ServerTickRate
	}

	positive("playfield.width", &t.Playfield.Width, PlayfieldWidth)
	positive("playfield.height", &t.Playfield.Height, PlayfieldHeight)

	if x := clamp(t.Player.StartX, 0, t.Playfield.Width); x != t.Player.StartX {
		note("player.start_x", t.Player.StartX, x)
		t.Player.StartX = x
	}
	if y := clamp(t.Player.StartY, 0, t.Playfield.Height); y != t.Player.StartY {
		note("player.start_y", t.Player.StartY, y)
		t.Player.StartY = y
	}
	if t.Player.Lives <= 0 {
		note("player.lives", t.Player.Lives, InitialLives)
		t.Player.Lives = InitialLives
	}
	positive("player.step", &t.Player.Step, PlayerStep)
	positive("player.width", &t.Player.Width, PlayerWidth)
	positive("player.height", &t.Player.Height, PlayerHeight)
	if t.Player.MuzzleOffset < 0 {
		note("player.muzzle_offset", t.Player.MuzzleOffset, 0)
		t.Player.MuzzleOffset = 0
	}
	if t.Player.FireCooldownTicks < 0 {
		note("player.fire_cooldown_ticks", t.Player.FireCooldownTicks, 0)
		t.Player.FireCooldownTicks = 0
	}

	positive("projectile.speed", &t.Projectile.Speed, ProjectileSpeed)
	positive("projectile.width", &t.Projectile.Width, ProjectileWidth)
	positive("projectile.height", &t.Projectile.Height, ProjectileHeight)

	for _, e := range []struct {
		name string
		kind object.EnemyKind
		cfg  *EnemyTuning
	}{
		{"regular", object.EnemyRegular, &t.Enemy.Regular},
		{"fast", object.EnemyFast, &t.Enemy.Fast},
		{"strong", object.EnemyStrong, &t.Enemy.Strong},
	} {
		positive("enemy."+e.name+".speed", &e.cfg.Speed, e.kind.DefaultSpeed())
		positive("enemy."+e.name+".size", &e.cfg.Size, e.kind.DefaultSize())
		if e.cfg.SpawnIntervalMS < 0 {
			note("enemy."+e.name+".spawn_interval_ms", e.cfg.SpawnIntervalMS, 0)
			e.cfg.SpawnIntervalMS = 0
		}
	}

	if _, err := physics.ParseCollisionMode(t.Collision.Mode); err != nil {
		note("collision.mode", t.Collision.Mode, CollisionMode)
		t.Collision.Mode = CollisionMode
	}
	positive("collision.threshold", &t.Collision.Threshold, CollisionThreshold)

	if t.Score.Reward <= 0 {
		note("score.reward", t.Score.Reward, ScorePerEnemy)
		t.Score.Reward = ScorePerEnemy
	}

	return errors.Join(errs...)
}

// TickDuration returns the wall-clock length of one tick.
func (t Tuning) TickDuration() time.Duration {
	if t.TickRate <= 0 {
		return ServerTickTime
	}
	return time.Second / time.Duration(t.TickRate)
}

// Collider returns the collision policy described by the tuning.
func (t Tuning) Collider() physics.Collider {
	mode, err := physics.ParseCollisionMode(t.Collision.Mode)
	if err != nil {
		mode = physics.ModeAABB
	}
	return physics.Collider{Mode: mode, Threshold: t.Collision.Threshold}
}

// EnemyFor returns the tuning of one enemy kind.
func (t Tuning) EnemyFor(kind object.EnemyKind) EnemyTuning {
	switch kind {
	case object.EnemyFast:
		return t.Enemy.Fast
	case object.EnemyStrong:
		return t.Enemy.Strong
	default:
		return t.Enemy.Regular
	}
}

// SpawnRules returns the automatic spawn schedule.
func (t Tuning) SpawnRules() []object.SpawnRule {
	var rules []object.SpawnRule
	for _, kind := range []object.EnemyKind{object.EnemyRegular, object.EnemyFast, object.EnemyStrong} {
		ms := t.EnemyFor(kind).SpawnIntervalMS
		if ms > 0 {
			rules = append(rules, object.SpawnRule{Kind: kind, Interval: time.Duration(ms) * time.Millisecond})
		}
	}
	return rules
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
