package object

import (
	"math/rand"
	"time"
)

// DefaultSpawnInterval is how often a regular enemy appears.
const DefaultSpawnInterval = 2 * time.Second

// SpawnRule schedules one enemy kind at a fixed interval.
type SpawnRule struct {
	Kind     EnemyKind
	Interval time.Duration
	elapsed  time.Duration // Time since the last spawn of this kind
}

// EnemySpawner decides when enemies appear and where along the top edge.
type EnemySpawner struct {
	rules []SpawnRule
	rng   *rand.Rand
}

// NewEnemySpawner creates a spawner from the given rules. Rules with a
// non-positive interval are dropped. A nil rng uses a time-seeded source.
func NewEnemySpawner(rng *rand.Rand, rules ...SpawnRule) *EnemySpawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	kept := make([]SpawnRule, 0, len(rules))
	for _, r := range rules {
		if r.Interval > 0 {
			r.elapsed = 0
			kept = append(kept, r)
		}
	}
	return &EnemySpawner{rules: kept, rng: rng}
}

// NewDefaultEnemySpawner spawns one regular enemy every DefaultSpawnInterval.
func NewDefaultEnemySpawner(rng *rand.Rand) *EnemySpawner {
	return NewEnemySpawner(rng, SpawnRule{Kind: EnemyRegular, Interval: DefaultSpawnInterval})
}

// Advance moves the spawner clock forward by dt and returns the kinds that
// are due, in rule order. A long dt can make one rule fire several times.
func (s *EnemySpawner) Advance(dt time.Duration) []EnemyKind {
	if dt <= 0 {
		return nil
	}
	var due []EnemyKind
	for i := range s.rules {
		r := &s.rules[i]
		r.elapsed += dt
		for r.elapsed >= r.Interval {
			r.elapsed -= r.Interval
			due = append(due, r.Kind)
		}
	}
	return due
}

// RandomX returns a uniformly random x within [0, width).
func (s *EnemySpawner) RandomX(width float64) float64 {
	if width <= 0 {
		return 0
	}
	return s.rng.Float64() * width
}

// Rules returns a copy of the spawner's schedule.
func (s *EnemySpawner) Rules() []SpawnRule {
	out := make([]SpawnRule, len(s.rules))
	copy(out, s.rules)
	return out
}
