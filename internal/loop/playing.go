package loop

import "github.com/tomz197/skyshot/internal/object"

// Tick advances the session by one step and returns the resulting snapshot.
//
// Order: player (moves only through HandleInput), projectiles, enemies,
// projectile-enemy hits, enemy-player hits, snapshot. Once the session is
// over the simulation is frozen and Tick keeps returning the last snapshot.
func (s *Session) Tick() Snapshot {
	if s.state == GameStateOver {
		return s.last.clone()
	}
	if !s.player.Alive() {
		// Lives were taken outside the step; freeze from here on
		s.state = GameStateOver
		s.last = s.snapshot()
		return s.last.clone()
	}

	s.tick++
	if s.cooldown > 0 {
		s.cooldown--
	}

	s.updateProjectiles()
	s.updateEnemies()
	s.updateExplosions()
	s.checkCollisions()

	s.last = s.snapshot()
	return s.last.clone()
}

// updateProjectiles moves every projectile up and drops those past the top edge.
func (s *Session) updateProjectiles() {
	for _, p := range s.projectiles {
		p.MoveUp()
		if p.OutOfBounds() {
			p.MarkDestroyed()
		}
	}
	s.projectiles = object.Compact(s.projectiles)
}

// updateEnemies moves every enemy down and drops those past the bottom edge.
func (s *Session) updateEnemies() {
	for _, e := range s.enemies {
		e.MoveDown()
		if e.OutOfBounds(s.field.Height) {
			e.MarkDestroyed()
			s.stats.EnemiesEscaped++
		}
	}
	s.enemies = object.Compact(s.enemies)
}

// updateExplosions ages the explosion markers.
func (s *Session) updateExplosions() {
	for _, e := range s.explosions {
		e.Update()
	}
	s.explosions = object.Compact(s.explosions)
}

// snapshot copies the current state into a fresh Snapshot.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		Tick:  s.tick,
		Field: s.field,
		Player: PlayerSnapshot{
			X:    s.player.X,
			Y:    s.player.Y,
			Life: s.player.GetLife(),
			Size: s.player.Extents(),
		},
		Projectiles: make([]object.Position, len(s.projectiles)),
		ProjectileSize: object.ExtentsOf(
			s.tuning.Projectile.Width,
			s.tuning.Projectile.Height,
		),
		Enemies:    make([]EnemySnapshot, len(s.enemies)),
		Explosions: make([]ExplosionSnapshot, len(s.explosions)),
		Score:      s.score,
		GameOver:   s.state == GameStateOver,
		Stats:      s.stats,
	}
	for i, p := range s.projectiles {
		snap.Projectiles[i] = p.GetPosition()
	}
	for i, e := range s.enemies {
		snap.Enemies[i] = EnemySnapshot{X: e.X, Y: e.Y, Kind: e.Kind, Size: e.Extents()}
	}
	for i, e := range s.explosions {
		snap.Explosions[i] = ExplosionSnapshot{X: e.X, Y: e.Y, Fade: e.Fade(), Hit: e.Hit}
	}
	return snap
}
