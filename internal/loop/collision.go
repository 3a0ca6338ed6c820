package loop

import "github.com/tomz197/skyshot/internal/object"

// checkCollisions resolves projectile-enemy hits, then enemy-player hits.
func (s *Session) checkCollisions() {
	s.checkProjectileEnemyCollisions()
	s.checkEnemyPlayerCollisions()
}

// checkProjectileEnemyCollisions pairs each projectile, in firing order, with
// the lowest-index live enemy it touches. Both are removed and the reward is
// added once per pair, so no entity takes part in more than one hit per tick.
func (s *Session) checkProjectileEnemyCollisions() {
	if len(s.projectiles) == 0 || len(s.enemies) == 0 {
		return
	}

	s.grid.Clear()
	for i, e := range s.enemies {
		s.grid.Insert(e.X, e.Y, i)
	}

	for _, p := range s.projectiles {
		if p.IsDestroyed() {
			continue
		}
		box := object.Box(p)
		match := -1
		s.grid.QueryAround(p.X, p.Y, func(j int) bool {
			if match >= 0 && j > match {
				return false
			}
			e := s.enemies[j]
			if e.IsDestroyed() {
				return false
			}
			if s.collider.Collides(box, object.Box(e)) {
				match = j
			}
			return false
		})
		if match < 0 {
			continue
		}

		e := s.enemies[match]
		p.MarkDestroyed()
		e.MarkDestroyed()
		s.score += s.tuning.Score.Reward
		s.stats.EnemiesDestroyed++
		s.explosions = append(s.explosions, object.NewExplosion(e.X, e.Y, false))
	}

	s.projectiles = object.Compact(s.projectiles)
	s.enemies = object.Compact(s.enemies)
}

// checkEnemyPlayerCollisions removes every enemy touching the player and
// takes one life for each. Stops as soon as the last life is gone.
func (s *Session) checkEnemyPlayerCollisions() {
	playerBox := object.Box(s.player)

	for _, e := range s.enemies {
		if e.IsDestroyed() || !s.collider.Collides(object.Box(e), playerBox) {
			continue
		}

		e.MarkDestroyed()
		s.explosions = append(s.explosions, object.NewExplosion(e.X, e.Y, true))
		s.stats.HitsTaken++
		if err := s.player.DecreaseLife(); err != nil || !s.player.Alive() {
			s.state = GameStateOver
			break
		}
	}

	s.enemies = object.Compact(s.enemies)
}
