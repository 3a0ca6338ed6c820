package object

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestPlayerMoves(t *testing.T) {
	p := NewPlayer(400, 500)

	p.MoveLeft()
	if got := p.GetPosition(); got.X != 370 || got.Y != 500 {
		t.Fatalf("after MoveLeft position = %+v, want {370 500}", got)
	}

	p.MoveRight(0)
	p.MoveRight(0)
	if p.X != 430 {
		t.Fatalf("unbounded MoveRight x = %f, want 430", p.X)
	}

	p.MoveRight(440)
	if p.X != 440 {
		t.Fatalf("bounded MoveRight x = %f, want clamp at 440", p.X)
	}
}

func TestPlayerMoveLeftIsUnbounded(t *testing.T) {
	p := NewPlayer(10, 500)
	p.MoveLeft()
	if p.X != -20 {
		t.Fatalf("x = %f, want -20", p.X)
	}
}

func TestPlayerDecreaseLifeClampsAtZero(t *testing.T) {
	p := NewPlayer(0, 0)
	for i := 0; i < DefaultPlayerLives; i++ {
		if err := p.DecreaseLife(); err != nil {
			t.Fatalf("DecreaseLife #%d: %v", i+1, err)
		}
	}
	if p.GetLife() != 0 || p.Alive() {
		t.Fatalf("life = %d alive=%v, want 0 and dead", p.GetLife(), p.Alive())
	}

	err := p.DecreaseLife()
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("DecreaseLife at zero err = %v, want ErrInvalidState", err)
	}
	if p.GetLife() != 0 {
		t.Fatalf("life went to %d after guarded decrease", p.GetLife())
	}
}

func TestSetLifeRejectsNegative(t *testing.T) {
	p := NewPlayer(0, 0)
	p.SetLife(-4)
	if p.GetLife() != 0 {
		t.Fatalf("life = %d, want 0", p.GetLife())
	}
}

func TestProjectileMovesUpAndLeavesTop(t *testing.T) {
	p := NewProjectile(400, 475)
	for i := 0; i < 94; i++ {
		p.MoveUp()
	}
	if p.Y != 5 || p.OutOfBounds() {
		t.Fatalf("after 94 moves y = %f out=%v, want 5 and in bounds", p.Y, p.OutOfBounds())
	}
	p.MoveUp()
	if p.Y != 0 || !p.OutOfBounds() {
		t.Fatalf("after 95 moves y = %f out=%v, want 0 and out of bounds", p.Y, p.OutOfBounds())
	}
}

func TestEnemyMovesDown(t *testing.T) {
	e := NewEnemy(100, 0, EnemyRegular)
	for i := 0; i < 50; i++ {
		e.MoveDown()
	}
	if got := e.GetPosition(); got != (Position{X: 100, Y: 100}) {
		t.Fatalf("position after 50 ticks = %+v, want {100 100}", got)
	}
	if e.OutOfBounds(600) {
		t.Fatalf("enemy at y=100 reported out of bounds")
	}
	e.Y = 600
	if !e.OutOfBounds(600) {
		t.Fatalf("enemy at y=height should be out of bounds")
	}
}

func TestEnemyKinds(t *testing.T) {
	for _, name := range []string{"regular", "fast", "strong"} {
		k, err := ParseEnemyKind(name)
		if err != nil {
			t.Fatalf("ParseEnemyKind(%q): %v", name, err)
		}
		if k.String() != name {
			t.Errorf("round trip %q -> %q", name, k.String())
		}
		if k.DefaultSpeed() <= 0 || k.DefaultSize() <= 0 {
			t.Errorf("kind %s has no defaults", name)
		}
	}
	if _, err := ParseEnemyKind("boss"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if NewEnemy(0, 0, EnemyFast).Speed <= NewEnemy(0, 0, EnemyRegular).Speed {
		t.Fatalf("fast enemy should outrun a regular one")
	}
}

func TestCompactKeepsOrder(t *testing.T) {
	es := []*Enemy{NewEnemy(1, 0, EnemyRegular), NewEnemy(2, 0, EnemyRegular), NewEnemy(3, 0, EnemyRegular)}
	es[1].MarkDestroyed()
	backing := es
	es = Compact(es)
	if len(es) != 2 || es[0].X != 1 || es[1].X != 3 {
		t.Fatalf("compacted = %v", es)
	}
	if backing[2] != nil {
		t.Fatalf("stale reference left past the compacted length")
	}
}

func TestSpawnerAdvance(t *testing.T) {
	s := NewEnemySpawner(rand.New(rand.NewSource(1)),
		SpawnRule{Kind: EnemyRegular, Interval: 2 * time.Second},
		SpawnRule{Kind: EnemyFast, Interval: 3 * time.Second},
		SpawnRule{Kind: EnemyStrong, Interval: 0}, // dropped
	)
	if n := len(s.Rules()); n != 2 {
		t.Fatalf("rules = %d, want 2", n)
	}

	if due := s.Advance(1999 * time.Millisecond); len(due) != 0 {
		t.Fatalf("nothing should be due before 2s, got %v", due)
	}
	due := s.Advance(time.Millisecond)
	if len(due) != 1 || due[0] != EnemyRegular {
		t.Fatalf("at 2s due = %v, want [regular]", due)
	}
	due = s.Advance(4 * time.Second) // clock at 6s
	if len(due) != 4 {
		t.Fatalf("at 6s due = %v, want 2 regular + 2 fast", due)
	}
	if s.Advance(0) != nil {
		t.Fatalf("zero advance should not spawn")
	}
}

func TestSpawnerRandomXWithinWidth(t *testing.T) {
	s := NewDefaultEnemySpawner(rand.New(rand.NewSource(42)))
	for i := 0; i < 1000; i++ {
		x := s.RandomX(800)
		if x < 0 || x >= 800 {
			t.Fatalf("x = %f outside [0, 800)", x)
		}
	}
	if s.RandomX(-5) != 0 {
		t.Fatalf("non-positive width should yield 0")
	}
}

func TestExplosionBurnsOut(t *testing.T) {
	e := NewExplosion(1, 2, false)
	for i := 0; i < ExplosionTicks-1; i++ {
		if e.Update() {
			t.Fatalf("explosion removed early at tick %d", i+1)
		}
	}
	if !e.Update() || !e.IsDestroyed() {
		t.Fatalf("explosion should burn out after %d ticks", ExplosionTicks)
	}
}
