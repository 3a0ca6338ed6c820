package window

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/skyshot/internal/input"
	"github.com/tomz197/skyshot/internal/loop/config"
)

// fakeKeys is a scripted keyboard. just is cleared after every frame.
type fakeKeys struct {
	held map[ebiten.Key]bool
	just map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{held: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
}

func (f *fakeKeys) Pressed(k ebiten.Key) bool     { return f.held[k] }
func (f *fakeKeys) JustPressed(k ebiten.Key) bool { return f.just[k] }

func (f *fakeKeys) tap(k ebiten.Key) { f.just[k] = true }

func newTestGame(t *testing.T, tune func(*config.Tuning)) (*Game, *fakeKeys) {
	t.Helper()
	tuning := config.Default()
	// No automatic spawning
	tuning.Enemy.Regular.SpawnIntervalMS = 0
	tuning.Enemy.Fast.SpawnIntervalMS = 0
	tuning.Enemy.Strong.SpawnIntervalMS = 0
	if tune != nil {
		tune(&tuning)
	}
	g := NewGame(tuning, log.New(io.Discard))
	keys := newFakeKeys()
	g.keys = keys
	return g, keys
}

// frame runs one Update and releases tapped keys.
func frame(t *testing.T, g *Game, keys *fakeKeys) {
	t.Helper()
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	clear(keys.just)
}

func TestEnterStartsSession(t *testing.T) {
	g, keys := newTestGame(t, nil)
	frame(t, g, keys)
	if g.Screen() != ScreenTitle {
		t.Fatalf("screen = %v, want title", g.Screen())
	}

	keys.tap(ebiten.KeyEnter)
	frame(t, g, keys)
	if g.Screen() != ScreenPlaying || g.session == nil {
		t.Fatalf("screen = %v, want playing", g.Screen())
	}
	if g.Snapshot().Player.Life != config.InitialLives {
		t.Fatalf("life = %d", g.Snapshot().Player.Life)
	}
}

func TestHeldArrowRepeats(t *testing.T) {
	g, keys := newTestGame(t, nil)
	keys.held[ebiten.KeyArrowRight] = true

	var moves int
	for i := 0; i < moveRepeatTicks*2; i++ {
		for _, cmd := range g.commands() {
			if cmd == input.CommandMoveRight {
				moves++
			}
		}
	}
	if moves != 2 {
		t.Fatalf("moves = %d, want 2", moves)
	}

	// Both directions cancel out and reset the repeat
	keys.held[ebiten.KeyA] = true
	if cmds := g.commands(); len(cmds) != 0 {
		t.Fatalf("commands = %v", cmds)
	}
	if g.heldTicks != 0 {
		t.Fatalf("heldTicks = %d", g.heldTicks)
	}
}

func TestSpaceFires(t *testing.T) {
	g, keys := newTestGame(t, nil)
	keys.tap(ebiten.KeyEnter)
	frame(t, g, keys)

	keys.tap(ebiten.KeySpace)
	frame(t, g, keys)
	snap := g.Snapshot()
	if len(snap.Projectiles) != 1 || snap.Stats.ShotsFired != 1 {
		t.Fatalf("projectiles = %d shots = %d", len(snap.Projectiles), snap.Stats.ShotsFired)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g, keys := newTestGame(t, nil)
	keys.tap(ebiten.KeyEnter)
	frame(t, g, keys)

	g.session.Player().SetLife(0)
	frame(t, g, keys)
	if g.Screen() != ScreenOver {
		t.Fatalf("screen = %v, want over", g.Screen())
	}

	// Enter is ignored until the restart delay passes
	keys.tap(ebiten.KeyEnter)
	frame(t, g, keys)
	if g.Screen() != ScreenOver {
		t.Fatalf("restarted during the delay")
	}

	delay := int(config.RestartDelaySeconds * float64(config.ServerTickRate))
	for i := 0; i < delay; i++ {
		frame(t, g, keys)
	}
	keys.tap(ebiten.KeyEnter)
	frame(t, g, keys)
	if g.Screen() != ScreenPlaying || g.Snapshot().GameOver {
		t.Fatalf("restart failed: screen = %v", g.Screen())
	}
}

func TestF1TogglesHitboxesAndEscapeQuits(t *testing.T) {
	g, keys := newTestGame(t, nil)
	keys.tap(ebiten.KeyF1)
	frame(t, g, keys)
	if !g.showHitboxes {
		t.Fatalf("F1 should enable hitboxes")
	}

	keys.tap(ebiten.KeyEscape)
	if err := g.Update(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Update = %v, want ErrQuit", err)
	}
}

func TestLayoutIsPlayfield(t *testing.T) {
	g, _ := newTestGame(t, func(tu *config.Tuning) {
		tu.Playfield.Width = 640
		tu.Playfield.Height = 480
	})
	w, h := g.Layout(1920, 1080)
	if w != 640 || h != 480 {
		t.Fatalf("Layout = %d x %d", w, h)
	}
}
