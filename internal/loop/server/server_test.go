package server

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyshot/internal/input"
	"github.com/tomz197/skyshot/internal/loop/config"
)

func newTestServer(t *testing.T, tune func(*config.Tuning)) *Server {
	t.Helper()
	tu := config.Default()
	if tune != nil {
		tune(&tu)
	}
	s := NewServer(tu, log.New(io.Discard))
	s.rng = rand.New(rand.NewSource(1))
	return s
}

func registerAndStart(t *testing.T, s *Server, name string) *ClientHandle {
	t.Helper()
	h := s.RegisterClient(name)
	s.processRegistrations()
	s.StartSession(h.ID)
	if s.GetSnapshot(h.ID) == nil {
		t.Fatalf("no snapshot after StartSession")
	}
	return h
}

func TestSnapshotBeforeSessionIsNil(t *testing.T) {
	s := newTestServer(t, nil)
	h := s.RegisterClient("ann")
	s.processRegistrations()

	if snap := s.GetSnapshot(h.ID); snap != nil {
		t.Fatalf("snapshot = %+v, want nil before a session starts", snap)
	}
	if snap := s.GetSnapshot(999); snap != nil {
		t.Fatalf("unknown client should have no snapshot")
	}
	if s.ClientCount() != 1 {
		t.Fatalf("client count = %d", s.ClientCount())
	}
}

func TestCommandsReachSession(t *testing.T) {
	s := newTestServer(t, nil)
	h := registerAndStart(t, s, "ann")

	s.SendCommand(h.ID, input.CommandMoveLeft)
	s.SendCommand(h.ID, input.CommandFire)
	s.collectCommands()
	s.step(config.ServerTickTime)

	snap := s.GetSnapshot(h.ID)
	if snap.Player.X != config.PlayerStartX-config.PlayerStep {
		t.Fatalf("player x = %f", snap.Player.X)
	}
	if len(snap.Projectiles) != 1 {
		t.Fatalf("projectiles = %+v, want one", snap.Projectiles)
	}
	if snap.Tick != 1 {
		t.Fatalf("tick = %d, want 1", snap.Tick)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	s := newTestServer(t, nil)
	a := registerAndStart(t, s, "ann")
	b := registerAndStart(t, s, "bob")

	s.SendCommand(a.ID, input.CommandFire)
	s.collectCommands()
	s.step(config.ServerTickTime)

	if n := len(s.GetSnapshot(a.ID).Projectiles); n != 1 {
		t.Fatalf("ann projectiles = %d", n)
	}
	if n := len(s.GetSnapshot(b.ID).Projectiles); n != 0 {
		t.Fatalf("bob projectiles = %d, want 0", n)
	}
}

func TestSpawnerFeedsSession(t *testing.T) {
	s := newTestServer(t, nil)
	h := registerAndStart(t, s, "ann")

	s.step(config.RegularSpawnInterval)

	snap := s.GetSnapshot(h.ID)
	if len(snap.Enemies) == 0 {
		t.Fatalf("expected an enemy after one spawn interval")
	}
	if snap.Stats.EnemiesSpawned != len(snap.Enemies) {
		t.Fatalf("spawned = %d, enemies = %d", snap.Stats.EnemiesSpawned, len(snap.Enemies))
	}
}

func TestGameOverEventAndLeaderboard(t *testing.T) {
	s := newTestServer(t, func(tu *config.Tuning) {
		tu.Player.Lives = 1
		tu.Enemy.Regular.SpawnIntervalMS = 0
		tu.Enemy.Fast.SpawnIntervalMS = 0
		tu.Enemy.Strong.SpawnIntervalMS = 0
	})
	h := registerAndStart(t, s, "ann")

	if err := h.session.SpawnEnemy(config.PlayerStartX); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	for i := 0; i < 1000; i++ {
		s.step(config.ServerTickTime)
		if s.GetSnapshot(h.ID).GameOver {
			break
		}
	}

	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventGameOver || ev.Score != 0 {
			t.Fatalf("event = %+v", ev)
		}
	default:
		t.Fatalf("no game-over event")
	}

	// Further steps must not report again
	s.step(config.ServerTickTime)
	select {
	case ev := <-h.EventsCh:
		t.Fatalf("unexpected second event %+v", ev)
	default:
	}

	top := s.TopScores()
	if len(top) != 1 || top[0].Username != "ann" {
		t.Fatalf("top scores = %+v", top)
	}

	// Commands after game over are ignored, a new session starts clean
	s.SendCommand(h.ID, input.CommandFire)
	s.collectCommands()
	s.StartSession(h.ID)
	if snap := s.GetSnapshot(h.ID); snap.GameOver || snap.Player.Life != 1 {
		t.Fatalf("restarted snapshot = %+v", snap)
	}
}

func TestUnregisterClosesEvents(t *testing.T) {
	s := newTestServer(t, nil)
	h := registerAndStart(t, s, "ann")

	s.UnregisterClient(h.ID)
	s.processRegistrations()

	if _, ok := <-h.EventsCh; ok {
		t.Fatalf("events channel should be closed")
	}
	if s.ClientCount() != 0 {
		t.Fatalf("client count = %d", s.ClientCount())
	}
}

func TestShutdownNotifiesClients(t *testing.T) {
	s := newTestServer(t, nil)
	h := registerAndStart(t, s, "ann")

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
			s.processRegistrations()
		}
	}()

	done := make(chan struct{})
	go func() {
		s.Shutdown(2 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Shutdown did not return")
	}
	if s.ClientCount() != 0 {
		t.Fatalf("client should have disconnected")
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	l := newLeaderboard(2)
	l.record(1, "ann", 30)
	l.record(2, "bob", 50)
	l.record(3, "cat", 30)
	l.record(1, "ann", 20) // Worse than ann's best, ignored

	top := l.top()
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].Username != "bob" || top[1].Username != "ann" {
		t.Fatalf("order = %+v", top)
	}

	l.record(3, "cat", 60)
	top = l.top()
	if top[0].Username != "cat" || top[1].Username != "bob" {
		t.Fatalf("order after improvement = %+v", top)
	}
}
