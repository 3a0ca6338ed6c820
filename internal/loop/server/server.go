// Package server runs play sessions for every connected client on a single
// goroutine and publishes their snapshots.
package server

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyshot/internal/input"
	"github.com/tomz197/skyshot/internal/loop"
	"github.com/tomz197/skyshot/internal/loop/config"
	"github.com/tomz197/skyshot/internal/object"
)

// GameServer is the interface clients use to communicate with the game server.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendCommand(clientID int, cmd input.Command)
	GetSnapshot(clientID int) *loop.Snapshot
	StartSession(clientID int)
	TopScores() []TopScoreEntry
}

// Server owns one session per client and advances all of them each tick.
type Server struct {
	tuning       config.Tuning
	logger       *log.Logger
	rng          *rand.Rand
	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan ClientCommand
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	scores       *leaderboard
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientCommand represents a command from a specific client.
type ClientCommand struct {
	ClientID int
	Command  input.Command
}

// NewServer creates a new game server. A nil logger uses the default logger.
func NewServer(tuning config.Tuning, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if err := tuning.Validate(); err != nil {
		logger.Warn("tuning adjusted", "err", err)
	}

	return &Server{
		tuning:       tuning,
		logger:       logger,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan ClientCommand, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		scores:       newLeaderboard(config.TopScoresCount),
	}
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	tickTime := s.tuning.TickDuration()
	s.logger.Info("server loop started", "tick", tickTime)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("server loop stopped")
			return
		default:
		}

		frameStart := time.Now()

		s.processRegistrations()
		s.collectCommands()
		s.step(tickTime)

		elapsed := time.Since(frameStart)
		if elapsed < tickTime {
			time.Sleep(tickTime - elapsed)
		}
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendCommand queues a gameplay command for the client's session.
func (s *Server) SendCommand(clientID int, cmd input.Command) {
	select {
	case s.commandCh <- ClientCommand{ClientID: clientID, Command: cmd}:
	default:
		// Command channel full, drop command
	}
}

// GetSnapshot returns the latest snapshot of the client's session.
func (s *Server) GetSnapshot(clientID int) *loop.Snapshot {
	s.mu.RLock()
	handle, ok := s.clients[clientID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return handle.Snapshot()
}

// StartSession begins a fresh session for the client, replacing any previous one.
func (s *Server) StartSession(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}

	session, err := loop.NewSession(s.tuning, s.tuning.Player.StartX, s.tuning.Player.StartY)
	if err != nil {
		s.logger.Error("start session", "client", clientID, "err", err)
		return
	}
	handle.session = session
	handle.spawner = object.NewEnemySpawner(s.rng, s.tuning.SpawnRules()...)
	handle.reported = false

	snap := session.LastSnapshot()
	handle.snapshot.Store(&snap)
	s.logger.Debug("session started", "client", clientID, "user", handle.Username)
}

// TopScores returns the best finished scores, highest first.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores.top()
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("client registered", "client", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Info("client unregistered", "client", clientID)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectCommands applies all pending commands to their sessions.
func (s *Server) collectCommands() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case cc := <-s.commandCh:
			handle, ok := s.clients[cc.ClientID]
			if !ok || handle.session == nil {
				continue
			}
			err := handle.session.HandleInput(cc.Command)
			if err != nil && !errors.Is(err, loop.ErrInvalidState) {
				s.logger.Debug("command rejected", "client", cc.ClientID, "err", err)
			}
		default:
			return
		}
	}
}

// step spawns enemies and advances every running session by one tick.
func (s *Server) step(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, handle := range s.clients {
		session := handle.session
		if session == nil {
			continue
		}

		if !session.GameOver() {
			for _, kind := range handle.spawner.Advance(dt) {
				x := handle.spawner.RandomX(session.Field().Width)
				if err := session.SpawnEnemyKind(kind, x); err != nil {
					s.logger.Error("spawn enemy", "client", handle.ID, "err", err)
				}
			}
		}

		snap := session.Tick()
		handle.snapshot.Store(&snap)

		if snap.GameOver && !handle.reported {
			handle.reported = true
			s.scores.record(handle.ID, handle.Username, snap.Score)
			s.logger.Info("game over", "client", handle.ID, "user", handle.Username, "score", snap.Score)
			select {
			case handle.EventsCh <- ClientEvent{Type: EventGameOver, Score: snap.Score}:
			default:
			}
		}
	}
}
