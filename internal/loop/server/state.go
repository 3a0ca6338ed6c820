package server

import (
	"slices"
	"sync/atomic"

	"github.com/tomz197/skyshot/internal/loop"
	"github.com/tomz197/skyshot/internal/object"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	clientID int    // Used for deterministic tie-break when scores are equal
}

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (game over, shutdown)

	session  *loop.Session
	spawner  *object.EnemySpawner
	snapshot atomic.Pointer[loop.Snapshot]
	reported bool // Game-over event already sent for the current session
}

// Snapshot returns the latest snapshot of the client's session, or nil when
// no session has been started yet.
func (h *ClientHandle) Snapshot() *loop.Snapshot {
	return h.snapshot.Load()
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type  ClientEventType
	Score int // Final score for game-over events
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventGameOver ClientEventType = iota
	EventServerShutdown
)

// leaderboard keeps the best finished scores, highest first.
type leaderboard struct {
	size    int
	entries []TopScoreEntry
}

func newLeaderboard(size int) *leaderboard {
	return &leaderboard{size: size}
}

// record adds a finished score. A client keeps only its best entry.
func (l *leaderboard) record(clientID int, username string, score int) {
	for i, e := range l.entries {
		if e.clientID == clientID {
			if score <= e.Score {
				return
			}
			l.entries = slices.Delete(l.entries, i, i+1)
			break
		}
	}

	l.entries = append(l.entries, TopScoreEntry{Username: username, Score: score, clientID: clientID})
	slices.SortStableFunc(l.entries, func(a, b TopScoreEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.clientID - b.clientID
	})
	if len(l.entries) > l.size {
		l.entries = l.entries[:l.size]
	}
}

// top returns a copy of the current leaderboard.
func (l *leaderboard) top() []TopScoreEntry {
	return slices.Clone(l.entries)
}
