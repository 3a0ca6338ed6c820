package client

import (
	"time"

	"github.com/tomz197/skyshot/internal/input"
	"github.com/tomz197/skyshot/internal/loop"
)

// GameState represents the current screen of a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Session ended, show restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection UI state. The simulation itself lives on
// the server; the client only keeps the latest snapshot.
type ClientState struct {
	Commands      []input.Command // Commands read this frame
	GameState     GameState
	Snapshot      *loop.Snapshot // Latest snapshot of this client's session
	FinalScore    int            // Score reported with the game-over event
	Running       bool           // Client loop running
	delta         time.Duration  // Frame delta time
	restartTimer  float64        // Seconds until a restart is accepted
	shutdownTimer float64        // Countdown before auto-disconnect on shutdown
	isInactive    bool           // Whether the client is in inactive warning state
	prevGameState GameState      // Screen drawn last frame
	wasInactive   bool           // Inactivity state drawn last frame
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		Running:       true,
		prevGameState: -1,
	}
}
