// Package client renders a session snapshot to a terminal and forwards key
// presses to the server.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyshot/internal/draw"
	"github.com/tomz197/skyshot/internal/input"
	"github.com/tomz197/skyshot/internal/loop/config"
	"github.com/tomz197/skyshot/internal/loop/server"
	"github.com/tomz197/skyshot/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Field        object.Playfield // Zero means the built-in playfield
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	field := opts.Field
	if field.Width <= 0 || field.Height <= 0 {
		field = object.Playfield{Width: config.PlayfieldWidth, Height: config.PlayfieldHeight}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       gs.RegisterClient(opts.Username),
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.frame()

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)
	c.logger.Debug("client left", "client", c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// frame runs one update step without drawing.
func (c *Client) frame() {
	c.processInput()
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateOver:
		c.updateOverState()
	case GameStateShutdown:
		c.updateShutdownState()
	}
}

// processInput reads pending key presses and forwards gameplay commands.
func (c *Client) processInput() {
	c.state.Commands = input.ReadCommands(c.inputStream)

	if len(c.state.Commands) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.inputStream.Closed() {
		c.state.Running = false
	}

	for _, cmd := range c.state.Commands {
		if cmd == input.CommandQuit {
			c.state.Running = false
			return
		}
		if cmd.IsGameplay() && c.state.GameState == GameStatePlaying {
			c.server.SendCommand(c.handle.ID, cmd)
		}
	}
}

// wantsStart reports whether a start key was pressed this frame.
func (c *Client) wantsStart() bool {
	for _, cmd := range c.state.Commands {
		if cmd == input.CommandStart || cmd == input.CommandFire {
			return true
		}
	}
	return false
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventGameOver:
				c.enterGameOver(event.Score)
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

func (c *Client) updateStartState() {
	if c.wantsStart() {
		c.startGame()
	}
}

func (c *Client) updatePlayingState() {
	c.state.Snapshot = c.server.GetSnapshot(c.handle.ID)
	if c.state.Snapshot == nil {
		// Registration had not reached the server loop yet
		c.server.StartSession(c.handle.ID)
		return
	}
	// The event may have been dropped on a full channel
	if c.state.Snapshot.GameOver {
		c.enterGameOver(c.state.Snapshot.Score)
	}
}

func (c *Client) updateOverState() {
	if c.state.restartTimer > 0 {
		c.state.restartTimer = max(0, c.state.restartTimer-c.state.delta.Seconds())
		return
	}
	if c.wantsStart() {
		c.startGame()
	}
}

func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// enterGameOver switches to the game-over screen once per session.
func (c *Client) enterGameOver(score int) {
	if c.state.GameState != GameStatePlaying {
		return
	}
	c.state.GameState = GameStateOver
	c.state.FinalScore = score
	c.state.restartTimer = config.RestartDelaySeconds
}

// startGame asks the server for a fresh session.
func (c *Client) startGame() {
	c.server.StartSession(c.handle.ID)
	c.state.Snapshot = c.server.GetSnapshot(c.handle.ID)
	c.state.FinalScore = 0
	c.state.GameState = GameStatePlaying
}
