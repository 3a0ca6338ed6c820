package web

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/skyshot/internal/input"
	"github.com/tomz197/skyshot/internal/loop"
	"github.com/tomz197/skyshot/internal/loop/config"
	"github.com/tomz197/skyshot/internal/loop/server"
	"github.com/tomz197/skyshot/internal/object"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 1 << 10 // Commands are tiny
)

// Options configures a Handler.
type Options struct {
	TickRate    int              // Snapshot rate; defaults to the server tick rate
	Field       object.Playfield // Reported to the browser in the welcome message
	Logger      *log.Logger
	CheckOrigin func(r *http.Request) bool // nil allows every origin
}

// Handler upgrades HTTP requests to websockets and runs one game client per
// connection.
type Handler struct {
	server   server.GameServer
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler backed by gs.
func NewHandler(gs server.GameServer, opts Options) *Handler {
	if opts.TickRate <= 0 {
		opts.TickRate = config.ServerTickRate
	}
	if opts.Field.Width <= 0 || opts.Field.Height <= 0 {
		opts.Field = object.Playfield{Width: config.PlayfieldWidth, Height: config.PlayfieldHeight}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	return &Handler{
		server: gs,
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "web"
	}
	handle := h.server.RegisterClient(name)
	defer h.server.UnregisterClient(handle.ID)
	h.logger.Info("web client connected", "client", handle.ID, "user", name, "remote", r.RemoteAddr)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	starts := make(chan struct{}, 1)
	done := make(chan struct{})
	go h.readLoop(conn, handle.ID, starts, done)

	welcome := Welcome{ClientID: handle.ID, TickHz: h.opts.TickRate, Field: h.opts.Field}
	if err := h.send(conn, MsgWelcome, welcome); err != nil {
		return
	}
	h.writeLoop(conn, handle, starts, done)
	h.logger.Info("web client disconnected", "client", handle.ID)
}

// readLoop forwards gameplay commands to the server and start requests to
// the write loop. It closes done when the connection ends or the client quits.
func (h *Handler) readLoop(conn *websocket.Conn, clientID int, starts chan<- struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read", "client", clientID, "err", err)
			}
			return
		}

		env, err := DecodeEnvelope(msg)
		if err != nil || env.T != MsgCmd {
			h.logger.Debug("ignoring message", "client", clientID, "type", env.T, "err", err)
			continue
		}
		name, err := DecodePayload[string](env)
		if err != nil {
			h.logger.Debug("ignoring command", "client", clientID, "err", err)
			continue
		}
		cmd, err := input.ParseCommand(name)
		if err != nil {
			h.logger.Debug("ignoring command", "client", clientID, "err", err)
			continue
		}

		switch {
		case cmd == input.CommandQuit:
			return
		case cmd == input.CommandStart:
			select {
			case starts <- struct{}{}:
			default:
			}
		case cmd.IsGameplay():
			h.server.SendCommand(clientID, cmd)
		}
	}
}

// writeLoop owns all writes to conn: snapshots at the tick rate, server
// events and keepalive pings.
func (h *Handler) writeLoop(conn *websocket.Conn, handle *server.ClientHandle, starts <-chan struct{}, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(h.opts.TickRate))
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	var last *loop.Snapshot
	pendingStart := false

	for {
		select {
		case <-done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return

		case <-starts:
			h.server.StartSession(handle.ID)
			pendingStart = true
			last = nil

		case ev, ok := <-handle.EventsCh:
			if !ok {
				return
			}
			switch ev.Type {
			case server.EventGameOver:
				payload := GameOver{Score: ev.Score, Top: h.server.TopScores()}
				if err := h.send(conn, MsgGameOver, payload); err != nil {
					return
				}
			case server.EventServerShutdown:
				_ = h.send(conn, MsgShutdown, struct{}{})
				return
			}

		case <-ticker.C:
			snap := h.server.GetSnapshot(handle.ID)
			if snap == nil {
				if pendingStart {
					// Registration had not reached the server loop yet
					h.server.StartSession(handle.ID)
				}
				continue
			}
			pendingStart = false
			if snap == last || (last != nil && last.GameOver && snap.Tick == last.Tick) {
				continue
			}
			last = snap
			if err := h.send(conn, MsgSnapshot, snap); err != nil {
				return
			}

		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// send writes one envelope.
func (h *Handler) send(conn *websocket.Conn, t string, payload any) error {
	msg, err := Encode(t, payload)
	if err != nil {
		h.logger.Error("encode", "type", t, "err", err)
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		h.logger.Debug("websocket write", "type", t, "err", err)
		return err
	}
	return nil
}
