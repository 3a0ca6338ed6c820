// Package web bridges browser clients to the game server over a websocket.
package web

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tomz197/skyshot/internal/loop/server"
	"github.com/tomz197/skyshot/internal/object"
)

// Message types carried in Envelope.T.
const (
	MsgCmd      = "cmd"      // client -> server, payload is a command name
	MsgWelcome  = "welcome"  // server -> client, once after connect
	MsgSnapshot = "snapshot" // server -> client, once per tick
	MsgGameOver = "gameover" // server -> client, when the session ends
	MsgShutdown = "shutdown" // server -> client, before the server goes away
)

// Envelope is the wire frame of every message.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Welcome tells the browser who it is and how to size its canvas.
type Welcome struct {
	ClientID int              `json:"clientId"`
	TickHz   int              `json:"tickHz"`
	Field    object.Playfield `json:"field"`
}

// GameOver carries the final score and the leaderboard.
type GameOver struct {
	Score int                    `json:"score"`
	Top   []server.TopScoreEntry `json:"top"`
}

// Encode wraps payload in an envelope of type t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("encode: empty envelope type")
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %s: nil payload", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodeEnvelope parses the outer frame of a message.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("decode: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode: %w", err)
	}
	return e, nil
}

// DecodePayload parses the payload of env into a T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("decode %s: empty payload", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", env.T, err)
	}
	return out, nil
}
