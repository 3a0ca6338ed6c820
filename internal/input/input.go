// Package input turns raw key presses into game commands.
package input

import (
	"bufio"
	"fmt"
	"strings"
)

// Command is a discrete player or shell action.
type Command int

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandFire
	CommandStart // Shell only: begin a new session
	CommandQuit  // Shell only: leave the game
)

// String returns the wire name of the command.
func (c Command) String() string {
	switch c {
	case CommandMoveLeft:
		return "left"
	case CommandMoveRight:
		return "right"
	case CommandFire:
		return "fire"
	case CommandStart:
		return "start"
	case CommandQuit:
		return "quit"
	default:
		return "none"
	}
}

// IsGameplay reports whether the command is consumed by the simulation.
func (c Command) IsGameplay() bool {
	return c == CommandMoveLeft || c == CommandMoveRight || c == CommandFire
}

// ParseCommand converts a wire name into a Command.
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return CommandMoveLeft, nil
	case "right":
		return CommandMoveRight, nil
	case "fire":
		return CommandFire, nil
	case "start":
		return CommandStart, nil
	case "quit":
		return CommandQuit, nil
	default:
		return CommandNone, fmt.Errorf("unknown command %q", s)
	}
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadCommands drains all available bytes from the stream (non-blocking)
// and returns the commands they encode, in arrival order.
func ReadCommands(s *Stream) []Command {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return ParseBytes(buf)
}

// ParseBytes decodes terminal input into commands. Arrow keys arrive as
// CSI escape sequences (ESC [ C / ESC [ D).
func ParseBytes(buf []byte) []Command {
	var cmds []Command
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				cmds = append(cmds, CommandMoveRight)
				i += 2
				continue
			case 'D': // Left arrow
				cmds = append(cmds, CommandMoveLeft)
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are unused
				i += 2
				continue
			}
		}

		if cmd := commandForByte(b); cmd != CommandNone {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// commandForByte maps a single key byte to a command.
func commandForByte(b byte) Command {
	switch b {
	case 'q', 'Q', '\x03': // q or Ctrl+C
		return CommandQuit
	case 'a', 'A', 'h', 'H':
		return CommandMoveLeft
	case 'd', 'D', 'l', 'L':
		return CommandMoveRight
	case ' ', 'w', 'W', 'k', 'K':
		return CommandFire
	case '\n', '\r':
		return CommandStart
	default:
		return CommandNone
	}
}
