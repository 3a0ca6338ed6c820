package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseBytes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Command
	}{
		{"letters", "adq", []Command{CommandMoveLeft, CommandMoveRight, CommandQuit}},
		{"vi keys", "hl k", []Command{CommandMoveLeft, CommandMoveRight, CommandFire, CommandFire}},
		{"arrows", "\x1b[D\x1b[C", []Command{CommandMoveLeft, CommandMoveRight}},
		{"up arrow ignored", "\x1b[A ", []Command{CommandFire}},
		{"enter", "\r", []Command{CommandStart}},
		{"unknown", "xyz", nil},
	}
	for _, tc := range cases {
		got := ParseBytes([]byte(tc.in))
		if len(got) != len(tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: [%d] = %v, want %v", tc.name, i, got[i], tc.want[i])
			}
		}
	}
}

func TestParseCommandRoundTrip(t *testing.T) {
	for _, c := range []Command{CommandMoveLeft, CommandMoveRight, CommandFire, CommandStart, CommandQuit} {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCommand("jump"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestIsGameplay(t *testing.T) {
	if !CommandFire.IsGameplay() || CommandQuit.IsGameplay() || CommandStart.IsGameplay() {
		t.Fatalf("gameplay classification is wrong")
	}
}

func TestStreamDrains(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("a d")))

	var got []Command
	deadline := time.Now().Add(time.Second)
	for len(got) < 3 && time.Now().Before(deadline) {
		got = append(got, ReadCommands(s)...)
		time.Sleep(5 * time.Millisecond)
	}
	if len(got) != 3 || got[0] != CommandMoveLeft || got[1] != CommandFire || got[2] != CommandMoveRight {
		t.Fatalf("commands = %v", got)
	}

	for !s.Closed() && time.Now().Before(deadline) {
		ReadCommands(s)
		time.Sleep(5 * time.Millisecond)
	}
	if !s.Closed() {
		t.Fatalf("stream should report closed after EOF")
	}
}
