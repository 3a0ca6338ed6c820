package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Keys reports keyboard state for one frame.
type Keys interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

// ebitenKeys reads the real keyboard.
type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// anyJustPressed reports whether one of ks went down this frame.
func anyJustPressed(keys Keys, ks ...ebiten.Key) bool {
	for _, k := range ks {
		if keys.JustPressed(k) {
			return true
		}
	}
	return false
}

func anyPressed(keys Keys, ks ...ebiten.Key) bool {
	for _, k := range ks {
		if keys.Pressed(k) {
			return true
		}
	}
	return false
}
