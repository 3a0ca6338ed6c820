package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/skyshot/internal/config"
	"github.com/tomz197/skyshot/internal/window"
)

func main() {
	// .env first so it can set the log level
	dotenvErr := config.LoadDotEnv()
	logger := config.NewLogger("window")
	if dotenvErr != nil {
		logger.Warn("dotenv", "err", dotenvErr)
	}

	tuning, err := config.LoadTuning(logger)
	if err != nil {
		logger.Fatal("tuning", "err", err)
	}

	game := window.NewGame(tuning, logger)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Skyshot")
	ebiten.SetTPS(tuning.TickRate)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, window.ErrQuit) {
		logger.Fatal("game", "err", err)
	}
}
