package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/skyshot/internal/config"
	"github.com/tomz197/skyshot/internal/loop/client"
	"github.com/tomz197/skyshot/internal/loop/server"
	"github.com/tomz197/skyshot/internal/object"
)

func main() {
	// .env first so it can set the log level
	dotenvErr := config.LoadDotEnv()
	logger := config.NewLogger("game")
	if dotenvErr != nil {
		logger.Warn("dotenv", "err", dotenvErr)
	}

	// The terminal belongs to the game; logs go to SKYSHOT_LOG_FILE or nowhere
	if path := config.GetEnv("SKYSHOT_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Fatal("open log file", "path", path, "err", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	tuning, err := config.LoadTuning(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tuning: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gs := server.NewServer(tuning, logger)
	go gs.Run(ctx)

	c := client.NewClient(gs, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "player"),
		Field:    object.Playfield{Width: tuning.Playfield.Width, Height: tuning.Playfield.Height},
		Logger:   logger,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
