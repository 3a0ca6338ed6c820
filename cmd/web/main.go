package main

import (
	"context"
	_ "embed"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tomz197/skyshot/internal/config"
	"github.com/tomz197/skyshot/internal/loop/server"
	"github.com/tomz197/skyshot/internal/object"
	"github.com/tomz197/skyshot/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	// .env first so it can set the log level
	dotenvErr := config.LoadDotEnv()
	logger := config.NewLogger("web")
	if dotenvErr != nil {
		logger.Warn("dotenv", "err", dotenvErr)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	tuning, err := config.LoadTuning(logger)
	if err != nil {
		logger.Fatal("tuning", "err", err)
	}

	ctx, cancelServer := context.WithCancel(context.Background())
	gameServer := server.NewServer(tuning, logger.WithPrefix("server"))
	go gameServer.Run(ctx)

	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})
	mux.Handle("/ws", web.NewHandler(gameServer, web.Options{
		TickRate: tuning.TickRate,
		Field:    object.Playfield{Width: tuning.Playfield.Width, Height: tuning.Playfield.Height},
		Logger:   logger,
	}))

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "url", "http://"+addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down")
	gameServer.Shutdown(5 * time.Second)
	cancelServer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
