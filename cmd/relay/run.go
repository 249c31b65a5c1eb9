// Package main starts the CrowdPad vote relay.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/frudas24/crowdpad/internal/app"
	"github.com/frudas24/crowdpad/internal/config"
	"github.com/frudas24/crowdpad/internal/relay"
	"github.com/frudas24/crowdpad/internal/vote"
	"github.com/frudas24/crowdpad/internal/webrtc"
)

// run wires the relay and blocks until shutdown.
func run(opts options) error {
	log := newLogger(opts.debug)
	slog.SetDefault(log)

	cfg, err := config.LoadRelay(opts.configPath)
	if err != nil {
		return err
	}
	if opts.listen != "" {
		cfg.ListenAddr = opts.listen
	}
	if opts.staticDir != "" {
		cfg.StaticDir = opts.staticDir
	}
	logStartup(log, opts.configPath, cfg)

	var peers *webrtc.PeerFactory
	if cfg.WebRTC {
		peers, err = webrtc.NewPeerFactory(cfg.STUNURLs)
		if err != nil {
			return err
		}
	}

	appInstance, err := app.New(cfg, relay.NewRegistry(vote.NewBoard()), peers, log)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(); err != nil {
			log.Warn("shutdown", "err", err)
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, cfg.StaticDir)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newLogger returns a text logger on stderr.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	slog.Error("fatal", "err", err)
	os.Exit(1)
}

// logStartup prints startup checks and connection info.
func logStartup(log *slog.Logger, configPath string, cfg config.Relay) {
	log.Info("CrowdPad relay starting")
	logFileStatus(log, "config check", configPath)
	logFileStatus(log, "env check", filepath.Join(cfg.DataDir, ".env"))
	log.Info("broadcast", "tick", cfg.TickInterval, "webrtc", cfg.WebRTC, "stun", cfg.STUNURLs)
	logListenStatus(log, cfg.ListenAddr)
}

// logFileStatus reports whether an optional file was found.
func logFileStatus(log *slog.Logger, what, path string) {
	if fileExists(path) {
		log.Info(what+": ok", "path", path)
		return
	}
	log.Info(what+": missing", "path", path)
}

// logListenStatus reports the listen address and local voter/listener URLs.
func logListenStatus(log *slog.Logger, addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		log.Info("listen addr", "addr", addr)
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	hostPort := net.JoinHostPort(host, port)
	log.Info("listen addr", "addr", addr, "voters", "http://"+hostPort, "listeners", "ws://"+hostPort+"/listen")
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
