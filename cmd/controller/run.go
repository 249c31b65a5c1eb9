// Package main runs the CrowdPad input controller.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/frudas24/crowdpad/internal/config"
	"github.com/frudas24/crowdpad/internal/control"
	"github.com/frudas24/crowdpad/internal/input"
	"github.com/frudas24/crowdpad/internal/whitelist"
)

// run selects a target window and mirrors relay broadcasts into it until the
// relay closes or the operator interrupts.
func run(opts options) error {
	log := newLogger(opts.debug)
	slog.SetDefault(log)

	cfg, err := config.LoadController(opts.configPath)
	if err != nil {
		return err
	}
	if opts.relayURL != "" {
		cfg.RelayURL = opts.relayURL
	}
	if opts.whitelist != "" {
		cfg.WhitelistPath = opts.whitelist
	}
	logStartup(log, opts.configPath, cfg)

	allow, err := whitelist.Load(cfg.WhitelistPath)
	if err != nil {
		return err
	}
	logWhitelist(log, cfg.WhitelistPath, allow)

	backend, err := input.Open(input.Options{FocusSettle: cfg.FocusSettle, Logger: log})
	if err != nil {
		return err
	}
	defer backend.Close()

	ctrl, err := control.NewController(backend, allow, control.Config{
		RelayURL:    cfg.RelayURL,
		MouseExtent: cfg.MouseExtent,
		StartDelay:  cfg.StartDelay,
	}, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = ctrl.Run(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		return nil
	}
	return err
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

// logStartup prints startup checks.
func logStartup(log *slog.Logger, configPath string, cfg config.Controller) {
	log.Info("CrowdPad controller starting")
	logFileStatus(log, "config check", configPath)
	logFileStatus(log, "env check", filepath.Join(cfg.DataDir, ".env"))
	log.Info("relay", "url", cfg.RelayURL, "mouse_extent", cfg.MouseExtent, "start_delay", cfg.StartDelay)
}

// logWhitelist reports which keys the controller will press.
func logWhitelist(log *slog.Logger, path string, allow *whitelist.Validator) {
	if !allow.FromFile() {
		log.Info("whitelist check: missing, every key allowed", "path", path)
		return
	}
	log.Info("whitelist check: ok", "path", path, "keys", allow.Codes())
	for _, entry := range allow.Ignored() {
		log.Warn("whitelist entry ignored, not a known key", "entry", entry)
	}
}

// logFileStatus reports whether an optional file was found.
func logFileStatus(log *slog.Logger, what, path string) {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		log.Info(what+": ok", "path", path)
		return
	}
	log.Info(what+": missing", "path", path)
}
