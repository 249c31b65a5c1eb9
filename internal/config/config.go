// Package config loads relay and controller configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is the YAML file read when --config is not given.
	DefaultFile = "crowdpad.yaml"

	defaultListenAddr    = "0.0.0.0:7790"
	defaultDataDir       = "./data"
	defaultTickInterval  = 100 * time.Millisecond
	defaultWebRTC        = true
	defaultRelayURL      = "ws://localhost:7790/listen"
	defaultWhitelistPath = "whitelist.txt"
	defaultMouseExtent   = 1280
	defaultStartDelay    = 500 * time.Millisecond
	defaultFocusSettle   = 200 * time.Millisecond
)

// Relay holds relay server settings.
type Relay struct {
	ListenAddr   string        `yaml:"listen_addr"`
	DataDir      string        `yaml:"data_dir"`
	TickInterval time.Duration `yaml:"tick_interval"`
	StaticDir    string        `yaml:"static_dir"`
	WebRTC       bool          `yaml:"webrtc_enabled"`
	STUNURLs     []string      `yaml:"stun_urls"`
}

// Controller holds input controller settings.
type Controller struct {
	RelayURL      string        `yaml:"relay_url"`
	DataDir       string        `yaml:"data_dir"`
	WhitelistPath string        `yaml:"whitelist_path"`
	MouseExtent   int           `yaml:"mouse_extent"`
	StartDelay    time.Duration `yaml:"start_delay"`
	FocusSettle   time.Duration `yaml:"focus_settle"`
}

// File is the YAML layout; each binary reads its own section.
type File struct {
	Relay      Relay      `yaml:"relay"`
	Controller Controller `yaml:"controller"`
}

// Defaults returns the built-in configuration.
func Defaults() File {
	return File{
		Relay: Relay{
			ListenAddr:   defaultListenAddr,
			DataDir:      defaultDataDir,
			TickInterval: defaultTickInterval,
			WebRTC:       defaultWebRTC,
		},
		Controller: Controller{
			RelayURL:      defaultRelayURL,
			DataDir:       defaultDataDir,
			WhitelistPath: defaultWhitelistPath,
			MouseExtent:   defaultMouseExtent,
			StartDelay:    defaultStartDelay,
			FocusSettle:   defaultFocusSettle,
		},
	}
}

// LoadRelay layers defaults, the YAML file at path, DATA_DIR/.env and the
// environment.
func LoadRelay(path string) (Relay, error) {
	f, err := loadFile(path)
	if err != nil {
		return Relay{}, err
	}
	cfg := f.Relay
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Relay{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.StaticDir = envString("STATIC_DIR", cfg.StaticDir)
	cfg.WebRTC = envBool("WEBRTC_ENABLED", cfg.WebRTC)
	if raw := envString("STUN_URLS", ""); raw != "" {
		cfg.STUNURLs = splitList(raw)
	}

	tick, err := envMillis("TICK_INTERVAL_MS", cfg.TickInterval)
	if err != nil {
		return Relay{}, err
	}
	if tick <= 0 {
		return Relay{}, fmt.Errorf("TICK_INTERVAL_MS must be > 0")
	}
	cfg.TickInterval = tick

	return cfg, nil
}

// LoadController layers defaults, the YAML file at path, DATA_DIR/.env and
// the environment.
func LoadController(path string) (Controller, error) {
	f, err := loadFile(path)
	if err != nil {
		return Controller{}, err
	}
	cfg := f.Controller
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Controller{}, err
	}

	cfg.RelayURL = envString("RELAY_URL", cfg.RelayURL)
	cfg.WhitelistPath = envString("WHITELIST_PATH", cfg.WhitelistPath)

	extent, err := envInt("MOUSE_EXTENT", cfg.MouseExtent)
	if err != nil {
		return Controller{}, err
	}
	if extent <= 0 {
		return Controller{}, fmt.Errorf("MOUSE_EXTENT must be > 0")
	}
	cfg.MouseExtent = extent

	delay, err := envMillis("START_DELAY_MS", cfg.StartDelay)
	if err != nil {
		return Controller{}, err
	}
	if delay < 0 {
		return Controller{}, fmt.Errorf("START_DELAY_MS must be >= 0")
	}
	cfg.StartDelay = delay

	settle, err := envMillis("FOCUS_SETTLE_MS", cfg.FocusSettle)
	if err != nil {
		return Controller{}, err
	}
	if settle < 0 {
		return Controller{}, fmt.Errorf("FOCUS_SETTLE_MS must be >= 0")
	}
	cfg.FocusSettle = settle

	if strings.TrimSpace(cfg.RelayURL) == "" {
		return Controller{}, errors.New("RELAY_URL is required")
	}
	return cfg, nil
}

// loadFile decodes the YAML file over the defaults. A missing file is not an error.
func loadFile(path string) (File, error) {
	f := Defaults()
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return File{}, err
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envMillis reads an integer millisecond override.
func envMillis(key string, def time.Duration) (time.Duration, error) {
	ms, err := envInt(key, int(def/time.Millisecond))
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// splitList splits a comma list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads KEY=VALUE pairs from a .env file without overriding
// variables already set.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
