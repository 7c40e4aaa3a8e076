package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyward/internal/config"
	"github.com/vovakirdan/skyward/internal/economy"
	"github.com/vovakirdan/skyward/internal/identity"
	"github.com/vovakirdan/skyward/internal/relay"
	"github.com/vovakirdan/skyward/internal/storage"
)

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the config and applies global flag overrides.
func loadConfig() config.SkywardConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if flagDB != "" {
		cfg.Storage.DSN = flagDB
	}
	return cfg
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	logger.SetLevel(logLevel())
	return logger
}

// logLevel parses --log-level, exiting on an unknown value.
func logLevel() log.Level {
	level, err := parseLogLevel(flagLogLevel)
	if err != nil {
		fatalf("%v", err)
	}
	return level
}

func parseLogLevel(s string) (log.Level, error) {
	level, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --log-level %q (want debug, info, warn or error)", s)
	}
	return level, nil
}

// fileLogger logs to ~/.skyward/skyward.log so a full-screen program is
// not disturbed. It falls back to discarding output.
func fileLogger(prefix string) (*log.Logger, func()) {
	dir := config.DataDir()
	if dir == "" {
		return newLogger(io.Discard, prefix), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "skyward.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}

// openStore opens the configured profile store.
func openStore(cfg config.SkywardConfig) (*storage.Store, error) {
	return storage.Open(cfg.Storage.Driver, cfg.Storage.DSN)
}

// localIdentity returns this device's player id.
func localIdentity(cfg config.SkywardConfig) (string, error) {
	return identity.LoadOrCreate(config.ExpandPath(cfg.Identity.Path))
}

// newRedeemer wires the configured relay into a redeemer.
func newRedeemer(ctx context.Context, cfg config.SkywardConfig, logger *log.Logger) (*economy.Redeemer, error) {
	policy, err := economy.NewPolicy(cfg.Economy)
	if err != nil {
		return nil, err
	}
	r, err := relay.New(ctx, cfg.Relay, logger)
	if err != nil {
		return nil, err
	}
	return economy.NewRedeemer(policy, r, cfg.Relay.Timeout), nil
}

// seed returns the --seed flag or a time-based seed.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
