package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyward/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the skyward SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Players are identified by their SSH public key, so a returning player
keeps their balance. Clients without a key are identified by user name.
All sessions share the configured profile store and relay.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.skyward/host_key

Examples:
  skyward serve                           # Listen on :23234 with auto-generated key
  skyward serve --ssh :2222               # Listen on port 2222
  skyward serve --host-key ./my_host_key  # Use specific host key
  skyward serve --db postgres://...       # Share a postgres profile store

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(os.Stderr, "skyward-ssh")

	store, err := openStore(cfg)
	if err != nil {
		logger.Warn("could not open profile store, sessions will play offline", "error", err)
		store = nil
	}

	redeemer, err := newRedeemer(context.Background(), cfg, logger)
	if err != nil {
		logger.Warn("redemption disabled", "error", err)
		redeemer = nil
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        cfg,
		TickRate:    flagFPS,
	}, store, redeemer, logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting skyward SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatalf("server: %v", err)
	}
}
