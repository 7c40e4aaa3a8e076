package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyward/internal/audio"
	"github.com/vovakirdan/skyward/internal/config"
	"github.com/vovakirdan/skyward/internal/core"
	"github.com/vovakirdan/skyward/internal/platform/tui"
	"github.com/vovakirdan/skyward/internal/scoresync"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play skyward",
	Long: `Start a game in the terminal.

Controls:
  Space/Up/W/Click  - Flap (also starts a run)
  Enter             - Start
  R                 - Restart (after game over)
  A                 - Claim the bonus (after game over)
  $                 - Redeem points
  Ctrl+S            - Screenshot
  Q/Ctrl+C          - Quit

Examples:
  skyward play
  skyward play --seed 42
  skyward play --config ./my-skyward.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(loadConfig()); err != nil {
		fatalf("running game: %v", err)
	}
}

func play(cfg config.SkywardConfig) error {
	logger, closeLog := fileLogger("skyward")
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Game: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			CellW:    core.DefaultCellW,
			CellH:    core.DefaultCellH,
			TickRate: flagFPS,
			Seed:     seed(),
		},
	}

	id, err := localIdentity(cfg)
	if err != nil {
		// Without an id the session still plays, but nothing persists.
		logger.Warn("Could not resolve player id", "error", err)
	}
	opts.ProfileID = id

	svc := tui.Services{Logger: logger}

	store, err := openStore(cfg)
	if err != nil {
		logger.Warn("Could not open profile store, playing offline", "driver", cfg.Storage.Driver, "error", err)
	} else {
		defer store.Close()
		syncer := scoresync.New(store, scoresync.Config{
			LoadTimeout:  cfg.Sync.LoadTimeout,
			WriteTimeout: cfg.Sync.WriteTimeout,
		}, logger)
		syncer.Start()
		defer syncer.Stop()
		svc.Store = store
		svc.Syncer = syncer
	}

	redeemer, err := newRedeemer(ctx, cfg, logger)
	if err != nil {
		logger.Warn("Redemption disabled", "error", err)
	} else {
		svc.Redeemer = redeemer
	}

	player := audio.New(cfg.Audio, logger)
	defer player.Close()
	svc.Audio = player

	logger.Info("Starting session", "profile", id, "seed", opts.Runtime.Seed, "fps", flagFPS)
	if err := tui.Run(ctx, opts, svc); err != nil {
		logger.Error("Session ended with error", "error", err)
		return err
	}
	logger.Info("Session ended", "profile", id)
	return nil
}
