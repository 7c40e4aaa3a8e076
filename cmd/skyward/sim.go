package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyward/internal/core"
	"github.com/vovakirdan/skyward/internal/economy"
	"github.com/vovakirdan/skyward/internal/games/skyward"
)

var (
	flagSimTicks    int
	flagSimWidth    float64
	flagSimHeight   float64
	flagSimRealtime bool
	flagSimIdle     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless",
	Long: `Run one game without a terminal UI. An autopilot steers toward the
next gap; the run stops at the first crash or after --ticks ticks.
The same seed always produces the same result.

Examples:
  skyward sim --seed 42
  skyward sim --seed 42 --ticks 100000
  skyward sim --realtime --fps 30
  skyward sim --idle          # no steering: measures the fall`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 6000, "Maximum number of ticks")
	simCmd.Flags().Float64Var(&flagSimWidth, "width", 384, "Viewport width in pixels")
	simCmd.Flags().Float64Var(&flagSimHeight, "height", 512, "Viewport height in pixels")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Tick at --fps instead of as fast as possible")
	simCmd.Flags().BoolVar(&flagSimIdle, "idle", false, "Start the run, then never flap")
}

// simReport summarizes a headless run.
type simReport struct {
	Seed   int64
	Ticks  int
	Phase  skyward.Phase
	Run    skyward.RunStats
	Events map[skyward.Event]int
}

func runSim(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(os.Stderr, "skyward-sim")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var driver core.Driver = &core.StepDriver{Limit: flagSimTicks}
	if flagSimRealtime {
		driver = core.NewFixedDriver(flagFPS)
	}

	s := seed()
	g := skyward.New(cfg, flagFPS, economy.NewLedger(0), rand.New(rand.NewSource(s)))
	g.Resize(core.Viewport{W: flagSimWidth, H: flagSimHeight})
	if err := g.ProfileLoaded(0); err != nil {
		fatalf("%v", err)
	}

	report, err := simulate(ctx, g, driver, flagSimTicks, !flagSimIdle)
	report.Seed = s
	if err != nil && ctx.Err() == nil {
		logger.Error("simulation stopped", "error", err)
	}

	fmt.Printf("Seed:    %d\n", report.Seed)
	fmt.Printf("Ticks:   %d\n", report.Ticks)
	fmt.Printf("Phase:   %s\n", report.Phase)
	fmt.Printf("Points:  %s\n", humanize.Comma(int64(report.Run.Points)))
	fmt.Printf("Pipes:   %d\n", report.Run.Pipes)
	fmt.Printf("Coins:   %d\n", report.Run.Coins)
	fmt.Printf("Flaps:   %d\n", report.Events[skyward.EventFlap])
}

// simulate drives g until it crashes or maxTicks ticks have run.
func simulate(ctx context.Context, g *skyward.Game, driver core.Driver, maxTicks int, steer bool) (simReport, error) {
	report := simReport{Events: make(map[skyward.Event]int)}
	var pilot skyward.Autopilot

	err := driver.Run(ctx, func() bool {
		in := core.NewInputFrame()
		switch {
		case steer:
			in = pilot.Decide(g)
		case g.Phase() == skyward.PhaseIdle:
			in.Set(core.ActionStart)
		}

		res := g.Step(in)
		report.Ticks++
		for _, ev := range res.Events {
			report.Events[ev]++
		}
		return res.Phase != skyward.PhaseTerminated && report.Ticks < maxTicks
	})

	report.Phase = g.Phase()
	report.Run = g.Run()
	return report, err
}
