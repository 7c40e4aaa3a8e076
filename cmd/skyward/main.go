// skyward is a terminal flying arcade game with a points economy.
//
// Usage:
//
//	skyward play             - Play in the terminal
//	skyward serve            - Start SSH server for remote play
//	skyward scores           - Show recorded runs
//	skyward profile          - Show the local player id and balance
//	skyward sim              - Run the simulation headless with an autopilot
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Use a custom config YAML
//	--db <dsn>           - Override the profile store DSN
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDB       string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyward",
	Short: "Skyward - fly, collect coins, redeem rewards",
	Long: `Skyward is a terminal arcade game: flap through the gaps between
pipes, collect coins and turn your points into phone credit.

Available commands:
  play     - Play in your terminal
  serve    - Start SSH server for remote play
  scores   - View recorded runs
  profile  - Show your player id and balance
  sim      - Run a headless simulation

Examples:
  skyward play
  skyward play --seed 42
  skyward serve --ssh :2222
  skyward scores --all
  skyward profile --qr
  skyward sim --seed 7 --ticks 10000`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Profile store DSN (default from config: ~/.skyward/skyward.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(simCmd)
}
