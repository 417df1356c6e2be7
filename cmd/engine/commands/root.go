package commands

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lightsnake/engine/config"
	"github.com/lightsnake/engine/rules"
	"github.com/lightsnake/engine/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "engine",
	Short:   "engine runs multiplayer snake on a Lighthouse display",
	Version: version.Version,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		return setupLogging()
	},
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	RunE: func(c *cobra.Command, args []string) error {
		return runCmd.RunE(c, args)
	},
}

var (
	cfg      config.Config
	logLevel = "info"
	logJSON  = false
)

// Execute runs the root command
func Execute() {
	cfg = config.Load()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", logJSON, "log as json")
	rootCmd.PersistentFlags().DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "time between two ticks")
	rootCmd.PersistentFlags().IntVar(&cfg.InitialLength, "initial-length", cfg.InitialLength, "length of new snakes")
	rootCmd.PersistentFlags().IntVar(&cfg.InitialSnakes, "initial-snakes", cfg.InitialSnakes, "snakes on the board before anyone joins")
	rootCmd.PersistentFlags().StringVar(&cfg.StatusListen, "status-listen", cfg.StatusListen, "status api address, empty to disable")
	rootCmd.PersistentFlags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	rootCmd.PersistentFlags().StringVar(&cfg.PrometheusListen, "prometheus-listen", cfg.PrometheusListen, "prometheus http endpoint")
	addRunFlags()
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setupLogging() error {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	if logJSON {
		log.SetFormatter(&log.JSONFormatter{})
	}
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newArena() *rules.Arena {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return rules.NewArena(rules.NewState(cfg.Rules(), rng))
}
