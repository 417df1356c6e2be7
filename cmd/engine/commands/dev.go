package commands

import (
	"context"
	"io"
	"os"

	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var devLogFile = ""

func init() {
	devCmd.Flags().StringVar(&devLogFile, "log-file", devLogFile, "write logs to this file while the terminal is in use")
}

var devCmd = &cobra.Command{
	Use:    "dev",
	Short:  "plays snake in the terminal, two players on one keyboard",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	RunE: func(c *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()
		return runDev(ctx)
	},
}

func runDev(ctx context.Context) error {
	if devLogFile != "" {
		f, err := os.OpenFile(devLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(err, "unable to open log file")
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}
	defer log.SetOutput(os.Stderr)

	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "unable to start terminal")
	}
	defer termbox.Close()
	defer termbox.Interrupt()
	termbox.SetOutputMode(termbox.Output256)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	arena := newArena()
	keys := &keyboard{events: setupEventQueue(), quit: cancel}

	return play(ctx, arena, keys, &terminal{})
}
