package commands

import (
	"context"
	"time"

	"github.com/lightsnake/engine/api"
	"github.com/lightsnake/engine/controller"
	"github.com/lightsnake/engine/lighthouse"
	"github.com/lightsnake/engine/rules"
	"github.com/lightsnake/engine/session"
	"github.com/lightsnake/engine/worker"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:    "run",
	Short:  "runs snake on the Lighthouse display",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	RunE: func(c *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()
		return runLighthouse(ctx)
	},
}

func addRunFlags() {
	runCmd.Flags().StringVarP(&cfg.LighthouseUser, "user", "u", cfg.LighthouseUser, "lighthouse user (LIGHTHOUSE_USER)")
	runCmd.Flags().StringVarP(&cfg.LighthouseToken, "token", "t", cfg.LighthouseToken, "lighthouse api token (LIGHTHOUSE_TOKEN)")
	runCmd.Flags().StringVar(&cfg.LighthouseURL, "url", cfg.LighthouseURL, "lighthouse websocket url (LIGHTHOUSE_URL)")
}

func runLighthouse(ctx context.Context) error {
	if cfg.LighthouseUser == "" || cfg.LighthouseToken == "" {
		return errors.New("a lighthouse user and token are required")
	}

	auth := lighthouse.Authentication{
		Username: cfg.LighthouseUser,
		Token:    cfg.LighthouseToken,
	}
	client, err := lighthouse.Connect(ctx, cfg.LighthouseURL, auth, cfg.LighthouseOptions())
	if err != nil {
		return err
	}
	defer client.Close()
	log.WithFields(log.Fields{
		"url":  cfg.LighthouseURL,
		"user": cfg.LighthouseUser,
	}).Info("connected to lighthouse")

	input, err := client.StreamInput(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to stream input")
	}
	defer input.Close()

	return play(ctx, newArena(), input, client)
}

// play runs a session that draws to display and to status api viewers.
func play(ctx context.Context, arena *rules.Arena, input controller.Source, display worker.Sink) error {
	hub := api.NewHub()
	sess := session.New(arena, worker.Sinks(display, hub), cfg.TickInterval)

	if cfg.StatusListen != "" {
		srv := api.New(cfg.StatusListen, arena, sess.Router, hub)
		go func() {
			log.WithField("listen", cfg.StatusListen).Info("status api serving")
			if err := srv.WaitForExit(); err != nil {
				log.WithError(err).
					WithField("listen", cfg.StatusListen).
					Warn("status api failed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	err := sess.Run(ctx, input)
	if errors.Cause(err) == context.Canceled {
		return nil
	}
	return err
}
