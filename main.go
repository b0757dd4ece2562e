// ABOUTME: Entry point for the sampleflow player
// ABOUTME: Plays the configured source on the configured destination
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/sampleflow/internal/app"
	"github.com/Resonate-Protocol/sampleflow/internal/config"
	"github.com/Resonate-Protocol/sampleflow/internal/log"
	"github.com/Resonate-Protocol/sampleflow/internal/version"
)

func main() {
	cfg, err := config.Load("sampleflow", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := log.WithComponent("main")
	logger.WithField("version", version.Version).Infof("%s starting", version.Product)

	// Cancellation stops playback between samples
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := app.New(*cfg)
	stats, err := player.Run(ctx)
	if err != nil {
		logger.WithError(err).Error("Playback failed")
		os.Exit(1)
	}

	logger.WithFields(logrus.Fields{
		"played":  stats.Played,
		"dropped": stats.Dropped,
		"format":  stats.Format.String(),
	}).Info("Done")
}
