// ABOUTME: Entry point for the sample stream server
// ABOUTME: Serves the configured source to every WebSocket client at /stream
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/sampleflow/internal/app"
	"github.com/Resonate-Protocol/sampleflow/internal/config"
	"github.com/Resonate-Protocol/sampleflow/internal/log"
	"github.com/Resonate-Protocol/sampleflow/internal/version"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
	"github.com/Resonate-Protocol/sampleflow/pkg/stream"
)

func main() {
	cfg, err := config.Load("sampleflow-serve", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := log.WithComponent("serve")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/stream", &stream.Handler{Open: opener(ctx, *cfg), Batch: stream.DefaultBatch})

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"version": version.Version,
		"addr":    cfg.Addr,
		"source":  cfg.Source,
	}).Infof("%s stream server listening", version.Product)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}

// opener builds a fresh producer per connection. ?source= may select one of
// the built-in generators; files and URLs come only from the server's own
// configuration.
func opener(ctx context.Context, cfg config.Config) stream.OpenFunc {
	return func(r *http.Request) (audio.Reader, audio.Format, error) {
		c := cfg
		if s := r.URL.Query().Get("source"); s != "" {
			var err error
			if c, err = app.WithGenerator(cfg, s); err != nil {
				return nil, audio.Format{}, err
			}
		}
		in, err := app.OpenSource(ctx, c)
		if err != nil {
			return nil, audio.Format{}, err
		}
		return in, in.Format, nil
	}
}
