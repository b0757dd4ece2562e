// ABOUTME: Player application orchestration
// ABOUTME: Drives the sample loop and applies the configured failure policy
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/sampleflow/internal/config"
	"github.com/Resonate-Protocol/sampleflow/internal/log"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// cancelCheckInterval is how many samples pass between context checks
const cancelCheckInterval = 1024

// Stats summarizes one run
type Stats struct {
	Played   int64
	Dropped  int64
	Retried  int64
	Elapsed  time.Duration
	Format   audio.Format
	Canceled bool
}

// Player moves samples from the configured source to the configured
// destination
type Player struct {
	config config.Config
	runID  string
	log    *logrus.Entry
}

// New creates a new player
func New(cfg config.Config) *Player {
	runID := uuid.NewString()
	return &Player{
		config: cfg,
		runID:  runID,
		log:    log.WithComponent("player").WithField("run", runID),
	}
}

// RunID identifies this player in logs
func (p *Player) RunID() string {
	return p.runID
}

// Run opens the source and destination, plays everything and drains the
// destination before returning
func (p *Player) Run(ctx context.Context) (Stats, error) {
	start := time.Now()

	in, err := OpenSource(ctx, p.config)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open source %q: %w", p.config.Source, err)
	}
	defer in.Close()

	sink, err := OpenSink(p.config, in.Format)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open output %q: %w", p.config.Output, err)
	}

	// Closing the input unblocks a source stalled in ReadSample
	stopClose := context.AfterFunc(ctx, func() { in.Close() })
	defer stopClose()

	fields := logrus.Fields{
		"source": p.config.Source,
		"output": p.config.Output,
		"format": in.Format.String(),
	}
	if in.Length >= 0 {
		fields["expected"] = in.Length
	}
	p.log.WithFields(fields).Info("Playback started")

	stats, runErr := p.Pump(ctx, sink, in)
	stats.Format = in.Format

	if runErr == nil && !stats.Canceled {
		if err := sink.Drain(); err != nil {
			runErr = fmt.Errorf("drain failed: %w", err)
		}
	}
	if err := sink.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close failed: %w", err)
	}
	stats.Elapsed = time.Since(start)

	entry := p.log.WithFields(logrus.Fields{
		"played":  stats.Played,
		"dropped": stats.Dropped,
		"retried": stats.Retried,
		"elapsed": stats.Elapsed.Round(time.Millisecond),
	})
	switch {
	case runErr != nil:
		entry.WithError(runErr).Error("Playback failed")
	case stats.Canceled:
		entry.Warn("Playback canceled")
	default:
		entry.Info("Playback finished")
	}
	return stats, runErr
}

// Pump pulls samples from src until io.EOF and plays them on dst in order.
// Rejected samples are handled by the configured policy: abort returns the
// playback error, drop skips the sample, retry replays it up to Retries
// more times before aborting. Cancellation is checked between samples, and a
// read failing after cancellation counts as canceled.
func (p *Player) Pump(ctx context.Context, dst audio.Destination, src audio.Reader) (Stats, error) {
	var stats Stats
	for i := 0; ; i++ {
		if i%cancelCheckInterval == 0 && ctx.Err() != nil {
			stats.Canceled = true
			return stats, nil
		}

		s, err := src.ReadSample()
		if err != nil {
			if ctx.Err() != nil {
				stats.Canceled = true
				return stats, nil
			}
			if errors.Is(err, io.EOF) {
				return stats, nil
			}
			return stats, fmt.Errorf("source failed: %w", err)
		}

		if err := p.deliver(dst, s, &stats); err != nil {
			return stats, err
		}
	}
}

func (p *Player) deliver(dst audio.Destination, s audio.Sample, stats *Stats) error {
	for attempt := 0; ; attempt++ {
		err := dst.Play(s)
		if err == nil {
			stats.Played++
			return nil
		}

		switch p.config.OnError {
		case config.OnErrorDrop:
			stats.Dropped++
			p.log.WithError(err).Debug("Sample dropped")
			return nil
		case config.OnErrorRetry:
			if attempt < p.config.Retries {
				stats.Retried++
				continue
			}
		}
		return err
	}
}
