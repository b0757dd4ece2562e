// ABOUTME: Command-line and environment configuration
// ABOUTME: Flags take precedence over SAMPLEFLOW_* variables, optionally from .env
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Failure policies for rejected samples
const (
	OnErrorAbort = "abort"
	OnErrorDrop  = "drop"
	OnErrorRetry = "retry"
)

// Config holds the configuration for the player and stream server
type Config struct {
	Source     string // tone, chord, sweep, silence, a file path or a ws:// URL
	Output     string // oto, portaudio, null or a .wav/.pcm path
	Frequency  float64
	Amplitude  float64
	Duration   time.Duration
	SampleRate int
	Channels   int
	BitDepth   int
	Volume     int
	OnError    string
	Retries    int
	LogLevel   string
	Addr       string
}

// Default returns the built-in defaults: a quarter second of A4 at 20%
// amplitude on the default device.
func Default() Config {
	return Config{
		Source:     "tone",
		Output:     "oto",
		Frequency:  440,
		Amplitude:  0.20,
		Duration:   250 * time.Millisecond,
		SampleRate: 48000,
		Channels:   1,
		BitDepth:   16,
		Volume:     100,
		OnError:    OnErrorAbort,
		Retries:    3,
		LogLevel:   "info",
		Addr:       ":8928",
	}
}

// Load builds a Config from defaults, the environment (after loading .env if
// present) and finally the given command-line arguments.
func Load(name string, args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()
	if err := cfg.fromEnv(); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Source, "source", cfg.Source, "Sample source: tone, chord, sweep, silence, a .wav/.mp3/.flac file or a ws:// URL")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Sample destination: oto, portaudio, null or a .wav/.pcm file")
	fs.Float64Var(&cfg.Frequency, "freq", cfg.Frequency, "Generator frequency in Hz")
	fs.Float64Var(&cfg.Amplitude, "amplitude", cfg.Amplitude, "Generator amplitude (0-1)")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "Generator duration")
	fs.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "Generator sample rate (Hz)")
	fs.IntVar(&cfg.Channels, "channels", cfg.Channels, "Generator channel count")
	fs.IntVar(&cfg.BitDepth, "bit-depth", cfg.BitDepth, "Bit depth for file outputs")
	fs.IntVar(&cfg.Volume, "volume", cfg.Volume, "Device volume (0-100)")
	fs.StringVar(&cfg.OnError, "on-error", cfg.OnError, "Rejected sample policy: abort, drop or retry")
	fs.IntVar(&cfg.Retries, "retries", cfg.Retries, "Extra attempts per rejected sample with -on-error=retry")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address for the stream server")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source must not be empty")
	}
	if c.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("invalid frequency: %v", c.Frequency)
	}
	if c.Amplitude < 0 || c.Amplitude > 1 {
		return fmt.Errorf("invalid amplitude: %v (must be 0-1)", c.Amplitude)
	}
	if c.Duration < 0 {
		return fmt.Errorf("invalid duration: %v", c.Duration)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", c.SampleRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", c.Channels)
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("invalid volume: %d (must be 0-100)", c.Volume)
	}
	switch c.OnError {
	case OnErrorAbort, OnErrorDrop, OnErrorRetry:
	default:
		return fmt.Errorf("invalid on-error policy: %s (must be abort, drop or retry)", c.OnError)
	}
	if c.Retries < 0 {
		return fmt.Errorf("invalid retries: %d", c.Retries)
	}
	return nil
}

func (c *Config) fromEnv() error {
	c.Source = getEnv("SAMPLEFLOW_SOURCE", c.Source)
	c.Output = getEnv("SAMPLEFLOW_OUTPUT", c.Output)
	c.OnError = getEnv("SAMPLEFLOW_ON_ERROR", c.OnError)
	c.LogLevel = getEnv("SAMPLEFLOW_LOG_LEVEL", c.LogLevel)
	c.Addr = getEnv("SAMPLEFLOW_ADDR", c.Addr)

	if v := getEnv("SAMPLEFLOW_FREQUENCY", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SAMPLEFLOW_FREQUENCY: %w", err)
		}
		c.Frequency = f
	}
	if v := getEnv("SAMPLEFLOW_AMPLITUDE", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SAMPLEFLOW_AMPLITUDE: %w", err)
		}
		c.Amplitude = f
	}
	if v := getEnv("SAMPLEFLOW_DURATION", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SAMPLEFLOW_DURATION: %w", err)
		}
		c.Duration = d
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SAMPLEFLOW_SAMPLE_RATE", &c.SampleRate},
		{"SAMPLEFLOW_CHANNELS", &c.Channels},
		{"SAMPLEFLOW_BIT_DEPTH", &c.BitDepth},
		{"SAMPLEFLOW_VOLUME", &c.Volume},
		{"SAMPLEFLOW_RETRIES", &c.Retries},
	}
	for _, kv := range ints {
		if v := getEnv(kv.key, ""); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", kv.key, err)
			}
			*kv.dst = n
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
