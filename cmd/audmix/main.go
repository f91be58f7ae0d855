// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/raw"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/output"
)

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running mixer", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := mixer.DefaultConfig()

	app := cli.NewApp()
	app.Name = "audmix"
	app.Description = "Mix PCM samples on a fixed pool of voices"
	app.Usage = "audmix [options] <sample file>..."
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:   "voices",
			Usage:  "Number of mixer voices (raised to the number of files)",
			EnvVar: "AUDMIX_VOICES",
			Value:  defaults.VoiceCount,
		},
		cli.IntFlag{
			Name:   "buffer-size",
			Usage:  "Output buffer size in bytes",
			EnvVar: "AUDMIX_BUFFER_SIZE",
			Value:  defaults.BufferSize,
		},
		cli.IntFlag{
			Name:   "channels",
			Usage:  "Output channels (1 or 2)",
			EnvVar: "AUDMIX_CHANNELS",
			Value:  defaults.ChannelCount,
		},
		cli.IntFlag{
			Name:   "bits",
			Usage:  "Output bits per sample (8 or 16)",
			EnvVar: "AUDMIX_BITS",
			Value:  defaults.BitsPerSample,
		},
		cli.BoolTFlag{
			Name:   "signed",
			Usage:  "Signed output samples",
			EnvVar: "AUDMIX_SIGNED",
		},
		cli.IntFlag{
			Name:   "rate",
			Usage:  "Output sample rate in Hz",
			EnvVar: "AUDMIX_RATE",
			Value:  defaults.SampleRate,
		},
		cli.BoolFlag{
			Name:   "convert",
			Usage:  "Convert bit depth and channel count of mismatching samples",
			EnvVar: "AUDMIX_CONVERT",
		},
		cli.BoolFlag{
			Name:  "loop",
			Usage: "Loop every sample until interrupted or --duration passes",
		},
		cli.Float64Flag{
			Name:  "level",
			Usage: "Level applied to every voice (0..1)",
			Value: 1,
		},
		cli.Float64Flag{
			Name:  "tone",
			Usage: "Add a sine tone at this frequency in Hz on its own voice (0 = none)",
		},
		cli.StringFlag{
			Name:   "out",
			Usage:  "Render into this WAV file instead of playing",
			EnvVar: "AUDMIX_OUT",
		},
		cli.DurationFlag{
			Name:  "duration",
			Usage: "Stop after this long (0 = when all samples are done)",
		},
		cli.BoolFlag{
			Name:   "verbose",
			Usage:  "Enable debug logging",
			EnvVar: "AUDMIX_VERBOSE",
		},
	}
	app.Action = run

	return app
}

// configFromFlags builds the mixer configuration from the command line.
func configFromFlags(c *cli.Context) mixer.Config {
	return mixer.Config{
		VoiceCount:      c.Int("voices"),
		BufferSize:      c.Int("buffer-size"),
		ChannelCount:    c.Int("channels"),
		BitsPerSample:   c.Int("bits"),
		SamplesSigned:   c.BoolT("signed"),
		SampleRate:      c.Int("rate"),
		AllowConversion: c.Bool("convert"),
	}
}

func run(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := configFromFlags(c)

	samples, closeAll, err := loadSamples(c.Args(), cfg.Format(), c.Float64("tone"))
	if err != nil {
		return err
	}
	defer closeAll()

	if len(samples) == 0 {
		cli.ShowAppHelp(c)
		return errors.New("no sample files provided")
	}
	cfg.VoiceCount = max(cfg.VoiceCount, len(samples))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if d := c.Duration("duration"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	loop := c.Bool("loop")
	if loop && c.Duration("duration") <= 0 && c.String("out") != "" {
		return errors.New("rendering looped samples requires --duration")
	}

	play := func(m *mixer.Mixer) error {
		for i, s := range samples {
			v, err := m.Voice(i)
			if err != nil {
				return err
			}
			if err := v.SetLevel(c.Float64("level")); err != nil {
				return err
			}
			if err := v.Play(s, loop); err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
		}

		return nil
	}

	if out := c.String("out"); out != "" {
		return render(ctx, logger, out, cfg, play)
	}

	return speak(ctx, logger, cfg, play)
}

// loadSamples opens every file through the registry. A tone, when asked
// for, is appended as one more sample.
func loadSamples(paths []string, f audio.Format, tone float64) ([]audio.Sample, func(), error) {
	reg := audmix.NewRegistry()

	var (
		samples []audio.Sample
		files   []*os.File
	)
	closeAll := func() {
		for _, file := range files {
			file.Close()
		}
	}

	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, file)

		s, err := reg.Load(filepath.Ext(path), file)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		slog.Debug("sample loaded", "path", path, "format", s.Format())
		samples = append(samples, s)
	}

	if tone > 0 {
		// One second of tone.
		s, err := raw.Sine(f, tone, 0.5, f.SampleRate)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		samples = append(samples, s)
	}

	return samples, closeAll, nil
}

func render(ctx context.Context, logger *slog.Logger, path string, cfg mixer.Config, play func(*mixer.Mixer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rec, err := output.NewRecorder(file, cfg.Format())
	if err != nil {
		return err
	}

	start := time.Now()
	err = mixer.With(cfg, func(m *mixer.Mixer) error {
		if err := play(m); err != nil {
			return err
		}

		err := m.RunUntilIdle(ctx, rec)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}, mixer.WithLogger(logger))

	// The header is finalized whatever happened, so a partial render is
	// still a readable file.
	if cerr := rec.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.Info("Render completed", "path", path, "frames", rec.Frames(), "took", time.Since(start))

	return nil
}

func speak(ctx context.Context, logger *slog.Logger, cfg mixer.Config, play func(*mixer.Mixer) error) error {
	spk, err := output.NewSpeaker(cfg.Format(), 0)
	if err != nil {
		return err
	}

	return mixer.With(cfg, func(m *mixer.Mixer) error {
		if err := play(m); err != nil {
			return err
		}
		if err := spk.Start(m.Reader()); err != nil {
			return err
		}

		logger.Info("Playing", "format", cfg.Format(), "voices", cfg.VoiceCount)

		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := spk.Err(); err != nil {
					return err
				}
				playing, err := m.Playing()
				if err != nil {
					return err
				}
				if !playing {
					return nil
				}
			}
		}
	}, mixer.WithLogger(logger), mixer.WithClaim(spk))
}
