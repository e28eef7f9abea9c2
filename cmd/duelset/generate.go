package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/nathoo/duelset/config"
	"github.com/nathoo/duelset/engine"
	"github.com/nathoo/duelset/export"
	"github.com/nathoo/duelset/loader"
	"github.com/nathoo/duelset/observe"
)

func runGenerate(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML run configuration")
	rosterPath := fs.String("roster", "", "roster file (.csv, .lua) or directory of .lua files")
	out := fs.String("out", "", "output path")
	format := fs.String("format", "", "output format: jsonl, csv, sqlite or postgres")
	pairs := fs.Int("pairs", 0, "number of pairs to draw")
	seed := fs.Int64("seed", 0, "RNG seed")
	levelLow := fs.Int("level-low", 0, "lowest level drawn")
	levelHigh := fs.Int("level-high", 0, "highest level drawn")
	workers := fs.Int("workers", 0, "featurize/label workers (0 = all CPUs)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Decode(*configPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "duelset: config file %q not found\n", *configPath)
			} else {
				fmt.Fprintf(os.Stderr, "duelset: %v\n", err)
			}
			return 1
		}
	}

	// Flags win over the file, but only when given. Validation runs after.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "roster":
			cfg.Roster = *rosterPath
		case "out":
			cfg.Output.Path = *out
		case "format":
			cfg.Output.Format = config.Format(*format)
		case "pairs":
			cfg.Sampling.Pairs = *pairs
		case "seed":
			cfg.Sampling.Seed = *seed
		case "level-low":
			cfg.Sampling.LevelLow = *levelLow
		case "level-high":
			cfg.Sampling.LevelHigh = *levelHigh
		case "workers":
			cfg.Sampling.Workers = *workers
		case "log-level":
			cfg.LogLevel = config.LogLevel(*logLevel)
		}
	})
	config.ApplyEnv(cfg)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "duelset: invalid configuration:\n%v\n", err)
		return 1
	}

	slog.SetDefault(newLogger(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := generate(ctx, cfg, os.Stdout); err != nil {
		slog.Error("generate failed", "err", err)
		return 1
	}
	return 0
}

// generate runs the full pipeline for cfg: load, sample, write, manifest and
// the metric summary line.
func generate(ctx context.Context, cfg *config.Config, w io.Writer) error {
	r, err := loader.Load(cfg.Roster)
	if err != nil {
		return err
	}
	slog.Info("roster loaded", "path", cfg.Roster, "creatures", r.Len())

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	met, err := observe.NewMetrics(mp)
	if err != nil {
		return err
	}

	s := &engine.Sampler{
		Roster:  r,
		Policy:  cfg.Policy.Labeler(),
		Workers: cfg.Sampling.Workers,
		Metrics: met,
	}
	run, err := s.Generate(ctx, cfg.Sampling.Params())
	if err != nil {
		return err
	}

	dest, err := writeRun(ctx, cfg, r.Len(), run)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s with %d rows\n", dest, len(run.Records))

	sum, err := observe.Collect(ctx, reader)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, sum.String())
	return nil
}

// writeRun stores run where cfg.Output points and returns a description of
// the destination.
func writeRun(ctx context.Context, cfg *config.Config, rosterSize int, run *engine.Run) (string, error) {
	o := cfg.Output
	if o.Format == config.FormatPostgres {
		sink, err := export.NewPostgresSink(ctx, o.PostgresDSN, o.Table)
		if err != nil {
			return "", err
		}
		defer sink.Close()
		if _, err := sink.Write(ctx, run.Records); err != nil {
			return "", err
		}
		return "postgres table " + o.Table, nil
	}

	if err := export.WriteFile(ctx, o.Path, string(o.Format), o.Table, run.Records); err != nil {
		return "", err
	}
	if !o.Manifest {
		return o.Path, nil
	}

	m, err := export.NewManifest(run, o.Path, string(o.Format), version)
	if err != nil {
		return "", err
	}
	m.Roster = cfg.Roster
	m.RosterSize = rosterSize
	mp := export.ManifestPath(o.Path)
	if err := export.WriteManifest(mp, m); err != nil {
		return "", err
	}
	slog.Debug("manifest written", "path", mp, "sha256", m.DataSha256)
	return o.Path, nil
}
