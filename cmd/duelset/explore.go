package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nathoo/duelset/cli"
	"github.com/nathoo/duelset/config"
	"github.com/nathoo/duelset/engine"
	"github.com/nathoo/duelset/export"
	"github.com/nathoo/duelset/loader"
	"github.com/nathoo/duelset/tui"
	"github.com/nathoo/duelset/types"
)

func runExplore(args []string) int {
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration for policy and level range")
	plain := fs.Bool("plain", false, "use the line-oriented interface")
	script := fs.String("script", "", "run commands from a file (implies --plain)")
	trace := fs.Bool("trace", false, "print score traces")
	seed := fs.Int64("seed", engine.DefaultSeed, "session RNG seed")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "duelset: %v\n", err)
			return 1
		}
	}
	rosterPath := fs.Arg(0)
	if rosterPath == "" {
		rosterPath = cfg.Roster
	}
	// Keep loader warnings off the TUI.
	logLevel := config.LogWarn
	if cfg.LogLevel == config.LogDebug {
		logLevel = config.LogDebug
	}
	slog.SetDefault(newLogger(logLevel))

	r, err := loader.Load(rosterPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading roster: %v\n", err)
		return 1
	}

	p := cfg.Sampling.Params()
	p.Seed = *seed
	eng := engine.New(r, cfg.Policy.Labeler(), p)
	banner := fmt.Sprintf("duelset %s: %s", version, rosterPath)

	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			return 1
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = *trace
		c.Banner = banner
		c.Run()
		return 0
	}

	if *plain || !isTerminal() {
		c := cli.New(eng)
		c.Trace = *trace
		c.Banner = banner
		c.Run()
		return 0
	}

	if err := tui.Run(eng, banner); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runVerify(args []string) int {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprint(os.Stderr, "Usage: duelset verify <data> [<manifest>]\n")
		return 2
	}
	data := args[0]
	manifest := export.ManifestPath(data)
	if len(args) == 2 {
		manifest = args[1]
	}

	m, err := export.Verify(data, manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify failed: %v\n", err)
		return 1
	}
	fmt.Printf("OK %s: %d rows, seed %d, sha256 %s\n", data, m.Rows, m.Seed, m.DataSha256)
	return 0
}

func runInspect(args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	table := fs.String("table", "train_pairs", "table to read from a SQLite file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprint(os.Stderr, "Usage: duelset inspect [--table t] <data.jsonl|data.csv|data.sqlite>\n")
		return 2
	}

	recs, err := readDataset(fs.Arg(0), *table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspect failed: %v\n", err)
		return 1
	}
	for _, line := range describeDataset(recs) {
		fmt.Println(line)
	}
	return 0
}

func readDataset(path, table string) ([]types.MatchupRecord, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite3"):
		return export.ReadSQLite(context.Background(), path, table)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.HasSuffix(lower, ".csv") {
		return export.ReadCSV(f)
	}
	return export.ReadJSONL(f)
}

// describeDataset summarises label balance, type-code spread and level range.
func describeDataset(recs []types.MatchupRecord) []string {
	if len(recs) == 0 {
		return []string{"rows: 0"}
	}
	var pos, self int
	var codes [4]int
	lo, hi := recs[0].LevelA, recs[0].LevelA
	names := map[string]bool{}
	for _, r := range recs {
		pos += r.Label
		if r.NameA == r.NameB {
			self++
		}
		if c := r.Features.TMAB; c >= 0 && c < len(codes) {
			codes[c]++
		}
		lo = min(lo, r.LevelA, r.LevelB)
		hi = max(hi, r.LevelA, r.LevelB)
		names[r.NameA] = true
		names[r.NameB] = true
	}
	n := len(recs)
	return []string{
		fmt.Sprintf("rows: %d", n),
		fmt.Sprintf("y=1: %d (%.1f%%)  y=0: %d", pos, 100*float64(pos)/float64(n), n-pos),
		fmt.Sprintf("tm_ab codes: 0=%d 1=%d 2=%d 3=%d", codes[0], codes[1], codes[2], codes[3]),
		fmt.Sprintf("levels: %d..%d", lo, hi),
		fmt.Sprintf("creatures: %d", len(names)),
		fmt.Sprintf("same-name pairs: %d", self),
	}
}
