// Duelset builds labeled creature-matchup datasets and explores the labeler
// interactively.
//
// Usage:
//
//	duelset generate [flags]
//	duelset explore [--plain] [--script <file>] [--trace] [--seed <n>] <roster>
//	duelset verify <data> [<manifest>]
//	duelset inspect <data.jsonl|data.csv>
//	duelset --version
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/nathoo/duelset/config"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `Usage:
  duelset generate [--config f] [--roster f] [--out f] [--format f] [--pairs n]
                   [--seed n] [--level-low n] [--level-high n] [--workers n]
                   [--log-level l]
  duelset explore [--plain] [--script f] [--trace] [--seed n] <roster>
  duelset verify <data> [<manifest>]
  duelset inspect <data.jsonl|data.csv>
  duelset --version
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// A missing .env is the common case.
	_ = godotenv.Load()

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	switch args[0] {
	case "--version", "version":
		fmt.Printf("duelset %s (commit %s, built %s)\n", version, commit, date)
		return 0
	case "generate":
		return runGenerate(args[1:])
	case "explore":
		return runExplore(args[1:])
	case "verify":
		return runVerify(args[1:])
	case "inspect":
		return runInspect(args[1:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "duelset: unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

// newLogger builds a text logger on stderr at the given level.
func newLogger(level config.LogLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level.Slog()}))
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
