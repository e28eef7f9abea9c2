package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/duelset/engine"
	"github.com/nathoo/duelset/export"
)

// metaCommand runs a slash command. It returns output lines and whether the
// program should exit.
type metaCommand func(m *Model, args []string) ([]string, bool)

var metaCommands = map[string]metaCommand{
	"/quit":   cmdQuit,
	"/exit":   cmdQuit,
	"/help":   cmdHelp,
	"/seed":   cmdSeed,
	"/state":  cmdState,
	"/export": cmdExport,
	"/clear":  cmdClear,
	"/trace":  cmdTrace,
}

func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd, ok := metaCommands[strings.ToLower(parts[0])]
	if !ok {
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", parts[0])}, false
	}
	return cmd(m, parts[1:])
}

func cmdQuit(*Model, []string) ([]string, bool) {
	return []string{"Goodbye."}, true
}

func cmdTrace(m *Model, _ []string) ([]string, bool) {
	m.trace = !m.trace
	if m.trace {
		return []string{"Trace output enabled."}, false
	}
	return []string{"Trace output disabled."}, false
}

func cmdClear(m *Model, _ []string) ([]string, bool) {
	n := len(m.engine.Session)
	m.engine.Session = nil
	return []string{fmt.Sprintf("Cleared %d session records.", n)}, false
}

// cmdSeed handles "/seed [n [position]]".
func cmdSeed(m *Model, args []string) ([]string, bool) {
	e := m.engine
	if len(args) == 0 {
		return []string{fmt.Sprintf("Seed: %d", e.RNG.Seed())}, false
	}
	seed, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return []string{fmt.Sprintf("Bad seed %q: want an integer.", args[0])}, false
	}
	if len(args) == 1 {
		e.Reseed(seed)
		return []string{fmt.Sprintf("Reseeded with %d.", seed)}, false
	}
	pos, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || pos < 0 {
		return []string{fmt.Sprintf("Bad RNG position %q: want a non-negative integer.", args[1])}, false
	}
	e.RestoreRNG(seed, pos)
	return []string{fmt.Sprintf("Restored seed %d at position %d.", seed, pos)}, false
}

func cmdExport(m *Model, args []string) ([]string, bool) {
	if len(args) == 0 {
		return []string{"Usage: /export <path.jsonl|path.csv>"}, false
	}
	path := args[0]
	session := m.engine.Session
	if len(session) == 0 {
		return []string{"Nothing to export yet."}, false
	}
	format := export.FormatJSONL
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		format = export.FormatCSV
	}
	if err := export.WriteFile(context.Background(), path, format, "", session); err != nil {
		return []string{fmt.Sprintf("Export failed: %v", err)}, false
	}
	return []string{fmt.Sprintf("Wrote %s with %d rows", path, len(session))}, false
}

func cmdHelp(*Model, []string) ([]string, bool) {
	help := []string{
		"System:",
		"  /seed [n [pos]] Show, reset or restore the session RNG",
		"  /state          Show seed, RNG position and session size",
		"  /export <path>  Write session records as JSONL (or CSV by extension)",
		"  /clear          Drop session records",
		"  /trace          Toggle score trace output",
		"  /help           Show this help",
		"  /quit           Exit",
		"",
	}
	help = append(help, engine.HelpLines()...)
	help = append(help, "  again (g)                     Repeat the last command", "")

	var nav []string
	for _, b := range []struct{ k, d string }{
		{keys.Older.Help().Key, keys.Older.Help().Desc},
		{keys.Newer.Help().Key, keys.Newer.Help().Desc},
		{keys.Complete.Help().Key, keys.Complete.Help().Desc},
		{keys.Scroll.Help().Key, keys.Scroll.Help().Desc},
		{keys.Quit.Help().Key, keys.Quit.Help().Desc},
	} {
		nav = append(nav, b.k+" "+b.d)
	}
	return append(help, "Keys: "+strings.Join(nav, ", ")), false
}

func cmdState(m *Model, _ []string) ([]string, bool) {
	e := m.engine
	return []string{
		fmt.Sprintf("Seed: %d", e.RNG.Seed()),
		fmt.Sprintf("RNG position: %d", e.RNG.Position()),
		fmt.Sprintf("Roster: %d creatures", e.Roster.Len()),
		fmt.Sprintf("Session: %d records", len(e.Session)),
		fmt.Sprintf("Levels: %d-%d", e.Params.LevelLow, e.Params.LevelHigh),
	}, false
}
