// Package cli provides the line-oriented explorer: terminal I/O, output
// formatting and meta-command dispatch around engine.Step.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/duelset/engine"
	"github.com/nathoo/duelset/export"
	"github.com/nathoo/duelset/types"
)

// CLI handles terminal interaction with the user.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	Banner    string // printed once before the first prompt
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run reads commands until EOF or /quit.
func (c *CLI) Run() {
	if c.Banner != "" {
		c.printLine(c.Banner)
	}
	c.printLine(fmt.Sprintf("%d creatures loaded. Type help for commands, /help for system commands.", c.Engine.Roster.Len()))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)
		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the loop should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/seed":
		c.cmdSeed(parts[1:])

	case "/state":
		c.cmdState()

	case "/export":
		c.cmdExport(arg)

	case "/clear":
		n := len(c.Engine.Session)
		c.Engine.Session = nil
		c.printSystem(fmt.Sprintf("Cleared %d session records.", n))

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// cmdSeed handles "/seed [n [position]]".
func (c *CLI) cmdSeed(args []string) {
	e := c.Engine
	if len(args) == 0 {
		c.printSystem(fmt.Sprintf("Seed: %d", e.RNG.Seed()))
		return
	}
	seed, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		c.printSystem(fmt.Sprintf("Bad seed %q: want an integer.", args[0]))
		return
	}
	if len(args) == 1 {
		e.Reseed(seed)
		c.printSystem(fmt.Sprintf("Reseeded with %d.", seed))
		return
	}
	pos, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || pos < 0 {
		c.printSystem(fmt.Sprintf("Bad RNG position %q: want a non-negative integer.", args[1]))
		return
	}
	e.RestoreRNG(seed, pos)
	c.printSystem(fmt.Sprintf("Restored seed %d at position %d.", seed, pos))
}

func (c *CLI) cmdExport(path string) {
	if path == "" {
		c.printSystem("Usage: /export <path.jsonl|path.csv>")
		return
	}
	if len(c.Engine.Session) == 0 {
		c.printSystem("Nothing to export yet.")
		return
	}
	format := export.FormatJSONL
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		format = export.FormatCSV
	}
	if err := export.WriteFile(context.Background(), path, format, "", c.Engine.Session); err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Wrote %s with %d rows", path, len(c.Engine.Session)))
}

func (c *CLI) cmdHelp() {
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
	help = append(help, "  again (g)                     Repeat the last command")
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	e := c.Engine
	c.printSystem(fmt.Sprintf("Seed: %d", e.RNG.Seed()))
	c.printSystem(fmt.Sprintf("RNG position: %d", e.RNG.Position()))
	c.printSystem(fmt.Sprintf("Roster: %d creatures", e.Roster.Len()))
	c.printSystem(fmt.Sprintf("Session: %d records", len(e.Session)))
	c.printSystem(fmt.Sprintf("Levels: %d-%d", e.Params.LevelLow, e.Params.LevelHigh))
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range result.Trace {
		c.printSystem("[trace] " + line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
