// Package parser converts explorer command strings into Query structs.
// No grammar beyond a handful of fixed shapes.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/duelset/types"
)

var verbAliases = map[string]string{
	// Show
	"info":    "show",
	"stats":   "show",
	"inspect": "show",
	"x":       "show",
	"s":       "show",
	"dex":     "show",

	// Chart
	"type":          "chart",
	"types":         "chart",
	"eff":           "chart",
	"effectiveness": "chart",
	"tc":            "chart",

	// Sample
	"draw":   "sample",
	"roll":   "sample",
	"random": "sample",

	// Roster
	"list": "roster",
	"ls":   "roster",
	"all":  "roster",

	// Help
	"?": "help",
	"h": "help",
}

// Words that introduce a matchup and are dropped before the "vs" split.
var matchupLeads = map[string]bool{
	"fight": true, "battle": true, "duel": true, "compare": true, "match": true,
}

var separators = map[string]bool{
	"vs": true, "vs.": true, "v": true, "versus": true, "against": true,
}

// Parse converts a raw command string into a Query.
func Parse(input string) types.Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Query{}
	}

	words := strings.Fields(strings.ToLower(input))
	words = expandMultiWordVerbs(words)

	if len(words) > 1 && matchupLeads[words[0]] {
		words = words[1:]
	}
	if i := indexOf(words, separators); i >= 0 {
		return parseMatchup(words, i)
	}

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}
	verb, rest := words[0], words[1:]

	switch verb {
	case "show":
		return types.Query{Verb: verb, Args: joined(rest)}
	case "chart":
		return types.Query{Verb: verb, Args: rest}
	case "sample":
		return parseSample(rest)
	default:
		return types.Query{Verb: verb, Args: rest}
	}
}

// expandMultiWordVerbs handles "look at", "type chart" and similar.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look":
		if words[1] == "at" || words[1] == "up" {
			return append([]string{"show"}, words[2:]...)
		}
	case "type":
		if words[1] == "chart" {
			return append([]string{"chart"}, words[2:]...)
		}
	case "show":
		if words[1] == "roster" || words[1] == "all" {
			return append([]string{"roster"}, words[2:]...)
		}
	}

	return words
}

// parseMatchup splits "<a> vs <b> [at la [lb]]" around the separator at i.
func parseMatchup(words []string, i int) types.Query {
	q := types.Query{Verb: "vs"}
	left := words[:i]
	right := words[i+1:]

	if at := indexOf(right, map[string]bool{"at": true, "@": true}); at >= 0 {
		q.Levels, q.Invalid = parseLevels(right[at+1:])
		right = right[:at]
	}
	q.Args = []string{strings.Join(left, " "), strings.Join(right, " ")}
	if q.Args[0] == "" || q.Args[1] == "" {
		q.Invalid = "vs"
	}
	return q
}

// parseLevels reads one or two positive integers.
func parseLevels(words []string) ([]int, string) {
	if len(words) == 0 || len(words) > 2 {
		return nil, strings.Join(append([]string{"at"}, words...), " ")
	}
	levels := make([]int, 0, len(words))
	for _, w := range words {
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			return nil, w
		}
		levels = append(levels, n)
	}
	return levels, ""
}

func parseSample(words []string) types.Query {
	q := types.Query{Verb: "sample", Count: 1}
	if len(words) == 0 {
		return q
	}
	n, err := strconv.Atoi(words[0])
	if err != nil || n < 1 || len(words) > 1 {
		q.Invalid = strings.Join(words, " ")
		return q
	}
	q.Count = n
	return q
}

func joined(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	return []string{strings.Join(words, " ")}
}

func indexOf(words []string, set map[string]bool) int {
	for i, w := range words {
		if set[w] {
			return i
		}
	}
	return -1
}
