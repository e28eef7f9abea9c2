// Package resolve maps creature names typed in the explorer to roster indices.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/nathoo/duelset/engine/roster"
)

// SuggestThreshold is the minimum Jaro-Winkler similarity for a name to be
// offered as a suggestion.
const SuggestThreshold = 0.8

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// Pair holds the resolved indices for a matchup.
type Pair struct {
	A, B int
}

// AmbiguityError indicates multiple creatures matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no creature matched a name.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no creature named %q", e.Name)
	}
	return fmt.Sprintf("no creature named %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// Name resolves a single name to a roster index.
func Name(r *roster.Roster, name string) (int, error) {
	name = strings.TrimSpace(name)

	// 1. Exact, case-insensitive. Duplicates resolve to the first entry.
	if i, ok := r.Lookup(name); ok {
		return i, nil
	}

	// 2. Word or prefix match: "mime" matches "Mr. Mime", "chari" matches "Charizard".
	nameLower := strings.ToLower(name)
	var matches []int
	seen := map[string]bool{}
	for i, cand := range r.Names() {
		key := strings.ToLower(cand)
		if seen[key] || !matchesName(key, nameLower) {
			continue
		}
		seen[key] = true
		matches = append(matches, i)
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return 0, &NotFoundError{Name: name, Suggestions: suggest(r, nameLower)}
	default:
		cands := make([]string, len(matches))
		for i, idx := range matches {
			cands[i] = r.At(idx).Name
		}
		return 0, &AmbiguityError{Name: name, Candidates: cands}
	}
}

// Matchup resolves both sides of a matchup.
func Matchup(r *roster.Roster, a, b string) (Pair, error) {
	var p Pair
	var err error
	if p.A, err = Name(r, a); err != nil {
		return p, err
	}
	if p.B, err = Name(r, b); err != nil {
		return p, err
	}
	return p, nil
}

func matchesName(candLower, nameLower string) bool {
	if nameLower == "" {
		return false
	}
	if strings.HasPrefix(candLower, nameLower) {
		return true
	}
	for _, word := range strings.Fields(candLower) {
		if word == nameLower || strings.TrimRight(word, ".") == nameLower {
			return true
		}
	}
	return false
}

// suggest ranks roster names by Jaro-Winkler similarity to nameLower.
func suggest(r *roster.Roster, nameLower string) []string {
	if nameLower == "" {
		return nil
	}
	type scored struct {
		name  string
		score float64
	}
	var hits []scored
	seen := map[string]bool{}
	for _, cand := range r.Names() {
		key := strings.ToLower(cand)
		if seen[key] {
			continue
		}
		seen[key] = true
		if s := matchr.JaroWinkler(nameLower, key, false); s >= SuggestThreshold {
			hits = append(hits, scored{cand, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	out := make([]string, 0, min(len(hits), maxSuggestions))
	for _, h := range hits {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, h.name)
	}
	return out
}
