// Package roster holds the immutable set of creatures a run samples from,
// with name lookups for the explorer.
package roster

import (
	"strings"

	"github.com/nathoo/duelset/types"
)

// Roster is the loaded creature list. Read-only after New.
type Roster struct {
	creatures []types.Creature
	byName    map[string]int // lower-cased name → first index
}

// New builds a roster over cs. Names are not required to be unique; lookups
// resolve to the first creature with a given name.
func New(cs []types.Creature) *Roster {
	r := &Roster{
		creatures: make([]types.Creature, len(cs)),
		byName:    make(map[string]int, len(cs)),
	}
	copy(r.creatures, cs)
	for i, c := range r.creatures {
		key := strings.ToLower(c.Name)
		if _, ok := r.byName[key]; !ok {
			r.byName[key] = i
		}
	}
	return r
}

// Len returns the number of creatures.
func (r *Roster) Len() int {
	return len(r.creatures)
}

// At returns the creature at index i.
func (r *Roster) At(i int) types.Creature {
	return r.creatures[i]
}

// All returns a copy of the creature list in load order.
func (r *Roster) All() []types.Creature {
	out := make([]types.Creature, len(r.creatures))
	copy(out, r.creatures)
	return out
}

// Lookup finds a creature by case-insensitive exact name.
func (r *Roster) Lookup(name string) (int, bool) {
	i, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return i, ok
}

// Names returns every creature name in load order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.creatures))
	for i, c := range r.creatures {
		names[i] = c.Name
	}
	return names
}

// Duplicates returns names that appear more than once, in first-seen order.
func (r *Roster) Duplicates() []string {
	seen := map[string]int{}
	var dups []string
	for _, c := range r.creatures {
		key := strings.ToLower(c.Name)
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, c.Name)
		}
	}
	return dups
}
