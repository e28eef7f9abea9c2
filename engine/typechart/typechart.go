// Package typechart holds the 18-type effectiveness table and the rules for
// combining it across dual-typed attackers and defenders.
package typechart

import (
	"strings"

	"github.com/nathoo/duelset/types"
)

// Multipliers used by the chart.
const (
	Immune         = 0.0
	Resisted       = 0.5
	Neutral        = 1.0
	SuperEffective = 2.0
)

// All lists the 18 canonical types in chart order.
var All = []types.ElementalType{
	"Normal", "Fire", "Water", "Electric", "Grass", "Ice", "Fighting", "Poison", "Ground",
	"Flying", "Psychic", "Bug", "Rock", "Ghost", "Dragon", "Dark", "Steel", "Fairy",
}

type pair struct {
	atk, def types.ElementalType
}

// chart holds only the non-neutral entries. Built once; never mutated.
var chart = build()

var known = func() map[types.ElementalType]bool {
	m := make(map[types.ElementalType]bool, len(All))
	for _, t := range All {
		m[t] = true
	}
	return m
}()

func build() map[pair]float64 {
	m := map[pair]float64{}
	set := func(v float64, entries [][2]types.ElementalType) {
		for _, e := range entries {
			m[pair{e[0], e[1]}] = v
		}
	}

	set(Immune, [][2]types.ElementalType{
		{"Normal", "Ghost"},
		{"Fighting", "Ghost"},
		{"Poison", "Steel"},
		{"Ground", "Flying"},
		{"Ghost", "Normal"},
		{"Electric", "Ground"},
		{"Dragon", "Fairy"},
	})

	set(Resisted, [][2]types.ElementalType{
		{"Normal", "Rock"}, {"Normal", "Steel"},
		{"Fire", "Fire"}, {"Fire", "Water"},
		{"Fire", "Rock"}, {"Fire", "Dragon"},
		{"Water", "Water"}, {"Water", "Grass"},
		{"Water", "Dragon"},
		{"Electric", "Electric"}, {"Electric", "Grass"},
		{"Electric", "Dragon"},
		{"Grass", "Fire"}, {"Grass", "Grass"},
		{"Grass", "Poison"}, {"Grass", "Flying"},
		{"Grass", "Bug"}, {"Grass", "Dragon"},
		{"Grass", "Steel"},
		{"Ice", "Fire"}, {"Ice", "Water"},
		{"Ice", "Ice"}, {"Ice", "Steel"},
		{"Fighting", "Poison"}, {"Fighting", "Flying"},
		{"Fighting", "Psychic"}, {"Fighting", "Bug"},
		{"Fighting", "Fairy"},
		{"Poison", "Poison"}, {"Poison", "Ground"},
		{"Poison", "Rock"}, {"Poison", "Ghost"},
		{"Ground", "Bug"},
		{"Flying", "Rock"}, {"Flying", "Steel"},
		{"Flying", "Electric"},
		{"Psychic", "Psychic"}, {"Psychic", "Steel"},
		{"Bug", "Fighting"}, {"Bug", "Flying"},
		{"Bug", "Poison"}, {"Bug", "Ghost"},
		{"Bug", "Steel"}, {"Bug", "Fire"},
		{"Bug", "Fairy"},
		{"Rock", "Fighting"}, {"Rock", "Ground"},
		{"Rock", "Steel"},
		{"Ghost", "Dark"},
		{"Dragon", "Steel"},
		{"Dark", "Fighting"}, {"Dark", "Dark"},
		{"Dark", "Fairy"},
		{"Steel", "Steel"}, {"Steel", "Fire"},
		{"Steel", "Water"}, {"Steel", "Electric"},
		{"Fairy", "Fire"}, {"Fairy", "Poison"},
		{"Fairy", "Steel"},
	})

	set(SuperEffective, [][2]types.ElementalType{
		{"Fire", "Grass"}, {"Fire", "Ice"},
		{"Fire", "Bug"}, {"Fire", "Steel"},
		{"Water", "Fire"}, {"Water", "Ground"},
		{"Water", "Rock"},
		{"Electric", "Water"}, {"Electric", "Flying"},
		{"Grass", "Water"}, {"Grass", "Ground"},
		{"Grass", "Rock"},
		{"Ice", "Grass"}, {"Ice", "Ground"},
		{"Ice", "Flying"}, {"Ice", "Dragon"},
		{"Fighting", "Normal"}, {"Fighting", "Rock"},
		{"Fighting", "Steel"}, {"Fighting", "Ice"},
		{"Fighting", "Dark"},
		{"Poison", "Grass"}, {"Poison", "Fairy"},
		{"Ground", "Poison"}, {"Ground", "Rock"},
		{"Ground", "Steel"}, {"Ground", "Fire"},
		{"Ground", "Electric"},
		{"Flying", "Grass"}, {"Flying", "Fighting"},
		{"Flying", "Bug"},
		{"Psychic", "Fighting"}, {"Psychic", "Poison"},
		{"Bug", "Grass"}, {"Bug", "Psychic"},
		{"Bug", "Dark"},
		{"Rock", "Flying"}, {"Rock", "Bug"},
		{"Rock", "Fire"}, {"Rock", "Ice"},
		{"Ghost", "Psychic"}, {"Ghost", "Ghost"},
		{"Dragon", "Dragon"},
		{"Dark", "Psychic"}, {"Dark", "Ghost"},
		{"Steel", "Rock"}, {"Steel", "Ice"},
		{"Steel", "Fairy"},
		{"Fairy", "Fighting"}, {"Fairy", "Dragon"},
		{"Fairy", "Dark"},
	})

	return m
}

// Normalize trims s and title-cases it ("  fire " -> "Fire", "FAIRY" -> "Fairy").
// It does not check membership; see Known.
func Normalize(s string) types.ElementalType {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return types.ElementalType(strings.Join(words, " "))
}

// Known returns true if t is one of the 18 canonical types.
func Known(t types.ElementalType) bool {
	return known[t]
}

// Effectiveness returns the multiplier for atk attacking def.
// Unknown types on either side are neutral (1.0), never an error.
func Effectiveness(atk, def types.ElementalType) float64 {
	if v, ok := chart[pair{atk, def}]; ok {
		return v
	}
	return Neutral
}

// Combined multiplies the effectiveness of atk across every non-empty
// defending type. Empty slots contribute the identity.
func Combined(atk types.ElementalType, defs []types.ElementalType) float64 {
	if !known[atk] {
		return Neutral
	}
	mult := Neutral
	for _, d := range defs {
		if d == "" {
			continue
		}
		mult *= Effectiveness(atk, d)
	}
	return mult
}

// Best returns the highest Combined multiplier over the attacker's non-empty
// types: the attacker is assumed to always use its most effective type
// (best-of-attacker-types). With no attacking types the result is neutral.
func Best(atks, defs []types.ElementalType) float64 {
	best, found := 0.0, false
	for _, a := range atks {
		if a == "" {
			continue
		}
		m := Combined(a, defs)
		if !found || m > best {
			best, found = m, true
		}
	}
	if !found {
		return Neutral
	}
	return best
}
