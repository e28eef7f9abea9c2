// Package types defines the shared data structures for duelset.
// This package contains only type definitions and trivial accessors.
package types

// ElementalType is a canonical, title-cased type name such as "Fire".
// The empty string means "no type" and is skipped wherever types combine.
type ElementalType string

// Stats holds the six base stats of a creature.
type Stats struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// Sum returns the sum of the six base stats.
func (s Stats) Sum() int {
	return s.HP + s.Attack + s.Defense + s.SpAttack + s.SpDefense + s.Speed
}

// Creature is one roster entry. Immutable once loaded.
type Creature struct {
	Name  string
	Type1 ElementalType
	Type2 ElementalType // optional
	Stats Stats
	Total *int // optional precomputed total; nil derives from Stats
}

// Types returns the creature's type slots in order. The second slot may be empty.
func (c Creature) Types() []ElementalType {
	return []ElementalType{c.Type1, c.Type2}
}

// Features is the fixed-schema feature vector for an ordered pair A vs B.
type Features struct {
	TMAB    int // type multiplier code, A attacking B
	TMBA    int // type multiplier code, B attacking A
	DHP     int
	DAtk    int
	DDef    int
	DSpA    int
	DSpD    int
	DSpe    int
	DTotal  int
	AFaster int
	DLevel  int
}

// FeatureNames lists the feature columns in schema order.
var FeatureNames = []string{
	"tm_ab", "tm_ba",
	"d_hp", "d_atk", "d_def", "d_spa", "d_spd", "d_spe",
	"d_total", "a_faster", "d_level",
}

// Values returns the feature values in the order of FeatureNames.
func (f Features) Values() []int {
	return []int{
		f.TMAB, f.TMBA,
		f.DHP, f.DAtk, f.DDef, f.DSpA, f.DSpD, f.DSpe,
		f.DTotal, f.AFaster, f.DLevel,
	}
}

// MatchupRecord is one labeled row of the output dataset.
type MatchupRecord struct {
	NameA    string
	NameB    string
	LevelA   int
	LevelB   int
	Label    int
	Features Features
}

// Query is the parsed representation of an explorer command.
type Query struct {
	Verb   string
	Args   []string // positional names or types, already split on "vs"
	Levels []int    // optional levels, at most two
	Count  int      // for "sample"

	// Invalid holds the fragment that could not be parsed, if any.
	Invalid string
}

// Result is the output of a single explorer step.
type Result struct {
	Records []MatchupRecord
	Output  []string
	Trace   []string
}
