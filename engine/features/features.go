// Package features builds the fixed-schema feature vector for an ordered
// pair of creatures at given levels.
package features

import (
	"math"

	"github.com/nathoo/duelset/engine/bucket"
	"github.com/nathoo/duelset/engine/stats"
	"github.com/nathoo/duelset/engine/typechart"
	"github.com/nathoo/duelset/types"
)

// Canonical multipliers in code order. Snap scans this list front to back,
// so an exact tie goes to the lower value.
var Canonical = [...]float64{0.0, 0.5, 1.0, 2.0, 4.0}

// Snap maps a raw type multiplier to the code of the nearest canonical value.
// Values above the largest canonical multiplier, +Inf included, map to the
// top code. Values below the smallest, -Inf included, and NaN map to code 0.
func Snap(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	if x > Canonical[len(Canonical)-1] {
		return len(Canonical) - 1
	}
	code := 0
	best := math.Abs(Canonical[0] - x)
	for i := 1; i < len(Canonical); i++ {
		if d := math.Abs(Canonical[i] - x); d < best {
			code, best = i, d
		}
	}
	return code
}

// Decode returns the canonical multiplier for a code. Out-of-range codes
// are clamped to the nearest end.
func Decode(code int) float64 {
	if code < 0 {
		code = 0
	}
	if code >= len(Canonical) {
		code = len(Canonical) - 1
	}
	return Canonical[code]
}

// TypeCode is the snapped best-of-attacker-types multiplier for att hitting def.
func TypeCode(att, def types.Creature) int {
	return Snap(typechart.Best(att.Types(), def.Types()))
}

// Featurize derives the feature vector for A vs B at levels la and lb.
// Pure: no state, no randomness.
func Featurize(a, b types.Creature, la, lb int) types.Features {
	diff := func(x, y int) int {
		return bucket.Index(float64(x-y), bucket.Default)
	}

	f := types.Features{
		TMAB:   TypeCode(a, b),
		TMBA:   TypeCode(b, a),
		DHP:    diff(a.Stats.HP, b.Stats.HP),
		DAtk:   diff(a.Stats.Attack, b.Stats.Attack),
		DDef:   diff(a.Stats.Defense, b.Stats.Defense),
		DSpA:   diff(a.Stats.SpAttack, b.Stats.SpAttack),
		DSpD:   diff(a.Stats.SpDefense, b.Stats.SpDefense),
		DSpe:   diff(a.Stats.Speed, b.Stats.Speed),
		DTotal: diff(stats.Total(a), stats.Total(b)),
		DLevel: bucket.Index(float64(la-lb), bucket.Level),
	}
	if a.Stats.Speed > b.Stats.Speed {
		f.AFaster = 1
	}
	return f
}
