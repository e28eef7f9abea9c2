// Package label computes the closed-form heuristic outcome for a matchup.
//
// Each side's score is
//
//	power(att) * mult(att→def) * (level(att) / LevelPivot) / max(MinBulk, bulk(def))
//
// where mult is the snapped multiplier exposed in the feature vector. The
// strictly faster side gets its score multiplied by SpeedBonus. The label is 1
// when A's score is strictly greater; ties (including 0 vs 0) go to B.
package label

import (
	"math"

	"github.com/nathoo/duelset/engine/features"
	"github.com/nathoo/duelset/engine/stats"
	"github.com/nathoo/duelset/types"
)

// Default policy constants.
const (
	LevelPivot = 50.0
	SpeedBonus = 1.05
	MinBulk    = 1.0
)

// Policy bundles every tunable constant of the heuristic.
type Policy struct {
	Weights    stats.Weights
	LevelPivot float64
	SpeedBonus float64
	MinBulk    float64
}

// DefaultPolicy returns the stock policy.
func DefaultPolicy() Policy {
	return Policy{
		Weights:    stats.DefaultWeights(),
		LevelPivot: LevelPivot,
		SpeedBonus: SpeedBonus,
		MinBulk:    MinBulk,
	}
}

// Score is one side's expected outcome before the speed bonus.
// code is the snapped type code for att attacking def.
func (p Policy) Score(att, def types.Creature, code, levelAtt int) float64 {
	s := p.Weights.OffensivePower(att.Stats) * features.Decode(code) * (float64(levelAtt) / p.LevelPivot)
	return s / math.Max(p.MinBulk, p.Weights.Bulk(def.Stats))
}

// Scores returns both sides' scores, speed bonus included, using the type
// codes already present in f.
func (p Policy) Scores(a, b types.Creature, la, lb int, f types.Features) (scoreA, scoreB float64) {
	scoreA = p.Score(a, b, f.TMAB, la)
	scoreB = p.Score(b, a, f.TMBA, lb)
	if a.Stats.Speed > b.Stats.Speed {
		scoreA *= p.SpeedBonus
	}
	if b.Stats.Speed > a.Stats.Speed {
		scoreB *= p.SpeedBonus
	}
	return scoreA, scoreB
}

// FromFeatures labels a pair whose feature vector is already known.
func (p Policy) FromFeatures(a, b types.Creature, la, lb int, f types.Features) int {
	sa, sb := p.Scores(a, b, la, lb, f)
	if sa > sb {
		return 1
	}
	return 0
}

// Label featurizes the pair and labels it.
func (p Policy) Label(a, b types.Creature, la, lb int) int {
	return p.FromFeatures(a, b, la, lb, features.Featurize(a, b, la, lb))
}

// Label uses DefaultPolicy.
func Label(a, b types.Creature, la, lb int) int {
	return DefaultPolicy().Label(a, b, la, lb)
}
