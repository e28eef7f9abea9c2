// Package stats derives scalar composites from a creature's base stats.
package stats

import "github.com/nathoo/duelset/types"

// Default composite weights.
const (
	AttackWeight    = 0.6
	SpAttackWeight  = 0.4
	HPWeight        = 0.4
	DefenseWeight   = 0.3
	SpDefenseWeight = 0.3
)

// Weights are the fixed linear coefficients of the two composites.
type Weights struct {
	Attack    float64
	SpAttack  float64
	HP        float64
	Defense   float64
	SpDefense float64
}

// DefaultWeights returns the stock policy weights.
func DefaultWeights() Weights {
	return Weights{
		Attack:    AttackWeight,
		SpAttack:  SpAttackWeight,
		HP:        HPWeight,
		Defense:   DefenseWeight,
		SpDefense: SpDefenseWeight,
	}
}

// OffensivePower is Attack*w.Attack + SpAttack*w.SpAttack.
func (w Weights) OffensivePower(s types.Stats) float64 {
	return w.Attack*float64(s.Attack) + w.SpAttack*float64(s.SpAttack)
}

// Bulk is HP*w.HP + Defense*w.Defense + SpDefense*w.SpDefense.
func (w Weights) Bulk(s types.Stats) float64 {
	return w.HP*float64(s.HP) + w.Defense*float64(s.Defense) + w.SpDefense*float64(s.SpDefense)
}

// OffensivePower uses DefaultWeights.
func OffensivePower(s types.Stats) float64 {
	return DefaultWeights().OffensivePower(s)
}

// Bulk uses DefaultWeights.
func Bulk(s types.Stats) float64 {
	return DefaultWeights().Bulk(s)
}

// Total returns the creature's explicit total if present, otherwise the sum
// of its six base stats.
func Total(c types.Creature) int {
	if c.Total != nil {
		return *c.Total
	}
	return c.Stats.Sum()
}
