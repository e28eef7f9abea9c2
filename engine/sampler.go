package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nathoo/duelset/engine/features"
	"github.com/nathoo/duelset/engine/label"
	"github.com/nathoo/duelset/engine/roster"
	"github.com/nathoo/duelset/observe"
	"github.com/nathoo/duelset/types"
)

// Default sampling parameters.
const (
	DefaultCount     = 30000
	DefaultLevelLow  = 50
	DefaultLevelHigh = 80
	DefaultSeed      = 42
)

var (
	ErrRosterTooSmall = errors.New("roster needs at least two creatures")
	ErrLevelRange     = errors.New("invalid level range")
	ErrNegativeCount  = errors.New("pair count must not be negative")
)

// Params controls one sampling run.
type Params struct {
	Count     int
	LevelLow  int
	LevelHigh int
	Seed      int64
}

// DefaultParams returns the stock run parameters.
func DefaultParams() Params {
	return Params{
		Count:     DefaultCount,
		LevelLow:  DefaultLevelLow,
		LevelHigh: DefaultLevelHigh,
		Seed:      DefaultSeed,
	}
}

// Validate checks p against a roster of size n.
func (p Params) Validate(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: have %d", ErrRosterTooSmall, n)
	}
	if p.LevelLow < 1 || p.LevelLow > p.LevelHigh {
		return fmt.Errorf("%w: [%d, %d]", ErrLevelRange, p.LevelLow, p.LevelHigh)
	}
	if p.Count < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, p.Count)
	}
	return nil
}

// Draw is one sampled tuple: two roster indices and their levels.
type Draw struct {
	A, B           int
	LevelA, LevelB int
}

// DrawPairs draws count A indices, then count B indices, drops every pair
// with A == B, then draws levels for A and levels for B over the survivors.
// It returns the survivors in draw order and the number of dropped pairs.
func DrawPairs(rng *RNG, n int, p Params) ([]Draw, int) {
	as := make([]int, p.Count)
	for i := range as {
		as[i] = rng.Intn(n)
	}
	bs := make([]int, p.Count)
	for i := range bs {
		bs[i] = rng.Intn(n)
	}

	draws := make([]Draw, 0, p.Count)
	for i := range as {
		if as[i] == bs[i] {
			continue
		}
		draws = append(draws, Draw{A: as[i], B: bs[i]})
	}
	for i := range draws {
		draws[i].LevelA = rng.Between(p.LevelLow, p.LevelHigh)
	}
	for i := range draws {
		draws[i].LevelB = rng.Between(p.LevelLow, p.LevelHigh)
	}
	return draws, p.Count - len(draws)
}

// BuildRecord featurizes and labels a single ordered matchup.
func BuildRecord(a, b types.Creature, la, lb int, pol label.Policy) types.MatchupRecord {
	f := features.Featurize(a, b, la, lb)
	return types.MatchupRecord{
		NameA:    a.Name,
		NameB:    b.Name,
		LevelA:   la,
		LevelB:   lb,
		Label:    pol.FromFeatures(a, b, la, lb, f),
		Features: f,
	}
}

// Sampler turns a roster into labeled matchup records.
type Sampler struct {
	Roster  *roster.Roster
	Policy  label.Policy
	Workers int              // <= 0 uses runtime.NumCPU()
	Metrics *observe.Metrics // nil records nothing
}

// Run is the outcome of one Generate call.
type Run struct {
	Params      Params
	Records     []types.MatchupRecord
	SelfPairs   int   // drawn pairs dropped because A == B
	RNGPosition int64 // source steps consumed by the draw
}

// Positives returns the number of records labeled 1.
func (r *Run) Positives() int {
	n := 0
	for _, rec := range r.Records {
		n += rec.Label
	}
	return n
}

// Generate draws all tuples from a fresh RNG seeded with p.Seed, then
// featurizes and labels them on a bounded pool. Records keep draw order
// regardless of the worker count.
func (s *Sampler) Generate(ctx context.Context, p Params) (*Run, error) {
	if err := p.Validate(s.Roster.Len()); err != nil {
		return nil, err
	}
	met := s.Metrics
	if met == nil {
		met = observe.Noop()
	}
	start := time.Now()

	rng := NewRNG(p.Seed)
	draws, dropped := DrawPairs(rng, s.Roster.Len(), p)
	met.PairsDrawn.Add(ctx, int64(p.Count))
	met.PairsSelfDropped.Add(ctx, int64(dropped))

	records := make([]types.MatchupRecord, len(draws))
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunk := (len(draws) + workers - 1) / max(workers, 1)
	chunk = max(chunk, 1)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for lo := 0; lo < len(draws); lo += chunk {
		hi := min(lo+chunk, len(draws))
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				d := draws[i]
				records[i] = BuildRecord(s.Roster.At(d.A), s.Roster.At(d.B), d.LevelA, d.LevelB, s.Policy)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generating records: %w", err)
	}

	run := &Run{
		Params:      p,
		Records:     records,
		SelfPairs:   dropped,
		RNGPosition: rng.Position(),
	}
	pos := run.Positives()
	met.RecordLabel(ctx, 1, int64(pos))
	met.RecordLabel(ctx, 0, int64(len(records)-pos))
	elapsed := time.Since(start)
	met.GenerateDuration.Record(ctx, elapsed.Seconds())

	slog.Debug("generated matchups",
		"requested", p.Count,
		"written", len(records),
		"self_dropped", dropped,
		"positives", pos,
		"workers", workers,
		"elapsed", elapsed,
	)
	return run, nil
}
