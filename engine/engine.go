// Package engine provides the pair sampler that builds datasets and the
// Step() explorer that answers one interactive command at a time.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/duelset/engine/features"
	"github.com/nathoo/duelset/engine/label"
	"github.com/nathoo/duelset/engine/parser"
	"github.com/nathoo/duelset/engine/resolve"
	"github.com/nathoo/duelset/engine/roster"
	"github.com/nathoo/duelset/engine/stats"
	"github.com/nathoo/duelset/engine/typechart"
	"github.com/nathoo/duelset/types"
)

// MaxSample caps how many pairs a single "sample" command draws.
const MaxSample = 100

// rosterPreview is how many names "roster" lists.
const rosterPreview = 12

// Engine holds the roster, labeler policy and the session RNG.
type Engine struct {
	Roster *roster.Roster
	Policy label.Policy
	Params Params // level range used by "sample"
	RNG    *RNG

	// Session collects every record produced by "vs" and "sample".
	Session []types.MatchupRecord
}

// New creates an explorer over r. The session RNG is seeded from p.Seed.
func New(r *roster.Roster, pol label.Policy, p Params) *Engine {
	return &Engine{
		Roster: r,
		Policy: pol,
		Params: p,
		RNG:    NewRNG(p.Seed),
	}
}

// Reseed replaces the session RNG.
func (e *Engine) Reseed(seed int64) {
	e.Params.Seed = seed
	e.RNG = NewRNG(seed)
}

// RestoreRNG re-creates the RNG from seed and advances to the saved position.
func (e *Engine) RestoreRNG(seed int64, position int64) {
	e.Params.Seed = seed
	e.RNG = RestoreRNG(seed, position)
}

// Step processes one explorer command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	q := parser.Parse(input)
	if q.Verb == "" {
		result.Output = append(result.Output, `Try a matchup like "pikachu vs onix", or type help.`)
		return result
	}

	switch q.Verb {
	case "vs":
		return e.matchup(q)
	case "show":
		return e.show(q)
	case "chart":
		return e.chart(q)
	case "sample":
		return e.sample(q)
	case "roster":
		return e.listRoster()
	case "help":
		result.Output = append(result.Output, HelpLines()...)
		return result
	default:
		result.Output = append(result.Output, fmt.Sprintf("I don't know %q. Type help for commands.", q.Verb))
		return result
	}
}

// HelpLines describes the explorer commands.
func HelpLines() []string {
	return []string{
		"Commands:",
		"  <a> vs <b> [at <la> [<lb>]]   Featurize and label a matchup",
		"  show <name>                   Stats and composites for a creature",
		"  chart <atk> [<def1> [<def2>]] Type effectiveness",
		"  sample [n]                    Draw n random matchups (max 100)",
		"  roster                        List loaded creatures",
		"  help                          Show this help",
	}
}

func (e *Engine) matchup(q types.Query) types.Result {
	var result types.Result
	if q.Invalid != "" {
		result.Output = append(result.Output, fmt.Sprintf("Can't read %q. Usage: <a> vs <b> [at <la> [<lb>]]", q.Invalid))
		return result
	}

	pair, err := resolve.Matchup(e.Roster, q.Args[0], q.Args[1])
	if err != nil {
		result.Output = append(result.Output, describeResolveError(err))
		return result
	}

	// Without levels both sides sit at the pivot, where level scaling is 1.
	pivot := int(e.Policy.LevelPivot)
	if pivot < 1 {
		pivot = DefaultLevelLow
	}
	la, lb := pivot, pivot
	switch len(q.Levels) {
	case 1:
		la, lb = q.Levels[0], q.Levels[0]
	case 2:
		la, lb = q.Levels[0], q.Levels[1]
	}

	a, b := e.Roster.At(pair.A), e.Roster.At(pair.B)
	rec := BuildRecord(a, b, la, lb, e.Policy)
	sa, sb := e.Policy.Scores(a, b, la, lb, rec.Features)
	e.Session = append(e.Session, rec)
	result.Records = append(result.Records, rec)

	f := rec.Features
	result.Output = append(result.Output,
		fmt.Sprintf("%s (Lv %d) vs %s (Lv %d)", a.Name, la, b.Name, lb),
		fmt.Sprintf("  type     A→B x%g (code %d)   B→A x%g (code %d)",
			features.Decode(f.TMAB), f.TMAB, features.Decode(f.TMBA), f.TMBA),
		fmt.Sprintf("  buckets  hp %d  atk %d  def %d  spa %d  spd %d  spe %d  total %d  level %d",
			f.DHP, f.DAtk, f.DDef, f.DSpA, f.DSpD, f.DSpe, f.DTotal, f.DLevel),
		fmt.Sprintf("  score    %s %.3f   %s %.3f", a.Name, sa, b.Name, sb),
	)
	if rec.Label == 1 {
		result.Output = append(result.Output, fmt.Sprintf("  → %s wins (y=1)", a.Name))
	} else {
		result.Output = append(result.Output, fmt.Sprintf("  → %s does not win (y=0)", a.Name))
	}

	result.Trace = append(result.Trace,
		fmt.Sprintf("raw multiplier A→B %g, B→A %g",
			typechart.Best(a.Types(), b.Types()), typechart.Best(b.Types(), a.Types())),
		fmt.Sprintf("offense A %.1f, B %.1f; bulk A %.1f, B %.1f",
			e.Policy.Weights.OffensivePower(a.Stats), e.Policy.Weights.OffensivePower(b.Stats),
			e.Policy.Weights.Bulk(a.Stats), e.Policy.Weights.Bulk(b.Stats)),
		fmt.Sprintf("a_faster=%d speed bonus x%g", f.AFaster, e.Policy.SpeedBonus),
	)
	return result
}

func (e *Engine) show(q types.Query) types.Result {
	var result types.Result
	if len(q.Args) == 0 {
		result.Output = append(result.Output, "Show whom?")
		return result
	}
	i, err := resolve.Name(e.Roster, q.Args[0])
	if err != nil {
		result.Output = append(result.Output, describeResolveError(err))
		return result
	}
	c := e.Roster.At(i)
	s := c.Stats
	result.Output = append(result.Output,
		fmt.Sprintf("%s  %s", c.Name, typeLabel(c)),
		fmt.Sprintf("  HP %d  Atk %d  Def %d  SpA %d  SpD %d  Spe %d", s.HP, s.Attack, s.Defense, s.SpAttack, s.SpDefense, s.Speed),
		fmt.Sprintf("  total %d  offense %.1f  bulk %.1f",
			stats.Total(c), e.Policy.Weights.OffensivePower(s), e.Policy.Weights.Bulk(s)),
	)
	for _, t := range c.Types() {
		if t != "" && !typechart.Known(t) {
			result.Output = append(result.Output, fmt.Sprintf("  (unknown type %q is treated as neutral)", t))
		}
	}
	return result
}

func (e *Engine) chart(q types.Query) types.Result {
	var result types.Result
	if len(q.Args) == 0 || len(q.Args) > 3 {
		result.Output = append(result.Output, "Usage: chart <atk> [<def1> [<def2>]]")
		return result
	}

	ts := make([]types.ElementalType, len(q.Args))
	for i, a := range q.Args {
		ts[i] = typechart.Normalize(a)
		if !typechart.Known(ts[i]) {
			result.Output = append(result.Output, fmt.Sprintf("(unknown type %q is treated as neutral)", ts[i]))
		}
	}
	atk, defs := ts[0], ts[1:]

	if len(defs) > 0 {
		names := make([]string, len(defs))
		for i, d := range defs {
			names[i] = string(d)
		}
		m := typechart.Combined(atk, defs)
		result.Output = append(result.Output,
			fmt.Sprintf("%s → %s: x%g (code %d)", atk, strings.Join(names, "/"), m, features.Snap(m)))
		return result
	}

	// Attacker only: list every non-neutral defender.
	groups := map[float64][]string{}
	for _, d := range typechart.All {
		if m := typechart.Effectiveness(atk, d); m != typechart.Neutral {
			groups[m] = append(groups[m], string(d))
		}
	}
	result.Output = append(result.Output, fmt.Sprintf("%s attacking:", atk))
	for _, m := range []float64{typechart.SuperEffective, typechart.Resisted, typechart.Immune} {
		if len(groups[m]) > 0 {
			result.Output = append(result.Output, fmt.Sprintf("  x%-3g %s", m, strings.Join(groups[m], ", ")))
		}
	}
	if len(groups) == 0 {
		result.Output = append(result.Output, "  neutral against everything")
	}
	return result
}

func (e *Engine) sample(q types.Query) types.Result {
	var result types.Result
	if q.Invalid != "" {
		result.Output = append(result.Output, fmt.Sprintf("Can't read %q. Usage: sample [n]", q.Invalid))
		return result
	}
	n := min(q.Count, MaxSample)
	p := e.Params
	p.Count = n
	if err := p.Validate(e.Roster.Len()); err != nil {
		result.Output = append(result.Output, describeParamsError(err))
		return result
	}

	before := e.RNG.Position()
	draws, dropped := DrawPairs(e.RNG, e.Roster.Len(), p)
	for _, d := range draws {
		rec := BuildRecord(e.Roster.At(d.A), e.Roster.At(d.B), d.LevelA, d.LevelB, e.Policy)
		e.Session = append(e.Session, rec)
		result.Records = append(result.Records, rec)
		result.Output = append(result.Output,
			fmt.Sprintf("%s (Lv %d) vs %s (Lv %d): y=%d", rec.NameA, rec.LevelA, rec.NameB, rec.LevelB, rec.Label))
	}
	if dropped > 0 {
		result.Output = append(result.Output, fmt.Sprintf("(%d self-pairs dropped)", dropped))
	}
	result.Trace = append(result.Trace,
		fmt.Sprintf("rng seed %d, position %d → %d", e.RNG.Seed(), before, e.RNG.Position()))
	return result
}

func (e *Engine) listRoster() types.Result {
	var result types.Result
	names := e.Roster.Names()
	result.Output = append(result.Output, fmt.Sprintf("%d creatures loaded.", len(names)))
	if len(names) == 0 {
		return result
	}
	shown := names[:min(len(names), rosterPreview)]
	line := "  " + strings.Join(shown, ", ")
	if len(names) > rosterPreview {
		line += fmt.Sprintf(", … (%d more)", len(names)-rosterPreview)
	}
	result.Output = append(result.Output, line)
	if dups := e.Roster.Duplicates(); len(dups) > 0 {
		result.Output = append(result.Output, fmt.Sprintf("  duplicate names: %s", strings.Join(dups, ", ")))
	}
	return result
}

func typeLabel(c types.Creature) string {
	if c.Type2 == "" {
		return string(c.Type1)
	}
	return string(c.Type1) + "/" + string(c.Type2)
}

func describeResolveError(err error) string {
	var amb *resolve.AmbiguityError
	if errors.As(err, &amb) {
		return fmt.Sprintf("Which %s? %s", amb.Name, strings.Join(amb.Candidates, ", "))
	}
	var nf *resolve.NotFoundError
	if errors.As(err, &nf) && len(nf.Suggestions) > 0 {
		return fmt.Sprintf("No creature named %q. Did you mean %s?", nf.Name, strings.Join(nf.Suggestions, ", "))
	}
	if errors.As(err, &nf) {
		return fmt.Sprintf("No creature named %q.", nf.Name)
	}
	return err.Error()
}

func describeParamsError(err error) string {
	switch {
	case errors.Is(err, ErrRosterTooSmall):
		return "Need at least two creatures to sample."
	case errors.Is(err, ErrLevelRange):
		return fmt.Sprintf("Level range is invalid: %v", err)
	default:
		return err.Error()
	}
}
