package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/nathoo/duelset/engine/label"
	"github.com/nathoo/duelset/engine/roster"
	"github.com/nathoo/duelset/types"
)

func testRoster(t *testing.T) *roster.Roster {
	t.Helper()
	return roster.New([]types.Creature{
		{Name: "Bulbasaur", Type1: "Grass", Type2: "Poison", Stats: types.Stats{HP: 45, Attack: 49, Defense: 49, SpAttack: 65, SpDefense: 65, Speed: 45}},
		{Name: "Charizard", Type1: "Fire", Type2: "Flying", Stats: types.Stats{HP: 78, Attack: 84, Defense: 78, SpAttack: 109, SpDefense: 85, Speed: 100}},
		{Name: "Blastoise", Type1: "Water", Stats: types.Stats{HP: 79, Attack: 83, Defense: 100, SpAttack: 85, SpDefense: 105, Speed: 78}},
		{Name: "Pikachu", Type1: "Electric", Stats: types.Stats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90}},
		{Name: "Gengar", Type1: "Ghost", Type2: "Poison", Stats: types.Stats{HP: 60, Attack: 65, Defense: 60, SpAttack: 130, SpDefense: 75, Speed: 110}},
		{Name: "Onix", Type1: "Rock", Type2: "Ground", Stats: types.Stats{HP: 35, Attack: 45, Defense: 160, SpAttack: 30, SpDefense: 45, Speed: 70}},
		{Name: "Snorlax", Type1: "Normal", Stats: types.Stats{HP: 160, Attack: 110, Defense: 65, SpAttack: 65, SpDefense: 110, Speed: 30}},
		{Name: "Dragonite", Type1: "Dragon", Type2: "Flying", Stats: types.Stats{HP: 91, Attack: 134, Defense: 95, SpAttack: 100, SpDefense: 100, Speed: 80}},
	})
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		n       int
		wantErr error
	}{
		{"defaults", DefaultParams(), 8, nil},
		{"single level", Params{Count: 5, LevelLow: 60, LevelHigh: 60}, 2, nil},
		{"zero count", Params{Count: 0, LevelLow: 1, LevelHigh: 100}, 2, nil},
		{"roster of one", DefaultParams(), 1, ErrRosterTooSmall},
		{"empty roster", DefaultParams(), 0, ErrRosterTooSmall},
		{"low above high", Params{Count: 5, LevelLow: 80, LevelHigh: 50}, 8, ErrLevelRange},
		{"low below one", Params{Count: 5, LevelLow: 0, LevelHigh: 50}, 8, ErrLevelRange},
		{"negative count", Params{Count: -1, LevelLow: 50, LevelHigh: 80}, 8, ErrNegativeCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate(tt.n)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDrawPairs_Order(t *testing.T) {
	p := Params{Count: 50, LevelLow: 50, LevelHigh: 80}
	draws, dropped := DrawPairs(NewRNG(3), 4, p)

	// Replay the documented order by hand.
	rng := NewRNG(3)
	as := make([]int, p.Count)
	bs := make([]int, p.Count)
	for i := range as {
		as[i] = rng.Intn(4)
	}
	for i := range bs {
		bs[i] = rng.Intn(4)
	}
	var want []Draw
	for i := range as {
		if as[i] != bs[i] {
			want = append(want, Draw{A: as[i], B: bs[i]})
		}
	}
	for i := range want {
		want[i].LevelA = rng.Between(50, 80)
	}
	for i := range want {
		want[i].LevelB = rng.Between(50, 80)
	}

	if !reflect.DeepEqual(draws, want) {
		t.Fatalf("draws differ from replayed order")
	}
	if dropped != p.Count-len(want) {
		t.Errorf("dropped = %d, want %d", dropped, p.Count-len(want))
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	s := &Sampler{Roster: testRoster(t), Policy: label.DefaultPolicy(), Workers: 4}
	p := Params{Count: 1000, LevelLow: 50, LevelHigh: 80, Seed: 7}

	r1, err := s.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	r2, err := s.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !reflect.DeepEqual(r1.Records, r2.Records) {
		t.Fatal("same seed produced different records")
	}
	if r1.RNGPosition != r2.RNGPosition || r1.SelfPairs != r2.SelfPairs {
		t.Errorf("run metadata differs: %+v vs %+v", r1, r2)
	}
	if len(r1.Records)+r1.SelfPairs != p.Count {
		t.Errorf("records (%d) + self pairs (%d) != count (%d)", len(r1.Records), r1.SelfPairs, p.Count)
	}

	p.Seed = 8
	r3, err := s.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reflect.DeepEqual(r1.Records, r3.Records) {
		t.Error("different seeds produced identical records")
	}
}

func TestGenerate_RecordInvariants(t *testing.T) {
	s := &Sampler{Roster: testRoster(t), Policy: label.DefaultPolicy()}
	run, err := s.Generate(context.Background(), Params{Count: 1000, LevelLow: 50, LevelHigh: 80, Seed: 7})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, rec := range run.Records {
		if rec.NameA == rec.NameB {
			t.Fatalf("record %d is a self pair: %s", i, rec.NameA)
		}
		if rec.LevelA < 50 || rec.LevelA > 80 || rec.LevelB < 50 || rec.LevelB > 80 {
			t.Fatalf("record %d levels out of range: %d, %d", i, rec.LevelA, rec.LevelB)
		}
		if rec.Label != 0 && rec.Label != 1 {
			t.Fatalf("record %d label = %d", i, rec.Label)
		}
		if rec.Features.TMAB < 0 || rec.Features.TMAB > 4 || rec.Features.TMBA < 0 || rec.Features.TMBA > 4 {
			t.Fatalf("record %d type codes out of range: %+v", i, rec.Features)
		}
	}
}

func TestGenerate_TwoCreatureRosterDropsSelfPairs(t *testing.T) {
	r := roster.New([]types.Creature{
		{Name: "Pikachu", Type1: "Electric", Stats: types.Stats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90}},
		{Name: "Onix", Type1: "Rock", Type2: "Ground", Stats: types.Stats{HP: 35, Attack: 45, Defense: 160, SpAttack: 30, SpDefense: 45, Speed: 70}},
	})
	s := &Sampler{Roster: r, Policy: label.DefaultPolicy(), Workers: 2}
	run, err := s.Generate(context.Background(), Params{Count: 1000, LevelLow: 50, LevelHigh: 80, Seed: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// About half of all draws collide on a roster of two.
	if n := len(run.Records); n < 400 || n > 600 {
		t.Errorf("records = %d, want roughly 500", n)
	}
	for _, rec := range run.Records {
		if rec.NameA == rec.NameB {
			t.Fatalf("self pair survived: %+v", rec)
		}
	}
}

func TestGenerate_WorkerCountDoesNotChangeOutput(t *testing.T) {
	p := Params{Count: 2000, LevelLow: 1, LevelHigh: 100, Seed: 99}
	base := &Sampler{Roster: testRoster(t), Policy: label.DefaultPolicy(), Workers: 1}
	want, err := base.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, w := range []int{2, 3, 8, 64} {
		s := &Sampler{Roster: testRoster(t), Policy: label.DefaultPolicy(), Workers: w}
		got, err := s.Generate(context.Background(), p)
		if err != nil {
			t.Fatalf("workers=%d: %v", w, err)
		}
		if !reflect.DeepEqual(got.Records, want.Records) {
			t.Errorf("workers=%d produced different records", w)
		}
	}
}

func TestGenerate_ZeroCount(t *testing.T) {
	s := &Sampler{Roster: testRoster(t), Policy: label.DefaultPolicy()}
	run, err := s.Generate(context.Background(), Params{Count: 0, LevelLow: 50, LevelHigh: 80})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(run.Records) != 0 || run.RNGPosition != 0 {
		t.Errorf("zero count run = %+v", run)
	}
}

func TestGenerate_InvalidParams(t *testing.T) {
	s := &Sampler{Roster: roster.New([]types.Creature{{Name: "Mew", Type1: "Psychic"}}), Policy: label.DefaultPolicy()}
	_, err := s.Generate(context.Background(), DefaultParams())
	if !errors.Is(err, ErrRosterTooSmall) {
		t.Errorf("err = %v, want ErrRosterTooSmall", err)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Sampler{Roster: testRoster(t), Policy: label.DefaultPolicy(), Workers: 2}
	_, err := s.Generate(ctx, Params{Count: 500, LevelLow: 50, LevelHigh: 80})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuildRecord(t *testing.T) {
	charizard := testRoster(t).At(1)
	tangela := types.Creature{Name: "Tangela", Type1: "Grass", Stats: types.Stats{HP: 65, Attack: 55, Defense: 115, SpAttack: 100, SpDefense: 40, Speed: 60}}
	rec := BuildRecord(charizard, tangela, 60, 55, label.DefaultPolicy())
	if rec.NameA != "Charizard" || rec.NameB != "Tangela" || rec.LevelA != 60 || rec.LevelB != 55 {
		t.Errorf("record header = %+v", rec)
	}
	if rec.Features.TMAB != 3 || rec.Features.TMBA != 0 {
		t.Errorf("type codes = (%d, %d), want (3, 0)", rec.Features.TMAB, rec.Features.TMBA)
	}
	if rec.Label != 1 {
		t.Errorf("label = %d, want 1", rec.Label)
	}
}
