package features

import (
	"math"
	"testing"

	"github.com/nathoo/duelset/engine/bucket"
	"github.com/nathoo/duelset/types"
)

func mon(name string, t1, t2 types.ElementalType, hp, atk, def, spa, spd, spe int) types.Creature {
	return types.Creature{
		Name:  name,
		Type1: t1,
		Type2: t2,
		Stats: types.Stats{HP: hp, Attack: atk, Defense: def, SpAttack: spa, SpDefense: spd, Speed: spe},
	}
}

func testRoster() []types.Creature {
	return []types.Creature{
		mon("Charizard", "Fire", "Flying", 78, 84, 78, 109, 85, 100),
		mon("Venusaur", "Grass", "Poison", 80, 82, 83, 100, 100, 80),
		mon("Blastoise", "Water", "", 79, 83, 100, 85, 105, 78),
		mon("Gengar", "Ghost", "Poison", 60, 65, 60, 130, 75, 110),
		mon("Snorlax", "Normal", "", 160, 110, 65, 65, 110, 30),
		mon("Dragonite", "Dragon", "Flying", 91, 134, 95, 100, 100, 80),
		mon("Magikarp", "Water", "", 20, 10, 55, 15, 20, 80),
		mon("Shuckle", "Bug", "Rock", 20, 10, 230, 10, 230, 5),
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		x    float64
		want int
	}{
		{0.0, 0},
		{0.5, 1},
		{1.0, 2},
		{2.0, 3},
		{4.0, 4},
		{0.25, 0}, // exact tie between 0.0 and 0.5 goes low
		{0.75, 1}, // exact tie between 0.5 and 1.0 goes low
		{1.5, 2},
		{3.0, 3},
		{0.2500000001, 1},
		{1.9999999, 3},
		{-3, 0},
		{100, 4},
		{4.0000001, 4},
		{math.MaxFloat64, 4},
		{math.Inf(1), 4},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Snap(tt.x); got != tt.want {
			t.Errorf("Snap(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	for code, want := range Canonical {
		if got := Decode(code); got != want {
			t.Errorf("Decode(%d) = %v, want %v", code, got, want)
		}
		if Snap(Decode(code)) != code {
			t.Errorf("Snap(Decode(%d)) != %d", code, code)
		}
	}
	if Decode(-1) != 0.0 || Decode(99) != 4.0 {
		t.Error("expected out-of-range codes to clamp")
	}
}

func TestFeaturize_FireFlyingVsGrass(t *testing.T) {
	a := mon("Attacker", "Fire", "Flying", 70, 100, 70, 50, 70, 90)
	b := mon("Defender", "Grass", "", 80, 70, 60, 70, 60, 60)

	f := Featurize(a, b, 50, 50)
	if f.TMAB != 3 {
		t.Errorf("tm_ab = %d, want 3 (2.0x)", f.TMAB)
	}
	if f.TMBA != 0 {
		t.Errorf("tm_ba = %d, want 0 (0.25x snapped to 0.0)", f.TMBA)
	}
	if f.AFaster != 1 {
		t.Errorf("a_faster = %d, want 1", f.AFaster)
	}
	if f.DLevel != 5 {
		t.Errorf("d_level = %d, want 5 (equal levels)", f.DLevel)
	}
	if f.DAtk != bucket.Index(30, bucket.Default) {
		t.Errorf("d_atk = %d, want bucket of +30", f.DAtk)
	}
}

func TestFeaturize_StatBuckets(t *testing.T) {
	a := mon("A", "Normal", "", 255, 10, 100, 0, 50, 20)
	b := mon("B", "Normal", "", 10, 250, 100, 60, 30, 20)

	f := Featurize(a, b, 80, 20)
	want := types.Features{
		TMAB:    2,
		TMBA:    2,
		DHP:     9,  // +245
		DAtk:    0,  // -240
		DDef:    4,  // 0
		DSpA:    2,  // -60 lands in (-100,-50]
		DSpD:    5,  // +20
		DSpe:    4,  // 0
		DTotal:  3,  // 435 - 470 = -35
		AFaster: 0,  // speed tie
		DLevel:  11, // +60 is past the last finite edge
	}
	if f != want {
		t.Errorf("Featurize =\n  %+v\nwant\n  %+v", f, want)
	}
}

func TestFeaturize_ExplicitTotal(t *testing.T) {
	a := mon("A", "Normal", "", 50, 50, 50, 50, 50, 50)
	b := mon("B", "Normal", "", 50, 50, 50, 50, 50, 50)
	total := 600
	a.Total = &total

	f := Featurize(a, b, 50, 50)
	if f.DTotal != bucket.Index(300, bucket.Default) {
		t.Errorf("d_total = %d, want bucket of +300", f.DTotal)
	}
}

func TestFeaturize_Mirror(t *testing.T) {
	roster := testRoster()
	levels := [][2]int{{50, 50}, {1, 100}, {63, 58}, {80, 79}}

	for _, a := range roster {
		for _, b := range roster {
			for _, lv := range levels {
				ab := Featurize(a, b, lv[0], lv[1])
				ba := Featurize(b, a, lv[1], lv[0])

				if ab.TMAB != ba.TMBA || ab.TMBA != ba.TMAB {
					t.Fatalf("%s/%s: tm not swapped: %+v vs %+v", a.Name, b.Name, ab, ba)
				}

				check := func(field string, got, diff int, edges []float64) {
					if want := bucket.Index(float64(-diff), edges); got != want {
						t.Fatalf("%s/%s %s: mirrored bucket %d, want %d", a.Name, b.Name, field, got, want)
					}
				}
				check("d_hp", ba.DHP, a.Stats.HP-b.Stats.HP, bucket.Default)
				check("d_atk", ba.DAtk, a.Stats.Attack-b.Stats.Attack, bucket.Default)
				check("d_def", ba.DDef, a.Stats.Defense-b.Stats.Defense, bucket.Default)
				check("d_spa", ba.DSpA, a.Stats.SpAttack-b.Stats.SpAttack, bucket.Default)
				check("d_spd", ba.DSpD, a.Stats.SpDefense-b.Stats.SpDefense, bucket.Default)
				check("d_spe", ba.DSpe, a.Stats.Speed-b.Stats.Speed, bucket.Default)
				check("d_total", ba.DTotal, a.Stats.Sum()-b.Stats.Sum(), bucket.Default)
				check("d_level", ba.DLevel, lv[0]-lv[1], bucket.Level)

				if a.Stats.Speed == b.Stats.Speed {
					if ab.AFaster != 0 || ba.AFaster != 0 {
						t.Fatalf("%s/%s: speed tie should give a_faster 0 both ways", a.Name, b.Name)
					}
				} else if ab.AFaster == ba.AFaster {
					t.Fatalf("%s/%s: a_faster should flip", a.Name, b.Name)
				}
			}
		}
	}
}

func TestFeaturize_Pure(t *testing.T) {
	roster := testRoster()
	first := Featurize(roster[0], roster[1], 55, 70)
	for i := 0; i < 50; i++ {
		if got := Featurize(roster[0], roster[1], 55, 70); got != first {
			t.Fatalf("call %d differs: %+v vs %+v", i, got, first)
		}
	}
}
