package roster

import (
	"testing"

	"github.com/nathoo/duelset/types"
)

func testCreatures() []types.Creature {
	return []types.Creature{
		{Name: "Pikachu", Type1: "Electric"},
		{Name: "Mr. Mime", Type1: "Psychic", Type2: "Fairy"},
		{Name: "Pikachu", Type1: "Electric", Stats: types.Stats{Speed: 110}},
		{Name: "Onix", Type1: "Rock", Type2: "Ground"},
	}
}

func TestNew_CopiesInput(t *testing.T) {
	cs := testCreatures()
	r := New(cs)
	cs[0].Name = "Raichu"

	if r.At(0).Name != "Pikachu" {
		t.Errorf("roster should not alias caller slice, got %q", r.At(0).Name)
	}
	if r.Len() != 4 {
		t.Errorf("Len = %d, want 4", r.Len())
	}
}

func TestLookup(t *testing.T) {
	r := New(testCreatures())

	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"Onix", 3, true},
		{"onix", 3, true},
		{"  MR. MIME ", 1, true},
		{"Pikachu", 0, true}, // first of duplicates wins
		{"Missingno", 0, false},
	}
	for _, tt := range tests {
		got, ok := r.Lookup(tt.name)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("Lookup(%q) = (%d, %v), want (%d, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNames(t *testing.T) {
	r := New(testCreatures())
	names := r.Names()
	want := []string{"Pikachu", "Mr. Mime", "Pikachu", "Onix"}
	if len(names) != len(want) {
		t.Fatalf("Names len = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDuplicates(t *testing.T) {
	r := New(testCreatures())
	dups := r.Duplicates()
	if len(dups) != 1 || dups[0] != "Pikachu" {
		t.Errorf("Duplicates = %v, want [Pikachu]", dups)
	}
}

func TestAll_IsCopy(t *testing.T) {
	r := New(testCreatures())
	all := r.All()
	all[1].Name = "changed"
	if r.At(1).Name != "Mr. Mime" {
		t.Error("All should return a copy")
	}
}
