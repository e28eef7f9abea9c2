package resolve

import (
	"errors"
	"slices"
	"testing"

	"github.com/nathoo/duelset/engine/roster"
	"github.com/nathoo/duelset/types"
)

func testRoster() *roster.Roster {
	return roster.New([]types.Creature{
		{Name: "Charmander", Type1: "Fire"},
		{Name: "Charmeleon", Type1: "Fire"},
		{Name: "Charizard", Type1: "Fire", Type2: "Flying"},
		{Name: "Mr. Mime", Type1: "Psychic", Type2: "Fairy"},
		{Name: "Pikachu", Type1: "Electric"},
		{Name: "Onix", Type1: "Rock", Type2: "Ground"},
		{Name: "Pikachu", Type1: "Electric"},
	})
}

func TestName_Exact(t *testing.T) {
	r := testRoster()
	tests := []struct {
		input string
		want  int
	}{
		{"Onix", 5},
		{"onix", 5},
		{"  PIKACHU ", 4}, // first of duplicates
		{"mr. mime", 3},
		{"Charizard", 2},
	}
	for _, tt := range tests {
		got, err := Name(r, tt.input)
		if err != nil {
			t.Errorf("Name(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Name(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestName_WordAndPrefix(t *testing.T) {
	r := testRoster()
	tests := []struct {
		input string
		want  int
	}{
		{"mime", 3},
		{"mr", 3},
		{"chariz", 2},
		{"pika", 4},
	}
	for _, tt := range tests {
		got, err := Name(r, tt.input)
		if err != nil {
			t.Errorf("Name(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Name(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestName_Ambiguous(t *testing.T) {
	_, err := Name(testRoster(), "charm")
	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguityError, got %T: %v", err, err)
	}
	if !slices.Equal(amb.Candidates, []string{"Charmander", "Charmeleon"}) {
		t.Errorf("candidates = %v", amb.Candidates)
	}
}

func TestName_NotFoundWithSuggestions(t *testing.T) {
	_, err := Name(testRoster(), "charizrd")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nf.Name != "charizrd" {
		t.Errorf("Name = %q", nf.Name)
	}
	if len(nf.Suggestions) == 0 || nf.Suggestions[0] != "Charizard" {
		t.Errorf("suggestions = %v, want Charizard first", nf.Suggestions)
	}
	if len(nf.Suggestions) > maxSuggestions {
		t.Errorf("too many suggestions: %v", nf.Suggestions)
	}
}

func TestName_NotFoundNoSuggestions(t *testing.T) {
	_, err := Name(testRoster(), "zzzzzz")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if len(nf.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want none", nf.Suggestions)
	}
	if nf.Error() != `no creature named "zzzzzz"` {
		t.Errorf("Error() = %q", nf.Error())
	}
}

func TestName_Empty(t *testing.T) {
	_, err := Name(testRoster(), "  ")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestMatchup(t *testing.T) {
	r := testRoster()
	p, err := Matchup(r, "pikachu", "onix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.A != 4 || p.B != 5 {
		t.Errorf("Matchup = %+v, want {4 5}", p)
	}

	if _, err := Matchup(r, "pikachu", "missingno"); err == nil {
		t.Error("expected error for unknown right side")
	}
}

func TestErrorMessages(t *testing.T) {
	amb := &AmbiguityError{Name: "charm", Candidates: []string{"Charmander", "Charmeleon"}}
	if got := amb.Error(); got != "which charm? (Charmander, Charmeleon)" {
		t.Errorf("AmbiguityError = %q", got)
	}
	nf := &NotFoundError{Name: "onyx", Suggestions: []string{"Onix"}}
	if got := nf.Error(); got != `no creature named "onyx" (did you mean Onix?)` {
		t.Errorf("NotFoundError = %q", got)
	}
}
