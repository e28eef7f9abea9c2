package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV_ColumnAliases(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"kaggle", "Name,Type 1,Type 2,HP,Attack,Defense,Sp. Atk,Sp. Def,Speed"},
		{"snake case", "name,type1,type2,hp,attack,defense,sp_attack,sp_defense,speed"},
		{"short", "Pokemon,Type1,Type2,HP,Atk,Def,SpA,SpD,Spe"},
		{"reordered", "Speed,Name,HP,Type 2,Type 1,Sp. Def,Defense,Sp. Atk,Attack"},
	}
	rows := map[string]string{
		"kaggle":     "Gengar,Ghost,Poison,60,65,60,130,75,110",
		"snake case": "Gengar,ghost,poison,60,65,60,130,75,110",
		"short":      "Gengar,Ghost,Poison,60,65,60,130,75,110",
		"reordered":  "110,Gengar,60,Poison,Ghost,75,60,130,65",
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{}
			cs, err := parseCSV(strings.NewReader(tt.header+"\n"+rows[tt.name]+"\n"), ve)
			if err != nil {
				t.Fatalf("parseCSV: %v", err)
			}
			if len(cs) != 1 {
				t.Fatalf("creatures = %d, want 1", len(cs))
			}
			c := cs[0]
			if c.Name != "Gengar" || c.Type1 != "Ghost" || c.Type2 != "Poison" {
				t.Errorf("identity = %s %s/%s", c.Name, c.Type1, c.Type2)
			}
			if c.Stats.HP != 60 || c.Stats.SpAttack != 130 || c.Stats.SpDefense != 75 || c.Stats.Speed != 110 {
				t.Errorf("stats = %+v", c.Stats)
			}
			if c.Total != nil {
				t.Errorf("total should be nil without a Total column")
			}
		})
	}
}

func TestParseCSV_BOMHeader(t *testing.T) {
	ve := &ValidationError{}
	in := "\ufeffName,Type 1,HP,Attack,Defense,Sp. Atk,Sp. Def,Speed\nMew,Psychic,100,100,100,100,100,100\n"
	cs, err := parseCSV(strings.NewReader(in), ve)
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(cs) != 1 || cs[0].Name != "Mew" {
		t.Errorf("creatures = %+v", cs)
	}
}

func TestParseCSV_MissingColumns(t *testing.T) {
	ve := &ValidationError{}
	_, err := parseCSV(strings.NewReader("Name,Type 1,HP\nMew,Psychic,100\n"), ve)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, col := range []string{"attack", "defense", "sp_attack", "sp_defense", "speed"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error %q should name %s", err, col)
		}
	}
}

func TestParseCSV_BadStats(t *testing.T) {
	in := "Name,Type 1,HP,Attack,Defense,Sp. Atk,Sp. Def,Speed,Total\n" +
		"Ok,Normal,1,1,1,1,1,1,6\n" +
		"Word,Normal,lots,1,1,1,1,1,\n" +
		"Neg,Normal,1,-3,1,1,1,1,\n" +
		"Blank,Normal,1,1,,1,1,1,\n" +
		"Float,Normal,1,1,1,1,1,1.5,\n" +
		"BadTotal,Normal,1,1,1,1,1,1,x\n"
	ve := &ValidationError{}
	_, err := parseCSV(strings.NewReader(in), ve)
	var got *ValidationError
	if !errors.As(err, &got) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	assertContains(t, got.Errors, "row 3 (Word): hp")
	assertContains(t, got.Errors, "row 4 (Neg): attack -3 is negative")
	assertContains(t, got.Errors, "row 5 (Blank): defense is empty")
	assertContains(t, got.Errors, "row 6 (Float): speed")
	assertContains(t, got.Errors, "row 7 (BadTotal): total")
}

func TestParseCSV_WholeFloatAccepted(t *testing.T) {
	in := "Name,Type 1,HP,Attack,Defense,Sp. Atk,Sp. Def,Speed\nMew,Psychic,100.0,100,100,100,100,100\n"
	ve := &ValidationError{}
	cs, err := parseCSV(strings.NewReader(in), ve)
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if cs[0].Stats.HP != 100 {
		t.Errorf("HP = %d, want 100", cs[0].Stats.HP)
	}
}

func TestParseCSV_DropsIncompleteRows(t *testing.T) {
	in := "Name,Type 1,HP,Attack,Defense,Sp. Atk,Sp. Def,Speed\n" +
		",Psychic,1,1,1,1,1,1\n" +
		"Nameless,,1,1,1,1,1,1\n" +
		"Mew,Psychic,1,1,1,1,1,1\n"
	ve := &ValidationError{}
	cs, err := parseCSV(strings.NewReader(in), ve)
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(cs) != 1 {
		t.Errorf("creatures = %d, want 1", len(cs))
	}
	if len(ve.Warnings) != 2 {
		t.Errorf("warnings = %v, want 2", ve.Warnings)
	}
}
