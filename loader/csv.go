package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nathoo/duelset/engine/typechart"
	"github.com/nathoo/duelset/types"
)

// Canonical column keys.
const (
	colName      = "name"
	colType1     = "type1"
	colType2     = "type2"
	colHP        = "hp"
	colAttack    = "attack"
	colDefense   = "defense"
	colSpAttack  = "sp_attack"
	colSpDefense = "sp_defense"
	colSpeed     = "speed"
	colTotal     = "total"
)

// columnAliases maps a squashed header (lower case, no spaces, dots,
// underscores or dashes) to its canonical key.
var columnAliases = map[string]string{
	"name": colName, "pokemon": colName, "creature": colName,

	"type1": colType1, "primarytype": colType1, "type": colType1,
	"type2": colType2, "secondarytype": colType2,

	"hp": colHP, "hitpoints": colHP,
	"attack": colAttack, "atk": colAttack,
	"defense": colDefense, "defence": colDefense, "def": colDefense,
	"spatk": colSpAttack, "spattack": colSpAttack, "specialattack": colSpAttack, "spa": colSpAttack,
	"spdef": colSpDefense, "spdefense": colSpDefense, "specialdefense": colSpDefense, "spd": colSpDefense,
	"speed": colSpeed, "spe": colSpeed,

	"total": colTotal, "bst": colTotal, "basestattotal": colTotal,
}

var requiredColumns = []string{
	colName, colType1, colHP, colAttack, colDefense, colSpAttack, colSpDefense, colSpeed,
}

func squashHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", ".", "", "_", "", "-", "").Replace(h)
}

// parseCSV reads a roster table. Rows without a name or primary type are
// dropped with a warning; malformed stats are errors reported by row.
func parseCSV(r io.Reader, ve *ValidationError) ([]types.Creature, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("roster CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if key, ok := columnAliases[squashHeader(h)]; ok {
			if _, dup := cols[key]; !dup {
				cols[key] = i
			}
		}
	}
	var missing []string
	for _, key := range requiredColumns {
		if _, ok := cols[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("roster CSV missing required column(s): %s", strings.Join(missing, ", "))
	}

	cell := func(rec []string, key string) string {
		i, ok := cols[key]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []types.Creature
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", row, err)
		}

		name := cell(rec, colName)
		t1 := typechart.Normalize(cell(rec, colType1))
		if name == "" || t1 == "" {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("row %d: missing name or primary type, dropped", row))
			continue
		}

		c := types.Creature{
			Name:  name,
			Type1: t1,
			Type2: typechart.Normalize(cell(rec, colType2)),
		}
		fields := []struct {
			key string
			dst *int
		}{
			{colHP, &c.Stats.HP},
			{colAttack, &c.Stats.Attack},
			{colDefense, &c.Stats.Defense},
			{colSpAttack, &c.Stats.SpAttack},
			{colSpDefense, &c.Stats.SpDefense},
			{colSpeed, &c.Stats.Speed},
		}
		rowOK := true
		for _, f := range fields {
			v, err := parseStat(cell(rec, f.key))
			if err != nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf("row %d (%s): %s %v", row, name, f.key, err))
				rowOK = false
				continue
			}
			*f.dst = v
		}
		if s := cell(rec, colTotal); s != "" {
			v, err := parseStat(s)
			if err != nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf("row %d (%s): total %v", row, name, err))
				rowOK = false
			} else {
				c.Total = &v
			}
		}
		if rowOK {
			out = append(out, c)
		}
	}

	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return out, nil
}

func parseStat(s string) (int, error) {
	if s == "" {
		return 0, errors.New("is empty")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("%q is not a whole number", s)
		}
		v = int(f)
	}
	if v < 0 {
		return 0, fmt.Errorf("%d is negative", v)
	}
	return v, nil
}
