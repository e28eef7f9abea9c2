package loader

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/duelset/engine/typechart"
	"github.com/nathoo/duelset/types"
)

// rawCreature holds a Creature declaration before compilation.
type rawCreature struct {
	name  string
	table *lua.LTable
	where string
	order int
}

// statKeys are the Lua field names of the six stats, in column order.
var statKeys = []string{"hp", "attack", "defense", "sp_attack", "sp_defense", "speed"}

// compile converts raw declarations into creatures in declaration order.
// Problems are recorded on ve; creatures with errors are skipped.
func compile(coll *collector, ve *ValidationError) []types.Creature {
	out := make([]types.Creature, 0, len(coll.creatures))
	for _, raw := range coll.creatures {
		c, ok := compileCreature(raw, ve)
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func compileCreature(raw rawCreature, ve *ValidationError) (types.Creature, bool) {
	c := types.Creature{Name: raw.name}
	ok := true
	fail := func(format string, args ...any) {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%screature %q: %s", raw.where, raw.name, fmt.Sprintf(format, args...)))
		ok = false
	}

	// Types: either types = {"Fire", "Flying"} or type1/type2 fields.
	var ts []string
	if tt := getTable(raw.table, "types"); tt != nil {
		for i := 1; i <= tt.MaxN(); i++ {
			s, isStr := tt.RawGetInt(i).(lua.LString)
			if !isStr {
				fail("types[%d] is not a string", i)
				continue
			}
			ts = append(ts, string(s))
		}
	} else {
		ts = append(ts, getString(raw.table, "type1"), getString(raw.table, "type2"))
	}
	if len(ts) > 2 {
		fail("has %d types, at most 2 allowed", len(ts))
	}
	if len(ts) > 0 {
		c.Type1 = typechart.Normalize(ts[0])
	}
	if len(ts) > 1 {
		c.Type2 = typechart.Normalize(ts[1])
	}

	// Stats: top-level fields or a nested stats = Stats(...) table.
	src := raw.table
	if st := getTable(raw.table, "stats"); st != nil {
		src = st
	}
	vals := make([]int, len(statKeys))
	for i, key := range statKeys {
		v, err := getStat(src, key)
		if err != nil {
			fail("%v", err)
			continue
		}
		vals[i] = v
	}
	c.Stats = types.Stats{
		HP: vals[0], Attack: vals[1], Defense: vals[2],
		SpAttack: vals[3], SpDefense: vals[4], Speed: vals[5],
	}

	if raw.table.RawGetString("total") != lua.LNil {
		total, err := getStat(raw.table, "total")
		if err != nil {
			fail("%v", err)
		} else {
			c.Total = &total
		}
	}

	return c, ok
}

// getStat reads a required non-negative integer field.
func getStat(tbl *lua.LTable, key string) (int, error) {
	v := tbl.RawGetString(key)
	n, ok := v.(lua.LNumber)
	if !ok {
		if v == lua.LNil {
			return 0, fmt.Errorf("missing %s", key)
		}
		return 0, fmt.Errorf("%s must be a number, got %s", key, v.Type())
	}
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s must be a whole number, got %v", key, f)
	}
	if f < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %v", key, f)
	}
	return int(f), nil
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}
