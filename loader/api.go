package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the roster constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Creature "Name" { types = {...}, hp = ..., ... }: curried, Creature("Name")
	// returns a function that takes the stat table.
	L.SetGlobal("Creature", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		line := L.Where(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.creatures = append(coll.creatures, rawCreature{
				name:  name,
				table: tbl,
				where: line,
				order: coll.nextSourceOrder(),
			})
			return 0
		}))
		return 1
	}))

	// Stats(hp, atk, def, spa, spd, spe) builds a stat table in column order.
	L.SetGlobal("Stats", L.NewFunction(func(L *lua.LState) int {
		keys := []string{"hp", "attack", "defense", "sp_attack", "sp_defense", "speed"}
		tbl := L.NewTable()
		for i, k := range keys {
			tbl.RawSetString(k, L.CheckNumber(i+1))
		}
		L.Push(tbl)
		return 1
	}))
}
