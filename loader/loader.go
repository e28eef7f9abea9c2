// Package loader reads a creature roster from CSV or sandboxed Lua files.
// The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/duelset/engine/roster"
	"github.com/nathoo/duelset/types"
)

// collector accumulates Creature declarations during Lua execution.
type collector struct {
	creatures []rawCreature
	order     int
}

func (c *collector) nextSourceOrder() int {
	c.order++
	return c.order
}

// Load reads a roster from path. A .csv file is parsed as a table; a .lua
// file or a directory of .lua files is executed in a sandbox. Warnings are
// logged; errors come back as *ValidationError.
func Load(path string) (*roster.Roster, error) {
	cs, warnings, err := LoadCreatures(path)
	for _, w := range warnings {
		slog.Warn("roster", "path", path, "warning", w)
	}
	if err != nil {
		return nil, err
	}
	return roster.New(cs), nil
}

// LoadCreatures is Load without logging: it returns the creatures in file
// order along with any validation warnings.
func LoadCreatures(path string) ([]types.Creature, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading roster %s: %w", path, err)
	}

	ve := &ValidationError{}
	var cs []types.Creature
	switch {
	case info.IsDir():
		cs, err = loadLuaDir(path, ve)
	case strings.EqualFold(filepath.Ext(path), ".lua"):
		cs, err = loadLuaFiles([]string{path}, ve)
	case strings.EqualFold(filepath.Ext(path), ".csv"):
		cs, err = loadCSVFile(path, ve)
	default:
		return nil, nil, fmt.Errorf("unsupported roster format %q (want .csv, .lua or a directory)", filepath.Ext(path))
	}
	if err != nil {
		return nil, ve.Warnings, err
	}

	validate(cs, ve)
	if len(ve.Errors) > 0 {
		return nil, ve.Warnings, ve
	}
	return cs, ve.Warnings, nil
}

func loadCSVFile(path string, ve *ValidationError) ([]types.Creature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()
	return parseCSV(f, ve)
}

func loadLuaDir(dir string, ve *ValidationError) ([]types.Creature, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading roster directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	sort.Strings(files)
	return loadLuaFiles(files, ve)
}

func loadLuaFiles(files []string, ve *ValidationError) ([]types.Creature, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(f); err != nil {
			return nil, fmt.Errorf("executing %s: %w", filepath.Base(f), err)
		}
	}

	cs := compile(coll, ve)
	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return cs, nil
}

// openSafeLibs opens only the side-effect-free Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach the filesystem or break determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("randomseed", lua.LNil)
		mathTbl.RawSetString("random", lua.LNil)
	}
}
