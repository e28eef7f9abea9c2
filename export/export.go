// Package export writes labeled matchup records to JSONL, CSV, SQLite or
// PostgreSQL, and maintains the manifest sidecar used to compare runs.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nathoo/duelset/types"
)

// Columns lists the dataset columns in output order.
var Columns = append([]string{"name_a", "name_b", "level_a", "level_b", "y"}, types.FeatureNames...)

// Row is the flat, serialisable form of a MatchupRecord. Field order is
// column order, so JSON keys come out in schema order.
type Row struct {
	NameA   string `json:"name_a"`
	NameB   string `json:"name_b"`
	LevelA  int    `json:"level_a"`
	LevelB  int    `json:"level_b"`
	Y       int    `json:"y"`
	TMAB    int    `json:"tm_ab"`
	TMBA    int    `json:"tm_ba"`
	DHP     int    `json:"d_hp"`
	DAtk    int    `json:"d_atk"`
	DDef    int    `json:"d_def"`
	DSpA    int    `json:"d_spa"`
	DSpD    int    `json:"d_spd"`
	DSpe    int    `json:"d_spe"`
	DTotal  int    `json:"d_total"`
	AFaster int    `json:"a_faster"`
	DLevel  int    `json:"d_level"`
}

// FromRecord flattens rec.
func FromRecord(rec types.MatchupRecord) Row {
	f := rec.Features
	return Row{
		NameA: rec.NameA, NameB: rec.NameB,
		LevelA: rec.LevelA, LevelB: rec.LevelB,
		Y:    rec.Label,
		TMAB: f.TMAB, TMBA: f.TMBA,
		DHP: f.DHP, DAtk: f.DAtk, DDef: f.DDef,
		DSpA: f.DSpA, DSpD: f.DSpD, DSpe: f.DSpe,
		DTotal: f.DTotal, AFaster: f.AFaster, DLevel: f.DLevel,
	}
}

// Record rebuilds the MatchupRecord.
func (r Row) Record() types.MatchupRecord {
	return types.MatchupRecord{
		NameA: r.NameA, NameB: r.NameB,
		LevelA: r.LevelA, LevelB: r.LevelB,
		Label: r.Y,
		Features: types.Features{
			TMAB: r.TMAB, TMBA: r.TMBA,
			DHP: r.DHP, DAtk: r.DAtk, DDef: r.DDef,
			DSpA: r.DSpA, DSpD: r.DSpD, DSpe: r.DSpe,
			DTotal: r.DTotal, AFaster: r.AFaster, DLevel: r.DLevel,
		},
	}
}

// values returns the row in column order.
func (r Row) values() []any {
	return []any{
		r.NameA, r.NameB, r.LevelA, r.LevelB, r.Y,
		r.TMAB, r.TMBA, r.DHP, r.DAtk, r.DDef, r.DSpA, r.DSpD, r.DSpe,
		r.DTotal, r.AFaster, r.DLevel,
	}
}

// File formats understood by WriteFile.
const (
	FormatJSONL  = "jsonl"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// WriteFile writes recs to path in the given file format. The file is
// written next to its destination and renamed into place, so a failed run
// never leaves a truncated dataset behind. table is used by sqlite only.
func WriteFile(ctx context.Context, path, format, table string, recs []types.MatchupRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("export: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	switch format {
	case FormatJSONL:
		err = WriteJSONL(tmp, recs)
	case FormatCSV:
		err = WriteCSV(tmp, recs)
	case FormatSQLite:
		// SQLite opens the path itself.
		if err = tmp.Close(); err == nil {
			err = WriteSQLite(ctx, tmpPath, table, recs)
		}
	default:
		err = fmt.Errorf("unknown file format %q", format)
	}
	if format != FormatSQLite {
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}

	// CreateTemp makes the file 0600. Datasets are as readable as manifests.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("export: chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("export: rename into %s: %w", path, err)
	}
	return nil
}
