package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/nathoo/duelset/types"
)

// ValidTable reports whether name is a plain SQL identifier: ASCII letters,
// digits and underscores, not starting with a digit, at most 63 bytes.
func ValidTable(name string) bool {
	if name == "" || len(name) > 63 {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func createTableSQL(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\t\t\tid INTEGER PRIMARY KEY", table)
	for _, c := range Columns {
		typ := "INTEGER"
		if c == "name_a" || c == "name_b" {
			typ = "TEXT"
		}
		fmt.Fprintf(&b, ",\n\t\t\t%s %s NOT NULL", c, typ)
	}
	b.WriteString("\n\t\t)")
	return b.String()
}

func insertSQL(table string) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(Columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(Columns, ", "), marks)
}

// WriteSQLite inserts recs into table in the SQLite database at path,
// creating the table if absent. All rows go in one transaction; id follows
// record order starting at 1 for a fresh table.
func WriteSQLite(ctx context.Context, path, table string, recs []types.MatchupRecord) error {
	if !ValidTable(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTableSQL(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after Commit()

	stmt, err := tx.PrepareContext(ctx, insertSQL(table))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range recs {
		if _, err := stmt.ExecContext(ctx, FromRecord(rec).values()...); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// ReadSQLite loads every record from table ordered by id.
func ReadSQLite(ctx context.Context, path, table string) ([]types.MatchupRecord, error) {
	if !ValidTable(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(Columns, ", "), table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var out []types.MatchupRecord
	for rows.Next() {
		var r Row
		if err := rows.Scan(
			&r.NameA, &r.NameB, &r.LevelA, &r.LevelB, &r.Y,
			&r.TMAB, &r.TMBA, &r.DHP, &r.DAtk, &r.DDef, &r.DSpA, &r.DSpD, &r.DSpe,
			&r.DTotal, &r.AFaster, &r.DLevel,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, r.Record())
	}
	return out, rows.Err()
}
