package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nathoo/duelset/types"
)

// PostgresSink bulk-loads records into a PostgreSQL table. It is safe for
// concurrent use.
type PostgresSink struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSink connects to dsn, pings the server and ensures table exists.
func NewPostgresSink(ctx context.Context, dsn, table string) (*PostgresSink, error) {
	if !ValidTable(table) {
		return nil, fmt.Errorf("postgres sink: invalid table name %q", table)
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres sink: parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres sink: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres sink: ping: %w", err)
	}

	s := &PostgresSink{pool: pool, table: table}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres sink: migrate: %w", err)
	}
	return s, nil
}

// Migrate creates the sink table if it does not exist.
func (s *PostgresSink) Migrate(ctx context.Context) error {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\t\tid BIGSERIAL PRIMARY KEY", pgx.Identifier{s.table}.Sanitize())
	for _, c := range Columns {
		typ := "INTEGER"
		if c == "name_a" || c == "name_b" {
			typ = "TEXT"
		}
		fmt.Fprintf(&b, ",\n\t\t%s %s NOT NULL", c, typ)
	}
	b.WriteString("\n\t)")
	_, err := s.pool.Exec(ctx, b.String())
	return err
}

// Write copies recs into the table with the COPY protocol and returns the
// number of rows loaded.
func (s *PostgresSink) Write(ctx context.Context, recs []types.MatchupRecord) (int64, error) {
	rows := make([][]any, len(recs))
	for i, rec := range recs {
		rows[i] = FromRecord(rec).values()
	}
	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{s.table}, Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres sink: copy into %s: %w", s.table, err)
	}
	return n, nil
}

// Count returns the number of rows currently in the table.
func (s *PostgresSink) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, "SELECT count(*) FROM "+pgx.Identifier{s.table}.Sanitize()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres sink: count %s: %w", s.table, err)
	}
	return n, nil
}

// Close releases the connection pool.
func (s *PostgresSink) Close() { s.pool.Close() }
