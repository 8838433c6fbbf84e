package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schema string

var tables = []string{"users", "vendors", "plans", "categories", "items"}

// Setup creates any missing tables and indexes. Running it twice is a no-op.
func Setup(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	return nil
}

type TableStatus struct {
	Name   string
	Exists bool
	Rows   int64
}

// Status reports which tables exist and how many rows each holds.
func Status(ctx context.Context, db *sqlx.DB) ([]TableStatus, error) {
	out := make([]TableStatus, 0, len(tables))

	for _, name := range tables {
		st := TableStatus{Name: name}

		if err := db.GetContext(ctx, &st.Exists,
			`SELECT to_regclass($1) IS NOT NULL`, "public."+name); err != nil {
			return nil, fmt.Errorf("checking table %s: %w", name, err)
		}

		if st.Exists {
			// name comes from the fixed table list above
			if err := db.GetContext(ctx, &st.Rows, `SELECT COUNT(*) FROM `+name); err != nil {
				return nil, fmt.Errorf("counting %s: %w", name, err)
			}
		}

		out = append(out, st)
	}

	return out, nil
}
