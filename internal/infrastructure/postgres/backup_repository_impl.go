package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/hotel-management/internal/domain/repository"
)

type BackupRepository struct {
	pool *pgxpool.Pool
}

func NewBackupRepository(pool *pgxpool.Pool) *BackupRepository {
	return &BackupRepository{pool: pool}
}

func allowedTable(name string) bool {
	for _, t := range repository.BackupTables {
		if t == name {
			return true
		}
	}
	return false
}

// Export dumps each table as a JSON array of rows, inside one read-only
// snapshot so the tables are mutually consistent.
func (r *BackupRepository) Export(ctx context.Context, tables []string) (map[string]json.RawMessage, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := make(map[string]json.RawMessage, len(tables))
	for _, t := range tables {
		if !allowedTable(t) {
			return nil, fmt.Errorf("table %q is not part of backups", t)
		}
		ident := pgx.Identifier{t}.Sanitize()
		var raw []byte
		q := `SELECT COALESCE(json_agg(row_to_json(x)), '[]'::json) FROM ` + ident + ` x`
		if err := tx.QueryRow(ctx, q).Scan(&raw); err != nil {
			return nil, fmt.Errorf("export %s: %w", t, err)
		}
		out[t] = json.RawMessage(raw)
	}
	return out, tx.Commit(ctx)
}

// Restore truncates all listed tables and re-inserts the given rows. Tables
// are inserted in the listed order so foreign keys resolve.
func (r *BackupRepository) Restore(ctx context.Context, tables []string, data map[string]json.RawMessage) (err error) {
	idents := make([]string, 0, len(tables))
	for _, t := range tables {
		if !allowedTable(t) {
			return fmt.Errorf("table %q is not part of backups", t)
		}
		idents = append(idents, pgx.Identifier{t}.Sanitize())
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `TRUNCATE `+strings.Join(idents, ", ")+` CASCADE`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	for i, t := range tables {
		rows, ok := data[t]
		if !ok || len(rows) == 0 {
			continue
		}
		q := `INSERT INTO ` + idents[i] + ` SELECT * FROM json_populate_recordset(NULL::` + idents[i] + `, $1::json)`
		if _, err = tx.Exec(ctx, q, string(rows)); err != nil {
			return fmt.Errorf("restore %s: %w", t, err)
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit restore: %w", err)
	}
	return nil
}

var _ repository.BackupRepository = (*BackupRepository)(nil)
