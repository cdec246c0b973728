package storage

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
)

// PostgresStore keeps the entry sequence in a single table but preserves the
// whole-sequence contract: Save replaces every row inside one transaction,
// mirroring the file store's atomic whole-file rewrite. Sets are stored as a
// JSONB column since entries own them by value.
type PostgresStore struct {
	pool       *pgxpool.Pool
	exportPath string
	logger     internal.Logger
}

const entriesSchema = `
CREATE TABLE IF NOT EXISTS workout_entries (
    id            TEXT PRIMARY KEY,
    exercise_name TEXT NOT NULL,
    date          TIMESTAMPTZ NOT NULL,
    sets          JSONB NOT NULL,
    position      INT NOT NULL
)`

func NewPostgresStore(dsn, exportPath string, logger internal.Logger) (*PostgresStore, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if _, err := pool.Exec(ctx, entriesSchema); err != nil {
		logger.Errorf("failed to ensure schema: %v", err)
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool, exportPath: exportPath, logger: logger}, nil
}

func (p *PostgresStore) Load(ctx context.Context) ([]internal.ExerciseEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, exercise_name, date, sets FROM workout_entries ORDER BY position`)
	if err != nil {
		p.logger.Errorf("failed to query entries: %v", err)
		return nil, newStoreError(OpLoad, "workout_entries", err)
	}
	defer rows.Close()

	var entries []internal.ExerciseEntry
	for rows.Next() {
		var e internal.ExerciseEntry
		var setsJSON []byte
		if err := rows.Scan(&e.ID, &e.ExerciseName, &e.Date, &setsJSON); err != nil {
			p.logger.Errorf("failed to scan entry: %v", err)
			return nil, newStoreError(OpLoad, "workout_entries", err)
		}
		if err := json.Unmarshal(setsJSON, &e.Sets); err != nil {
			p.logger.Errorf("failed to decode sets for entry %s: %v", e.ID, err)
			return nil, newStoreError(OpLoad, "workout_entries", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, newStoreError(OpLoad, "workout_entries", err)
	}
	return entries, nil
}

func (p *PostgresStore) Save(ctx context.Context, entries []internal.ExerciseEntry) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return newStoreError(OpSave, "workout_entries", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM workout_entries`); err != nil {
		return newStoreError(OpSave, "workout_entries", err)
	}
	for i, e := range entries {
		setsJSON, err := json.Marshal(e.Sets)
		if err != nil {
			return newStoreError(OpSave, "workout_entries", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO workout_entries (id, exercise_name, date, sets, position) VALUES ($1, $2, $3, $4, $5)`,
			e.ID, e.ExerciseName, e.Date, setsJSON, i)
		if err != nil {
			p.logger.Errorf("failed to insert entry %s: %v", e.ID, err)
			return newStoreError(OpSave, "workout_entries", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return newStoreError(OpSave, "workout_entries", err)
	}
	return nil
}

func (p *PostgresStore) Export(ctx context.Context, entries []internal.ExerciseEntry) (string, error) {
	if entries == nil {
		entries = []internal.ExerciseEntry{}
	}
	if err := atomicWriteJSON(p.exportPath, entries); err != nil {
		return "", newStoreError(OpExport, p.exportPath, err)
	}
	p.logger.Infof("storage: exported %d entries to %s", len(entries), p.exportPath)
	return p.exportPath, nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

var _ EntryStore = (*PostgresStore)(nil)
