// internal/store/postgres.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cardbound/deal/internal/game"
)

// Postgres persists game records in a single games table with the aggregate
// serialized as jsonb and a bigint version column for compare-and-swap. The
// pool is injected; this package holds no connection globals.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the games table if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS games (
			id         TEXT PRIMARY KEY,
			version    BIGINT NOT NULL,
			status     TEXT NOT NULL,
			state      JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate games table: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, rec *Record) error {
	state, err := json.Marshal(rec.Game)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", rec.ID, err)
	}
	rec.Version = 1
	q := `
		INSERT INTO games (id, version, status, state)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err = s.pool.QueryRow(ctx, q, rec.ID, rec.Version, string(rec.Game.Status), state).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrExists
		}
		return fmt.Errorf("insert game %s: %w", rec.ID, err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, id string) (*Record, error) {
	rec := &Record{ID: id}
	var state []byte
	q := `SELECT version, state, created_at, updated_at FROM games WHERE id = $1`
	err := s.pool.QueryRow(ctx, q, id).Scan(&rec.Version, &state, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select game %s: %w", id, err)
	}
	rec.Game = &game.Game{}
	if err := json.Unmarshal(state, rec.Game); err != nil {
		return nil, fmt.Errorf("unmarshal game %s: %w", id, err)
	}
	return rec, nil
}

func (s *Postgres) Update(ctx context.Context, rec *Record) error {
	state, err := json.Marshal(rec.Game)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", rec.ID, err)
	}
	q := `
		UPDATE games
		SET version = version + 1, status = $1, state = $2, updated_at = NOW()
		WHERE id = $3 AND version = $4
	`
	tag, err := s.pool.Exec(ctx, q, string(rec.Game.Status), state, rec.ID, rec.Version)
	if err != nil {
		return fmt.Errorf("update game %s: %w", rec.ID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a lost race from a missing row.
		var exists bool
		if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM games WHERE id = $1)`, rec.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check game %s: %w", rec.ID, err)
		}
		if !exists {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	rec.Version++
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
