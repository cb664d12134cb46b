// Package database persists match records to PostgreSQL. The engine keeps
// all live state in memory; only finished-match results and initial-deal
// audit snapshots are written out. Every method is nil-safe so the server
// runs without a database.
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// Connect opens a pool against dsn, verifies connectivity and ensures the
// schema exists.
func Connect(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	db := &DB{Pool: pool}
	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS literature_matches (
			match_id      uuid PRIMARY KEY,
			lobby_code    text NOT NULL,
			winning_team  text NOT NULL,
			declared_sets jsonb NOT NULL,
			finished_at   timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS literature_deals (
			match_id uuid PRIMARY KEY,
			hands    jsonb NOT NULL,
			dealt_at timestamptz NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

// RecordInitialDeal stores the dealt hands for post-match audit.
func (db *DB) RecordInitialDeal(ctx context.Context, matchID uuid.UUID, hands map[string][]string) error {
	if db == nil {
		return nil
	}
	blob, err := json.Marshal(hands)
	if err != nil {
		return fmt.Errorf("encoding deal: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO literature_deals (match_id, hands) VALUES ($1, $2)
		 ON CONFLICT (match_id) DO NOTHING`,
		matchID, blob)
	if err != nil {
		return fmt.Errorf("inserting deal: %w", err)
	}
	return nil
}

// RecordMatchResult stores the winner and the declared-set ledger.
func (db *DB) RecordMatchResult(ctx context.Context, matchID uuid.UUID, lobbyCode, winningTeam string, declared any) error {
	if db == nil {
		return nil
	}
	blob, err := json.Marshal(declared)
	if err != nil {
		return fmt.Errorf("encoding declared sets: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO literature_matches (match_id, lobby_code, winning_team, declared_sets)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (match_id) DO NOTHING`,
		matchID, lobbyCode, winningTeam, blob)
	if err != nil {
		return fmt.Errorf("inserting match result: %w", err)
	}
	return nil
}

// Close releases the pool.
func (db *DB) Close() {
	if db != nil && db.Pool != nil {
		db.Pool.Close()
	}
}
