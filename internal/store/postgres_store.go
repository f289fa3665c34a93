package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/timeutil"
)

// PgxConn is the subset of *pgxpool.Pool used by PostgresStore.
type PgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresStore keeps one season_caches row per season plus its games in
// season_games.
type PostgresStore struct {
	db       PgxConn
	schemaID string
}

const migrationSQL = `
CREATE TABLE IF NOT EXISTS season_caches (
	season_id  INTEGER PRIMARY KEY,
	schema_id  TEXT NOT NULL,
	expires_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS season_games (
	season_id INTEGER NOT NULL REFERENCES season_caches (season_id) ON DELETE CASCADE,
	game_id   TEXT NOT NULL,
	played_on DATE NOT NULL,
	team_a    TEXT NOT NULL,
	score_a   INTEGER NOT NULL,
	team_b    TEXT NOT NULL,
	score_b   INTEGER NOT NULL,
	PRIMARY KEY (season_id, game_id)
);
`

// OpenPostgres connects a pool and verifies it with a ping.
func OpenPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// NewPostgresStore wraps an open connection or pool.
func NewPostgresStore(db PgxConn) *PostgresStore {
	return &PostgresStore{db: db, schemaID: SchemaID}
}

// Migrate creates the cache tables when they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, migrationSQL); err != nil {
		return fmt.Errorf("migrate cache tables: %w", err)
	}
	return nil
}

// Get loads the season's record and games.
func (s *PostgresStore) Get(ctx context.Context, seasonID int) (*games.CacheRecord, error) {
	var (
		schemaID  string
		expiresAt *time.Time
		updatedAt time.Time
	)
	err := s.db.QueryRow(ctx,
		`SELECT schema_id, expires_at, updated_at FROM season_caches WHERE season_id = $1`,
		seasonID,
	).Scan(&schemaID, &expiresAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get season cache %d: %w", seasonID, err)
	}
	if schemaID != s.schemaID {
		return nil, nil
	}

	rows, err := s.db.Query(ctx,
		`SELECT game_id, played_on, team_a, score_a, team_b, score_b
		   FROM season_games WHERE season_id = $1 ORDER BY game_id`,
		seasonID,
	)
	if err != nil {
		return nil, fmt.Errorf("query season games %d: %w", seasonID, err)
	}
	defer rows.Close()

	list := []games.Game{}
	for rows.Next() {
		var (
			g            games.Game
			playedOn     time.Time
			teamA, teamB string
		)
		if err := rows.Scan(&g.ID, &playedOn, &teamA, &g.Teams[0].Score, &teamB, &g.Teams[1].Score); err != nil {
			return nil, fmt.Errorf("scan season game: %w", err)
		}
		g.PlayedOn = playedOn.UTC().Format(timeutil.DateLayout)
		g.SeasonID = seasonID
		g.Teams[0].Team = teams.Code(teamA)
		g.Teams[1].Team = teams.Code(teamB)
		list = append(list, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate season games %d: %w", seasonID, err)
	}

	rec := &games.CacheRecord{
		SeasonID:  seasonID,
		Games:     list,
		UpdatedAt: updatedAt.UTC(),
	}
	if expiresAt != nil {
		exp := expiresAt.UTC()
		rec.ExpiresAt = &exp
	}
	return rec, nil
}

// Put replaces the season's record and games. All statements go out in one
// batch, which Postgres runs as a single implicit transaction.
func (s *PostgresStore) Put(ctx context.Context, record games.CacheRecord) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO season_caches (season_id, schema_id, expires_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (season_id) DO UPDATE SET
			schema_id = EXCLUDED.schema_id,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at`,
		record.SeasonID, s.schemaID, record.ExpiresAt, record.UpdatedAt,
	)
	batch.Queue(`DELETE FROM season_games WHERE season_id = $1`, record.SeasonID)
	for _, g := range record.Games {
		playedOn, err := timeutil.ParseDate(g.PlayedOn)
		if err != nil {
			return fmt.Errorf("game %s: %w", g.ID, err)
		}
		batch.Queue(`
			INSERT INTO season_games (season_id, game_id, played_on, team_a, score_a, team_b, score_b)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			record.SeasonID, g.ID, playedOn,
			string(g.Teams[0].Team), g.Teams[0].Score,
			string(g.Teams[1].Team), g.Teams[1].Score,
		)
	}

	br := s.db.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("put season cache %d: %w", record.SeasonID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("put season cache %d: %w", record.SeasonID, err)
	}
	return nil
}
