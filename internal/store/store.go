// Package store persists run outcomes and coach packages in SQLite.
// It implements pipeline.Recorder; callers treat write failures as
// advisory, so nothing here is on the coaching hot path.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/barrios-a2i/lanesight/internal/pipeline"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id        TEXT PRIMARY KEY,
	first_seen     TEXT NOT NULL,
	last_seen      TEXT NOT NULL,
	runs           INTEGER NOT NULL DEFAULT 0,
	total_cost_usd REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id     TEXT,
	status      TEXT NOT NULL,
	state       TEXT,
	confidence  REAL NOT NULL,
	cost_usd    REAL NOT NULL,
	latency_ms  REAL NOT NULL,
	advice_json TEXT,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS packages (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id      TEXT NOT NULL,
	package_json TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
`
// #endregion schema

// #region store-struct
// Store writes coaching history to SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}
// #endregion store-struct

// #region constructor
// Open opens a SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region record-run
// RecordRun logs one pipeline run and, when it carried a coach package,
// saves the package alongside. Cooldown runs are skipped.
func (s *Store) RecordRun(res pipeline.RunResult) error {
	if res.Status == pipeline.StatusCooldown {
		return nil
	}
	now := s.now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var adviceJSON interface{}
	if res.Advice != nil {
		data, err := json.Marshal(res.Advice)
		if err != nil {
			return fmt.Errorf("marshal advice: %w", err)
		}
		adviceJSON = string(data)
	}

	var gamePtr interface{}
	if res.GameID != "" {
		gamePtr = res.GameID
	}

	_, err = tx.Exec(
		`INSERT INTO run_log (game_id, status, state, confidence, cost_usd, latency_ms, advice_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gamePtr, string(res.Status), string(res.State), res.Confidence,
		res.CostUSD, res.LatencyMS, adviceJSON, now,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if res.GameID != "" {
		_, err = tx.Exec(
			`INSERT INTO games (game_id, first_seen, last_seen, runs, total_cost_usd)
			 VALUES (?, ?, ?, 1, ?)
			 ON CONFLICT(game_id) DO UPDATE SET
				last_seen = excluded.last_seen,
				runs = runs + 1,
				total_cost_usd = total_cost_usd + excluded.total_cost_usd`,
			res.GameID, now, now, res.CostUSD,
		)
		if err != nil {
			return fmt.Errorf("upsert game: %w", err)
		}
	}

	if res.Package != nil && res.GameID != "" {
		data, err := json.Marshal(res.Package)
		if err != nil {
			return fmt.Errorf("marshal package: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO packages (game_id, package_json, created_at) VALUES (?, ?, ?)`,
			res.GameID, string(data), now,
		)
		if err != nil {
			return fmt.Errorf("insert package: %w", err)
		}
	}

	return tx.Commit()
}
// #endregion record-run

// #region latest-package
// LatestPackage returns the most recent coach package for a game.
func (s *Store) LatestPackage(gameID string) (*pipeline.CoachPackage, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT package_json FROM packages WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("latest package for %s: %w", gameID, err)
	}
	var pkg pipeline.CoachPackage
	if err := json.Unmarshal([]byte(raw), &pkg); err != nil {
		return nil, fmt.Errorf("unmarshal package: %w", err)
	}
	return &pkg, nil
}
// #endregion latest-package

// #region game-summary
// GameSummary is one row of coaching history.
type GameSummary struct {
	GameID       string
	FirstSeen    time.Time
	LastSeen     time.Time
	Runs         int
	TotalCostUSD float64
}

// ListGames returns the most recently seen games.
func (s *Store) ListGames(limit int) ([]GameSummary, error) {
	rows, err := s.db.Query(
		`SELECT game_id, first_seen, last_seen, runs, total_cost_usd
		 FROM games ORDER BY last_seen DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []GameSummary
	for rows.Next() {
		var g GameSummary
		var first, last string
		if err := rows.Scan(&g.GameID, &first, &last, &g.Runs, &g.TotalCostUSD); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.FirstSeen, _ = time.Parse(time.RFC3339Nano, first)
		g.LastSeen, _ = time.Parse(time.RFC3339Nano, last)
		out = append(out, g)
	}
	return out, rows.Err()
}
// #endregion game-summary

// #region run-rows
// RunRow is one logged pipeline run.
type RunRow struct {
	ID         int64
	GameID     string
	Status     string
	State      string
	Confidence float64
	CostUSD    float64
	LatencyMS  float64
	AdviceJSON string
	CreatedAt  time.Time
}

// ListRuns returns the most recent runs, newest first. An empty gameID
// lists across all games.
func (s *Store) ListRuns(gameID string, limit int) ([]RunRow, error) {
	query := `SELECT id, game_id, status, state, confidence, cost_usd, latency_ms, advice_json, created_at
		 FROM run_log`
	args := []interface{}{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var game, advice sql.NullString
		var created string
		if err := rows.Scan(&r.ID, &game, &r.Status, &r.State, &r.Confidence,
			&r.CostUSD, &r.LatencyMS, &advice, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if game.Valid {
			r.GameID = game.String
		}
		if advice.Valid {
			r.AdviceJSON = advice.String
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, r)
	}
	return out, rows.Err()
}
// #endregion run-rows
