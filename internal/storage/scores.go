package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SaveScore records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveScore(ctx context.Context, e ScoreEntry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	query := "INSERT INTO scores (profile_id, score, pipes, coins, created_at) VALUES (?, ?, ?, ?, ?)"
	args := []any{e.ProfileID, e.Score, e.Pipes, e.Coins, e.CreatedAt}

	if s.dialect.SupportsLastInsertId() {
		result, err := s.exec(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save score: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
		}
		return id, nil
	}

	var id int64
	query = strings.TrimSuffix(strings.TrimSpace(query), ";") + " RETURNING id"
	if err := s.queryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N runs across all profiles, or only for
// profileID when it is not empty. Results are ordered by score descending.
func (s *Store) TopScores(ctx context.Context, profileID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows *sql.Rows
	var err error
	if profileID == "" {
		rows, err = s.query(ctx,
			`SELECT id, profile_id, score, pipes, coins, created_at
			 FROM scores
			 ORDER BY score DESC, id ASC
			 LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.query(ctx,
			`SELECT id, profile_id, score, pipes, coins, created_at
			 FROM scores
			 WHERE profile_id = ?
			 ORDER BY score DESC, id ASC
			 LIMIT ?`,
			profileID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Score, &e.Pipes, &e.Coins, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best run for profileID. Returns 0 if none exist.
func (s *Store) HighScore(ctx context.Context, profileID string) (int, error) {
	var score sql.NullInt64
	err := s.queryRow(ctx,
		"SELECT MAX(score) FROM scores WHERE profile_id = ?",
		profileID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats contains aggregated statistics for a profile.
type Stats struct {
	ProfileID  string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	TotalPipes int
	TotalCoins int
	LastPlayed time.Time
}

// ProfileStats retrieves aggregated run statistics for profileID.
func (s *Store) ProfileStats(ctx context.Context, profileID string) (Stats, error) {
	stats := Stats{ProfileID: profileID}

	err := s.queryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(pipes), 0), COALESCE(SUM(coins), 0)
		 FROM scores WHERE profile_id = ?`,
		profileID,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.TotalPipes, &stats.TotalCoins)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get profile stats: %w", err)
	}

	var lastPlayed any
	err = s.queryRow(ctx,
		`SELECT created_at FROM scores WHERE profile_id = ? ORDER BY created_at DESC LIMIT 1`,
		profileID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return stats, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
