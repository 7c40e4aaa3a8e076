package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetOrCreateProfile returns the profile for id, creating it with zero
// points if it does not exist.
func (s *Store) GetOrCreateProfile(ctx context.Context, id string) (Profile, error) {
	if id == "" {
		return Profile{}, fmt.Errorf("storage: empty profile id")
	}
	now := time.Now().UTC()
	if _, err := s.exec(ctx, s.dialect.InsertProfileIgnore(), id, 0, now, now); err != nil {
		return Profile{}, fmt.Errorf("storage: cannot create profile: %w", err)
	}
	return s.Profile(ctx, id)
}

// Profile returns the profile for id, or ErrNotFound.
func (s *Store) Profile(ctx context.Context, id string) (Profile, error) {
	var p Profile
	var createdAt, updatedAt any
	err := s.queryRow(ctx,
		"SELECT id, points, created_at, updated_at FROM profiles WHERE id = ?",
		id,
	).Scan(&p.ID, &p.Points, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("storage: cannot query profile: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

// UpdatePoints sets the absolute point balance for id, creating the
// profile if needed.
func (s *Store) UpdatePoints(ctx context.Context, id string, points int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, s.dialect.RewriteQuery(s.dialect.InsertProfileIgnore()), id, points, now, now); err != nil {
		return fmt.Errorf("storage: cannot create profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		s.dialect.RewriteQuery("UPDATE profiles SET points = ?, updated_at = ? WHERE id = ?"),
		points, now, id,
	); err != nil {
		return fmt.Errorf("storage: cannot update points: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit points: %w", err)
	}
	return nil
}

// ProfileCount returns the number of stored profiles.
func (s *Store) ProfileCount(ctx context.Context) (int, error) {
	var n int
	if err := s.queryRow(ctx, "SELECT COUNT(*) FROM profiles").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count profiles: %w", err)
	}
	return n, nil
}
