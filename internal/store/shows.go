package store

import (
	"context"
	"fmt"
	"time"
)

// Show is a finished fireworks show as reported by a client.
type Show struct {
	ID        int64         `json:"id"`
	Profile   string        `json:"profile"`
	Reason    string        `json:"reason"`
	Duration  time.Duration `json:"duration"`
	Fireworks int           `json:"fireworks"`
	StartedAt time.Time     `json:"started_at"`
}

// RecordShow inserts sh and returns its id.
func (s *Store) RecordShow(ctx context.Context, sh Show) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO shows (profile, reason, duration_ms, fireworks, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, sh.Profile, sh.Reason, sh.Duration.Milliseconds(), sh.Fireworks, unix(sh.StartedAt))
	if err != nil {
		return 0, fmt.Errorf("record show: %w", err)
	}
	return res.LastInsertId()
}

// RecentShows returns up to limit shows, newest first.
func (s *Store) RecentShows(ctx context.Context, limit int) ([]Show, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile, reason, duration_ms, fireworks, started_at
		FROM shows
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query shows: %w", err)
	}
	defer rows.Close()

	var shows []Show
	for rows.Next() {
		var (
			sh      Show
			ms, sec int64
		)
		if err := rows.Scan(&sh.ID, &sh.Profile, &sh.Reason, &ms, &sh.Fireworks, &sec); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		sh.Duration = time.Duration(ms) * time.Millisecond
		sh.StartedAt = fromUnix(sec)
		shows = append(shows, sh)
	}
	return shows, rows.Err()
}
