package store

import (
	"context"
	"fmt"
	"time"
)

// Stats backs the admin dashboard.
type Stats struct {
	TotalVisitors    int64   `json:"total_visitors"`
	UniqueVisitors   int64   `json:"unique_visitors"`
	MobileVisitors   int64   `json:"mobile_visitors"`
	VisitorsToday    int64   `json:"visitors_today"`
	VisitorsThisWeek int64   `json:"visitors_this_week"`
	TotalShows       int64   `json:"total_shows"`
	ShowsByReason    []Count `json:"shows_by_reason"`
	TotalFireworks   int64   `json:"total_fireworks"`
	TotalMessages    int64   `json:"total_messages"`
	UndeliveredMsgs  int64   `json:"undelivered_messages"`
	RecentVisitors   []Visit `json:"recent_visitors"`
	RecentShows      []Show  `json:"recent_shows"`
}

// Count is a labelled tally.
type Count struct {
	Label string `json:"label"`
	N     int64  `json:"n"`
}

// Stats computes dashboard figures relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week := now.Add(-7 * 24 * time.Hour)

	scalars := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.MobileVisitors, `SELECT COUNT(*) FROM visitors WHERE mobile = 1`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{unix(midnight)}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{unix(week)}},
		{&stats.TotalShows, `SELECT COUNT(*) FROM shows`, nil},
		{&stats.TotalFireworks, `SELECT COALESCE(SUM(fireworks), 0) FROM shows`, nil},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM contact_messages`, nil},
		{&stats.UndeliveredMsgs, `SELECT COUNT(*) FROM contact_messages WHERE delivered = 0`, nil},
	}
	for _, q := range scalars {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT reason, COUNT(*) FROM shows GROUP BY reason ORDER BY COUNT(*) DESC, reason
	`)
	if err != nil {
		return nil, fmt.Errorf("stats by reason: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.N); err != nil {
			return nil, fmt.Errorf("scan reason: %w", err)
		}
		stats.ShowsByReason = append(stats.ShowsByReason, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.RecentVisitors, err = s.RecentVisits(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentShows, err = s.RecentShows(ctx, 10); err != nil {
		return nil, err
	}
	return stats, nil
}
