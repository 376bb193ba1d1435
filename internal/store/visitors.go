package store

import (
	"context"
	"fmt"
	"time"
)

// Visit is one tracked page view. The IP is stored hashed.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Mobile    bool      `json:"mobile"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordVisit inserts v.
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, mobile, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Mobile, unix(v.Timestamp))
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecentVisits returns up to limit visits, newest first.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, mobile, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var (
			v  Visit
			ts int64
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Mobile, &ts); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.Timestamp = fromUnix(ts)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// PruneVisits deletes visits older than cutoff and returns how many went.
func (s *Store) PruneVisits(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, unix(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune visits: %w", err)
	}
	return res.RowsAffected()
}

// ForgetVisitor removes every visit and preference tied to a hashed IP.
func (s *Store) ForgetVisitor(ctx context.Context, hashedIP string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE hashed_ip = ?`, hashedIP)
	if err != nil {
		return 0, fmt.Errorf("forget visitor: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE visitor = ?`, hashedIP); err != nil {
		return 0, fmt.Errorf("forget preferences: %w", err)
	}
	return res.RowsAffected()
}
