package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Zachkp/aurora-portfolio/internal/theme"
)

// Theme implements theme.Store.
func (s *Store) Theme(ctx context.Context, visitor string) (theme.Theme, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT theme FROM preferences WHERE visitor = ?`, visitor).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query theme: %w", err)
	}
	t, err := theme.Parse(raw)
	if err != nil {
		return "", false, err
	}
	return t, true, nil
}

// SetTheme implements theme.Store.
func (s *Store) SetTheme(ctx context.Context, visitor string, t theme.Theme) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor, theme, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (visitor) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at
	`, visitor, string(t), unix(time.Now()))
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
