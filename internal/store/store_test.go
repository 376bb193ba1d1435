package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/aurora-portfolio/internal/theme"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var now = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func TestVisits(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "aa", Path: "/", Timestamp: now.Add(-time.Hour)}))
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "aa", Path: "/", Timestamp: now.Add(-48 * time.Hour)}))
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "bb", Path: "/", Mobile: true, Timestamp: now.Add(-400 * 24 * time.Hour)}))

	visits, err := s.RecentVisits(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 3)
	assert.Equal(t, now.Add(-time.Hour), visits[0].Timestamp)
	assert.True(t, visits[2].Mobile)

	n, err := s.PruneVisits(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.ForgetVisitor(ctx, "aa")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestThemePreference(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	_, ok, err := s.Theme(ctx, "v")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetTheme(ctx, "v", theme.Light))
	require.NoError(t, s.SetTheme(ctx, "v", theme.Dark))
	got, ok, err := s.Theme(ctx, "v")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, theme.Dark, got)

	p := theme.NewPreference(s, nil)
	next, err := p.Toggle(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, theme.Light, next)
}

func TestMessages(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	id, err := s.SaveMessage(ctx, Message{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Body: "Hello", Via: "mailto", CreatedAt: now})
	require.NoError(t, err)

	msgs, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hello", msgs[0].Body)
	assert.False(t, msgs[0].Delivered)

	require.NoError(t, s.DeleteMessage(ctx, id))
	assert.ErrorIs(t, s.DeleteMessage(ctx, id), ErrNotFound)
}

func TestStats(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	for _, v := range []Visit{
		{HashedIP: "aa", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "aa", Timestamp: now.Add(-20 * time.Hour)},
		{HashedIP: "bb", Mobile: true, Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "cc", Timestamp: now.Add(-30 * 24 * time.Hour)},
	} {
		require.NoError(t, s.RecordVisit(ctx, v))
	}
	for _, sh := range []Show{
		{Profile: "desktop", Reason: "timeout", Duration: 90 * time.Second, Fireworks: 200, StartedAt: now},
		{Profile: "mobile", Reason: "timeout", Duration: 45 * time.Second, Fireworks: 30, StartedAt: now},
		{Profile: "desktop", Reason: "manual", Duration: 12 * time.Second, Fireworks: 25, StartedAt: now},
	} {
		_, err := s.RecordShow(ctx, sh)
		require.NoError(t, err)
	}
	_, err := s.SaveMessage(ctx, Message{Name: "A", Email: "a@b.c", Subject: "s", Body: "b", Via: "relay", Delivered: true, CreatedAt: now})
	require.NoError(t, err)

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 1, stats.MobileVisitors)
	assert.EqualValues(t, 1, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 3, stats.TotalShows)
	assert.EqualValues(t, 255, stats.TotalFireworks)
	assert.Equal(t, []Count{{"timeout", 2}, {"manual", 1}}, stats.ShowsByReason)
	assert.EqualValues(t, 1, stats.TotalMessages)
	assert.Zero(t, stats.UndeliveredMsgs)
	assert.Len(t, stats.RecentShows, 3)
	assert.Equal(t, 90*time.Second, stats.RecentShows[2].Duration)
}
