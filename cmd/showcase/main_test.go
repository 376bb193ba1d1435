package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/clock"
	"github.com/Zachkp/aurora-portfolio/internal/device"
	"github.com/Zachkp/aurora-portfolio/internal/random"
	"github.com/Zachkp/aurora-portfolio/internal/session"
)

func TestScheduleClicksKeepsEveryClick(t *testing.T) {
	m := clock.NewManual(time.Now())
	desktop := device.Desktop()
	s := session.New(session.Config{
		Clock:   m,
		Width:   1280,
		Height:  800,
		Rand:    random.New(3),
		Profile: &desktop,
	})
	defer s.Close()

	before := m.Pending()
	scheduleClicks(m, s, 100, 300*time.Millisecond, zap.NewNop())
	assert.Equal(t, before+100, m.Pending())

	m.Advance(time.Duration(desktop.Threshold) * 300 * time.Millisecond)
	m.Advance(200 * time.Millisecond)
	require.True(t, s.Engine().Active())
}
