// Package report sends finished shows to the portfolio server.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/fireworks"
)

// Path is the server route that accepts shows.
const Path = "/api/shows"

// Show is the wire form of a finished show.
type Show struct {
	Profile    string    `json:"profile" binding:"required"`
	Reason     string    `json:"reason" binding:"required,oneof=manual timeout key"`
	DurationMS int64     `json:"duration_ms" binding:"gte=0"`
	Fireworks  int       `json:"fireworks" binding:"gte=0"`
	StartedAt  time.Time `json:"started_at" binding:"required"`
}

// Source supplies the details the observer callbacks do not carry.
type Source interface {
	ProfileName() string
	Launched() int
}

// Reporter is a fireworks.Observer that posts each finished show.
type Reporter struct {
	base   string
	client *http.Client
	source Source
	log    *zap.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// New returns a reporter posting to baseURL + Path.
func New(baseURL string, source Source, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: 5 * time.Second},
		source: source,
		log:    log,
		now:    time.Now,
	}
}

func (r *Reporter) ShowStarted(time.Time) {}

// ShowEnded posts the show in the background so the caller's loop is not
// held up by the network. The start time is stamped from the wall clock;
// the engine's clock may be virtual.
func (r *Reporter) ShowEnded(_ time.Time, reason fireworks.Reason, ran time.Duration) {
	show := Show{
		Profile:    r.source.ProfileName(),
		Reason:     string(reason),
		DurationMS: ran.Milliseconds(),
		Fireworks:  r.source.Launched(),
		StartedAt:  r.now().Add(-ran).UTC(),
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Send(ctx, show); err != nil {
			r.log.Warn("report show", zap.Error(err))
		}
	}()
}

// Wait blocks until pending reports finish.
func (r *Reporter) Wait() {
	r.wg.Wait()
}

// Send posts one show.
func (r *Reporter) Send(ctx context.Context, show Show) error {
	body, err := json.Marshal(show)
	if err != nil {
		return fmt.Errorf("encode show: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+Path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post show: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post show: status %d", resp.StatusCode)
	}
	r.log.Debug("show reported", zap.String("reason", show.Reason), zap.Int("fireworks", show.Fireworks))
	return nil
}
