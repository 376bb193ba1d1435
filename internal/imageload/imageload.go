// Package imageload resolves an image from an ordered list of candidate
// sources, giving each one a bounded time to load.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Timeout is the per-source budget.
const Timeout = 2 * time.Second

// Placeholder is served when no source loads.
const Placeholder = `data:image/svg+xml;charset=UTF-8,%3Csvg xmlns='http://www.w3.org/2000/svg' width='300' height='300' viewBox='0 0 300 300'%3E%3Crect width='300' height='300' fill='%230a0a1a'/%3E%3Ccircle cx='150' cy='120' r='50' fill='%236366f1'/%3E%3Cpath d='M70 250c0-45 35-80 80-80s80 35 80 80' fill='%236366f1'/%3E%3C/svg%3E`

// Prober checks that a source can be loaded. It must return when ctx is done.
type Prober interface {
	Probe(ctx context.Context, src string) error
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, src string) error

func (f ProberFunc) Probe(ctx context.Context, src string) error { return f(ctx, src) }

// Image is the outcome of a resolution.
type Image struct {
	Source   string `json:"src"`
	Loaded   bool   `json:"loaded"`
	Attempts int    `json:"attempts"`
}

// Chain tries sources in order.
type Chain struct {
	sources []string
	timeout time.Duration
	prober  Prober
	log     *zap.Logger

	mu     sync.Mutex
	loaded *Image
}

// NewChain returns a chain over sources. A zero timeout uses Timeout.
func NewChain(sources []string, timeout time.Duration, prober Prober, log *zap.Logger) *Chain {
	if timeout <= 0 {
		timeout = Timeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{sources: sources, timeout: timeout, prober: prober, log: log}
}

// Resolve returns the first source that loads, or the placeholder. A
// loaded source is cached; a fallback is retried on the next call.
// Probing is detached from ctx's cancellation so a caller that goes away
// does not fail the chain, but every source still gets its own timeout.
func (c *Chain) Resolve(ctx context.Context) Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded != nil {
		return *c.loaded
	}
	img := c.resolve(context.WithoutCancel(ctx))
	if img.Loaded {
		c.loaded = &img
	}
	return img
}

func (c *Chain) resolve(ctx context.Context) Image {
	for i, src := range c.sources {
		pctx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.prober.Probe(pctx, src)
		cancel()
		if err == nil {
			return Image{Source: src, Loaded: true, Attempts: i + 1}
		}
		c.log.Debug("image source failed", zap.String("src", src), zap.Error(err))
	}
	c.log.Info("all image sources failed, using placeholder", zap.Int("sources", len(c.sources)))
	return Image{Source: Placeholder, Attempts: len(c.sources)}
}

// Probes checks local paths under Root and http(s) URLs with a HEAD request.
type Probes struct {
	Root   string
	Client *http.Client
}

var errNotFound = errors.New("image not found")

func (p Probes) Probe(ctx context.Context, src string) error {
	switch {
	case strings.HasPrefix(src, "data:"):
		return nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return p.probeHTTP(ctx, src)
	default:
		return p.probeFile(ctx, src)
	}
}

func (p Probes) probeHTTP(ctx context.Context, src string) error {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, src, nil)
	if err != nil {
		return fmt.Errorf("build probe: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", src, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probe %s: %w (status %d)", src, errNotFound, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("probe %s: not an image (%s)", src, ct)
	}
	return nil
}

func (p Probes) probeFile(ctx context.Context, src string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(p.Root, filepath.FromSlash(strings.TrimPrefix(src, "/")))
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() || info.Size() == 0 {
		return fmt.Errorf("stat %s: %w", src, errNotFound)
	}
	return nil
}
