package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/simaogato/salesdash-backend/internal/usecase/report"
)

const latestReportKey = "report:latest"

// EmitFunc produces a fresh report artifact
type EmitFunc func(ctx context.Context) (*report.Artifact, error)

// ReportCache keeps the most recent report artifact and re-emits it once expired
type ReportCache struct {
	cache *gocache.Cache
	emit  EmitFunc

	// mu ensures at most one emission runs on a miss
	mu sync.Mutex
}

// NewReportCache creates a new ReportCache instance
func NewReportCache(ttl time.Duration, emit EmitFunc) *ReportCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &ReportCache{
		cache: gocache.New(ttl, 2*ttl),
		emit:  emit,
	}
}

// Put stores an artifact as the latest report
func (c *ReportCache) Put(artifact *report.Artifact) {
	c.cache.Set(latestReportKey, artifact, gocache.DefaultExpiration)
}

// Peek returns the cached artifact without emitting
func (c *ReportCache) Peek() (*report.Artifact, bool) {
	if cached, found := c.cache.Get(latestReportKey); found {
		return cached.(*report.Artifact), true
	}
	return nil, false
}

// Latest returns the cached artifact, emitting a new one on a miss
func (c *ReportCache) Latest(ctx context.Context) (*report.Artifact, error) {
	if artifact, ok := c.Peek(); ok {
		return artifact, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if artifact, ok := c.Peek(); ok {
		return artifact, nil
	}
	if c.emit == nil {
		return nil, fmt.Errorf("no report available")
	}

	artifact, err := c.emit(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to emit report: %w", err)
	}
	c.Put(artifact)
	return artifact, nil
}

// Invalidate drops the cached artifact
func (c *ReportCache) Invalidate() {
	c.cache.Delete(latestReportKey)
}

// Refresh drops the cached artifact and emits a new one.
// On failure the cache is left empty so the next Latest retries.
func (c *ReportCache) Refresh(ctx context.Context) (*report.Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Invalidate()
	if c.emit == nil {
		return nil, fmt.Errorf("no report available")
	}

	artifact, err := c.emit(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to emit report: %w", err)
	}
	c.Put(artifact)
	return artifact, nil
}
