package bondyield

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/etnz/bondyield/date"
	"golang.org/x/sync/singleflight"
)

// CacheKey identifies a Request for memoization. Different scopes, or different
// instrument restrictions, are different keys.
type CacheKey struct {
	Range date.Range
	Scope Scope
	Codes string // sorted, comma separated
}

func (k CacheKey) String() string { return fmt.Sprintf("%s/%s/%s", k.Range, k.Scope, k.Codes) }

// Key returns the memoization key of the request.
func (r Request) Key() CacheKey {
	codes := slices.Clone(r.Codes)
	slices.Sort(codes)
	return CacheKey{Range: r.Range, Scope: r.Scope, Codes: strings.Join(slices.Compact(codes), ",")}
}

// Cache stores computed reports.
type Cache interface {
	Get(CacheKey) (*Report, bool)
	Add(CacheKey, *Report)
}

// MapCache is an unbounded in-memory Cache, safe for concurrent use.
type MapCache struct {
	mu      sync.RWMutex
	reports map[CacheKey]*Report
}

func NewMapCache() *MapCache { return &MapCache{reports: make(map[CacheKey]*Report)} }

func (c *MapCache) Get(k CacheKey) (*Report, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.reports[k]
	return r, ok
}

func (c *MapCache) Add(k CacheKey, r *Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[k] = r
}

// Len returns the number of cached reports.
func (c *MapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.reports)
}

// NoCache never stores anything.
type NoCache struct{}

func (NoCache) Get(CacheKey) (*Report, bool) { return nil, false }
func (NoCache) Add(CacheKey, *Report)        {}

// CachedEngine memoizes an Engine. Concurrent requests with the same key share a
// single computation, and failed computations are not cached.
type CachedEngine struct {
	engine *Engine
	cache  Cache
	flight singleflight.Group
}

// NewCachedEngine wraps e with cache, NoCache if nil.
func NewCachedEngine(e *Engine, cache Cache) *CachedEngine {
	if cache == nil {
		cache = NoCache{}
	}
	return &CachedEngine{engine: e, cache: cache}
}

// Run returns the cached report of req, computing it at most once.
//
// The computation is shared by every caller waiting on the same key and is not
// canceled with ctx: a canceled caller returns ctx.Err() while the others keep waiting.
func (c *CachedEngine) Run(ctx context.Context, req Request) (*Report, error) {
	key := req.Key()
	if r, ok := c.cache.Get(key); ok {
		return r, nil
	}
	shared := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key.String(), func() (any, error) {
		if r, ok := c.cache.Get(key); ok {
			return r, nil
		}
		r, err := c.engine.Run(shared, req)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, r)
		return r, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Report), nil
	}
}
