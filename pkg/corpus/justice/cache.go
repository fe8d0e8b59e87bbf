package justice

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type cached struct {
	att Attribution
	err error
}

// CachedMatcher memoizes lookups per (key, date).
type CachedMatcher struct {
	inner Matcher
	cache *gocache.Cache
}

// NewCachedMatcher wraps inner. A ttl of zero keeps entries for the life of
// the matcher.
func NewCachedMatcher(inner Matcher, ttl time.Duration) *CachedMatcher {
	exp := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		exp = ttl
		cleanup = 2 * ttl
	}
	return &CachedMatcher{inner: inner, cache: gocache.New(exp, cleanup)}
}

// Match returns the cached result or delegates to the wrapped matcher
func (c *CachedMatcher) Match(key string, date time.Time) (Attribution, error) {
	k := key + "|" + date.Format("2006-01-02")
	if v, ok := c.cache.Get(k); ok {
		hit := v.(cached)
		return hit.att, hit.err
	}
	att, err := c.inner.Match(key, date)
	c.cache.SetDefault(k, cached{att: att, err: err})
	return att, err
}

// Len returns the number of memoized lookups
func (c *CachedMatcher) Len() int { return c.cache.ItemCount() }
