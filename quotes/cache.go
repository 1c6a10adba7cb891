package quotes

import (
	"time"

	"github.com/etnz/folio"
	gocache "github.com/patrickmn/go-cache"
)

// Cache keeps the last quote fetched for each symbol with the time it was
// fetched. Freshness is judged with the injected clock, entries never expire
// on their own so that stale quotes remain available as a fallback.
//
// A Cache is safe for concurrent use.
type Cache struct {
	store  *gocache.Cache
	maxAge time.Duration
	now    Clock
}

type cached struct {
	quote     folio.PriceResult
	fetchedAt time.Time
}

// NewCache returns an empty cache whose quotes are fresh for maxAge. A nil
// clock defaults to time.Now.
func NewCache(maxAge time.Duration, now Clock) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		store:  gocache.New(gocache.NoExpiration, 0),
		maxAge: maxAge,
		now:    now,
	}
}

// Put stores q as fetched now.
func (c *Cache) Put(q folio.PriceResult) {
	c.PutAt(q, c.now())
}

// PutAt stores q as fetched at the given time, e.g. when loading quotes saved earlier.
func (c *Cache) PutAt(q folio.PriceResult, fetchedAt time.Time) {
	c.store.Set(q.Symbol, cached{quote: q, fetchedAt: fetchedAt}, gocache.NoExpiration)
}

// Fresh returns the quote of symbol if it is not older than the max age.
func (c *Cache) Fresh(symbol string) (folio.PriceResult, bool) {
	q, at, ok := c.Any(symbol)
	if !ok || c.now().Sub(at) > c.maxAge {
		return folio.PriceResult{}, false
	}
	return q, true
}

// Any returns the quote of symbol whatever its age, and when it was fetched.
func (c *Cache) Any(symbol string) (folio.PriceResult, time.Time, bool) {
	v, ok := c.store.Get(symbol)
	if !ok {
		return folio.PriceResult{}, time.Time{}, false
	}
	e := v.(cached)
	return e.quote, e.fetchedAt, true
}

// Len returns the number of cached symbols.
func (c *Cache) Len() int { return c.store.ItemCount() }

// Load stores every quote of prices as fetched at the given time.
func (c *Cache) Load(prices folio.Prices, fetchedAt time.Time) {
	for symbol, q := range prices {
		q.Symbol = symbol
		c.PutAt(q, fetchedAt)
	}
}
