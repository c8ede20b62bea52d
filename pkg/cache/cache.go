// Package cache provides the LRU response cache keyed by prompt hash,
// so repeated questions never spend API quota twice.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "a11ybot_cache_hits_total",
		Help: "Total number of response cache hits",
	})
	misses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "a11ybot_cache_misses_total",
		Help: "Total number of response cache misses",
	})
	size = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "a11ybot_cache_size",
		Help: "Current number of cached responses",
	})
)

type entry struct {
	key       string
	value     string
	timestamp time.Time
	ttl       time.Duration
}

// Cache is a fixed-capacity LRU of generated responses.
type Cache struct {
	mu        sync.Mutex
	items     map[string]*list.Element
	evictList *list.List
	capacity  int
}

// New creates a cache holding at most capacity responses. A zero or
// negative capacity returns nil; callers treat a nil cache as disabled.
func New(capacity int) *Cache {
	if capacity <= 0 {
		return nil
	}
	return &Cache{
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		capacity:  capacity,
	}
}

// Key derives the cache key for a prompt.
func Key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for a key, refreshing its recency.
func (c *Cache) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.items[key]
	if !ok {
		misses.Inc()
		return "", false
	}

	e := element.Value.(*entry)
	if e.ttl > 0 && time.Since(e.timestamp) > e.ttl {
		c.evict(element)
		misses.Inc()
		return "", false
	}

	c.evictList.MoveToFront(element)
	hits.Inc()
	return e.value, true
}

// Set stores a response, evicting the least recently used entry when
// the cache is full. ttl of zero means no expiry.
func (c *Cache) Set(key, value string, ttl time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.items[key]; ok {
		c.evictList.MoveToFront(element)
		e := element.Value.(*entry)
		e.value = value
		e.timestamp = time.Now()
		e.ttl = ttl
		return
	}

	element := c.evictList.PushFront(&entry{
		key:       key,
		value:     value,
		timestamp: time.Now(),
		ttl:       ttl,
	})
	c.items[key] = element
	size.Inc()

	if c.evictList.Len() > c.capacity {
		if oldest := c.evictList.Back(); oldest != nil {
			c.evict(oldest)
		}
	}
}

func (c *Cache) evict(element *list.Element) {
	c.evictList.Remove(element)
	e := element.Value.(*entry)
	delete(c.items, e.key)
	size.Dec()
}

// Len reports the number of cached responses.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}
