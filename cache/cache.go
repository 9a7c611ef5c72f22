package cache

import (
	"container/list"
	"sync"
)

// Recorder receives cache hit/miss observations. metrics.Recorder
// satisfies this interface; a nil Recorder is valid and simply drops
// the observations, so tests never need a Prometheus registry.
type Recorder interface {
	CacheHit()
	CacheMiss()
}

type slot[V any] struct {
	once  sync.Once
	value V
	err   error
	elem  *list.Element // position in the LRU list, guarded by Cache.mu
}

// Cache is a concurrent, insert-once map from Key to a sub-problem's
// result value V (belief.Map, in every production use), bounded by an
// LRU eviction policy. At most one goroutine computes any given key;
// concurrent requesters for the same key block behind that computation
// and then share its result, per spec §4.6's "at-most-one concurrent
// compute per key" contract. V is generic rather than belief.Map
// directly so this package never has to import belief, which in turn
// needs to import cache to thread a *Cache through Propagate.
type Cache[V any] struct {
	mu      sync.Mutex
	slots   map[string]*slot[V]
	order   *list.List
	maxSize int
	rec     Recorder
}

// New returns an empty Cache bounded to maxSize entries (0 means
// unbounded). rec may be nil.
func New[V any](maxSize int, rec Recorder) *Cache[V] {
	return &Cache[V]{
		slots:   make(map[string]*slot[V]),
		order:   list.New(),
		maxSize: maxSize,
		rec:     rec,
	}
}

// GetOrCompute returns the memoized value for key, computing it via
// compute exactly once even under concurrent callers. A failed compute
// is never cached.
func (c *Cache[V]) GetOrCompute(key Key, compute func() (V, error)) (V, error) {
	c.mu.Lock()
	s, exists := c.slots[key.Canon]
	if !exists {
		s = &slot[V]{}
		c.slots[key.Canon] = s
		s.elem = c.order.PushFront(key.Canon)
	} else {
		c.order.MoveToFront(s.elem)
	}
	c.mu.Unlock()

	if exists {
		c.record(true)
	} else {
		c.record(false)
	}

	s.once.Do(func() {
		s.value, s.err = compute()
		if s.err != nil {
			// Do not let a failed computation poison the cache: remove
			// the slot so a future call retries from scratch.
			c.mu.Lock()
			delete(c.slots, key.Canon)
			c.order.Remove(s.elem)
			c.mu.Unlock()
		}
	})

	if s.err != nil {
		var zero V

		return zero, s.err
	}

	c.evictIfNeeded()

	return s.value, nil
}

func (c *Cache[V]) record(hit bool) {
	if c.rec == nil {
		return
	}
	if hit {
		c.rec.CacheHit()
	} else {
		c.rec.CacheMiss()
	}
}

// evictIfNeeded drops the least-recently-used entries once the cache
// exceeds maxSize. Results are always recomputable, so eviction only
// affects performance, never correctness.
func (c *Cache[V]) evictIfNeeded() {
	if c.maxSize <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		canon := oldest.Value.(string)
		c.order.Remove(oldest)
		delete(c.slots, canon)
	}
}

// Len reports the current number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.slots)
}
