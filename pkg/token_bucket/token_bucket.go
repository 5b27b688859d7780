package token_bucket

import (
	"sync"
	"time"
)

// bucket is a classic token bucket: capacity tokens, refilled at refillRate per second.
type bucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
}

func newBucket(capacity int, refillRate float64, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: now,
	}
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}

func (b *bucket) allow(now time.Time) bool {
	b.refill(now)
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (b *bucket) full() bool {
	return b.tokens >= b.capacity
}

// Keyed keeps one bucket per client key (remote address, token subject, ...).
// Buckets that refilled completely and were idle for idleTTL are dropped on sweep.
type Keyed struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	capacity   int
	refillRate float64
	idleTTL    time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

type Option func(*Keyed)

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) Option {
	return func(k *Keyed) {
		k.now = now
	}
}

func WithIdleTTL(ttl time.Duration) Option {
	return func(k *Keyed) {
		k.idleTTL = ttl
	}
}

func NewKeyed(capacity int, refillRate float64, opts ...Option) *Keyed {
	k := &Keyed{
		buckets:    make(map[string]*bucket),
		capacity:   capacity,
		refillRate: refillRate,
		idleTTL:    10 * time.Minute,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(k)
	}
	k.lastSweep = k.now()
	return k
}

func (k *Keyed) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	k.sweep(now)

	b, ok := k.buckets[key]
	if !ok {
		b = newBucket(k.capacity, k.refillRate, now)
		k.buckets[key] = b
	}
	return b.allow(now)
}

// Len returns the number of tracked keys.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *Keyed) sweep(now time.Time) {
	if now.Sub(k.lastSweep) < k.idleTTL {
		return
	}
	for key, b := range k.buckets {
		if now.Sub(b.lastRefill) < k.idleTTL {
			continue
		}
		b.refill(now)
		if b.full() {
			delete(k.buckets, key)
		}
	}
	k.lastSweep = now
}
