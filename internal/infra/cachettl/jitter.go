// Package cachettl spreads cache expirations so entries filled together do not expire together.
package cachettl

import (
	"math/rand"
	"sync"
	"time"
)

// Jitter adds up to a tenth of the base TTL at random. It is safe for concurrent use.
type Jitter struct {
	base time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewJitter(base time.Duration) *Jitter {
	return &Jitter{base: base, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Base is the configured TTL without jitter.
func (j *Jitter) Base() time.Duration {
	return j.base
}

// Next returns the TTL for a new entry. Zero or negative base disables expiry (and caching, for callers that treat 0 that way).
func (j *Jitter) Next() time.Duration {
	if j.base <= 0 {
		return 0
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.base + time.Duration(j.rnd.Int63n(int64(j.base)/10+1))
}
