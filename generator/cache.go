package generator

import (
	"sync"

	"github.com/go-errors/errors"
)

// SieveCache is a sieve table that can be shared between SegmentedSieve
// instances, also across goroutines. Every sieve built on the cache sees the
// primes found by the others.
type SieveCache struct {
	mu    sync.Mutex
	table sieveTable
}

// Snapshot is a copy of the state of a SieveCache.
type Snapshot struct {
	Primes     []uint64
	MaxChecked uint64
}

// NewSieveCache returns a cache holding only the seed primes.
func NewSieveCache() *SieveCache {
	c := &SieveCache{}
	c.table.reset()
	return c
}

func (c *SieveCache) nthPrime(n int, maxSegmentSize uint64) (uint64, bool) {
	if n < 0 {
		return 0, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.table.primes) <= n {
		if !c.table.extend(maxSegmentSize) {
			return 0, false
		}
	}
	return c.table.primes[n], true
}

// Len returns the number of cached primes.
func (c *SieveCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.table.primes)
}

// MaxChecked returns the bound up to which every prime is cached.
func (c *SieveCache) MaxChecked() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.maxChecked
}

// Reset drops the cache back to the seed primes.
func (c *SieveCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table.reset()
}

// Snapshot returns a copy of the cached table.
func (c *SieveCache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Primes:     append([]uint64(nil), c.table.primes...),
		MaxChecked: c.table.maxChecked,
	}
}

// Restore replaces the cached table with s, after checking that s could have
// been produced by a sieve.
func (c *SieveCache) Restore(s Snapshot) error {
	if len(s.Primes) < len(sieveSeed) {
		return errors.New("generator: snapshot is shorter than the seed")
	}
	for i, p := range sieveSeed {
		if s.Primes[i] != p {
			return errors.Errorf("generator: snapshot prime %d is %d, expected %d", i, s.Primes[i], p)
		}
	}
	for i := 1; i < len(s.Primes); i++ {
		if s.Primes[i] <= s.Primes[i-1] {
			return errors.Errorf("generator: snapshot primes not increasing at index %d", i)
		}
	}
	last := s.Primes[len(s.Primes)-1]
	if s.MaxChecked%2 != 0 || s.MaxChecked <= last || s.MaxChecked > 2*last {
		return errors.Errorf("generator: snapshot boundary %d inconsistent with last prime %d", s.MaxChecked, last)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.table.primes = append([]uint64(nil), s.Primes...)
	c.table.maxChecked = s.MaxChecked
	return nil
}
