package generator

import (
	"math"

	"github.com/VictoriaMetrics/metrics"

	"github.com/privacybydesign/primes/internal/logging"
)

// DefaultMaxSegmentSize bounds the width of a single sieve extension.
const DefaultMaxSegmentSize = 1000000

// sieveSeed primes the table; the first segment starts right after 13.
var sieveSeed = []uint64{2, 3, 5, 7, 11, 13}

var sieveSegments = metrics.GetOrCreateCounter("primes_sieve_segments_total")

// SegmentedSieve yields the primes in ascending order, found by a Sieve of
// Eratosthenes that is run over successive segments whenever a prime beyond
// the table is requested.
type SegmentedSieve struct {
	bound
	index int

	cache          *SieveCache
	owned          bool
	maxSegmentSize uint64
}

// SieveOption configures a SegmentedSieve.
type SieveOption func(*SegmentedSieve)

// WithMaxSegmentSize caps the number of integers sieved per extension. Odd
// sizes are rounded up, except math.MaxUint64 which is rounded down; zero
// means DefaultMaxSegmentSize.
func WithMaxSegmentSize(n uint64) SieveOption {
	return func(s *SegmentedSieve) {
		switch {
		case n == 0:
			n = DefaultMaxSegmentSize
		case n == math.MaxUint64:
			n--
		case n%2 == 1:
			n++
		}
		s.maxSegmentSize = n
	}
}

// WithCache makes the sieve read and extend a shared table instead of a
// private one.
func WithCache(c *SieveCache) SieveOption {
	return func(s *SegmentedSieve) {
		s.cache = c
	}
}

// NewSegmentedSieve returns a SegmentedSieve positioned before 2.
func NewSegmentedSieve(opts ...SieveOption) *SegmentedSieve {
	s := &SegmentedSieve{
		index:          -1,
		maxSegmentSize: DefaultMaxSegmentSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = NewSieveCache()
		s.owned = true
	}
	return s
}

func (s *SegmentedSieve) Next() (uint64, bool) {
	p, ok := s.NthPrime(s.index + 1)
	if !ok {
		return 0, false
	}
	s.index++
	return p, true
}

// Rewind restarts the sequence. A private table is dropped back to the seed;
// a shared cache is left alone.
func (s *SegmentedSieve) Rewind() {
	s.index = -1
	if s.owned {
		s.cache.Reset()
	}
}

// NthPrime returns the prime with the given 0-based index.
func (s *SegmentedSieve) NthPrime(n int) (uint64, bool) {
	return s.cache.nthPrime(n, s.maxSegmentSize)
}

// sieveTable holds every prime up to maxChecked. maxChecked is always even.
type sieveTable struct {
	primes     []uint64
	maxChecked uint64
}

func (t *sieveTable) reset() {
	t.primes = append(make([]uint64, 0, 2*len(sieveSeed)), sieveSeed...)
	t.maxChecked = sieveSeed[len(sieveSeed)-1] + 1
}

// extend sieves the next segment and appends the primes it contains.
func (t *sieveTable) extend(maxSegmentSize uint64) bool {
	maxCached := t.primes[len(t.primes)-1]
	if maxCached+1 > t.maxChecked {
		t.maxChecked = maxCached + 1
	}
	// Sieving beyond twice the largest known prime could need sieving
	// primes that are not in the table yet.
	if maxCached > math.MaxUint64/2 {
		return false
	}

	segmentMin := t.maxChecked
	segmentMax := 2 * maxCached
	if segmentMin <= math.MaxUint64-maxSegmentSize && segmentMin+maxSegmentSize < segmentMax {
		segmentMax = segmentMin + maxSegmentSize
	}
	if segmentMax <= segmentMin {
		return false
	}
	root := isqrt(segmentMax)

	// Slot i stands for the odd value segmentMin+1+2i.
	size := (segmentMax - segmentMin) / 2
	composite := make([]bool, size)
	for _, p := range t.primes[1:] {
		if p > root {
			break
		}
		for i := (p - ((segmentMin+1+p)/2)%p) % p; i < size; i += p {
			composite[i] = true
		}
	}

	found := 0
	for i, c := range composite {
		if !c {
			t.primes = append(t.primes, segmentMin+1+2*uint64(i))
			found++
		}
	}
	t.maxChecked = segmentMax

	sieveSegments.Inc()
	logging.Logger().Debugf("sieve: segment (%d, %d] yielded %d primes", segmentMin, segmentMax, found)
	return true
}

// isqrt returns floor(sqrt(x)).
func isqrt(x uint64) uint64 {
	r := uint64(math.Sqrt(float64(x)))
	for r > 0 && r > x/r {
		r--
	}
	for r+1 <= x/(r+1) {
		r++
	}
	return r
}
