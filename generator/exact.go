package generator

import "math"

// Exact returns a generator that yields only the primes of g. Generators
// that already emit nothing but primes are returned as they are; for the
// others, each value is trial divided by the primes passed so far, which is
// exact because g emits every prime in order.
func Exact(g Generator) Generator {
	if _, ok := g.(exactGenerator); ok {
		return g
	}
	return &filtered{Generator: g}
}

// exactGenerator is implemented by generators that never emit composites.
type exactGenerator interface {
	exact()
}

func (*TrialDivision) exact()  {}
func (*SegmentedSieve) exact() {}

type filtered struct {
	Generator
	divisors []uint64
}

func (f *filtered) Next() (uint64, bool) {
NextCandidate:
	for {
		v, ok := f.Generator.Next()
		if !ok {
			return 0, false
		}
		if v < 2 {
			continue
		}
		for _, p := range f.divisors {
			if p > v/p {
				break
			}
			if v%p == 0 {
				continue NextCandidate
			}
		}
		if v <= math.MaxUint32 {
			f.divisors = append(f.divisors, v)
		}
		return v, true
	}
}

func (f *filtered) Rewind() {
	f.Generator.Rewind()
	f.divisors = f.divisors[:0]
}
