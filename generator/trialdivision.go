package generator

import "math"

// trialSeed are the primes below 103, the first candidate the table checks.
var trialSeed = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97, 101,
}

// TrialDivision yields the primes in ascending order. The primes are kept in
// a table that is extended on demand by trial division of the candidates
// congruent to 1 and 5 modulo 6, using only the tabled primes up to the
// square root of the candidate.
type TrialDivision struct {
	bound
	index int

	primes []uint64
	// nextToCheck is always 1 modulo 6; it and nextToCheck+4 are the next
	// pair of candidates. No prime lies between the last tabled prime and
	// nextToCheck.
	nextToCheck uint64
	// primes[2:ulticheckIndex+1] are the divisors that suffice for the
	// current candidates, and ulticheckNextSquared is primes[ulticheckIndex+1]².
	ulticheckIndex       int
	ulticheckNextSquared uint64
}

// NewTrialDivision returns a TrialDivision generator with a freshly seeded table.
func NewTrialDivision() *TrialDivision {
	g := &TrialDivision{}
	g.Rewind()
	return g
}

func (g *TrialDivision) Next() (uint64, bool) {
	p, ok := g.Nth(g.index)
	if !ok {
		return 0, false
	}
	g.index++
	return p, true
}

// Rewind drops the table back to the seed primes.
func (g *TrialDivision) Rewind() {
	g.index = 0
	g.primes = append(make([]uint64, 0, 2*len(trialSeed)), trialSeed...)
	g.nextToCheck = 103
	g.ulticheckIndex = 3
	g.ulticheckNextSquared = 121
}

// Nth returns the prime with the given 0-based index, extending the table as
// needed.
func (g *TrialDivision) Nth(index int) (uint64, bool) {
	if !g.populateThrough(index) {
		return 0, false
	}
	return g.primes[index], true
}

func (g *TrialDivision) populateThrough(index int) bool {
	for index >= len(g.primes) {
		if g.nextToCheck > math.MaxUint64-6 {
			return false
		}
		for g.nextToCheck+4 > g.ulticheckNextSquared {
			g.ulticheckIndex++
			next := g.primes[g.ulticheckIndex+1]
			if next > math.MaxUint32 {
				g.ulticheckNextSquared = math.MaxUint64
				break
			}
			g.ulticheckNextSquared = next * next
		}

		g.check(g.nextToCheck)
		g.check(g.nextToCheck + 4)
		g.nextToCheck += 6
	}
	return true
}

// check appends candidate to the table unless one of the sufficient divisors
// divides it. 2 and 3 are skipped; candidates are never multiples of them.
func (g *TrialDivision) check(candidate uint64) {
	for _, p := range g.primes[2 : g.ulticheckIndex+1] {
		if candidate%p == 0 {
			return
		}
	}
	g.primes = append(g.primes, candidate)
}
