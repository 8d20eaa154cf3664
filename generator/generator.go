// Package generator enumerates pseudo-primes: strictly increasing sequences
// that contain every prime and possibly some composites.
//
// Three strategies are provided. Modulo6 is the cheapest and emits 2, 3 and
// every integer congruent to 1 or 5 modulo 6. TrialDivision and
// SegmentedSieve emit exactly the primes, backed by a table that grows on
// demand. All generators operate on uint64 values; instead of wrapping
// around, Next reports the end of the sequence.
//
// Generators are not safe for concurrent use. Give each goroutine its own
// instance, or share a SieveCache between SegmentedSieve instances.
package generator

import (
	"github.com/go-errors/errors"
)

// Generator is a resettable, lazily evaluated pseudo-prime sequence.
//
// Implementations must return strictly increasing values and must eventually
// return every prime that fits in a uint64. Factorization relies on the
// ordering to stop early.
type Generator interface {
	// Next returns the next value and advances the sequence. ok is false once
	// the sequence cannot continue without overflowing.
	Next() (p uint64, ok bool)
	// Rewind restarts the sequence as if the generator was newly constructed.
	Rewind()
	// SetUpperBound caps enumeration by ForEach at ub (inclusive).
	SetUpperBound(ub uint64)
	// ClearUpperBound removes the cap.
	ClearUpperBound()
	// UpperBound returns the cap and whether one is set.
	UpperBound() (ub uint64, ok bool)
}

// Names of the available strategies, as accepted by New.
const (
	NameModulo6        = "mod6"
	NameTrialDivision  = "trial"
	NameSegmentedSieve = "sieve"
)

// New returns a fresh generator for the named strategy.
func New(name string) (Generator, error) {
	switch name {
	case NameModulo6:
		return NewModulo6(), nil
	case NameTrialDivision:
		return NewTrialDivision(), nil
	case NameSegmentedSieve, "":
		return NewSegmentedSieve(), nil
	default:
		return nil, errors.Errorf("generator: unknown strategy %q", name)
	}
}

// bound implements the upper bound part of Generator.
type bound struct {
	ub  uint64
	set bool
}

func (b *bound) SetUpperBound(ub uint64) {
	b.ub, b.set = ub, true
}

func (b *bound) ClearUpperBound() {
	b.set = false
}

func (b *bound) UpperBound() (uint64, bool) {
	return b.ub, b.set
}

// ForEach calls fn with successive values of g, continuing from its current
// position. It stops when a value exceeds the upper bound of g, when g is
// exhausted or when fn returns false. Without an upper bound, exhaustion is
// the only natural end.
func ForEach(g Generator, fn func(p uint64) bool) {
	ub, bounded := g.UpperBound()
	for {
		p, ok := g.Next()
		if !ok || (bounded && p > ub) {
			return
		}
		if !fn(p) {
			return
		}
	}
}

// Enumerate rewinds g and returns all of its values up to and including ub.
// The upper bound of g is restored afterwards.
func Enumerate(g Generator, ub uint64) []uint64 {
	prev, hadPrev := g.UpperBound()
	defer func() {
		if hadPrev {
			g.SetUpperBound(prev)
		} else {
			g.ClearUpperBound()
		}
	}()

	g.Rewind()
	g.SetUpperBound(ub)

	var out []uint64
	ForEach(g, func(p uint64) bool {
		out = append(out, p)
		return true
	})
	return out
}
