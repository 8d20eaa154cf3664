package generator

import (
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var primesTo100 = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

func allGenerators() map[string]func() Generator {
	return map[string]func() Generator{
		NameModulo6:        func() Generator { return NewModulo6() },
		NameTrialDivision:  func() Generator { return NewTrialDivision() },
		NameSegmentedSieve: func() Generator { return NewSegmentedSieve() },
		"sieve-small-segments": func() Generator {
			return NewSegmentedSieve(WithMaxSegmentSize(64))
		},
	}
}

func exactGenerators() map[string]func() Generator {
	all := allGenerators()
	delete(all, NameModulo6)
	return all
}

func TestNew(t *testing.T) {
	for _, name := range []string{NameModulo6, NameTrialDivision, NameSegmentedSieve} {
		g, err := New(name)
		require.NoError(t, err)
		p, ok := g.Next()
		assert.True(t, ok)
		assert.Equal(t, uint64(2), p, name)
	}

	_, err := New("wheel")
	assert.Error(t, err)
}

func TestEnumeratePrimesTo100(t *testing.T) {
	for name, newGen := range allGenerators() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, primesTo100, Enumerate(Exact(newGen()), 100))
		})
	}
}

func TestEnumerateExactGeneratorsEmitOnlyPrimes(t *testing.T) {
	for name, newGen := range exactGenerators() {
		t.Run(name, func(t *testing.T) {
			g := newGen()
			assert.Equal(t, primesTo100, Enumerate(g, 100))
			assert.Same(t, g, Exact(g))
		})
	}
}

func TestModulo6(t *testing.T) {
	g := NewModulo6()
	assert.Equal(t,
		[]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 25, 29, 31, 35, 37, 41, 43, 47, 49},
		Enumerate(g, 50))

	for _, v := range Enumerate(g, 10000) {
		if v > 3 {
			assert.Contains(t, []uint64{1, 5}, v%6, "value %d", v)
		}
	}
}

func TestModulo6StopsBeforeOverflow(t *testing.T) {
	g := NewModulo6()
	for i := 0; i < 4; i++ {
		g.Next()
	}
	// Jump close to the end of the uint64 range, keeping the residue.
	g.last = math.MaxUint64 - 4
	g.last -= g.last % 6
	g.last++
	g.step = 4

	var values []uint64
	ForEach(g, func(p uint64) bool {
		values = append(values, p)
		return true
	})
	require.NotEmpty(t, values)
	assert.Greater(t, values[len(values)-1], uint64(math.MaxUint64-10))

	_, ok := g.Next()
	assert.False(t, ok)

	g.Rewind()
	p, ok := g.Next()
	assert.True(t, ok)
	assert.Equal(t, uint64(2), p)
}

func TestExactGeneratorsAgreeWithMathBig(t *testing.T) {
	const limit = 100000
	want := []uint64{}
	for v := uint64(2); v <= limit; v++ {
		if new(big.Int).SetUint64(v).ProbablyPrime(0) {
			want = append(want, v)
		}
	}

	for name, newGen := range allGenerators() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, Enumerate(Exact(newGen()), limit))
		})
	}
}

func TestNthPrime(t *testing.T) {
	s := NewSegmentedSieve()
	p, ok := s.NthPrime(0)
	require.True(t, ok)
	assert.Equal(t, uint64(2), p)

	p, ok = s.NthPrime(25)
	require.True(t, ok)
	assert.Equal(t, uint64(101), p)

	p, ok = s.NthPrime(9999)
	require.True(t, ok)
	assert.Equal(t, uint64(104729), p)

	_, ok = s.NthPrime(-1)
	assert.False(t, ok)

	td := NewTrialDivision()
	p, ok = td.Nth(25)
	require.True(t, ok)
	assert.Equal(t, uint64(101), p)

	p, ok = td.Nth(9999)
	require.True(t, ok)
	assert.Equal(t, uint64(104729), p)
}

func TestSegmentedSieveBeyondMaxSegment(t *testing.T) {
	// The 150000th prime is above two million, so the table has to be
	// extended in several full-size segments.
	s := NewSegmentedSieve()
	p, ok := s.NthPrime(149999)
	require.True(t, ok)
	assert.Equal(t, uint64(2015177), p)
	assert.True(t, new(big.Int).SetUint64(p).ProbablyPrime(20))
	assert.Equal(t, uint64(0), s.cache.MaxChecked()%2)
}

func TestBounds(t *testing.T) {
	for name, newGen := range allGenerators() {
		t.Run(name, func(t *testing.T) {
			g := newGen()

			_, ok := g.UpperBound()
			assert.False(t, ok)

			g.SetUpperBound(1)
			ub, ok := g.UpperBound()
			assert.True(t, ok)
			assert.Equal(t, uint64(1), ub)

			called := false
			ForEach(g, func(uint64) bool {
				called = true
				return true
			})
			assert.False(t, called, "first candidate exceeds the bound")

			g.SetUpperBound(13)
			assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13}, Enumerate(g, 13))
			ub, _ = g.UpperBound()
			assert.Equal(t, uint64(13), ub, "Enumerate restores the bound")

			g.ClearUpperBound()
			_, ok = g.UpperBound()
			assert.False(t, ok)
		})
	}
}

func TestForEachStopsWhenCallbackDeclines(t *testing.T) {
	g := NewTrialDivision()
	var got []uint64
	ForEach(g, func(p uint64) bool {
		got = append(got, p)
		return len(got) < 5
	})
	assert.Equal(t, []uint64{2, 3, 5, 7, 11}, got)

	// ForEach continues from the current position.
	p, ok := g.Next()
	assert.True(t, ok)
	assert.Equal(t, uint64(13), p)
}

func TestRewindReproducesSequence(t *testing.T) {
	const k = 3000
	for name, newGen := range allGenerators() {
		t.Run(name, func(t *testing.T) {
			fresh := take(newGen(), k)

			g := newGen()
			take(g, k+123)
			g.Rewind()
			assert.Equal(t, fresh, take(g, k))

			e := Exact(newGen())
			take(e, 50)
			e.Rewind()
			assert.Equal(t, take(Exact(newGen()), 50), take(e, 50))
		})
	}
}

func TestSieveCacheShared(t *testing.T) {
	c := NewSieveCache()
	a := NewSegmentedSieve(WithCache(c))
	b := NewSegmentedSieve(WithCache(c), WithMaxSegmentSize(1000))

	assert.Equal(t, take(NewSegmentedSieve(), 2000), take(a, 2000))
	grown := c.Len()
	assert.GreaterOrEqual(t, grown, 2000)

	// b reuses the table a built.
	assert.Equal(t, take(NewSegmentedSieve(), 1000), take(b, 1000))
	assert.Equal(t, grown, c.Len())

	// Rewinding a sieve on a shared cache leaves the cache intact.
	a.Rewind()
	assert.Equal(t, grown, c.Len())
	p, _ := a.Next()
	assert.Equal(t, uint64(2), p)

	c.Reset()
	assert.Equal(t, len(sieveSeed), c.Len())
}

func TestSieveCacheSnapshot(t *testing.T) {
	c := NewSieveCache()
	s := NewSegmentedSieve(WithCache(c))
	take(s, 500)

	snap := c.Snapshot()
	restored := NewSieveCache()
	require.NoError(t, restored.Restore(snap))
	assert.Equal(t, c.Len(), restored.Len())
	assert.Equal(t, c.MaxChecked(), restored.MaxChecked())
	assert.Equal(t, take(NewSegmentedSieve(), 2000), take(NewSegmentedSieve(WithCache(restored)), 2000))

	bad := []Snapshot{
		{Primes: []uint64{2, 3, 5}, MaxChecked: 6},
		{Primes: []uint64{2, 3, 5, 7, 11, 17}, MaxChecked: 18},
		{Primes: []uint64{2, 3, 5, 7, 11, 13, 13}, MaxChecked: 14},
		{Primes: []uint64{2, 3, 5, 7, 11, 13, 17}, MaxChecked: 19},
		{Primes: []uint64{2, 3, 5, 7, 11, 13, 17}, MaxChecked: 100},
	}
	for _, b := range bad {
		assert.Error(t, NewSieveCache().Restore(b), "%v", b)
	}
}

func TestIsqrt(t *testing.T) {
	for _, x := range []uint64{0, 1, 2, 3, 4, 15, 16, 17, 24, 25, 26, 1 << 40, math.MaxUint64} {
		r := isqrt(x)
		assert.True(t, r*r <= x, "isqrt(%d) = %d too large", x, r)
		if r+1 <= math.MaxUint32 {
			assert.True(t, (r+1)*(r+1) > x, "isqrt(%d) = %d too small", x, r)
		}
	}
}

func TestGeneratorsStrictlyIncreasing(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	for name, newGen := range allGenerators() {
		newGen := newGen
		properties.Property(name+" is strictly increasing", prop.ForAll(
			func(n int) bool {
				values := take(newGen(), n)
				for i := 1; i < len(values); i++ {
					if values[i] <= values[i-1] {
						return false
					}
				}
				return true
			},
			gen.IntRange(1, 5000),
		))
	}

	properties.TestingRun(t)
}

func take(g Generator, n int) []uint64 {
	out := make([]uint64, 0, n)
	for len(out) < n {
		p, ok := g.Next()
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}

func TestWithMaxSegmentSize(t *testing.T) {
	for in, want := range map[uint64]uint64{
		0:              DefaultMaxSegmentSize,
		1:              2,
		7:              8,
		64:             64,
		math.MaxUint64: math.MaxUint64 - 1,
	} {
		s := NewSegmentedSieve(WithMaxSegmentSize(in))
		assert.Equal(t, want, s.maxSegmentSize, "%d", in)
	}

	s := NewSegmentedSieve(WithMaxSegmentSize(math.MaxUint64))
	p, ok := s.NthPrime(10)
	require.True(t, ok)
	assert.Equal(t, uint64(31), p)
}

func TestSieveExtendEmptySegment(t *testing.T) {
	var table sieveTable
	table.reset()
	assert.False(t, table.extend(0))
	assert.Equal(t, sieveSeed, table.primes)
}
