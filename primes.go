// Package primes enumerates prime numbers, tests integers for primality,
// factorizes integers and generates random primes.
//
// The sequences of candidate primes come from the generator package; pick a
// strategy there and pass it to the functions below. Factorization lives in
// the factor package, pooled precomputed primes in the pool package.
package primes

import (
	"crypto/rand"

	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/factor"
	"github.com/privacybydesign/primes/generator"
	"github.com/privacybydesign/primes/internal/common"
	"github.com/privacybydesign/primes/internal/logging"
)

// DefaultRounds is the number of Miller-Rabin rounds IsProbablePrime uses
// when rounds is not positive.
const DefaultRounds = common.DefaultRounds

// ErrDivisionByZero is returned by Factorize for zero.
var ErrDivisionByZero = factor.ErrDivisionByZero

// SetLogger directs the diagnostics of all packages to l. nil restores the
// default logger, which only reports warnings and errors.
func SetLogger(l *logrus.Logger) {
	logging.Set(l)
}

// EnumeratePrimes returns the primes up to and including upperBound, in
// ascending order, enumerated with g. Composites produced by pseudo-prime
// generators are left out. g is rewound first.
func EnumeratePrimes(g generator.Generator, upperBound uint64) []uint64 {
	return generator.Enumerate(generator.Exact(g), upperBound)
}

// EachPrime calls fn with the primes enumerated by g, from the start, until
// fn returns false, the upper bound of g is passed, or g is exhausted.
func EachPrime(g generator.Generator, fn func(p uint64) bool) {
	e := generator.Exact(g)
	e.Rewind()
	generator.ForEach(e, fn)
}

// IsProbablePrime reports whether n passes rounds rounds of the Miller-Rabin
// test with witnesses from crypto/rand. A composite passes with probability
// at most 4^-rounds.
func IsProbablePrime(n *big.Int, rounds int) bool {
	ok, err := common.ProbablyPrime(rand.Reader, n, rounds)
	if err != nil {
		logging.Logger().Errorf("primality test of %s failed: %v", n, err)
		return false
	}
	return ok
}

// Factorize returns the prime factorization of value, using the values of g
// as trial divisors.
func Factorize(value *big.Int, g generator.Generator) (factor.List, error) {
	return factor.Factorize(value, g)
}

// ModPow returns base^exp mod m.
func ModPow(base, exp, m *big.Int) *big.Int {
	return big.ModPow(base, exp, m)
}

// EGCD returns gcd(a, b) and x, y with a*x + b*y = gcd(a, b).
func EGCD(a, b *big.Int) (g, x, y *big.Int) {
	return big.EGCD(a, b)
}
