package primes

import (
	"context"
	"crypto/rand"
	"io"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/generator"
	"github.com/privacybydesign/primes/internal/common"
)

// RandomPrimeOfBitLength returns a random probable prime with exactly the
// given number of bits, drawn with crypto/rand. There is no bound on the
// number of candidates tried; use RandomPrimeOfBitLengthContext to bound the
// time spent.
func RandomPrimeOfBitLength(bits uint) (*big.Int, error) {
	return common.RandomPrimeOfBitLength(rand.Reader, bits)
}

// RandomPrimeOfBitLengthContext is RandomPrimeOfBitLength with an explicit
// randomness source, giving up once ctx is done.
func RandomPrimeOfBitLengthContext(ctx context.Context, rand io.Reader, bits uint) (*big.Int, error) {
	return common.RandomPrimeOfBitLengthContext(ctx, rand, bits)
}

// RandomPrimeInRange returns a random probable prime in [2^start, 2^start + 2^length].
func RandomPrimeInRange(rand io.Reader, start, length uint) (p *big.Int, err error) {
	return common.RandomPrimeInRange(rand, start, length)
}

// RandomPrimesInRange returns up to count distinct primes chosen uniformly at
// random from the primes in [start, stop] that g enumerates. Fewer are
// returned when the range does not hold count primes.
func RandomPrimesInRange(start, stop uint64, count int, g generator.Generator) ([]uint64, error) {
	return common.RandomPrimesInRange(rand.Reader, start, stop, count, g)
}

// GeneratePrimes returns n random primes of the given bit length, searching
// on all cores.
func GeneratePrimes(ctx context.Context, bits uint, n int) ([]*big.Int, error) {
	return common.GenerateConcurrent(ctx, rand.Reader, bits, n)
}
