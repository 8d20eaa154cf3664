// Package pool hands out random primes that were generated ahead of time.
//
// A PrimePool is backed by a bolt database of precomputed primes, by an
// in-memory buffer that background workers keep filled, or by nothing at all
// (every prime is generated on request). RandomPrimeFromPool falls back to
// generating a prime whenever a pool cannot deliver.
package pool

import (
	"context"
	"crypto/rand"
	"io"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/internal/common"
)

// ErrPoolEmpty is returned by Fetch when no prime of the requested size is left.
var ErrPoolEmpty = common.ErrPoolEmpty

type PrimePool interface {
	Fetch(bits uint) (*big.Int, error)
}

// RandomPrimeFromPool returns a precalculated prime from a pool, or a freshly
// generated one if the pool has none of the requested size.
func RandomPrimeFromPool(pool PrimePool, bits uint) (p *big.Int, err error) {
	if bits < 2 {
		err = errors.New("randomPrimeFromPool: prime size must be at least 2-bit")
		return
	}

	return common.RandomPrecalcPrimeOfBitLength(pool, rand.Reader, bits)
}

// Fill generates n primes of the given bit length concurrently and stores
// them in the bolt pool.
func Fill(ctx context.Context, pool *BoltPool, rand io.Reader, bits uint, n int) error {
	primes, err := common.GenerateConcurrent(ctx, rand, bits, n)
	if err != nil {
		return errors.WrapPrefix(err, "filling prime pool", 0)
	}
	return pool.Put(bits, primes...)
}
