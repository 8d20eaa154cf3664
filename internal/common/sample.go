package common

import (
	"context"
	"io"
	"runtime"

	"github.com/go-errors/errors"
	"golang.org/x/sync/errgroup"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/generator"
	"github.com/privacybydesign/primes/internal/logging"
)

// RandomPrimesInRange draws count distinct primes uniformly at random from
// the primes in [start, stop], as enumerated by g. If the range holds fewer
// than count primes, all of them are returned in random order; callers must
// check the length of the result.
//
// Composites emitted by pseudo-prime generators are filtered out. g is
// rewound before use.
func RandomPrimesInRange(rand io.Reader, start, stop uint64, count int, g generator.Generator) ([]uint64, error) {
	if count <= 0 || start > stop {
		return []uint64{}, nil
	}

	e := generator.Exact(g)
	e.Rewind()
	var candidates []uint64
	for {
		p, ok := e.Next()
		if !ok || p > stop {
			break
		}
		if p >= start {
			candidates = append(candidates, p)
		}
	}

	if len(candidates) < count {
		logging.Logger().Warnf("only %d primes in [%d, %d], %d requested", len(candidates), start, stop, count)
		count = len(candidates)
	}

	// Partial Fisher-Yates: the first count slots end up a uniform sample
	// without replacement.
	for i := 0; i < count; i++ {
		j, err := big.RandomInt(rand, big.NewInt(int64(len(candidates)-i)))
		if err != nil {
			return nil, err
		}
		k := i + int(j.Int64())
		candidates[i], candidates[k] = candidates[k], candidates[i]
	}
	return candidates[:count], nil
}

// GenerateConcurrent returns n random primes of the given bit length,
// searching for them on all available cores. rand must be safe for
// concurrent use. The first error, or the cancellation of ctx, stops all
// searches.
func GenerateConcurrent(ctx context.Context, rand io.Reader, bits uint, n int) ([]*big.Int, error) {
	if n < 0 {
		return nil, errors.Errorf("generateConcurrent: negative count %d", n)
	}
	primes := make([]*big.Int, n)
	if n == 0 {
		return primes, nil
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		group.Go(func() error {
			p, err := RandomPrimeOfBitLengthContext(ctx, rand, bits)
			if err != nil {
				return err
			}
			primes[i] = p
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return primes, nil
}
