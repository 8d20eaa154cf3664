// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"context"
	"io"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-errors/errors"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/internal/logging"
)

// SmallPrimes is a list of small prime numbers that allows us to rapidly
// exclude some fraction of composite candidates when searching for a random
// prime. This list is truncated at the point where SmallPrimesProduct exceeds
// a uint64. It does not include two because we ensure that the candidates are
// odd by construction.
var SmallPrimes = []uint8{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
}

// SmallPrimesProduct is the product of the values in SmallPrimes and allows us
// to reduce a candidate prime by this number and then determine whether it's
// coprime with all the elements of SmallPrimes without further big.Int
// operations.
var SmallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)

// cancelCheckInterval is the number of candidates tried between two looks at
// the context.
const cancelCheckInterval = 1000

var (
	candidatesTried = metrics.GetOrCreateCounter("primes_candidates_total")
	primesFound     = metrics.GetOrCreateCounter("primes_found_total")
)

// RandomPrimeOfBitLength returns a random probable prime of exactly the given
// bit length. It keeps drawing odd candidates until one passes
// ProbablyPrime with DefaultRounds; only a failing random source ends the
// search early.
func RandomPrimeOfBitLength(rand io.Reader, bits uint) (*big.Int, error) {
	return RandomPrimeOfBitLengthContext(context.Background(), rand, bits)
}

// RandomPrimeOfBitLengthContext is RandomPrimeOfBitLength, giving up with the
// context's error once ctx is done.
func RandomPrimeOfBitLengthContext(ctx context.Context, rand io.Reader, bits uint) (*big.Int, error) {
	if bits < 2 {
		return nil, errors.New("randomPrimeOfBitLength: prime size must be at least 2-bit")
	}

	return searchPrime(ctx, rand, bits > 6, func() (*big.Int, error) {
		p, err := big.RandomBits(rand, bits)
		if err != nil {
			return nil, errors.WrapPrefix(err, "randomPrimeOfBitLength", 0)
		}
		// Exactly bits bits, and odd since an even number this large certainly isn't prime.
		p.SetBit(p, int(bits)-1, 1)
		return p.SetBit(p, 0, 1), nil
	})
}

// RandomPrimeInRange returns a random probable prime in the range [2^start, 2^start + 2^length]
// This code is an adaption of Go's own Prime function in rand/util.go
func RandomPrimeInRange(rand io.Reader, start, length uint) (p *big.Int, err error) {
	if start < 2 {
		err = errors.New("randomPrimeInRange: prime size must be at least 2-bit")
		return
	}
	if length == 0 {
		err = errors.New("randomPrimeInRange: range length must be at least 1 bit")
		return
	}

	startVal := new(big.Int).Lsh(big.NewInt(1), start)
	p = new(big.Int)

	return searchPrime(context.Background(), rand, start > 6, func() (*big.Int, error) {
		offset, err := big.RandomBits(rand, length)
		if err != nil {
			return nil, errors.WrapPrefix(err, "randomPrimeInRange", 0)
		}
		// Make the value odd since an even number this large certainly isn't prime.
		offset.SetBit(offset, 0, 1)
		return p.Add(startVal, offset), nil
	})
}

// searchPrime draws candidates until one is found to be prime. When large is
// set, candidates are known to exceed the small primes, so any multiple of
// one of them can be skipped.
func searchPrime(ctx context.Context, rand io.Reader, large bool, next func() (*big.Int, error)) (*big.Int, error) {
	bigMod := new(big.Int)
	tries := 0

NextCandidate:
	for {
		if tries%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		tries++
		p, err := next()
		if err != nil {
			return nil, err
		}
		candidatesTried.Inc()

		// Calculate the value mod the product of SmallPrimes. If it's a multiple of any of these
		// primes we discard this candidate. This check is much cheaper than ProbablyPrime() below.
		bigMod.Mod(p, SmallPrimesProduct)
		mod := bigMod.Uint64()
		for _, prime := range SmallPrimes {
			if mod%uint64(prime) == 0 && (large || mod != uint64(prime)) {
				continue NextCandidate
			}
		}

		ok, err := ProbablyPrime(rand, p, DefaultRounds)
		if err != nil {
			return nil, err
		}
		if ok {
			primesFound.Inc()
			logging.Logger().Debugf("random prime of %d bits found after %d candidates", p.BitLen(), tries)
			return new(big.Int).Set(p), nil
		}
	}
}
