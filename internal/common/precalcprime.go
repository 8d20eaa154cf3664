// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-errors/errors"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/internal/logging"
)

// ErrPoolEmpty is returned by storages that have no prime of the requested size left.
var ErrPoolEmpty = errors.New("no precalculated prime of the requested size available")

var poolFallbacks = metrics.GetOrCreateCounter("primes_pool_fallbacks_total")

type PrimeStorage interface {
	Fetch(bits uint) (*big.Int, error)
}

// RandomPrecalcPrimeOfBitLength returns a precalculated prime from storage,
// generating a fresh one with rand if the storage cannot deliver.
func RandomPrecalcPrimeOfBitLength(storage PrimeStorage, rand io.Reader, bits uint) (p *big.Int, err error) {
	if bits < 2 {
		err = errors.New("randomPrecalcPrimeOfBitLength: prime size must be at least 2-bit")
		return
	}

	p, err = storage.Fetch(bits)
	if err != nil {
		poolFallbacks.Inc()
		logging.Logger().Debugf("prime storage could not deliver a %d-bit prime (%v), generating one", bits, err)
		return RandomPrimeOfBitLength(rand, bits)
	}

	return p, err
}
