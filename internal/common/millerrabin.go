package common

import (
	"io"

	"github.com/VictoriaMetrics/metrics"

	"github.com/privacybydesign/primes/big"
)

// DefaultRounds is the number of Miller-Rabin rounds used when none is given.
// A composite passes all of them with probability at most 4^-DefaultRounds.
const DefaultRounds = 10

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)

	witnessRounds = metrics.GetOrCreateCounter("primes_witness_rounds_total")
)

// ProbablyPrime applies the Miller-Rabin test with the given number of rounds
// to n, drawing each witness uniformly from [2, n-2] with rand. Primes are
// always reported as prime; a composite is reported as prime with
// probability at most 4^-rounds. Values below 4 and even values are decided
// directly. If rounds is not positive, DefaultRounds is used.
func ProbablyPrime(rand io.Reader, n *big.Int, rounds int) (bool, error) {
	switch {
	case n.Cmp(two) < 0:
		return false, nil
	case n.Cmp(three) <= 0:
		return true, nil
	case n.Bit(0) == 0:
		return false, nil
	}
	if rounds <= 0 {
		rounds = DefaultRounds
	}

	// n-1 = d * 2^s with d odd
	nMinusOne := new(big.Int).Sub(n, one)
	s := nMinusOne.TrailingZeroBits()
	d := new(big.Int).Rsh(nMinusOne, s)
	nMinusTwo := new(big.Int).Sub(n, two)

NextRound:
	for i := 0; i < rounds; i++ {
		witness, err := big.RandomIntInRange(rand, two, nMinusTwo)
		if err != nil {
			return false, err
		}
		witnessRounds.Inc()

		y := big.ModPow(witness, d, n)
		if y.Cmp(one) == 0 || y.Cmp(nMinusOne) == 0 {
			continue
		}
		for j := uint(1); j < s; j++ {
			y.Mul(y, y).Mod(y, n)
			if y.Cmp(one) == 0 {
				return false, nil
			}
			if y.Cmp(nMinusOne) == 0 {
				continue NextRound
			}
		}
		return false, nil
	}
	return true, nil
}
