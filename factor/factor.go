// Package factor decomposes integers into prime powers by trial division,
// using any pseudo-prime generator as the source of trial divisors.
//
// This is suitable for numbers whose prime factors, except possibly the
// largest, are small. It does not attempt to split products of large primes.
package factor

import (
	"strings"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/generator"
	"github.com/privacybydesign/primes/internal/logging"
)

// ErrDivisionByZero is returned when asked to factorize zero.
var ErrDivisionByZero = errors.New("factor: cannot factorize zero")

var (
	one      = big.NewInt(1)
	minusOne = big.NewInt(-1)
)

// Factor is a prime raised to a positive exponent. A Factor with Prime -1
// carries the sign of a negative number.
type Factor struct {
	Prime    *big.Int
	Exponent uint
}

// List is a factorization: primes strictly increasing, exponents at least one,
// optionally preceded by (-1, 1).
type List []Factor

// Factorize returns the prime factorization of value. The divisors are taken
// from g, which is rewound first; its upper bound is ignored.
//
// Once the quotient of a failed trial division is no larger than the divisor,
// what is left of value has no factor below its square root and is therefore
// prime. Should g run out of values before that point, the remainder is
// appended as is.
func Factorize(value *big.Int, g generator.Generator) (List, error) {
	if value.Sign() == 0 {
		return nil, ErrDivisionByZero
	}

	var list List
	v := new(big.Int).Set(value)
	if v.Sign() < 0 {
		v.Neg(v)
		list = append(list, Factor{Prime: new(big.Int).Set(minusOne), Exponent: 1})
	}

	g.Rewind()
	p, q, r := new(big.Int), new(big.Int), new(big.Int)
	tried := 0
	for {
		candidate, ok := g.Next()
		if !ok {
			logging.Logger().Warnf("factor: generator exhausted after %d candidates", tried)
			break
		}
		tried++
		p.SetUint64(candidate)

		var exponent uint
		for {
			q.QuoRem(v, p, r)
			if r.Sign() != 0 {
				break
			}
			v.Set(q)
			exponent++
		}
		if exponent > 0 {
			list = append(list, Factor{Prime: new(big.Int).Set(p), Exponent: exponent})
		}
		if q.Cmp(p) <= 0 {
			break
		}
	}

	if v.Cmp(one) > 0 {
		list = append(list, Factor{Prime: v, Exponent: 1})
	}
	logging.Logger().Debugf("factor: factorized %s with %d trial divisors", value, tried)
	return list, nil
}

// Product multiplies the factors out again. The product of an empty list is 1.
func (l List) Product() *big.Int {
	product := big.NewInt(1)
	power := new(big.Int)
	exponent := new(big.Int)
	for _, f := range l {
		exponent.SetUint64(uint64(f.Exponent))
		product.Mul(product, power.Exp(f.Prime, exponent, nil))
	}
	return product
}

// String formats the list as "-1 * 3^2 * 5".
func (l List) String() string {
	if len(l) == 0 {
		return "1"
	}
	parts := make([]string, len(l))
	for i, f := range l {
		if f.Exponent == 1 {
			parts[i] = f.Prime.String()
			continue
		}
		parts[i] = f.Prime.String() + "^" + big.NewInt(int64(f.Exponent)).String()
	}
	return strings.Join(parts, " * ")
}

// IsPrime decides primality of value exactly, by trial division with the
// values of g up to the square root of value. It returns false for values
// below 2, and also if g is exhausted before a decision is reached.
func IsPrime(value *big.Int, g generator.Generator) bool {
	if value.Cmp(one) <= 0 {
		return false
	}

	g.Rewind()
	p, q, r := new(big.Int), new(big.Int), new(big.Int)
	for {
		candidate, ok := g.Next()
		if !ok {
			return false
		}
		p.SetUint64(candidate)
		q.QuoRem(value, p, r)
		if q.Cmp(p) < 0 {
			return true
		}
		if r.Sign() == 0 {
			return false
		}
	}
}
