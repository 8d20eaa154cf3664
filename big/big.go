// Package big provides the arbitrary-precision integer operations the prime
// routines rely on. Int is math/big's Int; the helpers below name the handful
// of compound operations (modular exponentiation, extended gcd, floored
// division and random sampling) so callers do not have to spell them out.
package big

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/go-errors/errors"
)

// Int is an arbitrary-precision integer.
type Int = big.Int

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// NewInt allocates and returns a new Int set to x.
func NewInt(x int64) *Int {
	return big.NewInt(x)
}

// NewUint allocates and returns a new Int set to x.
func NewUint(x uint64) *Int {
	return new(big.Int).SetUint64(x)
}

// ModPow returns base^exp mod m. m must be positive.
func ModPow(base, exp, m *Int) *Int {
	return new(big.Int).Exp(base, exp, m)
}

// EGCD returns gcd(a, b) together with x and y satisfying a*x + b*y = gcd(a, b).
// The gcd is never negative, whatever the signs of a and b.
func EGCD(a, b *Int) (g, x, y *Int) {
	x, y = new(big.Int), new(big.Int)
	g = new(big.Int).GCD(x, y, a, b)
	return
}

// DivMod returns the floored quotient and the modulus of x / y, so that
// x = q*y + m with 0 <= m < |y|. It panics when y is zero, like math/big.
func DivMod(x, y *Int) (q, m *Int) {
	return new(big.Int).DivMod(x, y, new(big.Int))
}

// Divides reports whether d divides x evenly. d must not be zero.
func Divides(d, x *Int) bool {
	return new(big.Int).Rem(x, d).Sign() == 0
}

// RandomInt returns a uniform random value in [0, max).
func RandomInt(rand io.Reader, max *Int) (*Int, error) {
	if max.Cmp(zero) <= 0 {
		return nil, errors.New("big: random range must be positive")
	}
	return randInt(rand, max)
}

// RandomIntInRange returns a uniform random value in [low, high].
func RandomIntInRange(rand io.Reader, low, high *Int) (*Int, error) {
	width := new(big.Int).Sub(high, low)
	width.Add(width, one)
	r, err := RandomInt(rand, width)
	if err != nil {
		return nil, err
	}
	return r.Add(r, low), nil
}

// RandomBits returns a uniform random value with at most bits bits.
func RandomBits(rand io.Reader, bits uint) (*Int, error) {
	if bits == 0 {
		return new(big.Int), nil
	}
	bytes := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rand, bytes); err != nil {
		return nil, errors.WrapPrefix(err, "big: reading random bytes", 0)
	}
	if b := bits % 8; b != 0 {
		bytes[0] &= uint8(int(1<<b) - 1)
	}
	return new(big.Int).SetBytes(bytes), nil
}

func randInt(r io.Reader, max *Int) (*Int, error) {
	n, err := rand.Int(r, max)
	if err != nil {
		return nil, errors.WrapPrefix(err, "big: sampling random integer", 0)
	}
	return n, nil
}
