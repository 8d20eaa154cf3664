package common

import (
	"io"

	"github.com/privacybydesign/primes/big"
)

type randomStorage struct {
	rand io.Reader
}

// NewRandomStorage returns a storage that generates every prime on request.
func NewRandomStorage(rand io.Reader) PrimeStorage {
	return &randomStorage{rand: rand}
}

func (b *randomStorage) Fetch(bits uint) (*big.Int, error) {
	return RandomPrimeOfBitLength(b.rand, bits)
}
