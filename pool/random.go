package pool

import (
	"encoding/json"
	"io"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/internal/common"
)

type randomPool struct {
	storage common.PrimeStorage
}

func (p *randomPool) StatsJSON() ([]byte, error) {
	type Stats struct {
		Name string
	}
	return json.Marshal(Stats{
		Name: "random",
	})
}

func NewRandomPool(r io.Reader) PrimePool {
	return &randomPool{
		storage: common.NewRandomStorage(r),
	}
}

func (p *randomPool) Fetch(bits uint) (*big.Int, error) {
	return p.storage.Fetch(bits)
}
