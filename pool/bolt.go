package pool

import (
	"encoding/json"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/generator"
	"github.com/privacybydesign/primes/internal/common"
)

// DefaultFile is the default filename of a bolt pool.
const DefaultFile = common.BoltDBFile

// BoltPool serves primes precomputed into a bolt database. The same database
// can also keep sieve tables, so that enumeration can resume where an
// earlier run stopped.
type BoltPool struct {
	storage *common.BoltStorage
}

// OpenBoltPool opens, or creates, the bolt pool at path.
func OpenBoltPool(path string) (*BoltPool, error) {
	s, err := common.OpenBoltStorage(path)
	if err != nil {
		return nil, err
	}
	return &BoltPool{storage: s}, nil
}

func (p *BoltPool) Fetch(bits uint) (*big.Int, error) {
	return p.storage.Fetch(bits)
}

// Put adds primes of the given bit length to the pool.
func (p *BoltPool) Put(bits uint, primes ...*big.Int) error {
	return p.storage.Put(bits, primes...)
}

// Count returns the number of stored primes of the given bit length.
func (p *BoltPool) Count(bits uint) (int, error) {
	return p.storage.Count(bits)
}

// SaveSieve stores the table of cache under name.
func (p *BoltPool) SaveSieve(name string, cache *generator.SieveCache) error {
	return common.SaveSieve(p.storage.DB(), name, cache)
}

// LoadSieve returns a cache restored from the table stored under name.
func (p *BoltPool) LoadSieve(name string) (*generator.SieveCache, error) {
	return common.LoadSieve(p.storage.DB(), name)
}

// StatsJSON reports the number of stored primes for each of the given sizes.
func (p *BoltPool) StatsJSON(sizes ...uint) ([]byte, error) {
	type Stats struct {
		Name   string
		Counts map[uint]int
	}
	stats := Stats{Name: "bolt", Counts: make(map[uint]int, len(sizes))}
	for _, bits := range sizes {
		n, err := p.Count(bits)
		if err != nil {
			return nil, err
		}
		stats.Counts[bits] = n
	}
	return json.Marshal(stats)
}

func (p *BoltPool) Close() error {
	return p.storage.Close()
}
