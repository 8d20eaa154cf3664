package pool

import (
	"crypto/rand"
	"encoding/json"
	"io"
	"runtime"

	"github.com/go-errors/errors"
	"github.com/hashicorp/go-multierror"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/internal/common"
)

// Config describes an in-memory pool.
type Config struct {
	// Size is the number of primes kept ready.
	Size int
	// Bits is the bit length of the pooled primes.
	Bits uint
	// Workers is the number of goroutines refilling the buffer; zero means
	// one per CPU.
	Workers int
	// Rand is the randomness source; nil means crypto/rand. It must be safe
	// for concurrent use.
	Rand io.Reader
}

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.Size < 1 {
		result = multierror.Append(result, errors.Errorf("pool size must be positive, got %d", c.Size))
	}
	if c.Bits < 2 {
		result = multierror.Append(result, errors.Errorf("prime size must be at least 2 bits, got %d", c.Bits))
	}
	if c.Workers < 0 {
		result = multierror.Append(result, errors.Errorf("worker count must not be negative, got %d", c.Workers))
	}
	return result.ErrorOrNil()
}

// InMemoryPool keeps a buffer of primes that background workers refill.
// When the buffer runs dry, Fetch generates a prime itself.
type InMemoryPool struct {
	storage *common.InMemoryStorage
	config  Config
}

// NewInMemoryPool validates c and starts the workers. Close stops them.
func NewInMemoryPool(c Config) (*InMemoryPool, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Rand == nil {
		c.Rand = rand.Reader
	}

	return &InMemoryPool{
		storage: common.NewInMemoryStorage(c.Rand, c.Size, c.Bits, c.Workers),
		config:  c,
	}, nil
}

func (p *InMemoryPool) Fetch(bits uint) (*big.Int, error) {
	return p.storage.Fetch(bits)
}

// Len returns the number of primes currently buffered.
func (p *InMemoryPool) Len() int {
	return p.storage.Len()
}

func (p *InMemoryPool) StatsJSON() ([]byte, error) {
	type Stats struct {
		Name     string
		Bits     uint
		Size     int
		Buffered int
	}
	return json.Marshal(Stats{
		Name:     "inmemory",
		Bits:     p.config.Bits,
		Size:     p.config.Size,
		Buffered: p.Len(),
	})
}

func (p *InMemoryPool) Close() error {
	return p.storage.Close()
}
