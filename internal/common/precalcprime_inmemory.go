package common

import (
	"context"
	"io"

	"github.com/go-errors/errors"
	"github.com/tevino/abool"
	"golang.org/x/sync/errgroup"

	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/internal/logging"
)

type InMemoryStorage struct {
	primes chan *big.Int // Buffer with our new primes
	bits   uint          // Bit length of generated primes
	rand   io.Reader

	cancel context.CancelFunc
	group  *errgroup.Group
	closed *abool.AtomicBool
}

// NewInMemoryStorage starts workers goroutines that keep a buffer of size
// primes of the given bit length filled. rand must be safe for concurrent use.
func NewInMemoryStorage(rand io.Reader, size int, bits uint, workers int) *InMemoryStorage {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	s := &InMemoryStorage{
		primes: make(chan *big.Int, size),
		bits:   bits,
		rand:   rand,
		cancel: cancel,
		group:  group,
		closed: abool.New(),
	}

	// Each worker blocks once the buffer is full, until a prime is fetched.
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			return s.fill(ctx)
		})
	}

	return s
}

func (s *InMemoryStorage) fill(ctx context.Context) error {
	for {
		p, err := RandomPrimeOfBitLengthContext(ctx, s.rand, s.bits)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logging.Logger().Errorf("in-memory prime storage: filling buffer failed: %v", err)
			return err
		}

		select {
		case s.primes <- p:
		case <-ctx.Done():
			return nil
		}
	}
}

// Fetch a new prime directly from our in-memory buffer
func (s *InMemoryStorage) Fetch(bits uint) (*big.Int, error) {
	if s.closed.IsSet() {
		return nil, errors.New("in-memory prime storage is closed")
	}
	if bits != s.bits {
		return nil, errors.Errorf("in-memory prime storage holds %d-bit primes, not %d-bit", s.bits, bits)
	}

	select {
	case p := <-s.primes:
		return p, nil
	default:
		logging.Logger().Warnf("in-memory prime storage: the buffer has depleted (size: %d)", cap(s.primes))
		return RandomPrimeOfBitLength(s.rand, s.bits)
	}
}

// Len returns the number of buffered primes.
func (s *InMemoryStorage) Len() int {
	return len(s.primes)
}

// Close stops the workers and waits for them to return. It reports the
// error that stopped a worker, if any.
func (s *InMemoryStorage) Close() error {
	if !s.closed.SetToIf(false, true) {
		return nil
	}
	s.cancel()
	return s.group.Wait()
}
