package common

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-errors/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/privacybydesign/primes/big"
)

// BucketName is where the primes of a given bit length are stored (sprintf'ed)
const BucketName = "primes_%d"

// BoltDBFile is the default filename of the boltDB storage
const BoltDBFile = "primes.db"

type BoltStorage struct {
	client *bolt.DB
}

// OpenBoltStorage opens, or creates, the bolt database at path.
func OpenBoltStorage(path string) (*BoltStorage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.WrapPrefix(err, "opening prime storage", 0)
	}

	return &BoltStorage{
		client: db,
	}, nil
}

// DB returns the underlying database.
func (b *BoltStorage) DB() *bolt.DB {
	return b.client
}

func (b *BoltStorage) Close() error {
	return b.client.Close()
}

// Fetch removes the oldest stored prime of the given size and returns it.
func (b *BoltStorage) Fetch(bits uint) (*big.Int, error) {
	var bi *big.Int

	err := b.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName(bits))
		if bucket == nil {
			return ErrPoolEmpty
		}

		c := bucket.Cursor()
		k, v := c.First()
		if k == nil {
			return ErrPoolEmpty
		}

		bi = new(big.Int).SetBytes(v)

		return c.Delete()
	})
	if err != nil {
		return nil, err
	}

	return bi, nil
}

// Put stores primes for later retrieval by Fetch. Each must have exactly the
// given bit length.
func (b *BoltStorage) Put(bits uint, primes ...*big.Int) error {
	for _, p := range primes {
		if p.BitLen() != int(bits) {
			return errors.Errorf("prime storage: %s does not have %d bits", p, bits)
		}
	}

	return b.client.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName(bits))
		if err != nil {
			return err
		}

		for _, p := range primes {
			seq, err := bucket.NextSequence()
			if err != nil {
				return err
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)
			if err := bucket.Put(key, p.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of stored primes of the given size.
func (b *BoltStorage) Count(bits uint) (int, error) {
	var n int
	err := b.client.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName(bits))
		if bucket != nil {
			n = bucket.Stats().KeyN
		}
		return nil
	})
	return n, err
}

func bucketName(bits uint) []byte {
	return []byte(fmt.Sprintf(BucketName, bits))
}
