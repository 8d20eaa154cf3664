package common

import (
	"bytes"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"
	bolt "go.etcd.io/bbolt"

	"github.com/privacybydesign/primes/generator"
)

// SieveBucket holds the stored sieve tables, keyed by name.
const SieveBucket = "sieves"

// ErrCorruptSnapshot is returned when a stored sieve table does not match its digest.
var ErrCorruptSnapshot = errors.New("stored sieve table is corrupt")

// ErrNoSnapshot is returned when no sieve table is stored under the requested name.
var ErrNoSnapshot = errors.New("no stored sieve table with that name")

type sieveRecord struct {
	Primes     []uint64 `cbor:"1,keyasint"`
	MaxChecked uint64   `cbor:"2,keyasint"`
}

// sealedRecord carries the encoded sieveRecord together with its multihash.
type sealedRecord struct {
	Digest  []byte `cbor:"1,keyasint"`
	Payload []byte `cbor:"2,keyasint"`
}

// SaveSieve stores the table of cache under name, replacing any earlier one.
func SaveSieve(db *bolt.DB, name string, cache *generator.SieveCache) error {
	snap := cache.Snapshot()
	payload, err := cbor.Marshal(sieveRecord{Primes: snap.Primes, MaxChecked: snap.MaxChecked})
	if err != nil {
		return errors.WrapPrefix(err, "encoding sieve table", 0)
	}
	digest, err := multihash.Sum(payload, multihash.SHA2_256, -1)
	if err != nil {
		return errors.WrapPrefix(err, "hashing sieve table", 0)
	}
	sealed, err := cbor.Marshal(sealedRecord{Digest: digest, Payload: payload})
	if err != nil {
		return errors.WrapPrefix(err, "encoding sieve table", 0)
	}

	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(SieveBucket))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(name), sealed)
	})
}

// LoadSieve returns a cache holding the table stored under name.
func LoadSieve(db *bolt.DB, name string) (*generator.SieveCache, error) {
	var sealed []byte
	err := db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(SieveBucket))
		if bucket == nil {
			return ErrNoSnapshot
		}
		v := bucket.Get([]byte(name))
		if v == nil {
			return ErrNoSnapshot
		}
		sealed = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var s sealedRecord
	if err := cbor.Unmarshal(sealed, &s); err != nil {
		return nil, ErrCorruptSnapshot
	}
	decoded, err := multihash.Decode(s.Digest)
	if err != nil || decoded.Code != multihash.SHA2_256 {
		return nil, ErrCorruptSnapshot
	}
	digest, err := multihash.Sum(s.Payload, multihash.SHA2_256, -1)
	if err != nil {
		return nil, errors.WrapPrefix(err, "hashing sieve table", 0)
	}
	if !bytes.Equal(digest, s.Digest) {
		return nil, ErrCorruptSnapshot
	}

	var r sieveRecord
	if err := cbor.Unmarshal(s.Payload, &r); err != nil {
		return nil, ErrCorruptSnapshot
	}
	cache := generator.NewSieveCache()
	if err := cache.Restore(generator.Snapshot{Primes: r.Primes, MaxChecked: r.MaxChecked}); err != nil {
		return nil, errors.WrapPrefix(err, "restoring sieve table", 0)
	}
	return cache, nil
}
