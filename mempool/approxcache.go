// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"encoding/binary"
	"math"
	"math/rand"
	"time"

	"github.com/decred/dcrd/lru"
)

// ApproxCacheConfig configures the two tiers of ApproxCache.
type ApproxCacheConfig struct {
	// FrontSize is the capacity of the exact front cache.
	FrontSize uint

	// FrontTtl is how long an id is trusted as present in the front cache
	// before it is treated as absent.
	FrontTtl time.Duration

	// FilterCapacity is the expected number of elements (B) the back
	// filter is sized for.
	FilterCapacity uint32

	// FilterFpr is the back filter's target false-positive rate (r).
	FilterFpr float64

	// RotationInterval is how often the back filter is replaced with a
	// fresh instance, carrying the front cache forward unchanged.
	RotationInterval time.Duration
}

// ApproxCache remembers recently invalidated transaction ids with bounded
// memory and an approximate (false-positive-only) membership test. It is safe to share across OrderedPool generations: nothing in
// this package ever clears it except by TTL/rotation.
type ApproxCache struct {
	cfg ApproxCacheConfig

	// front is the exact, bounded-capacity LRU set. It provides the
	// fixed-capacity, evict-least-recently-inserted half of the front cache.
	front lru.Cache

	// insertedAt tracks, for ids currently believed to be in front, when
	// they were inserted -- lru.Cache is a bare LRU key set with no
	// value slot, so TTL bookkeeping is layered on top here. Bounded to
	// roughly FrontSize entries: see put's pruning below.
	insertedAt map[TxId]int64

	current  *bitFilter
	previous *bitFilter

	lastRotation int64
}

// NewApproxCache builds an ApproxCache from the given configuration,
// applying sane defaults for zero-valued fields.
func NewApproxCache(cfg ApproxCacheConfig) *ApproxCache {
	if cfg.FrontSize == 0 {
		cfg.FrontSize = 1024
	}
	if cfg.FrontTtl <= 0 {
		cfg.FrontTtl = 10 * time.Minute
	}
	if cfg.FilterCapacity == 0 {
		cfg.FilterCapacity = 100000
	}
	if cfg.FilterFpr <= 0 {
		cfg.FilterFpr = 0.0001
	}
	if cfg.RotationInterval <= 0 {
		cfg.RotationInterval = time.Hour
	}

	return &ApproxCache{
		cfg:          cfg,
		front:        lru.NewCache(cfg.FrontSize),
		insertedAt:   make(map[TxId]int64, cfg.FrontSize),
		current:      newBitFilter(cfg.FilterCapacity, cfg.FilterFpr),
		previous:     newBitFilter(cfg.FilterCapacity, cfg.FilterFpr),
		lastRotation: nowFunc(),
	}
}

// Put records id as invalidated: it is inserted into the exact front cache
// and into the back filter.
func (c *ApproxCache) Put(id TxId) {
	c.maybeRotate()

	c.front.Add(id)
	c.insertedAt[id] = nowFunc()
	c.pruneInsertedAt()

	c.current.add(id[:])
}

// MightContain reports whether id may have been inserted. False positives
// are allowed (and expected, within the configured back-filter rate); false
// negatives are forbidden for ids inserted within FrontTtl.
func (c *ApproxCache) MightContain(id TxId) bool {
	if c.front.Contains(id) {
		if insertedAt, ok := c.insertedAt[id]; ok {
			age := time.Duration(nowFunc()-insertedAt) * time.Millisecond
			if age <= c.cfg.FrontTtl {
				return true
			}
		} else {
			// No timestamp on record (shouldn't normally happen, the
			// two maps are kept in lockstep) -- fail open rather than
			// risk a false negative.
			return true
		}
	}

	return c.current.contains(id[:]) || c.previous.contains(id[:])
}

// maybeRotate replaces the back filter with a fresh instance once
// RotationInterval has elapsed, letting old entries fade out of the
// approximate set while the front cache (and its TTL) is unaffected.
func (c *ApproxCache) maybeRotate() {
	now := nowFunc()
	elapsed := time.Duration(now-c.lastRotation) * time.Millisecond
	if elapsed < c.cfg.RotationInterval {
		return
	}

	c.previous = c.current
	c.current = newBitFilter(c.cfg.FilterCapacity, c.cfg.FilterFpr)
	c.lastRotation = now
}

// pruneInsertedAt keeps the timestamp side table from growing past the
// front cache's own capacity: entries the LRU has already evicted are
// dropped opportunistically, and if that alone isn't enough the globally
// oldest timestamps are discarded. The LRU itself remains the source of
// truth for membership; this only bounds auxiliary memory.
func (c *ApproxCache) pruneInsertedAt() {
	for id := range c.insertedAt {
		if !c.front.Contains(id) {
			delete(c.insertedAt, id)
		}
	}

	if uint(len(c.insertedAt)) <= c.cfg.FrontSize {
		return
	}

	oldestId := TxId{}
	oldestAt := int64(math.MaxInt64)
	for id, at := range c.insertedAt {
		if at < oldestAt {
			oldestAt = at
			oldestId = id
		}
	}
	delete(c.insertedAt, oldestId)
}

// bitFilter is a minimal probabilistic set: a flat bit array addressed by a
// family of murmur3-derived hash functions, sized with the same formula
// btcd's own bloom.Filter uses. Unlike bloom.Filter it carries no
// BIP37 wire framing -- there is no peer-facing filter-load message in this
// domain, only an in-memory approximate set.
type bitFilter struct {
	bits      []byte
	hashFuncs uint32
	tweak     uint32
}

func newBitFilter(elements uint32, fpr float64) *bitFilter {
	if fpr > 1.0 {
		fpr = 1.0
	}
	if fpr < 1e-9 {
		fpr = 1e-9
	}

	const ln2Squared = math.Ln2 * math.Ln2
	const maxFilterBits = 8 * 1024 * 1024 // 1 MiB hard cap.
	const maxHashFuncs = 50

	dataLenBits := uint32(-1 * float64(elements) * math.Log(fpr) / ln2Squared)
	dataLenBits = minUint32(dataLenBits, maxFilterBits)
	dataLenBytes := dataLenBits/8 + 1

	hashFuncs := uint32(float64(dataLenBytes*8) / float64(elements) * math.Ln2)
	hashFuncs = minUint32(hashFuncs, maxHashFuncs)
	if hashFuncs == 0 {
		hashFuncs = 1
	}

	return &bitFilter{
		bits:      make([]byte, dataLenBytes),
		hashFuncs: hashFuncs,
		tweak:     rand.Uint32(),
	}
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// hash returns the bit offset corresponding to data for the given
// independent hash function number, matching bloom.Filter.hash.
func (f *bitFilter) hash(hashNum uint32, data []byte) uint32 {
	mm := murmurHash3(hashNum*0xfba4c795+f.tweak, data)
	return mm % (uint32(len(f.bits)) << 3)
}

func (f *bitFilter) add(data []byte) {
	for i := uint32(0); i < f.hashFuncs; i++ {
		idx := f.hash(i, data)
		f.bits[idx>>3] |= 1 << (idx & 7)
	}
}

func (f *bitFilter) contains(data []byte) bool {
	for i := uint32(0); i < f.hashFuncs; i++ {
		idx := f.hash(i, data)
		if f.bits[idx>>3]&(1<<(idx&7)) == 0 {
			return false
		}
	}
	return true
}

// murmurHash3 implements a non-cryptographic hash function using the
// MurmurHash3 algorithm, yielding a 32-bit value suitable for general
// hash-based lookups. Mirrors btcutil/bloom's implementation: it is a pure,
// dependency-free function with no reason to diverge.
func murmurHash3(seed uint32, data []byte) uint32 {
	const (
		c1 = 0xcc9e2d51
		c2 = 0x1b873593
		r1 = 15
		r2 = 13
		m  = 5
		n  = 0xe6546b64
	)

	dataLen := uint32(len(data))
	hash := seed
	k := uint32(0)
	numBlocks := dataLen / 4

	for i := uint32(0); i < numBlocks; i++ {
		k = binary.LittleEndian.Uint32(data[i*4:])
		k *= c1
		k = (k << r1) | (k >> (32 - r1))
		k *= c2

		hash ^= k
		hash = (hash << r2) | (hash >> (32 - r2))
		hash = hash*m + n
	}

	tailIdx := numBlocks * 4
	k = 0

	switch dataLen & 3 {
	case 3:
		k ^= uint32(data[tailIdx+2]) << 16
		fallthrough
	case 2:
		k ^= uint32(data[tailIdx+1]) << 8
		fallthrough
	case 1:
		k ^= uint32(data[tailIdx])
		k *= c1
		k = (k << r1) | (k >> (32 - r1))
		k *= c2
		hash ^= k
	}

	hash ^= dataLen
	hash ^= hash >> 16
	hash *= 0x85ebca6b
	hash ^= hash >> 13
	hash *= 0xc2b2ae35
	hash ^= hash >> 16

	return hash
}
