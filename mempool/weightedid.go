// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import "time"

// nowFunc returns the current wall-clock time in milliseconds. It exists as
// a var, rather than a direct time.Now call, purely so tests can freeze the
// clock; production code always uses the real clock.
var nowFunc = func() int64 {
	return time.Now().UnixMilli()
}

// WeightedId is the value object the ordered pool sorts on.
// Equality and hashing are defined on Id alone; two WeightedIds that share an
// Id but differ in Weight are, by design, the same key colliding -- callers
// must remove the stale entry before inserting the refreshed one.
type WeightedId struct {
	Id TxId

	// Weight starts equal to FeePerKb and is pushed upward by each
	// descendant that arrives.
	Weight int64

	// FeePerKb is fee*1024/size, fixed at construction time.
	FeePerKb int64

	// CreatedAt is the wall-clock millisecond timestamp this WeightedId
	// was built at. Re-submitting a removed-then-resubmitted transaction
	// gets a fresh CreatedAt -- this is intentional, not a bug: Stats then measures the shorter second
	// lifetime.
	CreatedAt int64
}

// newWeightedId builds the WeightedId for tx, reading the wall clock. See
// the CreatedAt doc comment for why this is re-read on every call rather
// than threaded through from an earlier observation.
func newWeightedId(tx *Transaction, feeProposition []byte) WeightedId {
	fee := tx.fee(feeProposition)
	fpk := feePerKb(fee, tx.Size)
	return WeightedId{
		Id:        tx.Id,
		Weight:    fpk,
		FeePerKb:  fpk,
		CreatedAt: nowFunc(),
	}
}

// Equal compares two WeightedIds by Id only.
func (w WeightedId) Equal(other WeightedId) bool {
	return w.Id == other.Id
}

// Less implements the pool's total order: higher weight sorts first, ties
// broken by id: compare(a,b) = cmp(b.weight,a.weight) ?:
// cmp(a.id,b.id).
func (w WeightedId) Less(other WeightedId) bool {
	if w.Weight != other.Weight {
		return w.Weight > other.Weight
	}
	return bytesLess(w.Id[:], other.Id[:])
}

// withWeight returns a copy of w with Weight replaced. Used by updateFamily
// to rebuild a parent's entry after propagating a delta; it
// never mutates an existing WeightedId in place because the old value is
// still needed to locate and remove the stale entry in the ordered slice.
func (w WeightedId) withWeight(weight int64) WeightedId {
	w.Weight = weight
	return w
}
