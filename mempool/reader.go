// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

// MemPoolReader is the read-only facade MemPool.GetReader exposes: API layers (an RPC handler, a block
// template assembler) depend on this narrow interface instead of the full
// *MemPool, so they cannot accidentally call a mutating method.
type MemPoolReader interface {
	Size() int
	Contains(id TxId) bool
	Get(id TxId) (*UnconfirmedTransaction, bool)
	Take(n int) []*UnconfirmedTransaction
	GetAllPrioritized() []*UnconfirmedTransaction
	Random(n int) []*UnconfirmedTransaction
	SpentInputs() []BoxId
	WeightedTransactionIds(limit int) []TxId
	GetRecommendedFee(maxWaitMin int, size uint32) Amount
	GetExpectedWaitTime(fee Amount, size uint32) int64
}
