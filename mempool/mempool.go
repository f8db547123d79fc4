// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import "context"

// MemPool is the orchestrator: it owns one OrderedPool and one
// Stats, and drives the acceptance state machine every arriving transaction
// passes through.
type MemPool struct {
	settings Settings

	pool  *OrderedPool
	stats *Stats
}

// New builds an empty MemPool from settings. The invalidated-id cache and
// the stats histogram are both owned by the returned MemPool and persist
// across every mutation it performs.
func New(settings Settings) *MemPool {
	invalidated := NewApproxCache(settings.InvalidCacheCfg)
	poolCfg := OrderedPoolConfig{
		Capacity:            int(settings.MempoolCapacity),
		FeePropositionBytes: settings.FeePropositionBytes,
	}

	return &MemPool{
		settings: settings,
		pool:     NewOrderedPool(poolCfg, invalidated),
		stats:    NewStats(),
	}
}

// Process runs the full acceptance state machine for utx against state.
// It never returns an error: every possible rejection is one of the four
// ProcessingOutcome variants.
func (mp *MemPool) Process(ctx context.Context, utx *UnconfirmedTransaction, state ValidationState) ProcessingOutcome {
	tx := utx.Tx

	// Step 1: blacklist.
	if _, blacklisted := mp.settings.BlacklistedTransactions[tx.Id]; blacklisted {
		mp.pool.Invalidate(utx)
		return Invalidated{Reason: "blacklisted"}
	}

	// Step 2: fee floor.
	fee := tx.fee(mp.settings.FeePropositionBytes)
	if fee < mp.settings.MinimalFeeAmount {
		return Declined{Reason: "min fee not met"}
	}

	// Step 3: acceptance gate.
	if !mp.pool.CanAccept(utx) {
		return Declined{Reason: "pool full or invalidated"}
	}

	// Step 4: validation dispatch.
	if outcome, ok := mp.dispatchValidation(ctx, utx, state); !ok {
		return outcome
	}

	// Step 5: double-spend arbitration.
	return mp.acceptIfNoDoubleSpend(utx)
}

// dispatchValidation runs step 4 of Process. The bool return is false when
// dispatch itself produced a terminal outcome (Declined or Invalidated);
// true means validation passed and Process should continue to arbitration.
func (mp *MemPool) dispatchValidation(ctx context.Context, utx *UnconfirmedTransaction, state ValidationState) (ProcessingOutcome, bool) {
	tx := utx.Tx

	switch s := state.(type) {
	case UtxoState:
		view := s.View.WithUnconfirmedTransactions(mp.pool.GetAllPrioritizedTransactions())
		for _, inp := range tx.Inputs {
			if _, ok := view.BoxById(inp.BoxId); !ok {
				return Declined{Reason: "not all utxos in place yet"}, false
			}
		}

		_, err := s.Validator.ValidateWithCost(ctx, tx, view, mp.settings.MaxTransactionCost)
		if err != nil {
			mp.pool.Invalidate(utx)
			return Invalidated{Reason: err.Error()}, false
		}

	case GenericValidatorState:
		_, err := s.Validator.ValidateWithCost(ctx, utx, mp.settings.MaxTransactionCost)
		if err != nil {
			mp.pool.Invalidate(utx)
			return Invalidated{Reason: err.Error()}, false
		}

	case DigestOnlyState:
		// Trust the caller; nothing to validate.

	default:
		return Declined{Reason: "unsupported validation state"}, false
	}

	return nil, true
}

// acceptIfNoDoubleSpend is step 5: install utx outright if it
// conflicts with nothing pooled, otherwise arbitrate by mean weight of the
// conflicting set.
func (mp *MemPool) acceptIfNoDoubleSpend(utx *UnconfirmedTransaction) ProcessingOutcome {
	tx := utx.Tx
	conflictIds := mp.pool.ConflictsFor(tx)

	if len(conflictIds) == 0 {
		mp.installAndRecordEviction(utx)
		return Accepted{}
	}

	var totalWeight int64
	for _, id := range conflictIds {
		if w, ok := mp.pool.WeightedOf(id); ok {
			totalWeight += w.Weight
		}
	}
	avg := totalWeight / int64(len(conflictIds))

	candidate := newWeightedId(tx, mp.settings.FeePropositionBytes)
	if candidate.Weight <= avg {
		return DoubleSpendingLoser{WinnerIds: conflictIds}
	}

	for _, id := range conflictIds {
		if wtx, ok := mp.pool.RemoveById(id); ok {
			mp.stats.Add(nowFunc(), wtx)
		}
	}
	mp.installAndRecordEviction(utx)
	return Accepted{}
}

// installAndRecordEviction puts utx into the pool and, if that displaced a
// lowest-weight tail entry, records the eviction in Stats.
func (mp *MemPool) installAndRecordEviction(utx *UnconfirmedTransaction) {
	evicted := mp.pool.Put(utx)
	if evicted != nil {
		mp.stats.Add(nowFunc(), *evicted)
	}
}

// PutWithoutCheck installs utx bypassing CanAccept. Used to re-admit a previously invalidated transaction, or to
// seed the pool from a trusted source.
func (mp *MemPool) PutWithoutCheck(utxs ...*UnconfirmedTransaction) {
	for _, utx := range utxs {
		mp.installAndRecordEviction(utx)
	}
}

// Put installs utx if CanAccept allows it; reports whether it was admitted.
func (mp *MemPool) Put(utx *UnconfirmedTransaction) bool {
	if !mp.pool.CanAccept(utx) {
		return false
	}
	mp.installAndRecordEviction(utx)
	return true
}

// Remove drops utx from the pool, recording the removal in Stats.
func (mp *MemPool) Remove(utx *UnconfirmedTransaction) {
	if wtx, ok := mp.pool.RemoveById(utx.Tx.Id); ok {
		mp.stats.Add(nowFunc(), wtx)
	}
}

// Invalidate removes utx (if present) and records its id as invalidated.
func (mp *MemPool) Invalidate(utx *UnconfirmedTransaction) {
	if wtx, ok := mp.pool.RemoveById(utx.Tx.Id); ok {
		mp.stats.Add(nowFunc(), wtx)
	}
	mp.pool.invalidated.Put(utx.Tx.Id)
}

// Filter removes every pooled transaction for which predicate returns
// false.
func (mp *MemPool) Filter(predicate func(*UnconfirmedTransaction) bool) {
	for _, utx := range mp.pool.GetAllPrioritized() {
		if !predicate(utx) {
			mp.Remove(utx)
		}
	}
}

// FilterExcluding removes every pooled transaction whose id is in exclude.
func (mp *MemPool) FilterExcluding(exclude map[TxId]struct{}) {
	mp.Filter(func(utx *UnconfirmedTransaction) bool {
		_, excluded := exclude[utx.Tx.Id]
		return !excluded
	})
}

// Size returns the number of pooled transactions.
func (mp *MemPool) Size() int { return mp.pool.Size() }

// Contains reports whether id is currently pooled.
func (mp *MemPool) Contains(id TxId) bool { return mp.pool.Contains(id) }

// Get returns the pooled transaction for id, if any.
func (mp *MemPool) Get(id TxId) (*UnconfirmedTransaction, bool) { return mp.pool.Get(id) }

// Take returns the first n pooled transactions by weight, highest first.
func (mp *MemPool) Take(n int) []*UnconfirmedTransaction { return mp.pool.Take(n) }

// GetAllPrioritized returns every pooled transaction in weight order.
func (mp *MemPool) GetAllPrioritized() []*UnconfirmedTransaction {
	return mp.pool.GetAllPrioritized()
}

// Random returns a contiguous, randomly-positioned sample of up to n
// pooled transactions.
func (mp *MemPool) Random(n int) []*UnconfirmedTransaction { return mp.pool.Random(n) }

// SpentInputs returns every box id currently spent by a pooled transaction.
func (mp *MemPool) SpentInputs() []BoxId { return mp.pool.SpentInputs() }

// WeightedTransactionIds returns up to limit ids in weight order, the
// convenience §6 describes for miners assembling a block.
func (mp *MemPool) WeightedTransactionIds(limit int) []TxId {
	utxs := mp.pool.Take(limit)
	out := make([]TxId, len(utxs))
	for i, utx := range utxs {
		out[i] = utx.Tx.Id
	}
	return out
}

// GetRecommendedFee recommends a fee for a
// transaction of the given size that wants to wait no more than
// maxWaitMin minutes, falling back to the configured minimum fee when the
// histogram has no observations in range.
func (mp *MemPool) GetRecommendedFee(maxWaitMin int, size uint32) Amount {
	return mp.stats.RecommendedFee(maxWaitMin, size, mp.settings.MinimalFeeAmount)
}

// GetExpectedWaitTime estimates how long a transaction paying fee for size
// bytes would wait in the pool, derived
// from how many pooled entries currently outrank it and from the observed
// throughput recorded in Stats.
func (mp *MemPool) GetExpectedWaitTime(fee Amount, size uint32) int64 {
	takenTxns := mp.stats.TakenTxns()
	if takenTxns == 0 {
		return 0
	}

	candidate := WeightedId{FeePerKb: feePerKb(fee, size)}
	candidate.Weight = candidate.FeePerKb
	pos := mp.pool.CountStrictlyBefore(candidate)

	elapsed := nowFunc() - mp.stats.StartMeasurement()
	return elapsed * int64(pos) / int64(takenTxns)
}

// GetReader returns a read-only facade over this MemPool.
func (mp *MemPool) GetReader() MemPoolReader {
	return mp
}
