// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// OrderedPoolConfig configures an OrderedPool.
type OrderedPoolConfig struct {
	// Capacity is the maximum number of transactions the pool holds
	// before it starts evicting its lowest-weight tail.
	Capacity int

	// FeePropositionBytes identifies the well-known fee output script;
	// feePerKb (and therefore Weight) is computed from output value paid
	// to this proposition.
	FeePropositionBytes []byte
}

// OrderedPool is the core data structure of this package: a weight-ordered
// pool of unconfirmed transactions backed by five coordinated indices:
//
//   - order:   the weight-ordered sequence itself (highest weight first).
//   - registry: TxId -> WeightedId, the id-to-weight lookup.
//   - txStore: TxId -> *UnconfirmedTransaction, the stored content.
//   - inputs:  spent BoxId -> spending TxId.
//   - outputs: produced BoxId -> creating TxId.
//
// The source material presents the pool as persistent/immutable, each
// method returning a new generation. This implementation instead
// mutates one OrderedPool in place behind a single mutex: callers only ever
// observe a fully-committed state because every exported method applies its
// changes to all five indices before releasing the lock. This matches a
// single-writer, many-reader model, the same way btcd's TxMempoolV2 guards
// one struct with one sync.RWMutex rather than swapping in a new graph
// value per mutation.
type OrderedPool struct {
	mu sync.RWMutex

	cfg OrderedPoolConfig

	order   []WeightedId
	registry map[TxId]WeightedId
	txStore  map[TxId]*UnconfirmedTransaction
	inputs   map[BoxId]TxId
	outputs  map[BoxId]TxId

	invalidated *ApproxCache
}

// NewOrderedPool creates an empty OrderedPool. invalidated is shared with
// (and outlives) the pool's own generations.
func NewOrderedPool(cfg OrderedPoolConfig, invalidated *ApproxCache) *OrderedPool {
	return &OrderedPool{
		cfg:         cfg,
		order:       make([]WeightedId, 0),
		registry:    make(map[TxId]WeightedId),
		txStore:     make(map[TxId]*UnconfirmedTransaction),
		inputs:      make(map[BoxId]TxId),
		outputs:     make(map[BoxId]TxId),
		invalidated: invalidated,
	}
}

// Size returns the number of transactions currently stored.
func (p *OrderedPool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// Contains reports whether id is currently stored.
func (p *OrderedPool) Contains(id TxId) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.registry[id]
	return ok
}

// Get returns the stored transaction for id, if any.
func (p *OrderedPool) Get(id TxId) (*UnconfirmedTransaction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	utx, ok := p.txStore[id]
	return utx, ok
}

// CanAccept reports whether utx may be admitted: its
// id must be neither invalidated nor already present, and either the pool
// has room or utx's own weight strictly beats the current tail.
//
// The relevant "post-family weight" for a brand-new candidate is simply
// its own feePerKb-derived weight: updateFamily only ever adjusts
// *ancestors* of an arriving transaction, never the arriving transaction
// itself. So the capacity comparison is computed analytically here rather
// than running updateFamily against a hypothetical pool, which keeps this
// method a pure read.
func (p *OrderedPool) CanAccept(utx *UnconfirmedTransaction) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.canAcceptLocked(utx)
}

func (p *OrderedPool) canAcceptLocked(utx *UnconfirmedTransaction) bool {
	tx := utx.Tx

	if p.invalidated.MightContain(tx.Id) {
		return false
	}
	if _, exists := p.registry[tx.Id]; exists {
		return false
	}
	if len(p.order) < p.cfg.Capacity {
		return true
	}

	wtx := newWeightedId(tx, p.cfg.FeePropositionBytes)
	tail := p.order[len(p.order)-1]
	return wtx.Weight > tail.Weight
}

// Put installs utx: it is woven into all five indices, its
// ancestors' weights are propagated upward by updateFamily, and if the pool
// now exceeds capacity the lowest-weight entry is evicted. Insert-then-evict
// is mandatory: the arriving transaction may raise an ancestor's
// weight above the tail, and evaluating the eviction victim before
// propagation could otherwise evict a now-valuable ancestor.
//
// Put does not check CanAccept; callers that need the admission policy call
// CanAccept first (this mirrors MemPool.process's explicit acceptance gate
// and lets PutWithoutCheck reuse the same machinery).
func (p *OrderedPool) Put(utx *UnconfirmedTransaction) (evicted *WeightedId) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.putLocked(utx)
}

func (p *OrderedPool) putLocked(utx *UnconfirmedTransaction) *WeightedId {
	tx := utx.Tx
	wtx := newWeightedId(tx, p.cfg.FeePropositionBytes)

	p.txStore[tx.Id] = utx
	p.registry[tx.Id] = wtx
	p.order = insertSorted(p.order, wtx)

	for _, inp := range tx.Inputs {
		p.inputs[inp.BoxId] = tx.Id
	}
	for _, out := range tx.Outputs {
		p.outputs[out.BoxId] = tx.Id
	}

	p.propagateLocked(tx, wtx.Weight)

	if len(p.order) <= p.cfg.Capacity {
		return nil
	}

	victim := p.order[len(p.order)-1]
	p.removeLocked(victim.Id)
	return &victim
}

// Remove drops utx from the pool if present, propagating the weight
// decrease to its ancestors. It is a no-op if the
// transaction isn't stored.
func (p *OrderedPool) Remove(utx *UnconfirmedTransaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(utx.Tx.Id)
}

// RemoveById behaves like Remove but is keyed by id alone (used by
// double-spend arbitration, which only has conflicting ids on hand) and
// reports the WeightedId that was removed, if any, so the caller can feed
// it to Stats.Add.
func (p *OrderedPool) RemoveById(id TxId) (WeightedId, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	wtx, ok := p.registry[id]
	if !ok {
		return WeightedId{}, false
	}
	p.removeLocked(id)
	return wtx, true
}

// Invalidate behaves like Remove, but additionally records the id as
// invalidated, even if the transaction wasn't stored.
func (p *OrderedPool) Invalidate(utx *UnconfirmedTransaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(utx.Tx.Id)
	p.invalidated.Put(utx.Tx.Id)
}

func (p *OrderedPool) removeLocked(id TxId) bool {
	wtx, ok := p.registry[id]
	if !ok {
		return false
	}

	utx := p.txStore[id]
	tx := utx.Tx

	p.order = removeSorted(p.order, wtx)
	delete(p.registry, id)
	delete(p.txStore, id)

	for _, inp := range tx.Inputs {
		if owner, ok := p.inputs[inp.BoxId]; ok && owner == id {
			delete(p.inputs, inp.BoxId)
		}
	}
	for _, out := range tx.Outputs {
		if owner, ok := p.outputs[out.BoxId]; ok && owner == id {
			delete(p.outputs, out.BoxId)
		}
	}

	p.propagateLocked(tx, -wtx.Weight)
	return true
}

// propagateLocked is updateFamily: it walks every input of tx,
// and for each one whose referenced box was produced by a transaction still
// in the pool, adds delta to that parent's weight and continues the walk
// from the parent. The walk is expressed as an explicit work-list rather
// than recursion and memoizes visited ancestors so a diamond-shaped ancestry
// (two inputs, or two descendants, sharing a common ancestor) only applies
// delta once per ancestor.
//
// If an input references a box recorded in outputs but whose owning
// transaction is missing from registry/txStore, that is an invariant
// breach: ancestor weights are left unchanged and the break is only
// logged. Because the plan is computed before anything is mutated, that
// is exactly what happens -- the whole propagation is skipped, the
// already-applied insert/remove of tx itself stands.
func (p *OrderedPool) propagateLocked(tx *Transaction, delta int64) {
	plan, ok := p.planFamilyUpdate(tx, delta)
	if !ok {
		log.Errorf("MPOL: updateFamily found a dangling box owner for "+
			"tx %s; ancestor weights left unchanged", tx.Id)
		return
	}

	for id, newWeight := range plan {
		old := p.registry[id]
		updated := old.withWeight(newWeight)
		p.order = removeSorted(p.order, old)
		p.order = insertSorted(p.order, updated)
		p.registry[id] = updated
	}
}

// planFamilyUpdate computes, without mutating anything, the new weight for
// every pooled ancestor of tx. It is also what CanAccept would run against
// a hypothetical pool if the analytic shortcut in canAcceptLocked weren't
// available, and what a caller wanting a dry run of updateFamily should
// use.
func (p *OrderedPool) planFamilyUpdate(tx *Transaction, delta int64) (map[TxId]int64, bool) {
	plan := make(map[TxId]int64)
	visited := make(map[TxId]bool)
	queue := make([]TxId, 0)

	enqueueParentsOf := func(t *Transaction) {
		for _, inp := range t.Inputs {
			owner, ok := p.outputs[inp.BoxId]
			if !ok {
				// Box is sourced from the confirmed UTXO set, or from
				// some other transaction not currently pooled -- no
				// ancestor to propagate to.
				continue
			}
			if visited[owner] {
				continue
			}
			visited[owner] = true
			queue = append(queue, owner)
		}
	}

	enqueueParentsOf(tx)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		wtx, ok := p.registry[id]
		if !ok {
			return nil, false
		}
		parentUtx, ok := p.txStore[id]
		if !ok {
			return nil, false
		}

		plan[id] = wtx.Weight + delta
		enqueueParentsOf(parentUtx.Tx)
	}

	return plan, true
}

// Take returns the first n entries in weight order (highest weight first),
// or all of them if n exceeds the pool's size.
func (p *OrderedPool) Take(n int) []*UnconfirmedTransaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if n > len(p.order) {
		n = len(p.order)
	}
	out := make([]*UnconfirmedTransaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, p.txStore[p.order[i].Id])
	}
	return out
}

// GetAllPrioritized returns every pooled transaction in weight order.
func (p *OrderedPool) GetAllPrioritized() []*UnconfirmedTransaction {
	return p.Take(p.Size())
}

// GetAllPrioritizedTransactions is GetAllPrioritized unwrapped to the raw
// Transaction, the shape UtxoView.WithUnconfirmedTransactions expects.
func (p *OrderedPool) GetAllPrioritizedTransactions() []*Transaction {
	utxs := p.GetAllPrioritized()
	out := make([]*Transaction, len(utxs))
	for i, utx := range utxs {
		out[i] = utx.Tx
	}
	return out
}

// Random returns a contiguous, uniformly-positioned slice of up to n pooled
// transactions. Because the slice is contiguous within the weight-ordered
// sequence rather than an independent uniform sample over all entries, this
// is biased toward the high-weight region whenever the chosen start lands
// early. That bias is accepted as a cheap random sample from the priority
// region rather than corrected.
func (p *OrderedPool) Random(n int) []*UnconfirmedTransaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	total := len(p.order)
	if n > total {
		n = total
	}
	if n == 0 {
		return nil
	}

	maxStart := total - n
	if maxStart < 0 {
		maxStart = 0
	}
	start := 0
	if maxStart > 0 {
		start = randIntn(maxStart + 1)
	}

	out := make([]*UnconfirmedTransaction, 0, n)
	for i := start; i < start+n; i++ {
		out = append(out, p.txStore[p.order[i].Id])
	}
	return out
}

// SpentInputs returns every box id currently spent by a pooled transaction.
func (p *OrderedPool) SpentInputs() []BoxId {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]BoxId, 0, len(p.inputs))
	for boxId := range p.inputs {
		out = append(out, boxId)
	}
	return out
}

// ConflictsFor returns the ids of pooled transactions that already spend
// one of tx's inputs -- the set §4.5's double-spend arbitration calls
// "conflicts".
func (p *OrderedPool) ConflictsFor(tx *Transaction) []TxId {
	p.mu.RLock()
	defer p.mu.RUnlock()

	seen := make(map[TxId]bool)
	var out []TxId
	for _, inp := range tx.Inputs {
		if owner, ok := p.inputs[inp.BoxId]; ok && owner != tx.Id {
			if !seen[owner] {
				seen[owner] = true
				out = append(out, owner)
			}
		}
	}
	return out
}

// WeightedOf returns the current WeightedId for id, if stored.
func (p *OrderedPool) WeightedOf(id TxId) (WeightedId, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	w, ok := p.registry[id]
	return w, ok
}

// CountStrictlyBefore returns how many pooled entries sort strictly before
// candidate -- i.e. have strictly higher priority. Used by
// MemPool.GetExpectedWaitTime.
func (p *OrderedPool) CountStrictlyBefore(candidate WeightedId) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return sort.Search(len(p.order), func(i int) bool {
		return !p.order[i].Less(candidate)
	})
}

// CheckInvariants verifies the five structural invariants that must hold
// after every public operation. It is intended for tests (in particular
// property-based tests driving arbitrary put/remove/invalidate sequences),
// not for production use on a hot path.
func (p *OrderedPool) CheckInvariants() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.order) != len(p.registry) || len(p.order) != len(p.txStore) {
		return fmt.Errorf("index size mismatch: order=%d registry=%d txStore=%d",
			len(p.order), len(p.registry), len(p.txStore))
	}

	if len(p.order) > p.cfg.Capacity {
		return fmt.Errorf("pool exceeds capacity: %d > %d", len(p.order), p.cfg.Capacity)
	}

	for i, w := range p.order {
		reg, ok := p.registry[w.Id]
		if !ok || reg != w {
			return fmt.Errorf("order[%d]=%v not reflected in registry", i, w)
		}
		if i > 0 && !p.order[i-1].Less(w) {
			return fmt.Errorf("order not sorted at index %d", i)
		}
	}

	for id, utx := range p.txStore {
		wtx, ok := p.registry[id]
		if !ok {
			return fmt.Errorf("txStore entry %s missing from registry", id)
		}
		for _, inp := range utx.Tx.Inputs {
			owner, ok := p.inputs[inp.BoxId]
			if !ok || owner != id {
				return fmt.Errorf("input box %s of tx %s not reflected in inputs index", inp.BoxId, id)
			}
		}
		for _, out := range utx.Tx.Outputs {
			owner, ok := p.outputs[out.BoxId]
			if !ok || owner != id {
				return fmt.Errorf("output box %s of tx %s not reflected in outputs index", out.BoxId, id)
			}
		}

		for _, inp := range utx.Tx.Inputs {
			parentId, ok := p.outputs[inp.BoxId]
			if !ok {
				continue
			}
			parentWtx, ok := p.registry[parentId]
			if !ok {
				continue
			}
			if parentWtx.Weight < wtx.Weight {
				return fmt.Errorf("family monotonicity broken: parent %s weight %d < child %s weight %d",
					parentId, parentWtx.Weight, id, wtx.Weight)
			}
		}
	}

	return nil
}

// insertSorted inserts w into order, which must already be sorted by
// WeightedId.Less, and returns the (possibly reallocated) slice.
func insertSorted(order []WeightedId, w WeightedId) []WeightedId {
	idx := sort.Search(len(order), func(i int) bool {
		return !order[i].Less(w)
	})
	order = append(order, WeightedId{})
	copy(order[idx+1:], order[idx:])
	order[idx] = w
	return order
}

// removeSorted removes the entry equal to w (matched by Id) from order.
func removeSorted(order []WeightedId, w WeightedId) []WeightedId {
	idx := sort.Search(len(order), func(i int) bool {
		return !order[i].Less(w)
	})
	for i := idx; i < len(order) && order[i].Weight == w.Weight; i++ {
		if order[i].Id == w.Id {
			return append(order[:i], order[i+1:]...)
		}
	}
	// Fall back to a linear scan: a concurrent weight change could have
	// moved w since the caller observed it.
	for i, entry := range order {
		if entry.Id == w.Id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// randIntn is a seam over math/rand's Intn so tests can make Random
// deterministic without reaching into the global rand source.
var randIntn = func(n int) int {
	return rand.Intn(n)
}
