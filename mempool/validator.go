// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import "context"

// UtxoView exposes just enough of the confirmed-plus-pooled state for
// validation dispatch to check that every input a candidate spends is
// actually available.
// Implementations live outside this package -- the pool only ever calls
// through this capability, never inspects chain state directly.
type UtxoView interface {
	// BoxById looks up a box by id, returning false if neither the
	// confirmed state nor the shadowing pooled outputs produced it.
	BoxById(id BoxId) (*TxOut, bool)

	// WithUnconfirmedTransactions returns a view where the outputs of txs
	// shadow the confirmed set, so a child spending a still-pooled
	// parent's output resolves correctly.
	WithUnconfirmedTransactions(txs []*Transaction) UtxoView
}

// UtxoValidator validates a transaction against a UtxoView, bounded by a
// cost budget.
type UtxoValidator interface {
	ValidateWithCost(ctx context.Context, tx *Transaction, view UtxoView, maxCost uint64) (cost uint64, err error)
}

// GenericValidator validates an UnconfirmedTransaction without any UTXO
// view at all -- the "generic validator" branch of dispatch. The upstream source reports this branch as
// currently unreachable in practice, but the capability set admits it, so
// it is implemented rather than omitted.
type GenericValidator interface {
	ValidateWithCost(ctx context.Context, utx *UnconfirmedTransaction, maxCost uint64) (cost uint64, err error)
}

// ValidationState is the sealed capability MemPool.Process dispatches on.
// Exactly one of the three variants below is passed to any given Process
// call.
type ValidationState interface {
	isValidationState()
}

// UtxoState carries a live UtxoView and validator: Process forms a view
// shadowed by the pool's own pending outputs, rejects the candidate if any
// input box is missing from it (the candidate may be a descendant of a
// still-missing parent), and otherwise runs Validator.ValidateWithCost.
type UtxoState struct {
	View      UtxoView
	Validator UtxoValidator
}

func (UtxoState) isValidationState() {}

// GenericValidatorState skips the UTXO-view step entirely and validates the
// whole UnconfirmedTransaction directly.
type GenericValidatorState struct {
	Validator GenericValidator
}

func (GenericValidatorState) isValidationState() {}

// DigestOnlyState skips validation altogether, trusting the caller --
// typically the local wallet submitting its own transaction.
type DigestOnlyState struct{}

func (DigestOnlyState) isValidationState() {}
