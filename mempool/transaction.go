// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import "time"

// Amount represents a quantity of the chain's native monetary unit. It is a
// thin wrapper so call sites read in units rather than bare integers.
type Amount int64

// TxIn is a single transaction input. It references a box (an output of
// some earlier transaction, or of the confirmed UTXO set) by id.
type TxIn struct {
	BoxId BoxId
}

// TxOut is a single transaction output, producing a fresh box.
type TxOut struct {
	BoxId BoxId

	// Value is the amount locked by this output.
	Value Amount

	// Proposition is the (opaque, unparsed) spending script/condition
	// carried by the output. The pool only ever compares it for equality
	// against FeePropositionBytes -- it never evaluates it.
	Proposition []byte
}

// Transaction is the external, immutable unit of work the pool operates on.
// Its interior is a contract with the validators declared in validator.go;
// this package never mutates or parses script bytes itself.
type Transaction struct {
	Id TxId

	Inputs  []TxIn
	Outputs []TxOut

	// Size is the serialized byte size of the transaction, used for
	// feePerKb. Pool capacity counts transactions, not bytes.
	Size uint32
}

// fee returns the sum of output values paid to feeProposition.
func (tx *Transaction) fee(feeProposition []byte) Amount {
	var total Amount
	for _, out := range tx.Outputs {
		if bytesEqual(out.Proposition, feeProposition) {
			total += out.Value
		}
	}
	return total
}

// feePerKb computes fee*1024/size, guarding against a zero size.
func feePerKb(fee Amount, size uint32) int64 {
	if size == 0 {
		return 0
	}
	return int64(fee) * 1024 / int64(size)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// UnconfirmedTransaction wraps a Transaction with the arrival metadata the
// pool and its collaborators need but that isn't part of the transaction's
// own identity.
type UnconfirmedTransaction struct {
	Tx *Transaction

	// SourcePeer identifies who delivered this transaction. It is kept as
	// an opaque identifier rather than a concrete peer handle; the pool
	// stores it with the transaction and does not read it.
	SourcePeer string

	// EnqueuedAt is when this transaction was first offered to the pool.
	EnqueuedAt time.Time

	// CostEstimate is an optional, caller-supplied estimate of validation
	// cost. It is carried with the transaction; this package does not read
	// it, and validation is bounded only by Settings.MaxTransactionCost.
	CostEstimate int64
}
