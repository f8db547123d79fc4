// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

// ProcessingOutcome is the sealed result of a single MemPool.Process call.
// It is the only channel through which Process reports what happened: this
// package never returns an error from Process itself, since the core never
// throws across its boundary.
type ProcessingOutcome interface {
	// isProcessingOutcome seals the interface to the four variants
	// declared in this file.
	isProcessingOutcome()
}

// Accepted reports that the transaction was installed into the pool,
// possibly after evicting conflicting transactions or the current
// lowest-weight tail.
type Accepted struct{}

func (Accepted) isProcessingOutcome() {}

// DoubleSpendingLoser reports that the candidate conflicted with one or
// more pooled transactions and did not have a high enough mean weight
// advantage to replace them. WinnerIds holds the ids of the surviving
// conflicts.
type DoubleSpendingLoser struct {
	WinnerIds []TxId
}

func (DoubleSpendingLoser) isProcessingOutcome() {}

// Declined reports that the candidate was rejected without being recorded
// as invalid: a fee below the floor, a full pool without a weight
// advantage, missing ancestor UTXOs, or a duplicate id.
type Declined struct {
	Reason string
}

func (Declined) isProcessingOutcome() {}

// Invalidated reports that the candidate's id was recorded in the
// invalidated cache: either it was blacklisted, or validation rejected it.
type Invalidated struct {
	Reason string
}

func (Invalidated) isProcessingOutcome() {}
