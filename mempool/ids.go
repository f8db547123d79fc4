// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"encoding/hex"
	"fmt"
)

// IdSize is the number of bytes in a TxId or a BoxId.
const IdSize = 32

// TxId uniquely identifies a transaction. It is a simple container for a
// 32-byte hash and implements the fmt.Stringer interface to convert itself
// to a hex-encoded string.
type TxId [IdSize]byte

// String returns the TxId as the canonical lowercase hex string.
func (id TxId) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the id has never been assigned a value.
func (id TxId) IsZero() bool {
	return id == TxId{}
}

// BoxId uniquely identifies a transaction output (a box). Like TxId, it is a
// 32-byte hash.
type BoxId [IdSize]byte

// String returns the BoxId as the canonical lowercase hex string.
func (id BoxId) String() string {
	return hex.EncodeToString(id[:])
}

// Less reports whether id sorts strictly before other under the canonical
// hex encoding (byte-wise lexicographic order). The pool's input/output box
// indices are hash maps and do not use this order.
func (id BoxId) Less(other BoxId) bool {
	return bytesLess(id[:], other[:])
}

// NewTxIdFromString parses a hex-encoded 32-byte transaction id.
func NewTxIdFromString(s string) (TxId, error) {
	var id TxId
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("decode tx id: %w", err)
	}
	if len(b) != IdSize {
		return id, fmt.Errorf("tx id must be %d bytes, got %d", IdSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// bytesLess performs the byte-wise lexicographic comparison used to order
// box and transaction ids canonically.
func bytesLess(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
