// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxIdStringRoundTrip(t *testing.T) {
	var id TxId
	id[0] = 0xde
	id[1] = 0xad
	id[31] = 0xff

	parsed, err := NewTxIdFromString(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestTxIdIsZero(t *testing.T) {
	var zero TxId
	require.True(t, zero.IsZero())

	nonZero := zero
	nonZero[5] = 1
	require.False(t, nonZero.IsZero())
}

func TestNewTxIdFromStringRejectsBadInput(t *testing.T) {
	_, err := NewTxIdFromString("not-hex")
	require.Error(t, err)

	_, err = NewTxIdFromString("aa")
	require.Error(t, err)
}

func TestBoxIdLess(t *testing.T) {
	var a, b BoxId
	a[0] = 1
	b[0] = 2
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.False(t, a.Less(a))
}
