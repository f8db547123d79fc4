// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWeightedIdComputesFeePerKb(t *testing.T) {
	restoreClock := freezeClock(1_000_000)
	defer restoreClock()

	tx := &Transaction{
		Id:   mkTxId(1),
		Size: 500,
		Outputs: []TxOut{
			{BoxId: mkBoxId(1), Value: 2000, Proposition: feeProp},
			{BoxId: mkBoxId(2), Value: 500, Proposition: []byte("change")},
		},
	}

	wtx := newWeightedId(tx, feeProp)
	require.Equal(t, tx.Id, wtx.Id)
	require.Equal(t, int64(2000*1024/500), wtx.FeePerKb)
	require.Equal(t, wtx.FeePerKb, wtx.Weight)
	require.Equal(t, int64(1_000_000), wtx.CreatedAt)
}

func TestWeightedIdEqualByIdOnly(t *testing.T) {
	a := WeightedId{Id: mkTxId(1), Weight: 10}
	b := WeightedId{Id: mkTxId(1), Weight: 99}
	require.True(t, a.Equal(b))

	c := WeightedId{Id: mkTxId(2), Weight: 10}
	require.False(t, a.Equal(c))
}

func TestWeightedIdLessOrdersByWeightThenId(t *testing.T) {
	high := WeightedId{Id: mkTxId(5), Weight: 100}
	low := WeightedId{Id: mkTxId(1), Weight: 50}
	require.True(t, high.Less(low))
	require.False(t, low.Less(high))

	tieA := WeightedId{Id: mkTxId(1), Weight: 100}
	tieB := WeightedId{Id: mkTxId(2), Weight: 100}
	require.True(t, tieA.Less(tieB))
	require.False(t, tieB.Less(tieA))
}

func TestWeightedIdWithWeightCopies(t *testing.T) {
	original := WeightedId{Id: mkTxId(1), Weight: 10, FeePerKb: 10}
	updated := original.withWeight(20)

	require.Equal(t, int64(10), original.Weight)
	require.Equal(t, int64(20), updated.Weight)
	require.Equal(t, original.Id, updated.Id)
	require.Equal(t, original.FeePerKb, updated.FeePerKb)
}
