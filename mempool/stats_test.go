// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatsAddAggregatesByWaitMinute(t *testing.T) {
	s := &Stats{startMeasurement: 0}

	wtx := WeightedId{Id: mkTxId(1), FeePerKb: 1000, CreatedAt: 0}
	s.Add(5*60_000, wtx) // waited 5 minutes.

	b := s.Bin(5)
	require.Equal(t, uint64(1), b.Count)
	require.Equal(t, uint64(1000), b.TotalFee)
	require.Equal(t, uint64(1), s.TakenTxns())

	s.Add(5*60_000+30_000, WeightedId{Id: mkTxId(2), FeePerKb: 2000, CreatedAt: 0})
	b = s.Bin(5)
	require.Equal(t, uint64(2), b.Count)
	require.Equal(t, uint64(3000), b.TotalFee)
}

func TestStatsAddClampsWaitMinutesAt59(t *testing.T) {
	s := &Stats{}
	wtx := WeightedId{Id: mkTxId(1), FeePerKb: 500, CreatedAt: 0}
	s.Add(1000*60_000, wtx) // absurdly long wait.

	require.Equal(t, uint64(1), s.Bin(59).Count)
	for m := 0; m < 59; m++ {
		require.Equal(t, uint64(0), s.Bin(m).Count)
	}
}

func TestStatsBinOutOfRangeReturnsEmpty(t *testing.T) {
	s := &Stats{}
	require.Equal(t, Bin{}, s.Bin(-1))
	require.Equal(t, Bin{}, s.Bin(60))
}

func TestStatsRecommendedFeeFallsBackToMinFeeWhenEmpty(t *testing.T) {
	s := &Stats{}
	fee := s.RecommendedFee(10, 200, Amount(12345))
	require.Equal(t, Amount(12345), fee)
}

func TestStatsRecommendedFeeUsesSmallestNonEmptyBin(t *testing.T) {
	s := &Stats{}
	s.Add(10*60_000, WeightedId{FeePerKb: 4096, CreatedAt: 0})
	s.Add(2*60_000, WeightedId{FeePerKb: 1024, CreatedAt: 0})

	fee := s.RecommendedFee(20, 200, Amount(1))
	// bin(2) is the smallest non-empty bin within range: totalFee/count * size/1024.
	require.Equal(t, Amount(1024*200/1024), fee)
}

func TestStatsRecommendedFeeIgnoresBinsBeyondMaxWait(t *testing.T) {
	s := &Stats{}
	s.Add(10*60_000, WeightedId{FeePerKb: 4096, CreatedAt: 0})

	fee := s.RecommendedFee(5, 200, Amount(77))
	require.Equal(t, Amount(77), fee)
}
