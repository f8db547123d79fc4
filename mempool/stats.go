// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import "sync"

// statsHistogramDepth is the number of wait-minute bins Stats tracks: mirrors the shape of estimateFeeDepth in btcd's own fee estimator,
// with minutes waited before removal standing in for blocks-to-confirm.
const statsHistogramDepth = 60

// Bin aggregates every removal observation that waited the same number of
// minutes in the pool.
type Bin struct {
	Count    uint64
	TotalFee uint64
}

// Stats is a rolling histogram of how long transactions waited in the pool
// before leaving it, keyed by wait-minutes and bucketing the fee they paid.
// It plays the same role FeeEstimator plays for btcd's mempool, turning
// removal observations into a recommended fee, but keyed on observed wait
// time rather than confirmation depth, since this package has no block
// height to register against.
type Stats struct {
	mu sync.RWMutex

	startMeasurement int64
	takenTxns        uint64
	histogram        [statsHistogramDepth]Bin
}

// NewStats creates a Stats whose startMeasurement is fixed to now and never
// updated afterward.
func NewStats() *Stats {
	return &Stats{startMeasurement: nowFunc()}
}

// Add records a removal observation for wtx, as of now.
func (s *Stats) Add(now int64, wtx WeightedId) {
	s.mu.Lock()
	defer s.mu.Unlock()

	waitMinutes := (now - wtx.CreatedAt) / 60_000
	if waitMinutes < 0 {
		waitMinutes = 0
	}
	if waitMinutes > statsHistogramDepth-1 {
		waitMinutes = statsHistogramDepth - 1
	}

	b := &s.histogram[waitMinutes]
	b.Count++
	b.TotalFee += uint64(wtx.FeePerKb)
	s.takenTxns++
}

// Bin returns the aggregated bin for wait-minute m, or an empty Bin if m is
// out of range.
func (s *Stats) Bin(m int) Bin {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m < 0 || m >= statsHistogramDepth {
		return Bin{}
	}
	return s.histogram[m]
}

// TakenTxns returns the total number of removal observations recorded.
func (s *Stats) TakenTxns() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.takenTxns
}

// StartMeasurement returns the timestamp Stats was constructed at.
func (s *Stats) StartMeasurement() int64 {
	return s.startMeasurement
}

// RecommendedFee finds the smallest m <= maxWaitMin whose bin is non-empty
// and scales its average feePerKb to size; falls back to minFee if no bin
// in range has any observations.
func (s *Stats) RecommendedFee(maxWaitMin int, size uint32, minFee Amount) Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if maxWaitMin >= statsHistogramDepth {
		maxWaitMin = statsHistogramDepth - 1
	}

	for m := 0; m <= maxWaitMin; m++ {
		b := s.histogram[m]
		if b.Count == 0 {
			continue
		}
		avgFeePerKb := b.TotalFee / b.Count
		return Amount(avgFeePerKb * uint64(size) / 1024)
	}

	return minFee
}
