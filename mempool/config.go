// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import "time"

// ToSettings builds the Settings MemPool consumes from a parsed Config. The
// fee proposition script and the blacklist aren't naturally expressed as
// flag values, so they're supplied separately by whatever reads the rest of
// the node's configuration (a script/address format, a blacklist file) --
// this keeps Config itself limited to the scalar fields go-flags parses
// cleanly.
func (c *Config) ToSettings(feeProposition []byte, blacklist map[TxId]struct{}) Settings {
	if blacklist == nil {
		blacklist = make(map[TxId]struct{})
	}

	return Settings{
		MempoolCapacity:         c.MempoolCapacity,
		MinimalFeeAmount:        Amount(c.MinimalFeeAmount),
		MaxTransactionCost:      c.MaxTransactionCost,
		BlacklistedTransactions: blacklist,
		FeePropositionBytes:     feeProposition,
		InvalidCacheCfg: ApproxCacheConfig{
			FrontSize:        c.FrontCacheSize,
			FrontTtl:         time.Duration(c.FrontCacheTtlSeconds) * time.Second,
			FilterCapacity:   c.FilterCapacity,
			FilterFpr:        c.FilterFalsePositiveRate,
			RotationInterval: time.Duration(c.FilterRotationSeconds) * time.Second,
		},
	}
}
