// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

// Settings bundles everything MemPool needs besides the state it manages
// itself.
type Settings struct {
	MempoolCapacity         uint32
	MinimalFeeAmount        Amount
	MaxTransactionCost      uint64
	BlacklistedTransactions map[TxId]struct{}
	FeePropositionBytes     []byte
	InvalidCacheCfg         ApproxCacheConfig
}

// Config is the flag-parseable mirror of Settings, following the
// `long`/`description` struct-tag convention. No
// parsing entry point lives in this package -- an embedding node binary
// calls flags.Parse(&cfg) and then Config.ToSettings.
type Config struct {
	MempoolCapacity uint32 `long:"mempoolcapacity" description:"Maximum number of transactions the pool holds before evicting the lowest-weight entry"`

	MinimalFeeAmount uint64 `long:"minfee" description:"Minimum fee, in the chain's native unit, required to be admitted to the pool"`

	MaxTransactionCost uint64 `long:"maxtxcost" description:"Cost budget a single validation call may spend before aborting"`

	FrontCacheSize uint `long:"invalidfrontsize" description:"Capacity of the invalidated-id cache's exact front tier"`

	FrontCacheTtlSeconds uint `long:"invalidfrontttl" description:"Seconds an id is trusted present in the invalidated-id front cache"`

	FilterCapacity uint32 `long:"invalidfiltercapacity" description:"Expected element count the invalidated-id back filter is sized for"`

	FilterFalsePositiveRate float64 `long:"invalidfilterfpr" description:"Target false-positive rate of the invalidated-id back filter"`

	FilterRotationSeconds uint `long:"invalidfilterrotation" description:"Seconds between rotations of the invalidated-id back filter"`
}
