// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import "time"

// feeProp is the well-known fee proposition used across tests.
var feeProp = []byte("fee-proposition")

func mkTxId(n byte) TxId {
	var id TxId
	id[0] = n
	return id
}

func mkBoxId(n byte) BoxId {
	var id BoxId
	id[0] = n
	return id
}

// mkTx builds a Transaction whose only output paying feeProp has value
// feeValue, spending the given input boxes.
func mkTx(id byte, inputs []BoxId, outputBox BoxId, feeValue Amount, size uint32) *Transaction {
	ins := make([]TxIn, len(inputs))
	for i, box := range inputs {
		ins[i] = TxIn{BoxId: box}
	}
	return &Transaction{
		Id:     mkTxId(id),
		Inputs: ins,
		Outputs: []TxOut{
			{BoxId: outputBox, Value: feeValue, Proposition: feeProp},
		},
		Size: size,
	}
}

func mkUtx(tx *Transaction) *UnconfirmedTransaction {
	return &UnconfirmedTransaction{Tx: tx, EnqueuedAt: time.Now()}
}

// freezeClock overrides nowFunc to return a fixed millisecond value and
// returns a function that restores the real clock.
func freezeClock(millis int64) func() {
	prev := nowFunc
	nowFunc = func() int64 { return millis }
	return func() { nowFunc = prev }
}
