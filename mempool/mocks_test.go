// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockUtxoView is a mock implementation of UtxoView.
type mockUtxoView struct {
	mock.Mock
}

var _ UtxoView = (*mockUtxoView)(nil)

func (m *mockUtxoView) BoxById(id BoxId) (*TxOut, bool) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*TxOut), args.Bool(1)
}

func (m *mockUtxoView) WithUnconfirmedTransactions(txs []*Transaction) UtxoView {
	args := m.Called(txs)
	return args.Get(0).(UtxoView)
}

// allBoxesPresentView is a UtxoView stub that reports every box as present;
// most Process tests don't care about the UTXO-presence check itself.
type allBoxesPresentView struct{}

func (allBoxesPresentView) BoxById(BoxId) (*TxOut, bool) { return &TxOut{}, true }
func (v allBoxesPresentView) WithUnconfirmedTransactions([]*Transaction) UtxoView {
	return v
}

// mockUtxoValidator is a mock implementation of UtxoValidator.
type mockUtxoValidator struct {
	mock.Mock
}

var _ UtxoValidator = (*mockUtxoValidator)(nil)

func (m *mockUtxoValidator) ValidateWithCost(ctx context.Context, tx *Transaction, view UtxoView, maxCost uint64) (uint64, error) {
	args := m.Called(ctx, tx, view, maxCost)
	return args.Get(0).(uint64), args.Error(1)
}

// mockGenericValidator is a mock implementation of GenericValidator.
type mockGenericValidator struct {
	mock.Mock
}

var _ GenericValidator = (*mockGenericValidator)(nil)

func (m *mockGenericValidator) ValidateWithCost(ctx context.Context, utx *UnconfirmedTransaction, maxCost uint64) (uint64, error) {
	args := m.Called(ctx, utx, maxCost)
	return args.Get(0).(uint64), args.Error(1)
}
