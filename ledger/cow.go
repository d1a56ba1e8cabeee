// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-gifportal
//
// go-gifportal is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-gifportal is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-gifportal.  If not, see <https://www.gnu.org/licenses/>.

package ledger

import (
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/ledger/ledgercore"
)

//   ___________________
// < cow = Copy On Write >
//   -------------------
//          \   ^__^
//           \  (oo)\_______
//              (__)\       )\/\
//                  ||----w |
//                  ||     ||

type roundCowParent interface {
	lookup(addr basics.Address) (basics.AccountData, error)
	txnSeen(txid transactions.Txid) (bool, error)
}

type roundCowState struct {
	lookupParent roundCowParent
	commitParent *roundCowState

	mods  map[basics.Address]basics.AccountData
	txids map[transactions.Txid]basics.Round
}

func makeRoundCowState(b roundCowParent) *roundCowState {
	return &roundCowState{
		lookupParent: b,
		mods:         make(map[basics.Address]basics.AccountData),
		txids:        make(map[transactions.Txid]basics.Round),
	}
}

func (cb *roundCowState) lookup(addr basics.Address) (data basics.AccountData, err error) {
	d, ok := cb.mods[addr]
	if ok {
		return d, nil
	}
	return cb.lookupParent.lookup(addr)
}

func (cb *roundCowState) txnSeen(txid transactions.Txid) (bool, error) {
	if _, ok := cb.txids[txid]; ok {
		return true, nil
	}
	return cb.lookupParent.txnSeen(txid)
}

func (cb *roundCowState) checkDup(txid transactions.Txid) error {
	seen, err := cb.txnSeen(txid)
	if err != nil {
		return err
	}
	if seen {
		return &ledgercore.TransactionInLedgerError{Txid: txid}
	}
	return nil
}

func (cb *roundCowState) put(addr basics.Address, new basics.AccountData) {
	cb.mods[addr] = new
}

func (cb *roundCowState) addTx(txn transactions.Transaction, txid transactions.Txid) {
	cb.txids[txid] = txn.LastValid
}

// Get implements apply.Balances
func (cb *roundCowState) Get(addr basics.Address) (basics.AccountData, error) {
	ad, err := cb.lookup(addr)
	if err != nil {
		return basics.AccountData{}, err
	}
	return ad.Clone(), nil
}

// Put implements apply.Balances
func (cb *roundCowState) Put(addr basics.Address, ad basics.AccountData) error {
	cb.put(addr, ad)
	return nil
}

func (cb *roundCowState) child() *roundCowState {
	return &roundCowState{
		lookupParent: cb,
		commitParent: cb,
		mods:         make(map[basics.Address]basics.AccountData),
		txids:        make(map[transactions.Txid]basics.Round),
	}
}

func (cb *roundCowState) commitToParent() {
	for addr, delta := range cb.mods {
		cb.commitParent.mods[addr] = delta
	}
	for txid, lv := range cb.txids {
		cb.commitParent.txids[txid] = lv
	}
}
