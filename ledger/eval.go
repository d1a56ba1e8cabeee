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
	"errors"
	"fmt"

	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/data/transactions/verify"
	"github.com/algorand/go-gifportal/ledger/apply"
	"github.com/algorand/go-gifportal/ledger/ledgercore"
)

// ErrInvalidFeePayer is returned when the fee payer is not a plain system account.
var ErrInvalidFeePayer = errors.New("fee payer must be a system-owned account without data")

// Submit checks and applies stxn as the next round. Either every effect of
// the transaction is committed, or none is.
func (l *Ledger) Submit(stxn transactions.SignedTxn) (transactions.Txid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txid := stxn.ID()
	rnd := l.latest + 1
	cow, err := l.eval(&stxn, txid, rnd)
	if err == nil {
		err = l.commit(cow, rnd)
	}
	if err != nil {
		l.metrics.rejected()
		l.log.With("txid", txid.String()).Debugf("rejected at round %d: %v", rnd, err)
		return txid, err
	}

	l.latest = rnd
	programs := make([]basics.Address, len(stxn.Txn.Instructions))
	for i, ix := range stxn.Txn.Instructions {
		programs[i] = ix.ProgramID
	}
	l.metrics.committed(programs, rnd)
	l.log.With("txid", txid.String()).Infof("committed round %d", rnd)
	return txid, nil
}

// eval runs every check and instruction of stxn against a fresh cow on top of
// the committed state. The returned cow holds the complete delta.
func (l *Ledger) eval(stxn *transactions.SignedTxn, txid transactions.Txid, rnd basics.Round) (*roundCowState, error) {
	tx := stxn.Txn
	if err := tx.WellFormed(l.proto); err != nil {
		return nil, err
	}
	if err := tx.Alive(rnd); err != nil {
		return nil, ledgercore.TxnNotAliveError{Txid: txid, Round: rnd, Err: err}
	}

	cow := makeRoundCowState(l)
	if err := cow.checkDup(txid); err != nil {
		return nil, err
	}
	if err := verify.SignedTxn(stxn, l.genesisID, l.proto); err != nil {
		return nil, err
	}

	if err := chargeFee(cow, tx); err != nil {
		return nil, err
	}

	for i, ix := range tx.Instructions {
		child := cow.child()
		if err := apply.Instruction(ix, child, l.programs, l.proto, l.log); err != nil {
			return nil, ledgercore.InstructionError{Index: i, Err: err}
		}
		child.commitToParent()
	}

	if err := l.checkRent(cow); err != nil {
		return nil, err
	}
	cow.addTx(tx, txid)
	return cow, nil
}

func chargeFee(cow *roundCowState, tx transactions.Transaction) error {
	payer, err := cow.Get(tx.FeePayer)
	if err != nil {
		return err
	}
	if payer.Owner != apply.SystemProgramID || len(payer.Data) != 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFeePayer, tx.FeePayer)
	}
	if payer.Balance.LessThan(tx.Fee) {
		return fmt.Errorf("fee payer %v: %w: has %d, fee %d", tx.FeePayer, ledgercore.ErrInsufficientFunds, payer.Balance.Raw, tx.Fee.Raw)
	}
	payer.Balance.Raw -= tx.Fee.Raw
	cow.put(tx.FeePayer, payer)
	return nil
}

// checkRent requires every account the transaction touched to stay exempt:
// an account holding data must keep the minimum balance for its size.
func (l *Ledger) checkRent(cow *roundCowState) error {
	for addr, ad := range cow.mods {
		min := l.proto.MinBalanceReq(ad)
		if ad.Balance.LessThan(min) {
			return fmt.Errorf("%w: %v has %d, needs %d", ledgercore.ErrInsufficientFundsForRent, addr, ad.Balance.Raw, min.Raw)
		}
	}
	return nil
}

func (l *Ledger) commit(cow *roundCowState, rnd basics.Round) error {
	batch := l.store.NewBatch()
	for addr, ad := range cow.mods {
		if err := writeAccount(batch, addr, ad); err != nil {
			batch.Cancel()
			return err
		}
	}
	for txid, lv := range cow.txids {
		if err := batch.Set(txidKey(txid), encodeRound(lv)); err != nil {
			batch.Cancel()
			return err
		}
	}
	if err := batch.Set([]byte(roundKey), encodeRound(rnd)); err != nil {
		batch.Cancel()
		return err
	}
	return batch.Commit()
}
