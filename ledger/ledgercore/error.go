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

package ledgercore

import (
	"errors"
	"fmt"

	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
)

// Errors raised by the host while executing instructions. Programs return
// them unwrapped or wrapped with %w; callers match with errors.Is.
var (
	ErrAccountAlreadyInUse         = errors.New("account already in use")
	ErrInsufficientFunds           = errors.New("insufficient funds")
	ErrInsufficientFundsForRent    = errors.New("account balance below rent-exempt minimum")
	ErrMissingRequiredSignature    = errors.New("missing required signature for instruction")
	ErrAccountNotWritable          = errors.New("instruction modified an account it did not claim as writable")
	ErrExternalAccountDataModified = errors.New("instruction modified data of an account it does not own")
	ErrExternalAccountBalanceSpend = errors.New("instruction spent from the balance of an account it does not own")
	ErrModifiedOwner               = errors.New("instruction illegally modified the owner of an account")
	ErrUnbalancedInstruction       = errors.New("sum of account balances before and after instruction do not match")
	ErrAccountDataSizeChanged      = errors.New("instruction changed the size of account data")
	ErrInvalidAccountDataSize      = errors.New("requested account data size is too large")
	ErrProgramNotFound             = errors.New("attempt to load a program that does not exist")
	ErrPrivilegeEscalation         = errors.New("cross-program invocation with unauthorized signer or writable account")
	ErrInvokeDepth                 = errors.New("cross-program invocation call depth too deep")
	ErrNotEnoughAccountKeys        = errors.New("insufficient account keys for instruction")
	ErrMissingAccount              = errors.New("an account required by the instruction is missing")
	ErrInvalidInstructionData      = errors.New("invalid instruction data")
)

// TransactionInLedgerError is returned when a transaction cannot be added because it has already been done
type TransactionInLedgerError struct {
	Txid transactions.Txid
}

// Error satisfies builtin interface `error`
func (tile TransactionInLedgerError) Error() string {
	return fmt.Sprintf("transaction already in ledger: %v", tile.Txid)
}

// TxnNotAliveError is returned when a transaction's validity window does not
// cover the round it would be committed in.
type TxnNotAliveError struct {
	Txid  transactions.Txid
	Round basics.Round
	Err   error
}

// Error satisfies builtin interface `error`
func (err TxnNotAliveError) Error() string {
	return fmt.Sprintf("transaction %v not alive at round %d: %v", err.Txid, err.Round, err.Err)
}

func (err TxnNotAliveError) Unwrap() error {
	return err.Err
}

// InstructionError records which top-level instruction of a transaction failed.
type InstructionError struct {
	Index int
	Err   error
}

// Error satisfies builtin interface `error`
func (err InstructionError) Error() string {
	return fmt.Sprintf("instruction %d: %v", err.Index, err.Err)
}

func (err InstructionError) Unwrap() error {
	return err.Err
}
