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

package apply

import (
	"encoding/binary"
	"fmt"

	"github.com/near/borsh-go"

	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/ledger/ledgercore"
)

// SystemProgramID owns every account that no other program has claimed.
var SystemProgramID = basics.Address{}

// SystemInstruction is the little-endian u32 tag leading system program
// instruction data.
type SystemInstruction uint32

// System program instructions. The gaps keep the tags of the wider system
// interface stable.
const (
	SystemCreateAccount SystemInstruction = 0
	SystemAssign        SystemInstruction = 1
	SystemTransfer      SystemInstruction = 2
	SystemAllocate      SystemInstruction = 8
)

// CreateAccountArgs funds, sizes and assigns a fresh account in one step.
type CreateAccountArgs struct {
	Amount uint64
	Space  uint64
	Owner  basics.Address
}

// TransferArgs moves Amount from the first account to the second.
type TransferArgs struct {
	Amount uint64
}

// AssignArgs hands the account to Owner.
type AssignArgs struct {
	Owner basics.Address
}

// AllocateArgs sizes the data region of an empty account.
type AllocateArgs struct {
	Space uint64
}

// SystemProgram implements the built-in program that creates accounts and
// moves balances between them.
type SystemProgram struct{}

// ProgramID implements Processor
func (SystemProgram) ProgramID() basics.Address { return SystemProgramID }

// Process implements Processor
func (SystemProgram) Process(ic *InvokeContext, data []byte) error {
	if len(data) < 4 {
		return ledgercore.ErrInvalidInstructionData
	}
	tag := SystemInstruction(binary.LittleEndian.Uint32(data))
	args := data[4:]

	switch tag {
	case SystemCreateAccount:
		var a CreateAccountArgs
		if err := decodeArgs(args, &a); err != nil {
			return err
		}
		return createAccount(ic, a)
	case SystemAssign:
		var a AssignArgs
		if err := decodeArgs(args, &a); err != nil {
			return err
		}
		acct, err := signedWritable(ic, 0)
		if err != nil {
			return err
		}
		return assign(acct, a.Owner)
	case SystemTransfer:
		var a TransferArgs
		if err := decodeArgs(args, &a); err != nil {
			return err
		}
		return transfer(ic, a.Amount)
	case SystemAllocate:
		var a AllocateArgs
		if err := decodeArgs(args, &a); err != nil {
			return err
		}
		acct, err := signedWritable(ic, 0)
		if err != nil {
			return err
		}
		return allocate(ic, acct, a.Space)
	default:
		return fmt.Errorf("%w: unknown system instruction %d", ledgercore.ErrInvalidInstructionData, tag)
	}
}

func decodeArgs(data []byte, v interface{}) error {
	if err := borsh.Deserialize(v, data); err != nil {
		return fmt.Errorf("%w: %v", ledgercore.ErrInvalidInstructionData, err)
	}
	return nil
}

func signedWritable(ic *InvokeContext, i int) (*AccountHandle, error) {
	acct, err := ic.Account(i)
	if err != nil {
		return nil, err
	}
	if !acct.Signer {
		return nil, fmt.Errorf("%w: %v", ledgercore.ErrMissingRequiredSignature, acct.Address)
	}
	if !acct.Writable {
		return nil, fmt.Errorf("%w: %v", ledgercore.ErrAccountNotWritable, acct.Address)
	}
	return acct, nil
}

func createAccount(ic *InvokeContext, a CreateAccountArgs) error {
	from, err := signedWritable(ic, 0)
	if err != nil {
		return err
	}
	to, err := signedWritable(ic, 1)
	if err != nil {
		return err
	}
	if to.IsAllocated() {
		ic.Log.Debugf("create account %v: already in use", to.Address)
		return fmt.Errorf("%w: %v", ledgercore.ErrAccountAlreadyInUse, to.Address)
	}
	if err := allocate(ic, to, a.Space); err != nil {
		return err
	}
	if err := assign(to, a.Owner); err != nil {
		return err
	}
	return move(from, to, a.Amount)
}

func assign(acct *AccountHandle, owner basics.Address) error {
	if acct.Owner() == owner {
		return nil
	}
	if acct.Owner() != SystemProgramID {
		return fmt.Errorf("%w: %v", ledgercore.ErrModifiedOwner, acct.Address)
	}
	acct.SetOwner(owner)
	return nil
}

func allocate(ic *InvokeContext, acct *AccountHandle, space uint64) error {
	if len(acct.Data()) != 0 || acct.Owner() != SystemProgramID {
		return fmt.Errorf("%w: %v", ledgercore.ErrAccountAlreadyInUse, acct.Address)
	}
	if space > ic.Proto.MaxAccountDataSize {
		return fmt.Errorf("%w: %d > %d", ledgercore.ErrInvalidAccountDataSize, space, ic.Proto.MaxAccountDataSize)
	}
	if space > 0 {
		acct.SetData(make([]byte, space))
	}
	return nil
}

func transfer(ic *InvokeContext, amount uint64) error {
	from, err := signedWritable(ic, 0)
	if err != nil {
		return err
	}
	to, err := ic.Account(1)
	if err != nil {
		return err
	}
	if !to.Writable {
		return fmt.Errorf("%w: %v", ledgercore.ErrAccountNotWritable, to.Address)
	}
	if len(from.Data()) != 0 {
		return fmt.Errorf("%w: transfer from an account carrying data", ledgercore.ErrInvalidInstructionData)
	}
	return move(from, to, amount)
}

func move(from, to *AccountHandle, amount uint64) error {
	if from.Balance().Raw < amount {
		return fmt.Errorf("%w: %v has %d, needs %d", ledgercore.ErrInsufficientFunds, from.Address, from.Balance().Raw, amount)
	}
	if from.acct == to.acct {
		return nil
	}
	credited, overflowed := basics.OAdd(to.Balance().Raw, amount)
	if overflowed {
		return fmt.Errorf("%w: balance overflow", ledgercore.ErrInvalidInstructionData)
	}
	from.SetBalance(basics.Amount{Raw: from.Balance().Raw - amount})
	to.SetBalance(basics.Amount{Raw: credited})
	return nil
}

func encodeSystem(tag SystemInstruction, args interface{}) ([]byte, error) {
	body, err := borsh.Serialize(args)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 4, 4+len(body))
	binary.LittleEndian.PutUint32(data, uint32(tag))
	return append(data, body...), nil
}

// CreateAccountInstruction builds the system instruction that funds newAccount
// from payer, allocates space bytes and assigns it to owner.
func CreateAccountInstruction(payer, newAccount basics.Address, amount basics.Amount, space uint64, owner basics.Address) (transactions.Instruction, error) {
	data, err := encodeSystem(SystemCreateAccount, CreateAccountArgs{Amount: amount.Raw, Space: space, Owner: owner})
	if err != nil {
		return transactions.Instruction{}, err
	}
	return transactions.Instruction{
		ProgramID: SystemProgramID,
		Accounts:  []transactions.AccountRef{transactions.WritableSigner(payer), transactions.WritableSigner(newAccount)},
		Data:      data,
	}, nil
}

// TransferInstruction builds the system instruction that moves amount from one account to another.
func TransferInstruction(from, to basics.Address, amount basics.Amount) (transactions.Instruction, error) {
	data, err := encodeSystem(SystemTransfer, TransferArgs{Amount: amount.Raw})
	if err != nil {
		return transactions.Instruction{}, err
	}
	return transactions.Instruction{
		ProgramID: SystemProgramID,
		Accounts:  []transactions.AccountRef{transactions.WritableSigner(from), transactions.Writable(to)},
		Data:      data,
	}, nil
}

// AssignInstruction builds the system instruction that hands acct to owner.
func AssignInstruction(acct, owner basics.Address) (transactions.Instruction, error) {
	data, err := encodeSystem(SystemAssign, AssignArgs{Owner: owner})
	if err != nil {
		return transactions.Instruction{}, err
	}
	return transactions.Instruction{
		ProgramID: SystemProgramID,
		Accounts:  []transactions.AccountRef{transactions.WritableSigner(acct)},
		Data:      data,
	}, nil
}

// AllocateInstruction builds the system instruction that sizes the data of acct.
func AllocateInstruction(acct basics.Address, space uint64) (transactions.Instruction, error) {
	data, err := encodeSystem(SystemAllocate, AllocateArgs{Space: space})
	if err != nil {
		return transactions.Instruction{}, err
	}
	return transactions.Instruction{
		ProgramID: SystemProgramID,
		Accounts:  []transactions.AccountRef{transactions.WritableSigner(acct)},
		Data:      data,
	}, nil
}
