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

package portal

import (
	"github.com/near/borsh-go"

	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/ledger/apply"
)

// Method discriminators leading portal instruction data.
var (
	InitializeMethod = discriminator("global:initialize")
	AddEntryMethod   = discriminator("global:add_entry")
)

// AddEntryArgs are the borsh-encoded arguments of add_entry.
type AddEntryArgs struct {
	Link string
}

// InitializeInstruction builds the create-portal instruction: portal is the
// fresh slot and payer funds its reservation. Both must sign.
func InitializeInstruction(programID, portal, payer basics.Address) transactions.Instruction {
	return transactions.Instruction{
		ProgramID: programID,
		Accounts: []transactions.AccountRef{
			transactions.WritableSigner(portal),
			transactions.WritableSigner(payer),
			transactions.ReadOnly(apply.SystemProgramID),
		},
		Data: InitializeMethod[:],
	}
}

// AddEntryInstruction builds the append-entry instruction for link, submitted
// by user.
func AddEntryInstruction(programID, portal, user basics.Address, link string) (transactions.Instruction, error) {
	args, err := borsh.Serialize(AddEntryArgs{Link: link})
	if err != nil {
		return transactions.Instruction{}, err
	}
	data := make([]byte, 0, DiscriminatorSize+len(args))
	data = append(data, AddEntryMethod[:]...)
	data = append(data, args...)
	return transactions.Instruction{
		ProgramID: programID,
		Accounts: []transactions.AccountRef{
			transactions.Writable(portal),
			transactions.WritableSigner(user),
		},
		Data: data,
	}, nil
}
