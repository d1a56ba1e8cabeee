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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/ledger/ledgercore"
	"github.com/algorand/go-gifportal/protocol"
	"github.com/algorand/go-gifportal/test/partitiontest"
)

func TestSystemCreateAccount(t *testing.T) {
	partitiontest.PartitionTest(t)

	payer, fresh, owner := randAddr(), randAddr(), randAddr()
	bal := mapBalances{payer: {Balance: basics.Amount{Raw: 100}}}

	ix, err := CreateAccountInstruction(payer, fresh, basics.Amount{Raw: 40}, 16, owner)
	require.NoError(t, err)
	require.Equal(t, uint32(SystemCreateAccount), binary.LittleEndian.Uint32(ix.Data))
	require.Len(t, ix.Data, 4+8+8+32)

	require.NoError(t, run(t, ix, bal))
	require.Equal(t, basics.AccountData{Balance: basics.Amount{Raw: 40}, Owner: owner, Data: make([]byte, 16)}, bal[fresh])
	require.Equal(t, uint64(60), bal[payer].Balance.Raw)

	require.ErrorIs(t, run(t, ix, bal), ledgercore.ErrAccountAlreadyInUse)

	other := randAddr()
	ix, err = CreateAccountInstruction(payer, other, basics.Amount{Raw: 61}, 0, owner)
	require.NoError(t, err)
	require.ErrorIs(t, run(t, ix, bal), ledgercore.ErrInsufficientFunds)
	require.NotContains(t, bal, other)
}

func TestSystemCreateAccountNeedsSignatures(t *testing.T) {
	partitiontest.PartitionTest(t)

	payer, fresh := randAddr(), randAddr()
	bal := mapBalances{payer: {Balance: basics.Amount{Raw: 100}}}
	ix, err := CreateAccountInstruction(payer, fresh, basics.Amount{Raw: 1}, 0, randAddr())
	require.NoError(t, err)
	ix.Accounts[1].Signer = false
	require.ErrorIs(t, run(t, ix, bal), ledgercore.ErrMissingRequiredSignature)
}

func TestSystemCreateAccountTooLarge(t *testing.T) {
	partitiontest.PartitionTest(t)

	proto := config.Consensus[protocol.ConsensusCurrentVersion]
	payer, fresh := randAddr(), randAddr()
	bal := mapBalances{payer: {Balance: basics.Amount{Raw: 100}}}
	ix, err := CreateAccountInstruction(payer, fresh, basics.Amount{Raw: 1}, proto.MaxAccountDataSize+1, randAddr())
	require.NoError(t, err)
	require.ErrorIs(t, run(t, ix, bal), ledgercore.ErrInvalidAccountDataSize)
}

func TestSystemTransferAssignAllocate(t *testing.T) {
	partitiontest.PartitionTest(t)

	a, b, owner := randAddr(), randAddr(), randAddr()
	bal := mapBalances{a: {Balance: basics.Amount{Raw: 100}}}

	ix, err := TransferInstruction(a, b, basics.Amount{Raw: 30})
	require.NoError(t, err)
	require.NoError(t, run(t, ix, bal))
	require.Equal(t, uint64(70), bal[a].Balance.Raw)
	require.Equal(t, uint64(30), bal[b].Balance.Raw)

	ix, err = AllocateInstruction(b, 5)
	require.NoError(t, err)
	require.NoError(t, run(t, ix, bal))
	require.Len(t, bal[b].Data, 5)

	// allocating twice is refused
	require.ErrorIs(t, run(t, ix, bal), ledgercore.ErrAccountAlreadyInUse)

	ix, err = AssignInstruction(b, owner)
	require.NoError(t, err)
	require.NoError(t, run(t, ix, bal))
	require.Equal(t, owner, bal[b].Owner)

	// the system program no longer owns b
	ix, err = AssignInstruction(b, randAddr())
	require.NoError(t, err)
	require.ErrorIs(t, run(t, ix, bal), ledgercore.ErrModifiedOwner)
}

func TestSystemBadData(t *testing.T) {
	partitiontest.PartitionTest(t)

	a := randAddr()
	bal := mapBalances{a: {Balance: basics.Amount{Raw: 100}}}
	for _, data := range [][]byte{nil, {1, 2}, {2, 0, 0, 0, 1}, {77, 0, 0, 0}} {
		ix := transactions.Instruction{ProgramID: SystemProgramID, Accounts: []transactions.AccountRef{transactions.WritableSigner(a), transactions.Writable(randAddr())}, Data: data}
		require.ErrorIs(t, run(t, ix, bal), ledgercore.ErrInvalidInstructionData)
	}
}
