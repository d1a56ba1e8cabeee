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

package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/protocol"
	"github.com/algorand/go-gifportal/test/partitiontest"
)

const genesisID = "verify-test"

func makeTxn(t *testing.T) (transactions.Transaction, *crypto.SignatureSecrets, *crypto.SignatureSecrets) {
	t.Helper()
	payer, _ := crypto.NewSignatureSecrets()
	user, _ := crypto.NewSignatureSecrets()
	var prog basics.Address
	crypto.RandBytes(prog[:])
	proto := config.Consensus[protocol.ConsensusCurrentVersion]
	tx := transactions.Transaction{
		FeePayer:   basics.Address(payer.SignatureVerifier),
		Fee:        basics.Amount{Raw: proto.MinTxnFee},
		FirstValid: 1,
		LastValid:  100,
		GenesisID:  genesisID,
		Instructions: []transactions.Instruction{{
			ProgramID: prog,
			Accounts:  []transactions.AccountRef{transactions.WritableSigner(basics.Address(user.SignatureVerifier))},
		}},
	}
	return tx, payer, user
}

func TestSignedTxn(t *testing.T) {
	partitiontest.PartitionTest(t)

	proto := config.Consensus[protocol.ConsensusCurrentVersion]
	tx, payer, user := makeTxn(t)

	stx := tx.Sign(payer, user)
	require.NoError(t, SignedTxn(&stx, genesisID, proto))

	require.ErrorIs(t, SignedTxn(&stx, "other", proto), ErrWrongGenesis)

	missing := tx.Sign(payer)
	require.ErrorIs(t, SignedTxn(&missing, genesisID, proto), ErrMissingSignature)

	dup := tx.Sign(payer, user)
	dup.Sigs = append(dup.Sigs, dup.Sigs[0])
	require.ErrorIs(t, SignedTxn(&dup, genesisID, proto), ErrDuplicateSignature)

	stranger, _ := crypto.NewSignatureSecrets()
	extra := tx.Sign(payer, user)
	extra.Sigs = append(extra.Sigs, transactions.TxnSig{Signer: basics.Address(stranger.SignatureVerifier), Sig: stranger.Sign(tx)})
	require.ErrorIs(t, SignedTxn(&extra, genesisID, proto), ErrUnexpectedSignature)

	forged := tx.Sign(payer, user)
	forged.Sigs[1].Sig = user.SignBytes([]byte("something else"))
	err := SignedTxn(&forged, genesisID, proto)
	require.ErrorIs(t, err, ErrInvalidSignature)
	var txnErr *TxnError
	require.ErrorAs(t, err, &txnErr)
	require.Equal(t, basics.Address(user.SignatureVerifier), txnErr.Signer)

	// signatures do not carry over to a modified transaction
	tampered := tx.Sign(payer, user)
	tampered.Txn.Note = []byte("x")
	require.ErrorIs(t, SignedTxn(&tampered, genesisID, proto), ErrInvalidSignature)
}
