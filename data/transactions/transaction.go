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

package transactions

import (
	"fmt"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/protocol"
)

// Txid is a hash used to uniquely identify individual transactions
type Txid crypto.Digest

// String converts txid to a pretty-printable string
func (txid Txid) String() string {
	return crypto.Digest(txid).String()
}

// UnmarshalText initializes the Txid from a base58 string.
func (txid *Txid) UnmarshalText(text []byte) error {
	d, err := crypto.DigestFromString(string(text))
	*txid = Txid(d)
	return err
}

// MarshalText returns the base58 form of the Txid.
func (txid Txid) MarshalText() ([]byte, error) {
	return []byte(txid.String()), nil
}

// Transaction is an ordered list of instructions applied atomically, paid for
// by FeePayer.
type Transaction struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	FeePayer   basics.Address `codec:"fee_payer"`
	Fee        basics.Amount  `codec:"fee"`
	FirstValid basics.Round   `codec:"fv"`
	LastValid  basics.Round   `codec:"lv"`
	GenesisID  string         `codec:"gen"`
	Note       []byte         `codec:"note"`

	Instructions []Instruction `codec:"ixs"`
}

// ToBeHashed implements the crypto.Hashable interface.
func (tx Transaction) ToBeHashed() (protocol.HashID, []byte) {
	return protocol.Transaction, protocol.EncodeReflect(&tx)
}

// ID returns the Txid (i.e., hash) of the transaction.
func (tx Transaction) ID() Txid {
	return Txid(crypto.HashObj(tx))
}

// Signers lists, in order of first appearance, every address whose signature
// the transaction requires. The fee payer always comes first.
func (tx Transaction) Signers() []basics.Address {
	seen := map[basics.Address]bool{tx.FeePayer: true}
	signers := []basics.Address{tx.FeePayer}
	for _, ix := range tx.Instructions {
		for _, ref := range ix.Accounts {
			if ref.Signer && !seen[ref.Address] {
				seen[ref.Address] = true
				signers = append(signers, ref.Address)
			}
		}
	}
	return signers
}

// Alive checks to see if the transaction is still alive (can be applied) at the specified Round.
func (tx Transaction) Alive(round basics.Round) error {
	if round < tx.FirstValid || round > tx.LastValid {
		return &TxnDeadError{
			Round:      round,
			FirstValid: tx.FirstValid,
			LastValid:  tx.LastValid,
		}
	}
	return nil
}

// WellFormed checks that the transaction looks reasonable on its own (but not necessarily valid against the actual ledger). It does not check signatures.
func (tx Transaction) WellFormed(proto config.ConsensusParams) error {
	if tx.FeePayer.IsZero() {
		return fmt.Errorf("transaction cannot have zero fee payer")
	}
	if tx.Fee.Raw < proto.MinTxnFee {
		return makeMinFeeErrorf("transaction had fee %d, which is less than the minimum %d", tx.Fee.Raw, proto.MinTxnFee)
	}
	if tx.LastValid < tx.FirstValid {
		return fmt.Errorf("transaction invalid range (%d--%d)", tx.FirstValid, tx.LastValid)
	}
	if uint64(tx.LastValid-tx.FirstValid) > proto.MaxTxnLife {
		return fmt.Errorf("transaction window size excessive (%d--%d)", tx.FirstValid, tx.LastValid)
	}
	if len(tx.Note) > proto.MaxTxnNoteBytes {
		return fmt.Errorf("transaction note too big: %d > %d", len(tx.Note), proto.MaxTxnNoteBytes)
	}
	if len(tx.Instructions) == 0 {
		return errNoInstructions
	}
	if len(tx.Instructions) > proto.MaxInstructions {
		return fmt.Errorf("too many instructions: %d > %d", len(tx.Instructions), proto.MaxInstructions)
	}
	for i, ix := range tx.Instructions {
		if err := ix.wellFormed(proto); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	return nil
}

// Sign signs a transaction using the given secret keys, one per required
// signer. Keys for addresses that are not required signers are ignored.
func (tx Transaction) Sign(secrets ...*crypto.SignatureSecrets) SignedTxn {
	stx := SignedTxn{Txn: tx}
	required := make(map[basics.Address]bool)
	for _, addr := range tx.Signers() {
		required[addr] = true
	}
	for _, s := range secrets {
		addr := basics.Address(s.SignatureVerifier)
		if !required[addr] {
			continue
		}
		stx.Sigs = append(stx.Sigs, TxnSig{Signer: addr, Sig: s.Sign(tx)})
	}
	return stx
}
