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
	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
)

// TxnSig is one signer's signature over the transaction.
type TxnSig struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Signer basics.Address   `codec:"signer"`
	Sig    crypto.Signature `codec:"sig"`
}

// SignedTxn wraps a transaction and the signatures of its required signers.
type SignedTxn struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Txn  Transaction `codec:"txn"`
	Sigs []TxnSig    `codec:"sigs"`
}

// ID returns the Txid (i.e., hash) of the underlying transaction.
func (s SignedTxn) ID() Txid {
	return s.Txn.ID()
}

// SignedBy reports whether the signature list carries an entry for addr.
// It does not check the signature itself.
func (s SignedTxn) SignedBy(addr basics.Address) bool {
	for _, sig := range s.Sigs {
		if sig.Signer == addr {
			return true
		}
	}
	return false
}
