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
	"errors"
	"fmt"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
)

// Signature structure errors
var (
	ErrMissingSignature    = errors.New("required signer did not sign")
	ErrUnexpectedSignature = errors.New("signature from an address that is not a required signer")
	ErrDuplicateSignature  = errors.New("signer appears more than once")
	ErrInvalidSignature    = errors.New("signature does not verify")
	ErrWrongGenesis        = errors.New("transaction genesis id does not match the ledger")
)

// TxnError wraps a verification failure with the address it concerns.
type TxnError struct {
	Signer basics.Address
	Err    error
}

func (e *TxnError) Error() string {
	return fmt.Sprintf("signer %v: %v", e.Signer, e.Err)
}

func (e *TxnError) Unwrap() error {
	return e.Err
}

// checkStructure validates everything about stxn except the signature math and
// enqueues the signatures into bv.
func checkStructure(stxn *transactions.SignedTxn, genesisID string, proto config.ConsensusParams, bv *crypto.BatchVerifier) error {
	if stxn.Txn.GenesisID != genesisID {
		return ErrWrongGenesis
	}
	if err := stxn.Txn.WellFormed(proto); err != nil {
		return err
	}

	required := make(map[basics.Address]bool)
	for _, addr := range stxn.Txn.Signers() {
		required[addr] = false
	}
	for _, sig := range stxn.Sigs {
		signed, ok := required[sig.Signer]
		if !ok {
			return &TxnError{Signer: sig.Signer, Err: ErrUnexpectedSignature}
		}
		if signed {
			return &TxnError{Signer: sig.Signer, Err: ErrDuplicateSignature}
		}
		required[sig.Signer] = true
	}
	for _, addr := range stxn.Txn.Signers() {
		if !required[addr] {
			return &TxnError{Signer: addr, Err: ErrMissingSignature}
		}
	}

	for _, sig := range stxn.Sigs {
		bv.EnqueueSignature(crypto.SignatureVerifier(sig.Signer), stxn.Txn, sig.Sig)
	}
	return nil
}

// SignedTxn verifies a signed transaction against the consensus parameters:
// it must be well formed, name the ledger's genesis, and carry exactly one
// valid signature per required signer.
func SignedTxn(stxn *transactions.SignedTxn, genesisID string, proto config.ConsensusParams) error {
	bv := crypto.MakeBatchVerifierWithHint(len(stxn.Sigs))
	if err := checkStructure(stxn, genesisID, proto, bv); err != nil {
		return err
	}
	failed, err := bv.VerifyWithFeedback()
	if err == nil {
		return nil
	}
	for i := range failed {
		if failed[i] {
			return &TxnError{Signer: stxn.Sigs[i].Signer, Err: ErrInvalidSignature}
		}
	}
	return ErrInvalidSignature
}
