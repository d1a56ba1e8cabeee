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

package libportal

import (
	"fmt"

	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/ledger/apply"
	"github.com/algorand/go-gifportal/programs/portal"
)

// MakeUnsignedTx wraps ixs in a transaction paid by payer, valid from the
// next round for the configured number of rounds, at the minimum fee.
func (c *Client) MakeUnsignedTx(payer basics.Address, note []byte, ixs ...transactions.Instruction) transactions.Transaction {
	proto := c.ledger.ConsensusParams()
	validRounds := c.cfg.TxnValidityRounds
	if validRounds > proto.MaxTxnLife {
		validRounds = proto.MaxTxnLife
	}
	first := c.ledger.Latest() + 1
	return transactions.Transaction{
		FeePayer:     payer,
		Fee:          basics.Amount{Raw: proto.MinTxnFee},
		FirstValid:   first,
		LastValid:    first + basics.Round(validRounds),
		GenesisID:    c.ledger.GenesisID(),
		Note:         note,
		Instructions: ixs,
	}
}

// SignTransaction signs tx with the wallet key of every required signer.
// extra supplies keys the wallet does not hold, such as a fresh portal slot.
func (c *Client) SignTransaction(tx transactions.Transaction, extra ...*crypto.SignatureSecrets) (transactions.SignedTxn, error) {
	held := make(map[basics.Address]*crypto.SignatureSecrets, len(extra))
	for _, s := range extra {
		held[basics.Address(s.SignatureVerifier)] = s
	}
	secrets := make([]*crypto.SignatureSecrets, 0, len(held))
	for _, addr := range tx.Signers() {
		if s, ok := held[addr]; ok {
			secrets = append(secrets, s)
			continue
		}
		s, err := c.wallet.Secrets(addr)
		if err != nil {
			return transactions.SignedTxn{}, fmt.Errorf("cannot sign for %v: %w", addr, err)
		}
		secrets = append(secrets, s)
	}
	return tx.Sign(secrets...), nil
}

// SignAndSubmit signs tx and submits it to the ledger.
func (c *Client) SignAndSubmit(tx transactions.Transaction, extra ...*crypto.SignatureSecrets) (transactions.Txid, error) {
	stx, err := c.SignTransaction(tx, extra...)
	if err != nil {
		return transactions.Txid{}, err
	}
	return c.ledger.Submit(stx)
}

// Fund moves amount from one system account to another, creating the
// destination if needed.
func (c *Client) Fund(from, to basics.Address, amount uint64) (transactions.Txid, error) {
	ix, err := apply.TransferInstruction(from, to, basics.Amount{Raw: amount})
	if err != nil {
		return transactions.Txid{}, err
	}
	return c.SignAndSubmit(c.MakeUnsignedTx(from, nil, ix))
}

// CreatePortal reserves a new portal account paid for by payer. The slot key
// is generated here; when name is non-empty it is kept in the wallet so the
// portal can be referred to by name.
func (c *Client) CreatePortal(payer basics.Address, name string) (basics.Address, transactions.Txid, error) {
	slot, seed := crypto.NewSignatureSecrets()
	addr := basics.Address(slot.SignatureVerifier)
	ix := portal.InitializeInstruction(c.programID, addr, payer)
	txid, err := c.SignAndSubmit(c.MakeUnsignedTx(payer, nil, ix), slot)
	if err != nil {
		return basics.Address{}, txid, err
	}
	c.log.With("portal", addr.String()).Infof("created portal paid by %v", payer)
	if name != "" {
		if _, err := c.wallet.ImportSeed(name, seed); err != nil {
			return addr, txid, err
		}
	}
	return addr, txid, nil
}

// AddEntry appends link to the portal at addr on behalf of user, who also pays the fee.
func (c *Client) AddEntry(addr, user basics.Address, link string) (transactions.Txid, error) {
	ix, err := portal.AddEntryInstruction(c.programID, addr, user, link)
	if err != nil {
		return transactions.Txid{}, err
	}
	return c.SignAndSubmit(c.MakeUnsignedTx(user, nil, ix))
}
