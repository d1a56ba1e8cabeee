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
	"bytes"
	"fmt"

	"github.com/near/borsh-go"

	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/ledger/apply"
	"github.com/algorand/go-gifportal/ledger/ledgercore"
)

// Processor is the portal program.
type Processor struct {
	id    basics.Address
	space uint64
}

// MakeProcessor returns the portal program deployed under id, creating
// portal accounts of space bytes.
func MakeProcessor(id basics.Address, space uint64) (*Processor, error) {
	if space < emptyRecordSize {
		return nil, fmt.Errorf("portal account space %d cannot hold an empty portal (%d bytes)", space, emptyRecordSize)
	}
	return &Processor{id: id, space: space}, nil
}

// ProgramID implements apply.Processor
func (p *Processor) ProgramID() basics.Address { return p.id }

// Space is the data size of the portal accounts this program creates.
func (p *Processor) Space() uint64 { return p.space }

// Process implements apply.Processor
func (p *Processor) Process(ic *apply.InvokeContext, data []byte) error {
	if len(data) < DiscriminatorSize {
		return ErrInstructionFallbackNotFound
	}
	method, args := data[:DiscriminatorSize], data[DiscriminatorSize:]
	switch {
	case bytes.Equal(method, InitializeMethod[:]):
		return p.initialize(ic)
	case bytes.Equal(method, AddEntryMethod[:]):
		if _, err := checkString(args); err != nil {
			return fmt.Errorf("%w: %v", ErrInstructionDidNotDeserialize, err)
		}
		var a AddEntryArgs
		if err := borsh.Deserialize(&a, args); err != nil {
			return fmt.Errorf("%w: %v", ErrInstructionDidNotDeserialize, err)
		}
		return p.addEntry(ic, a.Link)
	default:
		return ErrInstructionFallbackNotFound
	}
}

func (p *Processor) initialize(ic *apply.InvokeContext) error {
	if len(ic.Accounts) < 3 {
		return ledgercore.ErrNotEnoughAccountKeys
	}
	portal, payer, system := ic.Accounts[0], ic.Accounts[1], ic.Accounts[2]
	if system.Address != apply.SystemProgramID {
		return ErrInvalidProgramID
	}
	for _, h := range []*apply.AccountHandle{portal, payer} {
		if !h.Signer {
			return fmt.Errorf("%w: %v", ledgercore.ErrMissingRequiredSignature, h.Address)
		}
		if !h.Writable {
			return fmt.Errorf("%w: %v", ledgercore.ErrAccountNotWritable, h.Address)
		}
	}

	create, err := apply.CreateAccountInstruction(payer.Address, portal.Address, ic.Proto.MinBalance(p.space), p.space, p.id)
	if err != nil {
		return err
	}
	if err := ic.Invoke(create); err != nil {
		return err
	}

	record, err := PortalAccount{}.Encode()
	if err != nil {
		return err
	}
	copy(portal.Data(), record)
	ic.Log.With("portal", portal.Address.String()).Infof("portal created with %d bytes", p.space)
	return nil
}

func (p *Processor) addEntry(ic *apply.InvokeContext, link string) error {
	if len(ic.Accounts) < 2 {
		return ledgercore.ErrNotEnoughAccountKeys
	}
	portal, user := ic.Accounts[0], ic.Accounts[1]
	if !user.Signer {
		return fmt.Errorf("%w: %v", ledgercore.ErrMissingRequiredSignature, user.Address)
	}
	if !portal.Writable {
		return fmt.Errorf("%w: %v", ledgercore.ErrAccountNotWritable, portal.Address)
	}
	if !portal.IsAllocated() {
		return ErrAccountNotInitialized
	}
	if portal.Owner() != p.id {
		return ErrAccountOwnedByWrongProgram
	}
	state, err := DecodePortalAccount(portal.Data())
	if err != nil {
		return err
	}

	state.Entries = append(state.Entries, Entry{Link: link, Submitter: user.Address})
	state.TotalCount++
	if size := state.EncodedSize(); size > len(portal.Data()) {
		return fmt.Errorf("%w: record would need %d of %d bytes", ErrCapacityExceeded, size, len(portal.Data()))
	}
	record, err := state.Encode()
	if err != nil {
		return err
	}
	copy(portal.Data(), record)
	ic.Log.With("portal", portal.Address.String()).Debugf("entry %d appended by %v", state.TotalCount, user.Address)
	return nil
}
