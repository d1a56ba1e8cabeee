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
	"github.com/algorand/go-gifportal/data/basics"
)

// AccountRef names an account an instruction touches and the privileges the
// instruction claims over it.
type AccountRef struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Address  basics.Address `codec:"addr"`
	Signer   bool           `codec:"sig"`
	Writable bool           `codec:"w"`
}

// Instruction invokes one program with an ordered account list and opaque data.
type Instruction struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	ProgramID basics.Address `codec:"prog"`
	Accounts  []AccountRef   `codec:"accts"`
	Data      []byte         `codec:"data"`
}

func (ix Instruction) wellFormed(proto config.ConsensusParams) error {
	if len(ix.Accounts) > proto.MaxInstructionAccounts {
		return fmt.Errorf("too many accounts: %d > %d", len(ix.Accounts), proto.MaxInstructionAccounts)
	}
	if len(ix.Data) > proto.MaxInstructionDataBytes {
		return fmt.Errorf("data too big: %d > %d", len(ix.Data), proto.MaxInstructionDataBytes)
	}
	return nil
}

// ReadOnly returns a reference to addr without signer or writable privileges.
func ReadOnly(addr basics.Address) AccountRef {
	return AccountRef{Address: addr}
}

// Writable returns a writable, non-signer reference to addr.
func Writable(addr basics.Address) AccountRef {
	return AccountRef{Address: addr, Writable: true}
}

// WritableSigner returns a writable reference to addr that requires its signature.
func WritableSigner(addr basics.Address) AccountRef {
	return AccountRef{Address: addr, Signer: true, Writable: true}
}
