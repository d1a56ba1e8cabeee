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

package bookkeeping

import (
	"fmt"
	"os"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/protocol"
)

// A Genesis object defines an initial ledger: its consensus rules and the
// accounts that exist before the first transaction.
type Genesis struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// The SchemaID allows nodes to store data specific to a particular
	// universe (in case of upgrades at development or testing time),
	// and as an optimization to quickly check if two nodes are in
	// the same universe.
	SchemaID string `codec:"id"`

	// Network identifies the unique network we are running on.
	Network protocol.NetworkID `codec:"network"`

	// Proto is the consensus protocol in use at the genesis.
	Proto protocol.ConsensusVersion `codec:"proto"`

	// Allocation determines the initial accounts and their state.
	Allocation []GenesisAllocation `codec:"alloc"`

	// Timestamp for the genesis
	Timestamp int64 `codec:"timestamp"`

	// Arbitrary genesis comment string - will be excluded from file if empty
	Comment string `codec:"comment"`
}

// GenesisAllocation object represents an allocation of funds or state
// to an address in the genesis.
type GenesisAllocation struct {
	_struct struct{} `codec:""`

	Address string             `codec:"addr"`
	Comment string             `codec:"comment"`
	State   basics.AccountData `codec:"state"`
}

// LoadGenesisFromFile attempts to load a Genesis structure from a (presumably) genesis.json file.
func LoadGenesisFromFile(genesisFile string) (genesis Genesis, err error) {
	genesisText, err := os.ReadFile(genesisFile)
	if err != nil {
		return
	}

	err = protocol.DecodeJSON(genesisText, &genesis)
	return
}

// SaveToFile writes the genesis in the JSON form LoadGenesisFromFile reads.
func (genesis Genesis) SaveToFile(genesisFile string) error {
	return os.WriteFile(genesisFile, protocol.EncodeJSON(&genesis), 0644)
}

// ID is the effective Genesis identifier - the combination
// of the network and the ledger schema version
func (genesis Genesis) ID() string {
	return string(genesis.Network) + "-" + genesis.SchemaID
}

// ToBeHashed impements the crypto.Hashable interface.
func (genesis Genesis) ToBeHashed() (protocol.HashID, []byte) {
	return protocol.Genesis, protocol.EncodeReflect(&genesis)
}

// Hash is the genesis hash, recorded by the ledger so a data dir cannot be
// reopened against a different genesis.
func (genesis Genesis) Hash() crypto.Digest {
	return crypto.HashObj(genesis)
}

// Balances parses the allocation list, rejecting bad or repeated addresses
// and unknown protocols.
func (genesis Genesis) Balances() (map[basics.Address]basics.AccountData, error) {
	if _, ok := config.Consensus[genesis.Proto]; !ok {
		return nil, fmt.Errorf("unsupported protocol %s", genesis.Proto)
	}
	balances := make(map[basics.Address]basics.AccountData, len(genesis.Allocation))
	for _, alloc := range genesis.Allocation {
		addr, err := basics.UnmarshalAddress(alloc.Address)
		if err != nil {
			return nil, fmt.Errorf("cannot parse genesis addr %s: %w", alloc.Address, err)
		}
		if _, ok := balances[addr]; ok {
			return nil, fmt.Errorf("repeated allocation to %s", alloc.Address)
		}
		balances[addr] = alloc.State
	}
	return balances, nil
}
