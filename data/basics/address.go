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

package basics

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"
)

type (
	// Address is the 32-byte ed25519 public key identifying an account or a program.
	Address [32]byte
)

// UnmarshalAddress parses the base58 text form of an address.
func UnmarshalAddress(address string) (Address, error) {
	decoded, err := base58.Decode(address)
	if err != nil {
		return Address{}, fmt.Errorf("failed to decode address %s from base58: %w", address, err)
	}
	var addr Address
	if len(decoded) != len(addr) {
		return Address{}, fmt.Errorf("decoded bad addr: %s has %d bytes", address, len(decoded))
	}
	copy(addr[:], decoded)
	return addr, nil
}

// String returns the base58 representation of Address
func (addr Address) String() string {
	return base58.Encode(addr[:])
}

// IsZero checks if an address is the zero value.
func (addr Address) IsZero() bool {
	return addr == Address{}
}

// Less orders addresses bytewise.
func (addr Address) Less(other Address) bool {
	return bytes.Compare(addr[:], other[:]) < 0
}

// MarshalText returns the address string as an array of bytes
func (addr Address) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

// UnmarshalText initializes the Address from an array of bytes.
func (addr *Address) UnmarshalText(text []byte) error {
	address, err := UnmarshalAddress(string(text))
	if err == nil {
		*addr = address
		return nil
	}
	return err
}
