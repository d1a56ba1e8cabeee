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
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/near/borsh-go"

	"github.com/algorand/go-gifportal/data/basics"
)

// DiscriminatorSize is the length of the type tag leading account and
// instruction data.
const DiscriminatorSize = 8

// Discriminator tags raw bytes with the type or method they encode.
type Discriminator [DiscriminatorSize]byte

func discriminator(preimage string) (d Discriminator) {
	sum := sha256.Sum256([]byte(preimage))
	copy(d[:], sum[:DiscriminatorSize])
	return
}

// AccountDiscriminator leads the data of every portal account.
var AccountDiscriminator = discriminator("account:PortalAccount")

// Entry is one appended link and the identity that signed for it.
type Entry struct {
	Link      string
	Submitter basics.Address
}

// PortalAccount is the record stored in a portal account after the
// discriminator.
type PortalAccount struct {
	TotalCount uint64
	Entries    []Entry
}

// entryOverhead is the encoded size of an Entry beyond its link bytes.
const entryOverhead = 4 + len(basics.Address{})

// emptyRecordSize is the encoded size of a portal with no entries, tag included.
const emptyRecordSize = DiscriminatorSize + 8 + 4

// EncodedSize returns the number of bytes Encode produces for p.
func (p PortalAccount) EncodedSize() int {
	n := emptyRecordSize
	for _, e := range p.Entries {
		n += entryOverhead + len(e.Link)
	}
	return n
}

// Encode serializes p behind the account discriminator.
func (p PortalAccount) Encode() ([]byte, error) {
	body, err := borsh.Serialize(p)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, DiscriminatorSize+len(body))
	out = append(out, AccountDiscriminator[:]...)
	return append(out, body...), nil
}

// DecodePortalAccount parses raw account data, which may carry trailing zero
// padding up to the allocated size.
func DecodePortalAccount(data []byte) (PortalAccount, error) {
	if len(data) < DiscriminatorSize || bytes.Equal(data[:DiscriminatorSize], make([]byte, DiscriminatorSize)) {
		return PortalAccount{}, ErrAccountNotInitialized
	}
	if !bytes.Equal(data[:DiscriminatorSize], AccountDiscriminator[:]) {
		return PortalAccount{}, ErrAccountDiscriminatorMismatch
	}
	body := data[DiscriminatorSize:]
	if err := checkRecordLengths(body); err != nil {
		return PortalAccount{}, fmt.Errorf("%w: %v", ErrAccountDidNotDeserialize, err)
	}
	var p PortalAccount
	if err := borsh.Deserialize(&p, body); err != nil {
		return PortalAccount{}, fmt.Errorf("%w: %v", ErrAccountDidNotDeserialize, err)
	}
	if p.TotalCount != uint64(len(p.Entries)) {
		return PortalAccount{}, fmt.Errorf("%w: count %d with %d entries", ErrAccountDidNotDeserialize, p.TotalCount, len(p.Entries))
	}
	return p, nil
}

// checkString verifies that buf starts with a borsh string whose declared
// length fits in buf, and returns the bytes following it. borsh-go allocates
// the declared length before reading any of it.
func checkString(buf []byte) ([]byte, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("string length prefix needs 4 bytes, have %d", len(buf))
	}
	n := binary.LittleEndian.Uint32(buf)
	if uint64(n) > uint64(len(buf)-4) {
		return nil, fmt.Errorf("string declares %d bytes, %d remain", n, len(buf)-4)
	}
	return buf[4+n:], nil
}

// checkRecordLengths walks the length prefixes of an encoded PortalAccount
// body without allocating.
func checkRecordLengths(body []byte) error {
	if len(body) < 12 {
		return fmt.Errorf("record header needs 12 bytes, have %d", len(body))
	}
	count := binary.LittleEndian.Uint32(body[8:])
	rest := body[12:]
	if uint64(count)*uint64(entryOverhead) > uint64(len(rest)) {
		return fmt.Errorf("record declares %d entries in %d bytes", count, len(rest))
	}
	for i := uint32(0); i < count; i++ {
		var err error
		if rest, err = checkString(rest); err != nil {
			return fmt.Errorf("entry %d: %v", i, err)
		}
		if len(rest) < len(basics.Address{}) {
			return fmt.Errorf("entry %d: truncated submitter", i)
		}
		rest = rest[len(basics.Address{}):]
	}
	return nil
}
