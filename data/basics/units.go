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
	"fmt"

	"github.com/algorand/go-codec/codec"
)

// Amount is the native unit of value held by an account.
type Amount struct {
	Raw uint64
}

// CodecEncodeSelf implements codec.Selfer to encode Amount as a simple int
func (a Amount) CodecEncodeSelf(enc *codec.Encoder) {
	enc.MustEncode(a.Raw)
}

// CodecDecodeSelf implements codec.Selfer to decode Amount as a simple int
func (a *Amount) CodecDecodeSelf(dec *codec.Decoder) {
	dec.MustDecode(&a.Raw)
}

// LessThan implements arithmetic comparison for Amount
func (a Amount) LessThan(b Amount) bool {
	return a.Raw < b.Raw
}

// IsZero checks if an Amount value is zero
func (a Amount) IsZero() bool {
	return a.Raw == 0
}

// String implements fmt.Stringer
func (a Amount) String() string {
	return fmt.Sprintf("%d", a.Raw)
}

// Round represents a position in the ledger's sequence of committed transactions.
type Round uint64

// SubSaturate subtracts x rounds with saturation arithmetic that avoids
// underflow.
func (round Round) SubSaturate(x Round) Round {
	if x > round {
		return 0
	}
	return round - x
}
