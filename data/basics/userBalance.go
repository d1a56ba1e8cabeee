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
)

// AccountData contains the data associated with a given address.
//
// An account is allocated when any field is non-zero. Data is a fixed size
// region that only the Owner program may write; its length can only change
// while the account is still owned by the system program.
type AccountData struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Balance    Amount  `codec:"bal"`
	Owner      Address `codec:"own"`
	Data       []byte  `codec:"data"`
	Executable bool    `codec:"exe"`
}

// IsZero checks if an AccountData value is the same as its zero value,
// which is how an unallocated account is represented.
func (u AccountData) IsZero() bool {
	return u.Balance.IsZero() && u.Owner.IsZero() && len(u.Data) == 0 && !u.Executable
}

// Clone returns a deep copy of the account data.
func (u AccountData) Clone() AccountData {
	c := u
	if u.Data != nil {
		c.Data = append([]byte{}, u.Data...)
	}
	return c
}

// Equal compares two account records field by field.
func (u AccountData) Equal(o AccountData) bool {
	return u.Balance.Raw == o.Balance.Raw && u.Owner == o.Owner &&
		u.Executable == o.Executable && bytes.Equal(u.Data, o.Data)
}
