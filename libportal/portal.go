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
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/programs/portal"
)

// AccountReader is the slice of the ledger FetchPortal needs.
type AccountReader interface {
	Lookup(addr basics.Address) (basics.AccountData, error)
}

// FetchPortal reads and decodes the portal record at addr, checking that the
// account belongs to programID.
func FetchPortal(r AccountReader, programID, addr basics.Address) (portal.PortalAccount, error) {
	ad, err := r.Lookup(addr)
	if err != nil {
		return portal.PortalAccount{}, err
	}
	if ad.IsZero() {
		return portal.PortalAccount{}, portal.ErrAccountNotInitialized
	}
	if ad.Owner != programID {
		return portal.PortalAccount{}, portal.ErrAccountOwnedByWrongProgram
	}
	return portal.DecodePortalAccount(ad.Data)
}

// FetchPortal reads the portal record at addr from the client's ledger.
func (c *Client) FetchPortal(addr basics.Address) (portal.PortalAccount, error) {
	return FetchPortal(c.ledger, c.programID, addr)
}
