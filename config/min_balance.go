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

package config

import (
	"github.com/algorand/go-gifportal/data/basics"
)

// MinBalance computes the minimum balance an account holding dataLen bytes
// must keep to stay exempt from eviction. Saturates instead of overflowing.
func (proto *ConsensusParams) MinBalance(dataLen uint64) basics.Amount {
	bytes := basics.AddSaturate(proto.AccountStorageOverhead, dataLen)
	perYear := basics.MulSaturate(bytes, proto.BytePerYearCost)
	return basics.Amount{Raw: basics.MulSaturate(perYear, proto.ExemptionYears)}
}

// MinBalanceReq computes the minimum balance requirement of an existing account.
// Accounts without data have no requirement beyond a non-zero balance.
func (proto *ConsensusParams) MinBalanceReq(ad basics.AccountData) basics.Amount {
	if len(ad.Data) == 0 {
		return basics.Amount{}
	}
	return proto.MinBalance(uint64(len(ad.Data)))
}
