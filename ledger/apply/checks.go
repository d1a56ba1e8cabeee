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

package apply

import (
	"bytes"
	"fmt"

	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/ledger/ledgercore"
)

// verifyChanges enforces what programID may have done to the accounts it was
// handed since pre was taken:
//   - accounts not claimed writable are untouched
//   - only the owner debits, changes data, or hands the account to a new owner
//   - only the system program sizes data, and only from empty
//   - the total balance is unchanged
func verifyChanges(programID basics.Address, handles []*AccountHandle, pre map[basics.Address]basics.AccountData) error {
	writable := make(map[basics.Address]bool, len(handles))
	for _, h := range handles {
		writable[h.Address] = writable[h.Address] || h.Writable
	}

	var before, after basics.OverflowTracker
	var preSum, postSum uint64
	seen := make(map[basics.Address]bool, len(handles))
	for _, h := range handles {
		if seen[h.Address] {
			continue
		}
		seen[h.Address] = true
		old := pre[h.Address]
		cur := *h.acct

		preSum = before.Add(preSum, old.Balance.Raw)
		postSum = after.Add(postSum, cur.Balance.Raw)

		if old.Equal(cur) {
			continue
		}
		if !writable[h.Address] {
			return fmt.Errorf("%w: %v", ledgercore.ErrAccountNotWritable, h.Address)
		}
		if err := verifyAccount(programID, old, cur); err != nil {
			return fmt.Errorf("%w: %v", err, h.Address)
		}
	}

	if before.Overflowed || after.Overflowed || preSum != postSum {
		return ledgercore.ErrUnbalancedInstruction
	}
	return nil
}

func verifyAccount(programID basics.Address, old, cur basics.AccountData) error {
	owned := old.Owner == programID

	if cur.Owner != old.Owner {
		if !owned || !zeroed(cur.Data) {
			return ledgercore.ErrModifiedOwner
		}
	}

	if cur.Balance.LessThan(old.Balance) && !owned {
		return ledgercore.ErrExternalAccountBalanceSpend
	}

	if len(cur.Data) != len(old.Data) {
		if !owned || programID != SystemProgramID || len(old.Data) != 0 {
			return ledgercore.ErrAccountDataSizeChanged
		}
	} else if !bytes.Equal(cur.Data, old.Data) && !owned {
		return ledgercore.ErrExternalAccountDataModified
	}

	if cur.Executable != old.Executable {
		return ledgercore.ErrExternalAccountDataModified
	}
	return nil
}

func zeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
