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

package ledgercore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/test/partitiontest"
)

func TestInstructionErrorUnwraps(t *testing.T) {
	partitiontest.PartitionTest(t)

	err := error(InstructionError{Index: 2, Err: fmt.Errorf("create: %w", ErrAccountAlreadyInUse)})
	require.ErrorIs(t, err, ErrAccountAlreadyInUse)
	require.Contains(t, err.Error(), "instruction 2")

	var ie InstructionError
	require.True(t, errors.As(err, &ie))
	require.Equal(t, 2, ie.Index)
}

func TestTxnNotAliveUnwraps(t *testing.T) {
	partitiontest.PartitionTest(t)

	inner := &transactions.TxnDeadError{Round: 9, FirstValid: 1, LastValid: 8}
	err := error(TxnNotAliveError{Round: 9, Err: inner})
	var dead *transactions.TxnDeadError
	require.ErrorAs(t, err, &dead)
	require.Equal(t, inner, dead)
}
