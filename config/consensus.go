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
	"github.com/algorand/go-gifportal/protocol"
)

// ConsensusParams specifies settings that might vary based on the
// particular version of the consensus protocol.
type ConsensusParams struct {
	// MinTxnFee specifies the minimum fee allowed on a transaction.
	MinTxnFee uint64

	// MaxTxnLife is how long a transaction can be live for:
	// the maximum difference between LastValid and FirstValid.
	MaxTxnLife uint64

	// MaxTxnNoteBytes is the maximum size of a transaction's Note field.
	MaxTxnNoteBytes int

	// MaxInstructions bounds the number of instructions in one transaction.
	MaxInstructions int

	// MaxInstructionAccounts bounds the account references of one instruction.
	MaxInstructionAccounts int

	// MaxInstructionDataBytes bounds the opaque argument bytes of one instruction.
	MaxInstructionDataBytes int

	// MaxAccountDataSize is the largest data region an account may allocate.
	MaxAccountDataSize uint64

	// MaxInvokeDepth is the deepest chain of program invocations, counting
	// the top-level instruction as depth 1.
	MaxInvokeDepth int

	// Accounts holding data must keep a balance of at least
	// (AccountStorageOverhead + len(Data)) * BytePerYearCost * ExemptionYears.
	// An account whose balance drops to zero is deleted instead.
	AccountStorageOverhead uint64
	BytePerYearCost        uint64
	ExemptionYears         uint64
}

// ConsensusProtocols defines a set of supported protocol versions and their
// corresponding parameters.
type ConsensusProtocols map[protocol.ConsensusVersion]ConsensusParams

// Consensus tracks the protocol-level settings for different versions of the
// consensus protocol.
var Consensus ConsensusProtocols

func init() {
	Consensus = make(ConsensusProtocols)
	initConsensusProtocols()
}

func initConsensusProtocols() {
	v1 := ConsensusParams{
		MinTxnFee:               5000,
		MaxTxnLife:              1000,
		MaxTxnNoteBytes:         1024,
		MaxInstructions:         16,
		MaxInstructionAccounts:  32,
		MaxInstructionDataBytes: 1232,
		MaxAccountDataSize:      10 << 20,
		MaxInvokeDepth:          4,
		AccountStorageOverhead:  128,
		BytePerYearCost:         3480,
		ExemptionYears:          2,
	}
	Consensus[protocol.ConsensusV1] = v1
}
