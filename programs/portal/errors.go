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

import "fmt"

// ProgramError is an error raised by the portal program itself, carrying a
// stable numeric code clients can match on.
type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("portal error %d (%s): %s", e.Code, e.Name, e.Msg)
}

// Errors returned by the portal program. Host-level failures, such as a
// missing signature or an already allocated slot, come from ledgercore.
var (
	ErrInstructionFallbackNotFound  = &ProgramError{Code: 101, Name: "InstructionFallbackNotFound", Msg: "no method matches the instruction discriminator"}
	ErrInstructionDidNotDeserialize = &ProgramError{Code: 102, Name: "InstructionDidNotDeserialize", Msg: "instruction arguments could not be decoded"}
	ErrAccountDiscriminatorMismatch = &ProgramError{Code: 3002, Name: "AccountDiscriminatorMismatch", Msg: "account does not hold a portal record"}
	ErrAccountDidNotDeserialize     = &ProgramError{Code: 3003, Name: "AccountDidNotDeserialize", Msg: "portal record could not be decoded"}
	ErrAccountOwnedByWrongProgram   = &ProgramError{Code: 3007, Name: "AccountOwnedByWrongProgram", Msg: "account is not owned by the portal program"}
	ErrInvalidProgramID             = &ProgramError{Code: 3008, Name: "InvalidProgramId", Msg: "expected the system program"}
	ErrAccountNotInitialized        = &ProgramError{Code: 3012, Name: "AccountNotInitialized", Msg: "portal account was never initialized"}
	ErrCapacityExceeded             = &ProgramError{Code: 6000, Name: "CapacityExceeded", Msg: "entry does not fit in the portal account"}
)
