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

//go:build unix

package libportal

import (
	"os"

	"golang.org/x/sys/unix"
)

type unixLocker struct{}

// makeLocker creates a unix file locker. flock(2) locks are per open file
// description, so two handles in one process still exclude each other.
func makeLocker() locker {
	return unixLocker{}
}

func (unixLocker) tryRLock(fd *os.File) error {
	return unix.Flock(int(fd.Fd()), unix.LOCK_SH)
}

func (unixLocker) tryLock(fd *os.File) error {
	return unix.Flock(int(fd.Fd()), unix.LOCK_EX)
}

func (unixLocker) unlock(fd *os.File) error {
	return unix.Flock(int(fd.Fd()), unix.LOCK_UN)
}
