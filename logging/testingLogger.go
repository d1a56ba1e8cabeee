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

package logging

import (
	"testing"
)

type testLoggerAdapter struct {
	tb testing.TB
}

func (a testLoggerAdapter) Write(p []byte) (n int, err error) {
	a.tb.Helper()
	a.tb.Log(string(p))
	return len(p), nil
}

// TestingLog is a test-only convenience function to configure logging for testing.
// The returned logger forwards everything at Debug and above to tb.Log.
func TestingLog(tb testing.TB) Logger {
	l := NewLogger()
	l.SetLevel(Debug)
	l.SetOutput(testLoggerAdapter{tb: tb})
	return l
}

// TestingLogWithoutFatalExit returns a testing logger whose Fatal calls run the
// registered exit handlers but do not terminate the test binary.
func TestingLogWithoutFatalExit(tb testing.TB) Logger {
	l := TestingLog(tb)
	l.(logger).entry.Logger.ExitFunc = func(int) {}
	return l
}
