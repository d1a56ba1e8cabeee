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

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/libportal"
	"github.com/algorand/go-gifportal/programs/portal"
	"github.com/algorand/go-gifportal/protocol"
	"github.com/algorand/go-gifportal/test/partitiontest"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestEnsureDataDirFromEnvironment(t *testing.T) {
	partitiontest.PartitionTest(t)

	dataDir = ""
	dir := t.TempDir()
	t.Setenv(dataDirEnv, dir)
	require.Equal(t, dir, ensureDataDir())

	dataDir = filepath.Join(dir, "explicit")
	defer func() { dataDir = "" }()
	require.Equal(t, filepath.Join(dir, "explicit"), ensureDataDir())
}

func TestUnicodePrintable(t *testing.T) {
	partitiontest.PartitionTest(t)

	ok, s := unicodePrintable("https://a.gif")
	require.True(t, ok)
	require.Equal(t, "https://a.gif", s)

	ok, s = unicodePrintable("https://\x1b[2Jaé")
	require.False(t, ok)
	require.Equal(t, "https://[2Jaé", s)
}

func TestWritePortal(t *testing.T) {
	partitiontest.PartitionTest(t)

	x := basics.Address{1}
	var out bytes.Buffer
	writePortal(&out, basics.Address{2}, portal.PortalAccount{TotalCount: 1, Entries: []portal.Entry{{Link: "https://a", Submitter: x}}})
	require.Contains(t, out.String(), "1 entries")
	require.Contains(t, out.String(), "https://a")
	require.Contains(t, out.String(), x.String())
}

func TestCommandWalkthrough(t *testing.T) {
	partitiontest.PartitionTest(t)

	dir := t.TempDir()
	out := execute(t, "init", "-d", dir)
	require.Contains(t, out, "faucet account")

	out = execute(t, "account", "new", "alice", "-d", dir)
	require.Contains(t, out, "Created account alice")
	wallet, err := libportal.OpenWallet(filepath.Join(dir, libportal.WalletFilename))
	require.NoError(t, err)
	alice, err := wallet.Resolve("alice")
	require.NoError(t, err)

	out = execute(t, "account", "fund", "alice", "100000000", "--from", libportal.FaucetKeyName, "-d", dir)
	require.Contains(t, out, "committed in round 1")
	out = execute(t, "account", "balance", "alice", "-d", dir)
	require.Equal(t, "100000000 lamports\n", out)

	out = execute(t, "portal", "create", "--from", "alice", "--name", "board", "-d", dir)
	require.Contains(t, out, "Created portal")
	out = execute(t, "portal", "add", "board", "https://a", "--from", "alice", "-d", dir)
	require.Contains(t, out, "committed in round 3")

	out = execute(t, "portal", "show", "board", "--json", "-d", dir)
	var view portalView
	require.NoError(t, protocol.DecodeJSON([]byte(out), &view))
	require.Equal(t, uint64(1), view.TotalCount)
	require.Equal(t, []entryView{{Link: "https://a", Submitter: alice}}, view.Entries)

	out = execute(t, "portal", "show", "board", "--json=false", "-d", dir)
	require.Contains(t, out, "https://a")

	out = execute(t, "account", "list", "-d", dir)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "alice"))
	require.True(t, strings.HasPrefix(lines[1], "board"))
	require.True(t, strings.HasPrefix(lines[2], libportal.FaucetKeyName))
}
