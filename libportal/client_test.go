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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/ledger/ledgercore"
	"github.com/algorand/go-gifportal/logging"
	"github.com/algorand/go-gifportal/programs/portal"
	"github.com/algorand/go-gifportal/protocol"
	"github.com/algorand/go-gifportal/test/partitiontest"
)

func makeTestClient(t *testing.T) (*Client, string, basics.Address) {
	t.Helper()
	dir := t.TempDir()
	faucet, err := InitDataDir(dir, protocol.DevNetwork, DefaultFaucetBalance)
	require.NoError(t, err)
	c, err := MakeClient(dir, logging.TestingLog(t))
	require.NoError(t, err)
	return c, dir, faucet
}

func TestInitDataDirOnce(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, dir, faucet := makeTestClient(t)
	defer c.Close()

	bal, err := c.Balance(faucet)
	require.NoError(t, err)
	require.Equal(t, uint64(DefaultFaucetBalance), bal.Raw)

	_, err = InitDataDir(dir, protocol.DevNetwork, 1)
	require.Error(t, err)
}

// TestPortalWalkthrough creates a portal, fetches it, adds a link and fetches again.
func TestPortalWalkthrough(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, dir, faucet := makeTestClient(t)

	user, err := c.Wallet().GenerateKey("user")
	require.NoError(t, err)
	_, err = c.Fund(faucet, user, 100_000_000)
	require.NoError(t, err)

	addr, _, err := c.CreatePortal(user, "board")
	require.NoError(t, err)
	named, err := c.Wallet().Resolve("board")
	require.NoError(t, err)
	require.Equal(t, addr, named)

	p, err := c.FetchPortal(addr)
	require.NoError(t, err)
	require.Zero(t, p.TotalCount)

	_, err = c.AddEntry(addr, user, "https://media.giphy.com/media/a.gif")
	require.NoError(t, err)

	p, err = c.FetchPortal(addr)
	require.NoError(t, err)
	require.Equal(t, uint64(1), p.TotalCount)
	require.Equal(t, portal.Entry{Link: "https://media.giphy.com/media/a.gif", Submitter: user}, p.Entries[0])
	round := c.Ledger().Latest()
	require.NoError(t, c.Close())

	c2, err := MakeClient(dir, logging.TestingLog(t))
	require.NoError(t, err)
	defer c2.Close()
	require.Equal(t, round, c2.Ledger().Latest())
	p, err = c2.FetchPortal(addr)
	require.NoError(t, err)
	require.Equal(t, uint64(1), p.TotalCount)
}

func TestDataDirLocked(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, dir, _ := makeTestClient(t)
	_, err := MakeClient(dir, logging.TestingLog(t))
	require.ErrorIs(t, err, ErrDataDirLocked)

	require.NoError(t, c.Close())
	c2, err := MakeClient(dir, logging.TestingLog(t))
	require.NoError(t, err)
	require.NoError(t, c2.Close())
}

func TestFetchPortalRejects(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, _, faucet := makeTestClient(t)
	defer c.Close()

	_, err := c.FetchPortal(basics.Address{4, 2})
	require.ErrorIs(t, err, portal.ErrAccountNotInitialized)
	_, err = c.FetchPortal(faucet)
	require.ErrorIs(t, err, portal.ErrAccountOwnedByWrongProgram)
}

func TestSignRequiresKeys(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, _, faucet := makeTestClient(t)
	defer c.Close()

	stranger, _ := crypto.NewSignatureSecrets()
	_, err := c.Fund(basics.Address(stranger.SignatureVerifier), faucet, 1)
	require.ErrorIs(t, err, ErrKeyNotFound)

	// an unfunded user cannot pay its own fee
	user, err := c.Wallet().GenerateKey("broke")
	require.NoError(t, err)
	_, _, err = c.CreatePortal(user, "")
	require.ErrorIs(t, err, ledgercore.ErrInsufficientFunds)
	require.Equal(t, basics.Round(0), c.Ledger().Latest())
}

func TestMakeUnsignedTxWindow(t *testing.T) {
	partitiontest.PartitionTest(t)

	c, _, faucet := makeTestClient(t)
	defer c.Close()

	tx := c.MakeUnsignedTx(faucet, []byte("hi"))
	proto := c.Ledger().ConsensusParams()
	require.Equal(t, basics.Round(1), tx.FirstValid)
	require.Equal(t, uint64(tx.LastValid-tx.FirstValid), proto.MaxTxnLife)
	require.Equal(t, proto.MinTxnFee, tx.Fee.Raw)
	require.Equal(t, c.Ledger().GenesisID(), tx.GenesisID)
}
