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

package ledger

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/bookkeeping"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/data/transactions/verify"
	"github.com/algorand/go-gifportal/ledger/apply"
	"github.com/algorand/go-gifportal/ledger/ledgercore"
	"github.com/algorand/go-gifportal/logging"
	"github.com/algorand/go-gifportal/protocol"
	"github.com/algorand/go-gifportal/test/partitiontest"
)

const initialBalance = 1_000_000_000

type testEnv struct {
	genesis bookkeeping.Genesis
	keys    []*crypto.SignatureSecrets
}

func (e testEnv) addr(i int) basics.Address {
	return basics.Address(e.keys[i].SignatureVerifier)
}

func makeTestEnv(n int) testEnv {
	env := testEnv{genesis: bookkeeping.Genesis{
		SchemaID: "test",
		Network:  protocol.DevNetwork,
		Proto:    protocol.ConsensusCurrentVersion,
	}}
	for i := 0; i < n; i++ {
		var seed crypto.Seed
		seed[0], seed[1] = byte(i), byte(i>>8)
		seed[2] = 0x5a
		key := crypto.GenerateSignatureSecrets(seed)
		env.keys = append(env.keys, key)
		env.genesis.Allocation = append(env.genesis.Allocation, bookkeeping.GenesisAllocation{
			Address: basics.Address(key.SignatureVerifier).String(),
			State:   basics.AccountData{Balance: basics.Amount{Raw: initialBalance}},
		})
	}
	return env
}

func memConfig(store string) config.Local {
	cfg := config.GetDefaultLocal()
	cfg.LedgerStore = store
	cfg.LedgerInMemory = true
	return cfg
}

func openTestLedger(t *testing.T, env testEnv, cfg config.Local, procs ...apply.Processor) *Ledger {
	t.Helper()
	l, err := OpenLedger(logging.TestingLog(t), filepath.Join(t.TempDir(), "ledger"), cfg, env.genesis, procs...)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func (e testEnv) transfer(l *Ledger, from, to int, amount uint64, note string) transactions.SignedTxn {
	ix, err := apply.TransferInstruction(e.addr(from), e.addr(to), basics.Amount{Raw: amount})
	if err != nil {
		panic(err)
	}
	latest := l.Latest()
	tx := transactions.Transaction{
		FeePayer:     e.addr(from),
		Fee:          basics.Amount{Raw: l.ConsensusParams().MinTxnFee},
		FirstValid:   latest + 1,
		LastValid:    latest + 100,
		GenesisID:    l.GenesisID(),
		Note:         []byte(note),
		Instructions: []transactions.Instruction{ix},
	}
	return tx.Sign(e.keys[from])
}

func balance(t *testing.T, l *Ledger, addr basics.Address) uint64 {
	t.Helper()
	ad, err := l.Lookup(addr)
	require.NoError(t, err)
	return ad.Balance.Raw
}

func TestGenesisLoaded(t *testing.T) {
	partitiontest.PartitionTest(t)

	for _, store := range []string{"pebbledb", "sqlite"} {
		t.Run(store, func(t *testing.T) {
			env := makeTestEnv(3)
			l := openTestLedger(t, env, memConfig(store))
			require.Equal(t, basics.Round(0), l.Latest())
			require.Equal(t, "devnet-test", l.GenesisID())
			for i := range env.keys {
				require.Equal(t, uint64(initialBalance), balance(t, l, env.addr(i)))
			}
			total, n, err := l.Totals()
			require.NoError(t, err)
			require.Equal(t, uint64(3*initialBalance), total.Raw)
			require.Equal(t, 3, n)
		})
	}
}

func TestSubmitTransfer(t *testing.T) {
	partitiontest.PartitionTest(t)

	env := makeTestEnv(2)
	l := openTestLedger(t, env, memConfig("pebbledb"))
	fee := l.ConsensusParams().MinTxnFee

	txid, err := l.Submit(env.transfer(l, 0, 1, 500, ""))
	require.NoError(t, err)
	require.False(t, crypto.Digest(txid).IsZero())
	require.Equal(t, basics.Round(1), l.Latest())
	require.Equal(t, uint64(initialBalance-500-fee), balance(t, l, env.addr(0)))
	require.Equal(t, uint64(initialBalance+500), balance(t, l, env.addr(1)))

	total, _, err := l.Totals()
	require.NoError(t, err)
	require.Equal(t, uint64(2*initialBalance)-fee, total.Raw)

	snap, err := l.Metrics().Snapshot()
	require.NoError(t, err)
	require.Equal(t, float64(1), snap["gifportal_ledger_txns_total{result=committed}"])
	require.Equal(t, float64(1), snap[fmt.Sprintf("gifportal_ledger_instructions_total{program=%s}", apply.SystemProgramID)])
	require.Equal(t, float64(1), snap["gifportal_ledger_round"])
}

func TestSubmitRejections(t *testing.T) {
	partitiontest.PartitionTest(t)

	env := makeTestEnv(3)
	l := openTestLedger(t, env, memConfig("sqlite"))

	stxn := env.transfer(l, 0, 1, 1, "")
	_, err := l.Submit(stxn)
	require.NoError(t, err)

	_, err = l.Submit(stxn)
	var tile *ledgercore.TransactionInLedgerError
	require.ErrorAs(t, err, &tile)
	require.Equal(t, stxn.ID(), tile.Txid)

	early := env.transfer(l, 0, 1, 1, "early")
	early.Txn.FirstValid += 5
	early = early.Txn.Sign(env.keys[0])
	_, err = l.Submit(early)
	var notAlive ledgercore.TxnNotAliveError
	require.ErrorAs(t, err, &notAlive)

	unsigned := env.transfer(l, 0, 1, 1, "unsigned")
	unsigned.Sigs = nil
	_, err = l.Submit(unsigned)
	require.ErrorIs(t, err, verify.ErrMissingSignature)

	wrongGenesis := env.transfer(l, 0, 1, 1, "genesis")
	wrongGenesis.Txn.GenesisID = "other"
	wrongGenesis = wrongGenesis.Txn.Sign(env.keys[0])
	_, err = l.Submit(wrongGenesis)
	require.ErrorIs(t, err, verify.ErrWrongGenesis)

	broke := env.transfer(l, 0, 1, initialBalance, "too much")
	_, err = l.Submit(broke)
	require.ErrorIs(t, err, ledgercore.ErrInsufficientFunds)
	var ie ledgercore.InstructionError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, 0, ie.Index)

	require.Equal(t, basics.Round(1), l.Latest())
	snap, err := l.Metrics().Snapshot()
	require.NoError(t, err)
	require.Equal(t, float64(5), snap["gifportal_ledger_txns_total{result=rejected}"])
}

func TestFailedTransactionChangesNothing(t *testing.T) {
	partitiontest.PartitionTest(t)

	env := makeTestEnv(3)
	l := openTestLedger(t, env, memConfig("pebbledb"))

	good, err := apply.TransferInstruction(env.addr(0), env.addr(1), basics.Amount{Raw: 100})
	require.NoError(t, err)
	bad, err := apply.TransferInstruction(env.addr(0), env.addr(2), basics.Amount{Raw: 10 * initialBalance})
	require.NoError(t, err)
	tx := transactions.Transaction{
		FeePayer:     env.addr(0),
		Fee:          basics.Amount{Raw: l.ConsensusParams().MinTxnFee},
		FirstValid:   1,
		LastValid:    10,
		GenesisID:    l.GenesisID(),
		Instructions: []transactions.Instruction{good, bad},
	}

	before := make([]basics.AccountData, 3)
	for i := range before {
		before[i], err = l.Lookup(env.addr(i))
		require.NoError(t, err)
	}

	_, err = l.Submit(tx.Sign(env.keys[0]))
	var ie ledgercore.InstructionError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, 1, ie.Index)

	for i := range before {
		after, err := l.Lookup(env.addr(i))
		require.NoError(t, err)
		if diff := cmp.Diff(before[i], after, cmpopts.IgnoreUnexported(basics.AccountData{})); diff != "" {
			t.Fatalf("account %d changed (-before +after):\n%s", i, diff)
		}
	}
	require.Equal(t, basics.Round(0), l.Latest())
}

func TestRentExemption(t *testing.T) {
	partitiontest.PartitionTest(t)

	env := makeTestEnv(2)
	l := openTestLedger(t, env, memConfig("pebbledb"))
	proto := l.ConsensusParams()
	var owner basics.Address
	owner[0] = 9

	create := func(amount uint64) transactions.SignedTxn {
		ix, err := apply.CreateAccountInstruction(env.addr(0), env.addr(1), basics.Amount{Raw: amount}, 100, owner)
		require.NoError(t, err)
		tx := transactions.Transaction{
			FeePayer:     env.addr(0),
			Fee:          basics.Amount{Raw: proto.MinTxnFee},
			FirstValid:   1,
			LastValid:    10,
			GenesisID:    l.GenesisID(),
			Note:         []byte(fmt.Sprint(amount)),
			Instructions: []transactions.Instruction{ix},
		}
		return tx.Sign(env.keys[0], env.keys[1])
	}

	// env.addr(1) already holds a balance, so it cannot be created
	_, err := l.Submit(create(proto.MinBalance(100).Raw))
	require.ErrorIs(t, err, ledgercore.ErrAccountAlreadyInUse)

	fresh := makeTestEnv(3)
	env.keys[1] = fresh.keys[2]
	_, err = l.Submit(create(proto.MinBalance(100).Raw - 1))
	require.ErrorIs(t, err, ledgercore.ErrInsufficientFundsForRent)

	_, err = l.Submit(create(proto.MinBalance(100).Raw))
	require.NoError(t, err)
	ad, err := l.Lookup(env.addr(1))
	require.NoError(t, err)
	require.Equal(t, owner, ad.Owner)
	require.Len(t, ad.Data, 100)
}

func TestInvalidFeePayer(t *testing.T) {
	partitiontest.PartitionTest(t)

	env := makeTestEnv(2)
	var owner basics.Address
	owner[0] = 1
	env.genesis.Allocation[0].State.Owner = owner
	l := openTestLedger(t, env, memConfig("pebbledb"))

	_, err := l.Submit(env.transfer(l, 0, 1, 1, ""))
	require.ErrorIs(t, err, ErrInvalidFeePayer)
}

func TestReopenPersists(t *testing.T) {
	partitiontest.PartitionTest(t)

	for _, store := range []string{"pebbledb", "sqlite"} {
		t.Run(store, func(t *testing.T) {
			env := makeTestEnv(2)
			cfg := config.GetDefaultLocal()
			cfg.LedgerStore = store
			prefix := filepath.Join(t.TempDir(), "ledger")

			l, err := OpenLedger(logging.TestingLog(t), prefix, cfg, env.genesis)
			require.NoError(t, err)
			_, err = l.Submit(env.transfer(l, 0, 1, 7, ""))
			require.NoError(t, err)
			require.NoError(t, l.Close())

			l, err = OpenLedger(logging.TestingLog(t), prefix, cfg, env.genesis)
			require.NoError(t, err)
			require.Equal(t, basics.Round(1), l.Latest())
			require.Equal(t, uint64(initialBalance+7), balance(t, l, env.addr(1)))
			require.NoError(t, l.Close())

			other := makeTestEnv(1)
			_, err = OpenLedger(logging.TestingLog(t), prefix, cfg, other.genesis)
			require.ErrorIs(t, err, ErrGenesisMismatch)
		})
	}
}

func TestConcurrentSubmit(t *testing.T) {
	partitiontest.PartitionTest(t)

	const payers = 8
	const perPayer = 5
	env := makeTestEnv(payers + 1)
	l := openTestLedger(t, env, memConfig("pebbledb"))

	var eg errgroup.Group
	for p := 0; p < payers; p++ {
		p := p
		eg.Go(func() error {
			for i := 0; i < perPayer; i++ {
				ix, err := apply.TransferInstruction(env.addr(p), env.addr(payers), basics.Amount{Raw: 1})
				if err != nil {
					return err
				}
				tx := transactions.Transaction{
					FeePayer:     env.addr(p),
					Fee:          basics.Amount{Raw: l.ConsensusParams().MinTxnFee},
					FirstValid:   1,
					LastValid:    basics.Round(l.ConsensusParams().MaxTxnLife),
					GenesisID:    l.GenesisID(),
					Note:         []byte(fmt.Sprintf("%d/%d", p, i)),
					Instructions: []transactions.Instruction{ix},
				}
				if _, err := l.Submit(tx.Sign(env.keys[p])); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	require.Equal(t, basics.Round(payers*perPayer), l.Latest())
	require.Equal(t, uint64(initialBalance+payers*perPayer), balance(t, l, env.addr(payers)))
	total, _, err := l.Totals()
	require.NoError(t, err)
	require.Equal(t, uint64((payers+1)*initialBalance)-payers*perPayer*l.ConsensusParams().MinTxnFee, total.Raw)
}
