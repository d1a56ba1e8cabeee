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
	"errors"
	"fmt"

	"github.com/algorand/go-deadlock"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/bookkeeping"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/ledger/apply"
	"github.com/algorand/go-gifportal/logging"
	"github.com/algorand/go-gifportal/protocol"
	"github.com/algorand/go-gifportal/util/kvstore"
	"github.com/algorand/go-gifportal/util/metrics"
)

// ErrGenesisMismatch is returned when a ledger directory was created from a
// different genesis than the one it is opened with.
var ErrGenesisMismatch = errors.New("ledger was initialized from a different genesis")

// Ledger is a database storing the state of every account and the ids of
// every committed transaction. Each committed transaction advances the
// ledger by one round.
type Ledger struct {
	// mu serializes Submit and guards latest; readers take the read lock
	mu deadlock.RWMutex

	store       kvstore.KVStore
	genesisID   string
	genesisHash crypto.Digest
	proto       config.ConsensusParams
	programs    *apply.Registry
	latest      basics.Round

	log     logging.Logger
	metrics *ledgerMetrics
}

// OpenLedger creates a Ledger object, using the kvstore implementation named by
// cfg.LedgerStore under dbPathPrefix. A fresh store is loaded with the genesis
// allocations; an existing one must have been created from the same genesis.
func OpenLedger(log logging.Logger, dbPathPrefix string, cfg config.Local, genesis bookkeeping.Genesis, procs ...apply.Processor) (*Ledger, error) {
	proto, ok := config.Consensus[genesis.Proto]
	if !ok {
		return nil, fmt.Errorf("unsupported protocol %s", genesis.Proto)
	}
	programs, err := apply.MakeRegistry(procs...)
	if err != nil {
		return nil, err
	}
	store, err := kvstore.NewKVStore(cfg.LedgerStore, dbPathPrefix, cfg.LedgerInMemory)
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		store:       store,
		genesisID:   genesis.ID(),
		genesisHash: genesis.Hash(),
		proto:       proto,
		programs:    programs,
		log:         log.With("genesis", genesis.ID()),
		metrics:     makeLedgerMetrics(),
	}
	if err = l.initialize(genesis); err != nil {
		store.Close()
		return nil, err
	}
	l.metrics.round.Set(uint64(l.latest))
	return l, nil
}

func (l *Ledger) initialize(genesis bookkeeping.Genesis) error {
	stored, found, err := readGenesisHash(l.store)
	if err != nil {
		return err
	}
	if found {
		if stored != l.genesisHash {
			return fmt.Errorf("%w: stored %v, opened with %v", ErrGenesisMismatch, stored, l.genesisHash)
		}
		raw, err := l.store.Get([]byte(roundKey))
		if err != nil {
			return err
		}
		l.latest, err = decodeRound(raw)
		if err == nil {
			l.log.Infof("reopened ledger at round %d", l.latest)
		}
		return err
	}

	balances, err := genesis.Balances()
	if err != nil {
		return err
	}
	batch := l.store.NewBatch()
	for addr, ad := range balances {
		if err := writeAccount(batch, addr, ad); err != nil {
			batch.Cancel()
			return err
		}
	}
	if err := batch.Set([]byte(roundKey), encodeRound(0)); err != nil {
		batch.Cancel()
		return err
	}
	if err := batch.Set([]byte(genesisKey), l.genesisHash[:]); err != nil {
		batch.Cancel()
		return err
	}
	if err := batch.Commit(); err != nil {
		return err
	}
	l.log.Infof("initialized ledger with %d genesis accounts", len(balances))
	return nil
}

// Close shuts down the ledger and its store.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Close()
}

// Latest returns the latest committed round.
func (l *Ledger) Latest() basics.Round {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.latest
}

// GenesisID returns the id transactions must name to be accepted.
func (l *Ledger) GenesisID() string {
	return l.genesisID
}

// GenesisHash returns the hash of the genesis the ledger was created from.
func (l *Ledger) GenesisHash() crypto.Digest {
	return l.genesisHash
}

// ConsensusParams returns the consensus parameters the ledger applies.
func (l *Ledger) ConsensusParams() config.ConsensusParams {
	return l.proto
}

// Metrics exposes the ledger's metric registry.
func (l *Ledger) Metrics() *metrics.Registry {
	return l.metrics.registry
}

// Lookup returns the latest committed state of addr. An unallocated account
// is returned as the zero AccountData.
func (l *Ledger) Lookup(addr basics.Address) (basics.AccountData, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return readAccount(l.store, addr)
}

// Totals returns the sum of all balances and the number of allocated accounts.
func (l *Ledger) Totals() (total basics.Amount, accounts int, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	it := l.store.NewIterator([]byte(accountPrefix), prefixEnd(accountPrefix))
	defer it.Close()
	var ot basics.OverflowTracker
	for ; it.Valid(); it.Next() {
		raw, err := it.Value()
		if err != nil {
			return basics.Amount{}, 0, err
		}
		var ad basics.AccountData
		if err := protocol.DecodeReflect(raw, &ad); err != nil {
			return basics.Amount{}, 0, err
		}
		total = ot.AddA(total, ad.Balance)
		accounts++
	}
	if ot.Overflowed {
		return basics.Amount{}, 0, errors.New("ledger: total balance overflows")
	}
	return total, accounts, nil
}

// lookup implements roundCowParent
func (l *Ledger) lookup(addr basics.Address) (basics.AccountData, error) {
	return readAccount(l.store, addr)
}

// txnSeen implements roundCowParent
func (l *Ledger) txnSeen(txid transactions.Txid) (bool, error) {
	_, err := l.store.Get(txidKey(txid))
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
