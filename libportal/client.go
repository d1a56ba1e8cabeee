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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/bookkeeping"
	"github.com/algorand/go-gifportal/ledger"
	"github.com/algorand/go-gifportal/logging"
	"github.com/algorand/go-gifportal/programs/portal"
	"github.com/algorand/go-gifportal/protocol"
)

// FaucetKeyName is the wallet name of the key funded at genesis.
const FaucetKeyName = "faucet"

// DefaultFaucetBalance is the genesis allocation of the faucet account.
const DefaultFaucetBalance = 1_000_000_000_000_000

// LockFilename guards a data dir against concurrent clients.
const LockFilename = "gifportal.lock"

// ErrDataDirLocked is returned when another client holds the data dir.
var ErrDataDirLocked = errors.New("data dir is in use by another gifportal process")

// Client is the entry point for all libportal functions. It owns the ledger
// and wallet of one data dir.
type Client struct {
	dataDir   string
	cfg       config.Local
	log       logging.Logger
	ledger    *ledger.Ledger
	wallet    *Wallet
	programID basics.Address
	fileLock  *flock.Flock
}

// InitDataDir lays out a new data dir: config.json, a wallet holding the
// faucet key, and a genesis funding that key. It refuses to overwrite an
// existing genesis.
func InitDataDir(dataDir string, network protocol.NetworkID, faucetBalance uint64) (basics.Address, error) {
	genesisPath := filepath.Join(dataDir, config.GenesisJSONFile)
	if _, err := os.Stat(genesisPath); err == nil {
		return basics.Address{}, fmt.Errorf("data dir %s is already initialized", dataDir)
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return basics.Address{}, err
	}
	if err := config.GetDefaultLocal().SaveToDisk(dataDir); err != nil {
		return basics.Address{}, err
	}

	wallet, err := OpenWallet(filepath.Join(dataDir, WalletFilename))
	if err != nil {
		return basics.Address{}, err
	}
	faucet, err := wallet.GenerateKey(FaucetKeyName)
	if err != nil {
		return basics.Address{}, err
	}

	genesis := bookkeeping.Genesis{
		SchemaID: "v1",
		Network:  network,
		Proto:    protocol.ConsensusCurrentVersion,
		Allocation: []bookkeeping.GenesisAllocation{{
			Address: faucet.String(),
			Comment: FaucetKeyName,
			State:   basics.AccountData{Balance: basics.Amount{Raw: faucetBalance}},
		}},
	}
	return faucet, genesis.SaveToFile(genesisPath)
}

// MakeClient opens the data dir created by InitDataDir. The data dir stays
// locked until Close.
func MakeClient(dataDir string, log logging.Logger) (*Client, error) {
	cfg, err := config.LoadConfigFromDisk(dataDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	genesis, err := bookkeeping.LoadGenesisFromFile(filepath.Join(dataDir, config.GenesisJSONFile))
	if err != nil {
		return nil, fmt.Errorf("cannot load genesis: %w", err)
	}
	programID, err := cfg.PortalProgram()
	if err != nil {
		return nil, err
	}
	proc, err := portal.MakeProcessor(programID, cfg.PortalAccountSpace)
	if err != nil {
		return nil, err
	}

	fileLock := flock.New(filepath.Join(dataDir, LockFilename))
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("unexpected failure in establishing %s: %w", LockFilename, err)
	}
	if !locked {
		return nil, ErrDataDirLocked
	}

	wallet, err := OpenWallet(filepath.Join(dataDir, WalletFilename))
	if err != nil {
		fileLock.Unlock()
		return nil, err
	}
	l, err := ledger.OpenLedger(log, filepath.Join(dataDir, config.LedgerFilenamePrefix), cfg, genesis, proc)
	if err != nil {
		fileLock.Unlock()
		return nil, err
	}
	return &Client{
		dataDir:   dataDir,
		cfg:       cfg,
		log:       log,
		ledger:    l,
		wallet:    wallet,
		programID: programID,
		fileLock:  fileLock,
	}, nil
}

// Close releases the ledger and the data dir lock.
func (c *Client) Close() error {
	err := c.ledger.Close()
	if err2 := c.fileLock.Unlock(); err == nil {
		err = err2
	}
	return err
}

// Ledger returns the underlying ledger.
func (c *Client) Ledger() *ledger.Ledger { return c.ledger }

// Wallet returns the data dir wallet.
func (c *Client) Wallet() *Wallet { return c.wallet }

// ProgramID is the address the portal program is registered under.
func (c *Client) ProgramID() basics.Address { return c.programID }

// Balance returns the balance of addr, zero for an account that does not exist.
func (c *Client) Balance(addr basics.Address) (basics.Amount, error) {
	ad, err := c.ledger.Lookup(addr)
	return ad.Balance, err
}
