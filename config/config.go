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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/algorand/go-gifportal/data/basics"
)

// ConfigFilename is the name of the config.json file where we store per-data-dir settings
const ConfigFilename = "config.json"

// GenesisJSONFile is the name of the genesis.json file
const GenesisJSONFile = "genesis.json"

// LedgerFilenamePrefix is the prefix of the ledger database files inside a data dir
const LedgerFilenamePrefix = "ledger"

// Local holds the per-data-dir configuration settings.
type Local struct {
	// Version tracks the current version of the defaults so we can migrate old -> new
	Version uint32

	// BaseLoggerDebugLevel specifies the logging level. The levels range from 0 (critical error / silent)
	// to 5 (debug / verbose). The default value is 4 ('Info').
	BaseLoggerDebugLevel uint32

	// LogSizeLimit is the log file size limit in bytes. When set to 0 logs will be written to stderr.
	LogSizeLimit uint64

	// LogFileName is the live log file inside the data dir.
	LogFileName string

	// LogArchiveName is where the live log is moved once it reaches LogSizeLimit.
	LogArchiveName string

	// LedgerStore selects the util/kvstore implementation backing the ledger: "pebbledb" or "sqlite".
	LedgerStore string

	// LedgerInMemory keeps the ledger out of the data dir entirely. Mostly useful for tests.
	LedgerInMemory bool

	// PortalProgramID is the base58 identity under which the portal program is registered.
	PortalProgramID string

	// PortalAccountSpace is the fixed byte size reserved for a new portal account, tag included.
	PortalAccountSpace uint64

	// TxnValidityRounds is how many rounds past the current one a client-built transaction stays valid.
	TxnValidityRounds uint64
}

var defaultLocal = Local{
	Version:              1,
	BaseLoggerDebugLevel: 4,
	LogSizeLimit:         1073741824,
	LogFileName:          "portal.log",
	LogArchiveName:       "portal.archive.log",
	LedgerStore:          "pebbledb",
	LedgerInMemory:       false,
	PortalProgramID:      "",
	PortalAccountSpace:   9000,
	TxnValidityRounds:    1000,
}

// GetDefaultLocal returns a copy of the current defaultLocal config
func GetDefaultLocal() Local {
	l := defaultLocal
	l.PortalProgramID = DefaultPortalProgramID
	return l
}

// LoadConfigFromDisk returns a Local config structure based on merging the defaults
// with settings loaded from the config file from the custom dir.  If the custom file
// cannot be loaded, the default config is returned (with the error from loading the
// custom file).
func LoadConfigFromDisk(custom string) (c Local, err error) {
	return loadConfigFromFile(filepath.Join(custom, ConfigFilename))
}

func loadConfigFromFile(configFile string) (c Local, err error) {
	c = GetDefaultLocal()
	f, err := os.Open(configFile)
	if err != nil {
		return c, err
	}
	defer f.Close()

	err = loadConfig(f, &c)
	return c, err
}

func loadConfig(reader io.Reader, config *Local) error {
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	return dec.Decode(config)
}

// SaveToDisk writes the Local settings into a root/ConfigFilename file
func (cfg Local) SaveToDisk(root string) error {
	configpath := filepath.Join(root, ConfigFilename)
	return cfg.SaveToFile(os.ExpandEnv(configpath))
}

// SaveToFile saves the config to a specific filename, allowing overriding the default name
func (cfg Local) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "\t")
	enc.SetEscapeHTML(false)
	return enc.Encode(cfg)
}

// PortalProgram parses the configured portal program identity.
func (cfg Local) PortalProgram() (basics.Address, error) {
	id := cfg.PortalProgramID
	if id == "" {
		id = DefaultPortalProgramID
	}
	addr, err := basics.UnmarshalAddress(id)
	if err != nil {
		return basics.Address{}, fmt.Errorf("invalid PortalProgramID: %w", err)
	}
	return addr, nil
}
