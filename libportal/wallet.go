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
	"sort"

	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/protocol"
)

// WalletFilename is the name of the key file inside a data dir
const WalletFilename = "wallet.json"

var (
	// ErrKeyNotFound is returned when the wallet holds no key for a name or address.
	ErrKeyNotFound = errors.New("no such key in wallet")
	// ErrDuplicateKeyName is returned when a key name is already taken.
	ErrDuplicateKeyName = errors.New("key name already in use")
)

type walletKey struct {
	_struct struct{} `codec:""`

	Name    string         `codec:"name"`
	Address basics.Address `codec:"addr"`
	Seed    crypto.Seed    `codec:"seed"`
}

type walletFile struct {
	_struct struct{} `codec:""`

	Keys []walletKey `codec:"keys"`
}

// KeyInfo names one wallet key without exposing its seed.
type KeyInfo struct {
	Name    string
	Address basics.Address
}

// Wallet is an unencrypted file of ed25519 seeds, keyed by a local name.
// It is meant for development networks only.
type Wallet struct {
	file *lockedFile
	keys []walletKey
}

// OpenWallet loads the wallet at path. A missing file is an empty wallet.
func OpenWallet(path string) (*Wallet, error) {
	w := &Wallet{file: newLockedFile(path)}
	raw, err := w.file.read()
	if errors.Is(err, os.ErrNotExist) {
		return w, nil
	}
	if err != nil {
		return nil, err
	}
	var f walletFile
	if err := protocol.DecodeJSON(raw, &f); err != nil {
		return nil, fmt.Errorf("cannot parse wallet %s: %w", path, err)
	}
	for _, k := range f.Keys {
		if basics.Address(crypto.GenerateSignatureSecrets(k.Seed).SignatureVerifier) != k.Address {
			return nil, fmt.Errorf("wallet %s: key %q does not match its address", path, k.Name)
		}
	}
	w.keys = f.Keys
	return w, nil
}

func (w *Wallet) save() error {
	return w.file.write(protocol.EncodeJSON(&walletFile{Keys: w.keys}), 0600)
}

// GenerateKey creates a fresh key under name and persists the wallet.
func (w *Wallet) GenerateKey(name string) (basics.Address, error) {
	_, seed := crypto.NewSignatureSecrets()
	return w.ImportSeed(name, seed)
}

// ImportSeed stores seed under name and persists the wallet.
func (w *Wallet) ImportSeed(name string, seed crypto.Seed) (basics.Address, error) {
	if name == "" {
		return basics.Address{}, errors.New("key name cannot be empty")
	}
	for _, k := range w.keys {
		if k.Name == name {
			return basics.Address{}, fmt.Errorf("%w: %s", ErrDuplicateKeyName, name)
		}
	}
	addr := basics.Address(crypto.GenerateSignatureSecrets(seed).SignatureVerifier)
	w.keys = append(w.keys, walletKey{Name: name, Address: addr, Seed: seed})
	if err := w.save(); err != nil {
		w.keys = w.keys[:len(w.keys)-1]
		return basics.Address{}, err
	}
	return addr, nil
}

// Keys lists the wallet contents sorted by name.
func (w *Wallet) Keys() []KeyInfo {
	out := make([]KeyInfo, len(w.keys))
	for i, k := range w.keys {
		out[i] = KeyInfo{Name: k.Name, Address: k.Address}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resolve maps a key name or a base58 address to an address. Addresses not
// held by the wallet resolve too, since read-only commands accept them.
func (w *Wallet) Resolve(nameOrAddress string) (basics.Address, error) {
	for _, k := range w.keys {
		if k.Name == nameOrAddress {
			return k.Address, nil
		}
	}
	addr, err := basics.UnmarshalAddress(nameOrAddress)
	if err != nil {
		return basics.Address{}, fmt.Errorf("%w: %s", ErrKeyNotFound, nameOrAddress)
	}
	return addr, nil
}

// Secrets returns the signing key for addr.
func (w *Wallet) Secrets(addr basics.Address) (*crypto.SignatureSecrets, error) {
	for _, k := range w.keys {
		if k.Address == addr {
			return crypto.GenerateSignatureSecrets(k.Seed), nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrKeyNotFound, addr)
}
