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
	"encoding/binary"
	"errors"

	"github.com/algorand/go-gifportal/crypto"
	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/data/transactions"
	"github.com/algorand/go-gifportal/protocol"
	"github.com/algorand/go-gifportal/util/kvstore"
)

// Key layout of the ledger inside its kvstore.
const (
	accountPrefix = "acct:"
	txidPrefix    = "txid:"
	roundKey      = "meta:round"
	genesisKey    = "meta:genesis"
)

func accountKey(addr basics.Address) []byte {
	return append([]byte(accountPrefix), addr[:]...)
}

func txidKey(txid transactions.Txid) []byte {
	return append([]byte(txidPrefix), txid[:]...)
}

// prefixEnd returns the smallest key greater than every key starting with prefix.
func prefixEnd(prefix string) []byte {
	end := []byte(prefix)
	end[len(end)-1]++
	return end
}

func encodeRound(rnd basics.Round) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(rnd))
	return buf[:]
}

func decodeRound(b []byte) (basics.Round, error) {
	if len(b) != 8 {
		return 0, errors.New("ledger: corrupt round record")
	}
	return basics.Round(binary.BigEndian.Uint64(b)), nil
}

func readAccount(kv kvstore.KVStore, addr basics.Address) (basics.AccountData, error) {
	raw, err := kv.Get(accountKey(addr))
	if errors.Is(err, kvstore.ErrNotFound) {
		return basics.AccountData{}, nil
	}
	if err != nil {
		return basics.AccountData{}, err
	}
	var ad basics.AccountData
	err = protocol.DecodeReflect(raw, &ad)
	return ad, err
}

// writeAccount stages ad in the batch. Accounts left with no balance are
// removed.
func writeAccount(b kvstore.BatchWriter, addr basics.Address, ad basics.AccountData) error {
	if ad.Balance.IsZero() {
		return b.Delete(accountKey(addr))
	}
	return b.Set(accountKey(addr), protocol.EncodeReflect(&ad))
}

func readGenesisHash(kv kvstore.KVStore) (crypto.Digest, bool, error) {
	raw, err := kv.Get([]byte(genesisKey))
	if errors.Is(err, kvstore.ErrNotFound) {
		return crypto.Digest{}, false, nil
	}
	if err != nil {
		return crypto.Digest{}, false, err
	}
	var d crypto.Digest
	if len(raw) != len(d) {
		return d, false, errors.New("ledger: corrupt genesis record")
	}
	copy(d[:], raw)
	return d, true, nil
}
