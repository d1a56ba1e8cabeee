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

package kvstore

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/algorand/go-gifportal/test/partitiontest"
)

func forEachImpl(t *testing.T, inMem bool, fn func(t *testing.T, impl string, dbdir string)) {
	for _, impl := range []string{"pebbledb", "sqlite"} {
		impl := impl
		t.Run(fmt.Sprintf("%s/mem=%v", impl, inMem), func(t *testing.T) {
			fn(t, impl, filepath.Join(t.TempDir(), "kv"))
		})
	}
}

func TestImplementations(t *testing.T) {
	partitiontest.PartitionTest(t)

	require.Equal(t, []string{"pebble", "pebbledb", "sqlite"}, Implementations())
	_, err := NewKVStore("leveldb", t.TempDir(), true)
	require.Error(t, err)
}

func TestGetSetDelete(t *testing.T) {
	partitiontest.PartitionTest(t)

	forEachImpl(t, true, func(t *testing.T, impl string, dbdir string) {
		db, err := NewKVStore(impl, dbdir, true)
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Get([]byte("missing"))
		require.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, db.Set([]byte("a"), []byte("1")))
		v, err := db.Get([]byte("a"))
		require.NoError(t, err)
		require.Equal(t, []byte("1"), v)

		require.NoError(t, db.Set([]byte("a"), []byte("2")))
		v, err = db.Get([]byte("a"))
		require.NoError(t, err)
		require.Equal(t, []byte("2"), v)

		require.NoError(t, db.Delete([]byte("a")))
		_, err = db.Get([]byte("a"))
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBatchAtomic(t *testing.T) {
	partitiontest.PartitionTest(t)

	forEachImpl(t, true, func(t *testing.T, impl string, dbdir string) {
		db, err := NewKVStore(impl, dbdir, true)
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, db.Set([]byte("gone"), []byte("x")))

		b := db.NewBatch()
		require.NoError(t, b.Set([]byte("k1"), []byte("v1")))
		require.NoError(t, b.Set([]byte("k2"), []byte("v2")))
		require.NoError(t, b.Delete([]byte("gone")))

		// nothing visible before commit
		_, err = db.Get([]byte("k1"))
		require.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, b.Commit())
		v, err := db.Get([]byte("k2"))
		require.NoError(t, err)
		require.Equal(t, []byte("v2"), v)
		_, err = db.Get([]byte("gone"))
		require.ErrorIs(t, err, ErrNotFound)

		cancelled := db.NewBatch()
		require.NoError(t, cancelled.Set([]byte("k3"), []byte("v3")))
		cancelled.Cancel()
		_, err = db.Get([]byte("k3"))
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestIteratorRange(t *testing.T) {
	partitiontest.PartitionTest(t)

	forEachImpl(t, true, func(t *testing.T, impl string, dbdir string) {
		db, err := NewKVStore(impl, dbdir, true)
		require.NoError(t, err)
		defer db.Close()

		for _, k := range []string{"acct:c", "acct:a", "acct:b", "meta:round", "txid:z"} {
			require.NoError(t, db.Set([]byte(k), []byte("v"+k)))
		}

		it := db.NewIterator([]byte("acct:"), []byte("acct;"))
		defer it.Close()
		var keys []string
		for ; it.Valid(); it.Next() {
			keys = append(keys, string(it.Key()))
			v, err := it.Value()
			require.NoError(t, err)
			require.Equal(t, "v"+string(it.Key()), string(v))
		}
		require.Equal(t, []string{"acct:a", "acct:b", "acct:c"}, keys)
	})
}

func TestReopenPersists(t *testing.T) {
	partitiontest.PartitionTest(t)

	forEachImpl(t, false, func(t *testing.T, impl string, dbdir string) {
		db, err := NewKVStore(impl, dbdir, false)
		require.NoError(t, err)
		b := db.NewBatch()
		require.NoError(t, b.Set([]byte("round"), []byte{7}))
		require.NoError(t, b.Commit())
		require.NoError(t, db.Close())

		db, err = NewKVStore(impl, dbdir, false)
		require.NoError(t, err)
		defer db.Close()
		v, err := db.Get([]byte("round"))
		require.NoError(t, err)
		require.Equal(t, []byte{7}, v)
	})
}
