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
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

func init() {
	kvImpls["sqlite"] = sqliteFactory{}
}

type sqliteFactory struct{}

func (sqliteFactory) New(dbdir string, inMem bool) (KVStore, error) {
	return NewSQLiteDB(dbdir, inMem)
}

// busy is the time to wait for a sqlite lock from another process, in ms.
const busy = 1000

const maxRetries = 10

// SQLiteDB implements KVStore on a single sqlite table
type SQLiteDB struct {
	Handle *sql.DB
}

// uri returns the sqlite URI for a db file.
func uri(filename string, memory bool) string {
	u := fmt.Sprintf("file:%s?_busy_timeout=%d&_synchronous=full&_txlock=immediate", filename, busy)
	if memory {
		u += "&mode=memory&cache=shared"
	} else {
		u += "&_journal_mode=wal"
	}
	return u
}

// NewSQLiteDB opens (creating if needed) a sqlite KVStore at dbdir.sqlite
func NewSQLiteDB(dbdir string, inMem bool) (*SQLiteDB, error) {
	handle, err := sql.Open("sqlite3", uri(dbdir+".sqlite", inMem))
	if err != nil {
		return nil, err
	}
	// one connection keeps shared-cache memory databases alive and serializes writers
	handle.SetMaxOpenConns(1)
	_, err = handle.Exec("CREATE TABLE IF NOT EXISTS kv (k BLOB PRIMARY KEY, v BLOB NOT NULL) WITHOUT ROWID")
	if err != nil {
		handle.Close()
		return nil, err
	}
	return &SQLiteDB{Handle: handle}, nil
}

// retry runs fn until it succeeds or fails with an error that is not a lock conflict.
func retry(fn func() error) (err error) {
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if !dbretry(err) {
			return err
		}
		time.Sleep(time.Duration(i+1) * 10 * time.Millisecond)
	}
	return err
}

// dbretry returns true if the error might be temporary
func dbretry(obj error) bool {
	var err sqlite3.Error
	return errors.As(obj, &err) && (err.Code == sqlite3.ErrLocked || err.Code == sqlite3.ErrBusy)
}

// Close closes the database
func (db *SQLiteDB) Close() error { return db.Handle.Close() }

// Get a key
func (db *SQLiteDB) Get(key []byte) (val []byte, err error) {
	err = retry(func() error {
		return db.Handle.QueryRow("SELECT v FROM kv WHERE k = ?", key).Scan(&val)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if val == nil {
		val = []byte{}
	}
	return val, nil
}

// Set a key to value
func (db *SQLiteDB) Set(key, value []byte) error {
	return retry(func() error {
		_, err := db.Handle.Exec("INSERT OR REPLACE INTO kv (k, v) VALUES (?, ?)", key, nonNil(value))
		return err
	})
}

// Delete a key
func (db *SQLiteDB) Delete(key []byte) error {
	return retry(func() error {
		_, err := db.Handle.Exec("DELETE FROM kv WHERE k = ?", key)
		return err
	})
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

type sqliteOp struct {
	key    []byte
	value  []byte
	delete bool
}

// sqliteBatch buffers mutations and applies them in one sql transaction
type sqliteBatch struct {
	db  *SQLiteDB
	ops []sqliteOp
}

// NewBatch creates a batch writer
func (db *SQLiteDB) NewBatch() BatchWriter { return &sqliteBatch{db: db} }

func (b *sqliteBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, sqliteOp{key: bytes.Clone(key), value: bytes.Clone(nonNil(value))})
	return nil
}

func (b *sqliteBatch) Delete(key []byte) error {
	b.ops = append(b.ops, sqliteOp{key: bytes.Clone(key), delete: true})
	return nil
}

func (b *sqliteBatch) Commit() error {
	return retry(func() error {
		tx, err := b.db.Handle.Begin()
		if err != nil {
			return err
		}
		for _, op := range b.ops {
			if op.delete {
				_, err = tx.Exec("DELETE FROM kv WHERE k = ?", op.key)
			} else {
				_, err = tx.Exec("INSERT OR REPLACE INTO kv (k, v) VALUES (?, ?)", op.key, op.value)
			}
			if err != nil {
				tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	})
}

func (b *sqliteBatch) Cancel() { b.ops = nil }

// sqliteIterator holds a materialized range; with a single connection an open
// cursor would block every other statement until Close.
type sqliteIterator struct {
	keys   [][]byte
	values [][]byte
	pos    int
}

// NewIterator scans a range: start and end are optional (set to nil/empty otherwise)
func (db *SQLiteDB) NewIterator(start, end []byte) Iterator {
	it := &sqliteIterator{}
	query := "SELECT k, v FROM kv WHERE k >= ?"
	args := []interface{}{nonNil(start)}
	if len(end) > 0 {
		query += " AND k < ?"
		args = append(args, end)
	}
	query += " ORDER BY k"
	rows, err := db.Handle.Query(query, args...)
	if err != nil {
		return it
	}
	defer rows.Close()
	for rows.Next() {
		var k, v []byte
		if rows.Scan(&k, &v) != nil {
			break
		}
		it.keys = append(it.keys, k)
		it.values = append(it.values, v)
	}
	return it
}

func (i *sqliteIterator) Next()       { i.pos++ }
func (i *sqliteIterator) Valid() bool { return i.pos < len(i.keys) }
func (i *sqliteIterator) Close()      { i.keys, i.values = nil, nil }
func (i *sqliteIterator) Key() []byte { return i.keys[i.pos] }

func (i *sqliteIterator) Value() ([]byte, error) { return i.values[i.pos], nil }
