// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb implements kv.Store on goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/rewards/kv"
)

var _ kv.Store = (*DB)(nil)

const minCacheMiB = 16

// Options tunes a persistent database. Values below 16 are raised to 16.
type Options struct {
	CacheMiB  int
	OpenFiles int
}

// Every write is synced, a committed distribution must survive a crash.
var syncWrite = &opt.WriteOptions{Sync: true}

// DB is a goleveldb database.
type DB struct {
	*leveldb.DB
	stg storage.Storage
}

// Open opens the database at path, creating it when missing.
func Open(path string, opts Options) (*DB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open storage")
	}
	return open(stg, opts)
}

// OpenMem opens a database kept in memory.
func OpenMem() (*DB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*DB, error) {
	cache := max(opts.CacheMiB, minCacheMiB)
	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: max(opts.OpenFiles, minCacheMiB),
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &DB{db, stg}, nil
}

// Close closes the database and releases its storage lock.
func (d *DB) Close() error {
	err := d.DB.Close()
	if cerr := d.stg.Close(); err == nil {
		err = cerr
	}
	return err
}

func (d *DB) IsNotFound(err error) bool {
	return errors.Cause(err) == leveldb.ErrNotFound
}

func (d *DB) Get(key []byte) ([]byte, error) { return d.DB.Get(key, nil) }
func (d *DB) Has(key []byte) (bool, error)   { return d.DB.Has(key, nil) }
func (d *DB) Put(key, val []byte) error      { return d.DB.Put(key, val, syncWrite) }
func (d *DB) Delete(key []byte) error        { return d.DB.Delete(key, syncWrite) }

func (d *DB) NewBatch() kv.Batch {
	return &batch{db: d.DB}
}

func (d *DB) Iterate(r kv.Range) kv.Iterator {
	return d.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, nil)
}

type batch struct {
	db *leveldb.DB
	leveldb.Batch
}

func (b *batch) Put(key, val []byte) error {
	b.Batch.Put(key, val)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.Batch.Delete(key)
	return nil
}

func (b *batch) Write() error {
	return b.db.Write(&b.Batch, syncWrite)
}
