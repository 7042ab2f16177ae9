// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket namespaces keys by prefixing them, so several record kinds share one store.
type Bucket string

func (b Bucket) key(k []byte) []byte {
	out := make([]byte, 0, len(b)+len(k))
	return append(append(out, b...), k...)
}

func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucketPutter{b, src}, src}
}

type bucketPutter struct {
	bucket Bucket
	src    Putter
}

func (p *bucketPutter) Put(key, val []byte) error { return p.src.Put(p.bucket.key(key), val) }
func (p *bucketPutter) Delete(key []byte) error   { return p.src.Delete(p.bucket.key(key)) }

type bucketStore struct {
	bucketPutter
	store Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error) { return s.store.Get(s.bucket.key(key)) }
func (s *bucketStore) Has(key []byte) (bool, error)   { return s.store.Has(s.bucket.key(key)) }
func (s *bucketStore) IsNotFound(err error) bool      { return s.store.IsNotFound(err) }

func (s *bucketStore) NewBatch() Batch {
	batch := s.store.NewBatch()
	return &bucketBatch{bucketPutter{s.bucket, batch}, batch}
}

// Iterate walks the bucket's keys in r, with the prefix stripped.
func (s *bucketStore) Iterate(r Range) Iterator {
	limit := util.BytesPrefix([]byte(s.bucket)).Limit
	if len(r.Limit) > 0 {
		limit = s.bucket.key(r.Limit)
	}
	return &bucketIterator{
		Iterator: s.store.Iterate(Range{Start: s.bucket.key(r.Start), Limit: limit}),
		prefix:   len(s.bucket),
	}
}

type bucketBatch struct {
	bucketPutter
	batch Batch
}

func (b *bucketBatch) Len() int     { return b.batch.Len() }
func (b *bucketBatch) Write() error { return b.batch.Write() }

type bucketIterator struct {
	Iterator
	prefix int
}

func (it *bucketIterator) Key() []byte { return it.Iterator.Key()[it.prefix:] }
