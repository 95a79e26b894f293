/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package index

import (
	"encoding/json"
	"sync"

	"github.com/CESSProject/cess-vfsse/pkg/cache"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
)

const (
	Cach_prefix_index  = "index:"
	Cach_prefix_search = "search:"
	Cach_prefix_blob   = "blob:"
)

// Store holds the index database (by file id), the search database
// (by fingerprint) and the encrypted file bodies. One RWMutex guards
// all three: insert and delete write, search, proof and verify read.
// A change reaches the maps only after it was written to cach.
type Store struct {
	lock   *sync.RWMutex
	ctx    *pbc.Context
	g      *pbc.Element
	cach   cache.Cache
	files  map[string]*IndexEntry
	search map[string]*SearchIndexEntry
	blobs  map[string][]byte
}

// NewStore returns an empty store. g is the generator of the public
// parameters, used to check deletion tokens. cach may be nil for a
// memory-only store; Load and Compact are then no-ops.
func NewStore(ctx *pbc.Context, g *pbc.Element, cach cache.Cache) *Store {
	return &Store{
		lock:   new(sync.RWMutex),
		ctx:    ctx,
		g:      g,
		cach:   cach,
		files:  make(map[string]*IndexEntry),
		search: make(map[string]*SearchIndexEntry),
		blobs:  make(map[string][]byte),
	}
}

// Context returns the pairing context of the store.
func (s *Store) Context() *pbc.Context {
	return s.ctx
}

// Load replaces the in-memory state with the persisted snapshot.
// On error the store is left untouched.
func (s *Store) Load() error {
	if s.cach == nil {
		return nil
	}
	files := make(map[string]*IndexEntry)
	search := make(map[string]*SearchIndexEntry)
	blobs := make(map[string][]byte)

	ids, err := s.cach.QueryPrefixKeyList(Cach_prefix_index)
	if err != nil {
		return errors.Wrap(err, "[QueryPrefixKeyList]")
	}
	for _, id := range ids {
		var entry IndexEntry
		if err = s.loadJSON(Cach_prefix_index+id, &entry); err != nil {
			return err
		}
		files[id] = &entry
		blob, err := s.cach.Get([]byte(Cach_prefix_blob + id))
		if err != nil {
			return errors.Wrapf(err, "[Get] blob of %s", id)
		}
		blobs[id] = blob
	}

	fps, err := s.cach.QueryPrefixKeyList(Cach_prefix_search)
	if err != nil {
		return errors.Wrap(err, "[QueryPrefixKeyList]")
	}
	for _, fp := range fps {
		var entry SearchIndexEntry
		if err = s.loadJSON(Cach_prefix_search+fp, &entry); err != nil {
			return err
		}
		if _, ok := files[entry.FileID]; !ok {
			return errors.Wrapf(protocol.ErrNotFound, "search entry %s refers to unknown file %s", fp, entry.FileID)
		}
		search[fp] = &entry
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.files, s.search, s.blobs = files, search, blobs
	return nil
}

func (s *Store) loadJSON(key string, v interface{}) error {
	buf, err := s.cach.Get([]byte(key))
	if err != nil {
		return errors.Wrapf(err, "[Get] %s", key)
	}
	if err = json.Unmarshal(buf, v); err != nil {
		return errors.Wrapf(protocol.ErrFormat, "%s: %v", key, err)
	}
	return nil
}

// commit writes one change in a single batch and then applies it to
// the maps. A failed write leaves the maps untouched. The caller holds
// the write lock.
func (s *Store) commit(files []*IndexEntry, links []*SearchIndexEntry, blobs map[string][]byte) error {
	if s.cach != nil {
		kvs := make([]cache.KV, 0, len(files)+len(links)+len(blobs))
		for _, v := range files {
			buf, err := json.Marshal(v)
			if err != nil {
				return err
			}
			kvs = append(kvs, cache.KV{Key: []byte(Cach_prefix_index + v.FileID), Value: buf})
		}
		for _, v := range links {
			buf, err := json.Marshal(v)
			if err != nil {
				return err
			}
			kvs = append(kvs, cache.KV{Key: []byte(Cach_prefix_search + v.Fingerprint), Value: buf})
		}
		for id, blob := range blobs {
			kvs = append(kvs, cache.KV{Key: []byte(Cach_prefix_blob + id), Value: blob})
		}
		if err := s.cach.WriteBatch(kvs); err != nil {
			return errors.Wrap(err, "[WriteBatch]")
		}
	}
	for _, v := range files {
		s.files[v.FileID] = v
	}
	for _, v := range links {
		s.search[v.Fingerprint] = v
	}
	for id, blob := range blobs {
		s.blobs[id] = blob
	}
	return nil
}

// Compact compacts the whole underlying database.
func (s *Store) Compact() error {
	if s.cach == nil {
		return nil
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.cach.Compact(nil, nil)
}

// View runs fn while holding the read lock, so fn sees one consistent
// snapshot of the store.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return fn(&Tx{s: s})
}

// Get returns a copy of the index entry of fileID.
func (s *Store) Get(fileID string) (*IndexEntry, error) {
	var entry *IndexEntry
	err := s.View(func(tx *Tx) error {
		var err error
		entry, err = tx.Get(fileID)
		return err
	})
	return entry, err
}

// Blob returns the encrypted body of fileID.
func (s *Store) Blob(fileID string) ([]byte, error) {
	var blob []byte
	err := s.View(func(tx *Tx) error {
		var err error
		blob, err = tx.Blob(fileID)
		return err
	})
	return blob, err
}

// Stat reports the number of files, deleted files and chain links.
func (s *Store) Stat() (files, deleted, links int) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	for _, v := range s.files {
		if !v.Valid() {
			deleted++
		}
	}
	return len(s.files), deleted, len(s.search)
}

// Tx is a read-only view handed out by View. It must not be used
// after View returns.
type Tx struct {
	s *Store
}

// Get returns a copy of the index entry of fileID.
func (tx *Tx) Get(fileID string) (*IndexEntry, error) {
	v, ok := tx.s.files[fileID]
	if !ok {
		return nil, errors.Wrapf(protocol.ErrNotFound, "file %s", fileID)
	}
	return v.clone(), nil
}

// Lookup finds the chain link stored under fingerprint.
func (tx *Tx) Lookup(fingerprint string) (*SearchIndexEntry, bool) {
	v, ok := tx.s.search[fingerprint]
	if !ok {
		return nil, false
	}
	return v.clone(), true
}

// Blob returns the encrypted body of fileID. The slice must not be
// modified.
func (tx *Tx) Blob(fileID string) ([]byte, error) {
	v, ok := tx.s.blobs[fileID]
	if !ok {
		return nil, errors.Wrapf(protocol.ErrNotFound, "file body %s", fileID)
	}
	return v, nil
}
