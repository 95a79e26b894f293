/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"sync"

	"github.com/CESSProject/cess-vfsse/pkg/cache"
	"github.com/CESSProject/cess-vfsse/pkg/keys"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/CESSProject/cess-vfsse/pkg/tag"
	"github.com/pkg/errors"
)

const Cach_prefix_state = "state:"

// Client owns the key material and remembers, per keyword, the state
// of the latest insert. That state is the starting point of a search.
type Client struct {
	lock       *sync.Mutex
	km         *keys.KeyMaterial
	engine     *tag.Engine
	cach       cache.Cache
	blockSize  int
	sectorSize int
}

// Pending is a prepared insert. Its keyword states are recorded only by
// Commit, after the node accepted the request.
type Pending struct {
	Request *protocol.InsertRequest
	// encrypted file body sent along with Request
	Blob []byte

	prev map[string]string
	cur  map[string]string
}

func New(km *keys.KeyMaterial, cach cache.Cache, blockSize, sectorSize, workers int) *Client {
	return &Client{
		lock:       new(sync.Mutex),
		km:         km,
		engine:     tag.NewEngine(km, workers),
		cach:       cach,
		blockSize:  blockSize,
		sectorSize: sectorSize,
	}
}

func (c *Client) PublicKey() string {
	return c.km.PublicKey()
}

// State returns the state of the latest committed insert of keyword w,
// or "" if w was never inserted.
func (c *Client) State(w string) (string, error) {
	val, err := c.cach.Get([]byte(Cach_prefix_state + w))
	if err != nil {
		if errors.Is(err, cache.NotFound) {
			return "", nil
		}
		return "", errors.Wrapf(err, "[Get] state of %s", w)
	}
	return string(val), nil
}

// Keywords lists every keyword with a recorded state.
func (c *Client) Keywords() ([]string, error) {
	return c.cach.QueryPrefixKeyList(Cach_prefix_state)
}

// PrepareInsert encrypts plain, tags the ciphertext and links fileID
// into the chain of every distinct keyword.
func (c *Client) PrepareInsert(fileID string, plain []byte, keywords []string) (*Pending, error) {
	if fileID == "" {
		return nil, errors.Wrap(protocol.ErrFormat, protocol.ERR_EmptyFileID)
	}
	blob, err := c.km.EncryptFile(plain)
	if err != nil {
		return nil, errors.Wrap(err, "[EncryptFile]")
	}
	tags, err := c.engine.AuthTags(fileID, blob, c.blockSize, c.sectorSize)
	if err != nil {
		return nil, err
	}

	p := &Pending{
		Request: &protocol.InsertRequest{
			PK:         c.km.PublicKey(),
			FileID:     fileID,
			Tags:       tags,
			State:      protocol.StateValid,
			Keywords:   make([]protocol.KeywordEntry, 0, len(keywords)),
			BlockSize:  c.blockSize,
			SectorSize: c.sectorSize,
		},
		Blob: blob,
		prev: make(map[string]string, len(keywords)),
		cur:  make(map[string]string, len(keywords)),
	}
	for _, w := range keywords {
		if w == "" {
			return nil, errors.Wrap(protocol.ErrFormat, protocol.ERR_EmptyKeyword)
		}
		if _, ok := p.cur[w]; ok {
			continue
		}
		token, err := c.km.SearchToken(w)
		if err != nil {
			return nil, err
		}
		prev, err := c.State(w)
		if err != nil {
			return nil, err
		}
		cur, err := tag.NewState()
		if err != nil {
			return nil, err
		}
		entry, err := c.engine.KeywordEntry(fileID, token, prev, cur)
		if err != nil {
			return nil, err
		}
		p.Request.Keywords = append(p.Request.Keywords, entry)
		p.prev[w] = prev
		p.cur[w] = cur
	}
	return p, nil
}

// Commit records the keyword states of an accepted insert. It fails
// without writing if another insert of one of the keywords was
// committed in between.
func (c *Client) Commit(p *Pending) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	kvs := make([]cache.KV, 0, len(p.cur))
	for w, cur := range p.cur {
		stored, err := c.State(w)
		if err != nil {
			return err
		}
		if stored != p.prev[w] {
			return errors.Wrapf(protocol.ErrState, "keyword %s advanced since the insert was prepared", w)
		}
		kvs = append(kvs, cache.KV{Key: []byte(Cach_prefix_state + w), Value: []byte(cur)})
	}
	if len(kvs) == 0 {
		return nil
	}
	return c.cach.WriteBatch(kvs)
}

// SearchRequest builds the search of keyword w from its latest state.
func (c *Client) SearchRequest(w string) (*protocol.SearchRequest, error) {
	token, err := c.km.SearchToken(w)
	if err != nil {
		return nil, err
	}
	std, err := c.State(w)
	if err != nil {
		return nil, err
	}
	if std == "" {
		return nil, errors.Wrapf(protocol.ErrNotFound, "keyword %s was never inserted", w)
	}
	return &protocol.SearchRequest{PK: c.km.PublicKey(), Token: token, Std: std}, nil
}

func (c *Client) DeleteRequest(fileID string) (*protocol.DeleteRequest, error) {
	if fileID == "" {
		return nil, errors.Wrap(protocol.ErrFormat, protocol.ERR_EmptyFileID)
	}
	return &protocol.DeleteRequest{
		FileID: fileID,
		PK:     c.km.PublicKey(),
		Del:    c.engine.DeletionToken(fileID),
	}, nil
}

func (c *Client) DecryptFile(blob []byte) ([]byte, error) {
	return c.km.DecryptFile(blob)
}
