/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package index

import (
	"testing"

	"github.com/CESSProject/cess-vfsse/pkg/cache"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/CESSProject/cess-vfsse/pkg/tag"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx *pbc.Context
	sk  *pbc.Element
	g   *pbc.Element
	pk  *pbc.Element
}

func newFixture(t *testing.T) *fixture {
	ctx, err := pbc.Default()
	require.NoError(t, err)
	g := ctx.RandomG1()
	sk := ctx.RandomZr()
	return &fixture{ctx: ctx, sk: sk, g: g, pk: ctx.NewG1().PowZn(g, sk)}
}

func (f *fixture) sign(x *pbc.Element) *pbc.Element {
	return f.ctx.NewG1().PowZn(x, f.sk)
}

// request builds a single block insert with one keyword link.
func (f *fixture) request(fileID, token, prev, cur string) *protocol.InsertRequest {
	ctx := f.ctx
	base := ctx.Mul(ctx.FileHash(fileID), ctx.StateHash(cur, token))
	if prev != "" {
		base = ctx.Div(base, ctx.StateHash(prev, token))
	}
	ptr, err := tag.SealPointer(cur, prev)
	if err != nil {
		panic(err)
	}
	return &protocol.InsertRequest{
		PK:     ctx.G1ToHex(f.pk),
		FileID: fileID,
		Tags:   []string{ctx.G1ToHex(f.sign(ctx.BlockHash(fileID, 0)))},
		State:  protocol.StateValid,
		Keywords: []protocol.KeywordEntry{{
			TiBar: ctx.G1ToHex(ctx.Fingerprint(token, cur)),
			Kt:    ctx.G1ToHex(f.sign(base)),
			Ptr:   ptr,
		}},
		BlockSize:  32,
		SectorSize: 32,
	}
}

func TestInsert(t *testing.T) {
	f := newFixture(t)
	s := NewStore(f.ctx, f.g, nil)

	req := f.request("f1", "T", "", "s1")
	require.NoError(t, s.Insert(req, make([]byte, 32)))

	entry, err := s.Get("f1")
	require.NoError(t, err)
	assert.True(t, entry.Valid())
	assert.Equal(t, 1, entry.BlockCount())
	assert.Equal(t, "", entry.Keywords[0].Pointer)

	err = s.View(func(tx *Tx) error {
		link, ok := tx.Lookup(req.Keywords[0].TiBar)
		assert.True(t, ok)
		assert.Equal(t, "f1", link.FileID)
		assert.Equal(t, protocol.StateValid, link.State)
		return nil
	})
	require.NoError(t, err)

	// duplicate file id
	err = s.Insert(f.request("f1", "T", "s1", "s2"), make([]byte, 32))
	assert.True(t, errors.Is(err, protocol.ErrState))

	// duplicate fingerprint
	err = s.Insert(f.request("f2", "T", "", "s1"), make([]byte, 32))
	assert.True(t, errors.Is(err, protocol.ErrState))
	_, err = s.Get("f2")
	assert.True(t, errors.Is(err, protocol.ErrNotFound))
}

func TestInsertRejects(t *testing.T) {
	f := newFixture(t)
	s := NewStore(f.ctx, f.g, nil)

	req := f.request("f1", "T", "", "s1")
	err := s.Insert(req, make([]byte, 64))
	assert.True(t, errors.Is(err, protocol.ErrFormat), "tag count")

	bad := *req
	bad.PK = "00"
	assert.True(t, errors.Is(s.Insert(&bad, make([]byte, 32)), protocol.ErrParameter))

	bad = *req
	bad.Tags = []string{"abc"}
	assert.True(t, errors.Is(s.Insert(&bad, make([]byte, 32)), protocol.ErrFormat))

	bad = *req
	bad.FileID = ""
	assert.True(t, errors.Is(s.Insert(&bad, make([]byte, 32)), protocol.ErrFormat))

	bad = *req
	bad.SectorSize = 5
	assert.True(t, errors.Is(s.Insert(&bad, make([]byte, 32)), protocol.ErrFormat))

	files, _, links := s.Stat()
	assert.Equal(t, 0, files)
	assert.Equal(t, 0, links)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctx
	s := NewStore(ctx, f.g, nil)
	req := f.request("f1", "T", "", "s1")
	require.NoError(t, s.Insert(req, make([]byte, 32)))

	del := ctx.G1ToHex(f.sign(ctx.FileHash("f1")))

	// wrong owner
	other := ctx.G1ToHex(ctx.RandomG1())
	err := s.Delete(&protocol.DeleteRequest{FileID: "f1", PK: other, Del: del})
	assert.True(t, errors.Is(err, protocol.ErrAuthorization))

	// zero divisor
	zero := make([]byte, ctx.G1Length()*2)
	for i := range zero {
		zero[i] = '0'
	}
	err = s.Delete(&protocol.DeleteRequest{FileID: "f1", PK: req.PK, Del: string(zero)})
	assert.True(t, errors.Is(err, protocol.ErrState))

	// unknown file
	err = s.Delete(&protocol.DeleteRequest{FileID: "f9", PK: req.PK, Del: del})
	assert.True(t, errors.Is(err, protocol.ErrNotFound))

	// the owner's PK with a token that was not made with sk
	forged := ctx.G1ToHex(ctx.RandomG1())
	err = s.Delete(&protocol.DeleteRequest{FileID: "f1", PK: req.PK, Del: forged})
	assert.True(t, errors.Is(err, protocol.ErrAuthorization))
	err = s.Delete(&protocol.DeleteRequest{FileID: "f1", PK: req.PK, Del: ctx.G1ToHex(f.sign(ctx.FileHash("f2")))})
	assert.True(t, errors.Is(err, protocol.ErrAuthorization))

	assert.True(t, errors.Is(s.Delete(nil), protocol.ErrFormat))

	entry, err := s.Get("f1")
	require.NoError(t, err)
	assert.True(t, entry.Valid())
	assert.Equal(t, req.Keywords[0].Kt, entry.Keywords[0].Tag)

	require.NoError(t, s.Delete(&protocol.DeleteRequest{FileID: "f1", PK: req.PK, Del: del}))
	entry, err = s.Get("f1")
	require.NoError(t, err)
	assert.False(t, entry.Valid())
	assert.Empty(t, entry.AuthTags)

	// the file term is gone: kt' = H2(s1‖T)^sk
	kt, err := ctx.G1FromHex(entry.Keywords[0].Tag)
	require.NoError(t, err)
	assert.True(t, kt.Equals(f.sign(ctx.StateHash("s1", "T"))))

	err = s.View(func(tx *Tx) error {
		link, ok := tx.Lookup(req.Keywords[0].TiBar)
		require.True(t, ok)
		assert.Equal(t, protocol.StateInvalid, link.State)
		assert.Equal(t, entry.Keywords[0].Tag, link.Tag)
		return nil
	})
	require.NoError(t, err)

	err = s.Delete(&protocol.DeleteRequest{FileID: "f1", PK: req.PK, Del: del})
	assert.True(t, errors.Is(err, protocol.ErrState))

	files, deleted, links := s.Stat()
	assert.Equal(t, 1, files)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, 1, links)
}

func TestPersistLoad(t *testing.T) {
	f := newFixture(t)
	cach, err := cache.NewCache(t.TempDir(), 0, 0, "test")
	require.NoError(t, err)
	defer cach.Close()

	s := NewStore(f.ctx, f.g, cach)
	require.NoError(t, s.Load())
	req := f.request("f1", "T", "", "s1")
	blob := []byte("0123456789abcdef0123456789abcdef")
	require.NoError(t, s.Insert(req, blob))

	loaded := NewStore(f.ctx, f.g, cach)
	require.NoError(t, loaded.Load())
	entry, err := loaded.Get("f1")
	require.NoError(t, err)
	assert.Equal(t, req.Tags, entry.AuthTags)
	got, err := loaded.Blob("f1")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
	files, _, links := loaded.Stat()
	assert.Equal(t, 1, files)
	assert.Equal(t, 1, links)

	require.NoError(t, s.Delete(&protocol.DeleteRequest{
		FileID: "f1",
		PK:     req.PK,
		Del:    f.ctx.G1ToHex(f.sign(f.ctx.FileHash("f1"))),
	}))
	require.NoError(t, s.Compact())
	require.NoError(t, loaded.Load())
	entry, err = loaded.Get("f1")
	require.NoError(t, err)
	assert.False(t, entry.Valid())
}

// failingCache refuses every batch while fail is set.
type failingCache struct {
	cache.Cache
	fail bool
}

func (c *failingCache) WriteBatch(kvs []cache.KV) error {
	if c.fail {
		return errors.New("disk full")
	}
	return c.Cache.WriteBatch(kvs)
}

func TestWriteFailureLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t)
	ldb, err := cache.NewCache(t.TempDir(), 0, 0, "test")
	require.NoError(t, err)
	defer ldb.Close()
	cach := &failingCache{Cache: ldb, fail: true}
	s := NewStore(f.ctx, f.g, cach)

	req := f.request("f1", "T", "", "s1")
	assert.Error(t, s.Insert(req, make([]byte, 32)))
	_, err = s.Get("f1")
	assert.True(t, errors.Is(err, protocol.ErrNotFound))
	files, _, links := s.Stat()
	assert.Equal(t, 0, files)
	assert.Equal(t, 0, links)

	// the same request goes through once the database accepts writes
	cach.fail = false
	require.NoError(t, s.Insert(req, make([]byte, 32)))

	cach.fail = true
	del := &protocol.DeleteRequest{FileID: "f1", PK: req.PK, Del: f.ctx.G1ToHex(f.sign(f.ctx.FileHash("f1")))}
	assert.Error(t, s.Delete(del))
	entry, err := s.Get("f1")
	require.NoError(t, err)
	assert.True(t, entry.Valid())
	assert.Equal(t, req.Keywords[0].Kt, entry.Keywords[0].Tag)
	err = s.View(func(tx *Tx) error {
		link, ok := tx.Lookup(req.Keywords[0].TiBar)
		require.True(t, ok)
		assert.Equal(t, protocol.StateValid, link.State)
		return nil
	})
	require.NoError(t, err)

	cach.fail = false
	require.NoError(t, s.Delete(del))

	reloaded := NewStore(f.ctx, f.g, ldb)
	require.NoError(t, reloaded.Load())
	entry, err = reloaded.Get("f1")
	require.NoError(t, err)
	assert.False(t, entry.Valid())
}
