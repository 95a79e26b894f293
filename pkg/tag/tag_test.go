/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package tag

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/CESSProject/cess-vfsse/pkg/keys"
	"github.com/CESSProject/cess-vfsse/pkg/params"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) (*Engine, *keys.KeyMaterial) {
	ctx, err := pbc.Default()
	require.NoError(t, err)
	pp, err := params.Setup(ctx, 0)
	require.NoError(t, err)
	km, err := keys.Generate(pp)
	require.NoError(t, err)
	return NewEngine(km, 4), km
}

func TestSplit(t *testing.T) {
	blocks, err := Split([]byte("abcdefghij"), 4, 2)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, []byte("abcd"), blocks[0])
	assert.Equal(t, []byte{'i', 'j', 0, 0}, blocks[2])

	blocks, err = Split(nil, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0, 0, 0, 0}}, blocks)

	blocks, err = Split(bytes.Repeat([]byte{1}, 8), 4, 2)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)

	_, err = Split([]byte("a"), 5, 2)
	assert.True(t, errors.Is(err, protocol.ErrFormat))
	_, err = Split([]byte("a"), 0, 2)
	assert.True(t, errors.Is(err, protocol.ErrFormat))
}

func TestSectorSum(t *testing.T) {
	r := big.NewInt(1000)
	assert.Equal(t, int64(0x0102+0x0304), SectorSum([]byte{1, 2, 3, 4}, 2, big.NewInt(1<<20)).Int64())
	assert.Equal(t, int64((0x0102+0x0304)%1000), SectorSum([]byte{1, 2, 3, 4}, 2, r).Int64())
	assert.Equal(t, int64(0), SectorSum(make([]byte, 8), 4, r).Int64())
}

func TestAuthTags(t *testing.T) {
	e, km := newEngine(t)
	pp := km.Params()
	ctx := pp.Ctx
	data := bytes.Repeat([]byte("0123456789"), 20)

	tags, err := e.AuthTags("f1", data, 64, 16)
	require.NoError(t, err)
	require.Len(t, tags, 4)

	blocks, err := Split(data, 64, 16)
	require.NoError(t, err)
	for i, v := range tags {
		sigma, err := ctx.G1FromHex(v)
		require.NoError(t, err)
		m := SectorSum(blocks[i], 16, ctx.Order())
		base := ctx.Mul(ctx.BlockHash("f1", i), ctx.Exp(pp.Mu, m))
		assert.True(t, ctx.Pair(sigma, pp.G).Equals(ctx.Pair(base, km.PK)), "block %d", i)
	}

	again, err := NewEngine(km, 1).AuthTags("f1", data, 64, 16)
	require.NoError(t, err)
	assert.Equal(t, tags, again)

	_, err = e.AuthTags("", data, 64, 16)
	assert.True(t, errors.Is(err, protocol.ErrFormat))
}

func TestKeywordEntryHead(t *testing.T) {
	e, km := newEngine(t)
	ctx := km.Params().Ctx
	token, err := km.SearchToken("alpha")
	require.NoError(t, err)
	s1, err := NewState()
	require.NoError(t, err)

	entry, err := e.KeywordEntry("f1", token, "", s1)
	require.NoError(t, err)
	assert.Equal(t, "", entry.Ptr)
	kt, err := ctx.G1FromHex(entry.Kt)
	require.NoError(t, err)
	assert.False(t, kt.Is1())
	assert.Equal(t, ctx.G1ToHex(ctx.Fingerprint(token, s1)), entry.TiBar)

	base := ctx.Mul(ctx.FileHash("f1"), ctx.StateHash(s1, token))
	assert.True(t, ctx.Pair(kt, km.Params().G).Equals(ctx.Pair(base, km.PK)))
}

func TestKeywordEntryChain(t *testing.T) {
	e, km := newEngine(t)
	ctx := km.Params().Ctx
	token, err := km.SearchToken("alpha")
	require.NoError(t, err)
	s1, err := NewState()
	require.NoError(t, err)
	s2, err := NewState()
	require.NoError(t, err)

	first, err := e.KeywordEntry("f1", token, "", s1)
	require.NoError(t, err)
	second, err := e.KeywordEntry("f2", token, s1, s2)
	require.NoError(t, err)
	require.NotEmpty(t, second.Ptr)

	prev, err := OpenPointer(s2, second.Ptr)
	require.NoError(t, err)
	assert.Equal(t, s1, prev)

	// kt1·kt2 telescopes to (H2(f1)·H2(f2)·H2(s2‖T))^sk
	kt1, err := ctx.G1FromHex(first.Kt)
	require.NoError(t, err)
	kt2, err := ctx.G1FromHex(second.Kt)
	require.NoError(t, err)
	base := ctx.Mul(ctx.Mul(ctx.FileHash("f1"), ctx.FileHash("f2")), ctx.StateHash(s2, token))
	assert.True(t, ctx.Pair(ctx.Mul(kt1, kt2), km.Params().G).Equals(ctx.Pair(base, km.PK)))

	_, err = e.KeywordEntry("f3", token, s2, s2)
	assert.True(t, errors.Is(err, protocol.ErrState))
}

func TestDeletionToken(t *testing.T) {
	e, km := newEngine(t)
	ctx := km.Params().Ctx
	del, err := ctx.G1FromHex(e.DeletionToken("f1"))
	require.NoError(t, err)
	assert.True(t, ctx.Pair(del, km.Params().G).Equals(ctx.Pair(ctx.FileHash("f1"), km.PK)))
}

func TestPointer(t *testing.T) {
	ptr, err := SealPointer("s2", "")
	require.NoError(t, err)
	assert.Equal(t, "", ptr)
	prev, err := OpenPointer("s2", "")
	require.NoError(t, err)
	assert.Equal(t, "", prev)

	ptr, err = SealPointer("s2", "s1")
	require.NoError(t, err)
	prev, err = OpenPointer("s2", ptr)
	require.NoError(t, err)
	assert.Equal(t, "s1", prev)

	_, err = OpenPointer("s2", "xyz")
	assert.True(t, errors.Is(err, protocol.ErrFormat))
}
