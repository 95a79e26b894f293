/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package pbc

import (
	"math/big"
	"testing"

	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContext(t *testing.T) {
	ctx, err := Default()
	require.NoError(t, err)

	r := new(big.Int).Lsh(big.NewInt(1), 159)
	r.Add(r, new(big.Int).Lsh(big.NewInt(1), 107))
	r.Add(r, big.NewInt(1))
	assert.Equal(t, 0, ctx.Order().Cmp(r))
	assert.Equal(t, 512, ctx.BaseField().BitLen())
	assert.Equal(t, 128, ctx.G1Length())

	again, err := Default()
	require.NoError(t, err)
	assert.True(t, ctx == again)
}

func TestNewContextRejectsBadDescription(t *testing.T) {
	_, err := NewContext("type f\nq 7\nr 5\n")
	assert.True(t, errors.Is(err, protocol.ErrParameter))

	_, err = NewContext("type a\nq 11\n")
	assert.True(t, errors.Is(err, protocol.ErrParameter))

	_, err = NewContext("type a\nq eleven\nr 5\n")
	assert.True(t, errors.Is(err, protocol.ErrParameter))
}

func TestG1RoundTrip(t *testing.T) {
	ctx, err := Default()
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		e := ctx.RandomG1()
		d, err := ctx.DecodeG1(ctx.EncodeG1(e))
		require.NoError(t, err)
		assert.True(t, d.Equals(e))

		h, err := ctx.G1FromHex(ctx.G1ToHex(e))
		require.NoError(t, err)
		assert.True(t, h.Equals(e))
	}
}

func TestDecodeG1Rejects(t *testing.T) {
	ctx, err := Default()
	require.NoError(t, err)

	b := ctx.EncodeG1(ctx.RandomG1())

	_, err = ctx.DecodeG1(b[:len(b)-1])
	assert.True(t, errors.Is(err, protocol.ErrParameter))

	_, err = ctx.DecodeG1(append(b, 0))
	assert.True(t, errors.Is(err, protocol.ErrParameter))

	_, err = ctx.DecodeG1(make([]byte, ctx.G1Length()))
	assert.True(t, errors.Is(err, protocol.ErrParameter))

	bad := make([]byte, len(b))
	copy(bad, b)
	bad[len(bad)-1] ^= 0x01
	_, err = ctx.DecodeG1(bad)
	assert.True(t, errors.Is(err, protocol.ErrParameter))

	_, err = ctx.G1FromHex("abc")
	assert.True(t, errors.Is(err, protocol.ErrFormat))

	_, err = ctx.G1FromHex("zz")
	assert.True(t, errors.Is(err, protocol.ErrFormat))
}

func TestZrFromString(t *testing.T) {
	ctx, err := Default()
	require.NoError(t, err)

	k, err := ctx.ZrFromString("12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", ZrToString(k))

	_, err = ctx.ZrFromString("12a")
	assert.True(t, errors.Is(err, protocol.ErrFormat))

	_, err = ctx.ZrFromString(ctx.Order().String())
	assert.True(t, errors.Is(err, protocol.ErrFormat))
}

func TestBilinearity(t *testing.T) {
	ctx, err := Default()
	require.NoError(t, err)

	g := ctx.RandomG1()
	a := big.NewInt(1234567)
	b := big.NewInt(7654321)

	lhs := ctx.Pair(ctx.Exp(g, a), ctx.Exp(g, b))
	ab := new(big.Int).Mul(a, b)
	rhs := ctx.NewGT().PowBig(ctx.Pair(g, g), ab)
	assert.True(t, lhs.Equals(rhs))

	x := ctx.RandomG1()
	assert.True(t, ctx.Div(ctx.Mul(g, x), x).Equals(g))
}

func TestHashOracles(t *testing.T) {
	ctx, err := Default()
	require.NoError(t, err)

	assert.True(t, ctx.FileHash("f1").Equals(ctx.FileHash("f1")))
	assert.False(t, ctx.FileHash("f1").Equals(ctx.FileHash("f2")))
	assert.False(t, ctx.BlockHash("f1", 12).Equals(ctx.BlockHash("f11", 2)))
	assert.False(t, ctx.StateHash("s", "t").Equals(ctx.Fingerprint("s", "t")))

	n := new(big.Int).Lsh(big.NewInt(1), 1023)
	seed := []byte("seed")
	f := ctx.PRF(n, seed, "f1", 0)
	assert.Equal(t, 0, f.Cmp(ctx.PRF(n, seed, "f1", 0)))
	assert.True(t, f.Cmp(ctx.Order()) < 0)
	assert.NotEqual(t, 0, f.Cmp(ctx.PRF(n, seed, "f1", 1)))

	assert.Len(t, H3([]byte("state")), 32)
	assert.NotEqual(t, H3([]byte("a")), H3([]byte("b")))
	assert.Equal(t, []byte{0, 0, 0, 1, 'a', 0, 0, 0, 0}, Concat([]byte("a"), nil))
}
