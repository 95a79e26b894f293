/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package pbc

import (
	"bytes"
	"encoding/hex"
	"math/big"

	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/Nik-U/pbc"
	"github.com/pkg/errors"
)

// Element is a handle of a group or field element of the context.
type Element = pbc.Element

func (c *Context) NewG1() *Element {
	return c.pairing.NewG1()
}

func (c *Context) NewGT() *Element {
	return c.pairing.NewGT()
}

func (c *Context) NewZr() *Element {
	return c.pairing.NewZr()
}

// RandomG1 returns a uniformly random non-identity element of G1.
func (c *Context) RandomG1() *Element {
	for {
		e := c.pairing.NewG1().Rand()
		if !e.Is1() {
			return e
		}
	}
}

// RandomZr returns a uniformly random non-zero scalar.
func (c *Context) RandomZr() *Element {
	for {
		e := c.pairing.NewZr().Rand()
		if !e.Is0() {
			return e
		}
	}
}

// Identity returns the neutral element of G1.
func (c *Context) Identity() *Element {
	return c.pairing.NewG1().Set1()
}

// Pair computes e(a, b).
func (c *Context) Pair(a, b *Element) *Element {
	return c.pairing.NewGT().Pair(a, b)
}

// Exp returns a^k with k reduced mod r.
func (c *Context) Exp(a *Element, k *big.Int) *Element {
	return c.pairing.NewG1().PowBig(a, new(big.Int).Mod(k, c.order))
}

// Mul returns a·b.
func (c *Context) Mul(a, b *Element) *Element {
	return c.pairing.NewG1().Mul(a, b)
}

// Div returns a·b^-1.
func (c *Context) Div(a, b *Element) *Element {
	return c.pairing.NewG1().Div(a, b)
}

// EncodeG1 returns the raw byte encoding of a G1 element.
func (c *Context) EncodeG1(e *Element) []byte {
	return e.Bytes()
}

// DecodeG1 parses a raw G1 encoding. Input of the wrong length, points
// off the curve or outside the order-r subgroup and the identity are
// rejected.
func (c *Context) DecodeG1(b []byte) (*Element, error) {
	if len(b) != c.g1Len {
		return nil, errors.Wrapf(protocol.ErrParameter, "G1 element length %d, want %d", len(b), c.g1Len)
	}
	if bytes.Equal(b, make([]byte, len(b))) {
		return nil, errors.Wrap(protocol.ErrParameter, "G1 element is the identity")
	}
	e := c.pairing.NewG1().SetBytes(b)
	if e.Is1() {
		return nil, errors.Wrap(protocol.ErrParameter, "G1 element is the identity")
	}
	if !c.onCurve(e.X(), e.Y()) {
		return nil, errors.Wrap(protocol.ErrParameter, "G1 element is not on the curve")
	}
	if !c.pairing.NewG1().PowBig(e, c.order).Is1() {
		return nil, errors.Wrap(protocol.ErrParameter, "G1 element is not in the prime order subgroup")
	}
	return e, nil
}

// y^2 = x^3 + x over F_q
func (c *Context) onCurve(x, y *big.Int) bool {
	if x.Sign() < 0 || x.Cmp(c.field) >= 0 || y.Sign() < 0 || y.Cmp(c.field) >= 0 {
		return false
	}
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, c.field)
	rhs := new(big.Int).Exp(x, big.NewInt(3), c.field)
	rhs.Add(rhs, x)
	rhs.Mod(rhs, c.field)
	return lhs.Cmp(rhs) == 0
}

// G1ToHex encodes a G1 element as lowercase hex.
func (c *Context) G1ToHex(e *Element) string {
	return hex.EncodeToString(e.Bytes())
}

// G1FromHex decodes a hex string produced by G1ToHex.
func (c *Context) G1FromHex(s string) (*Element, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return nil, err
	}
	return c.DecodeG1(b)
}

// DecodeHex decodes hex and classifies failures as format errors.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.Wrapf(protocol.ErrFormat, "odd length hex string (%d)", len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(protocol.ErrFormat, "%v", err)
	}
	return b, nil
}

// ZrToString encodes a scalar as a decimal string.
func ZrToString(k *big.Int) string {
	return k.String()
}

// ZrFromString parses a decimal scalar in [0, r).
func (c *Context) ZrFromString(s string) (*big.Int, error) {
	k, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(protocol.ErrFormat, "invalid scalar: %q", s)
	}
	if k.Sign() < 0 || k.Cmp(c.order) >= 0 {
		return nil, errors.Wrap(protocol.ErrFormat, "scalar out of range")
	}
	return k, nil
}
