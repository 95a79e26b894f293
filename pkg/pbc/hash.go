/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package pbc

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"strconv"
)

// domain separation prefixes of the three oracles
const (
	domainH1 byte = 0x01
	domainH2 byte = 0x02
	domainH3 byte = 0x03
)

// Concat joins the parts of a hashed tuple. Every part is prefixed by
// its 4-byte big-endian length.
func Concat(parts ...[]byte) []byte {
	var size int
	for _, p := range parts {
		size += 4 + len(p)
	}
	buf := make([]byte, 0, size)
	for _, p := range parts {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(p)))
		buf = append(buf, p...)
	}
	return buf
}

// H1 maps bytes into Z_N.
func H1(n *big.Int, data []byte) *big.Int {
	h := sha256.New()
	h.Write([]byte{domainH1})
	h.Write(data)
	v := new(big.Int).SetBytes(h.Sum(nil))
	return v.Mod(v, n)
}

// H2 maps bytes onto G1.
func (c *Context) H2(data []byte) *Element {
	msg := make([]byte, 0, len(data)+1)
	msg = append(msg, domainH2)
	msg = append(msg, data...)
	return c.pairing.NewG1().SetFromStringHash(string(msg), sha256.New())
}

// H3 maps bytes to a 32-byte string.
func H3(data []byte) []byte {
	h := sha256.New()
	h.Write([]byte{domainH3})
	h.Write(data)
	return h.Sum(nil)
}

// BlockHash is H2(fileID‖i), the per-block term of an authentication tag.
func (c *Context) BlockHash(fileID string, i int) *Element {
	return c.H2(Concat([]byte(fileID), []byte(strconv.Itoa(i))))
}

// FileHash is H2(fileID).
func (c *Context) FileHash(fileID string) *Element {
	return c.H2(Concat([]byte(fileID)))
}

// StateHash is H2(state‖T), the chain-link term of an association tag.
func (c *Context) StateHash(state, token string) *Element {
	return c.H2(Concat([]byte(state), []byte(token)))
}

// Fingerprint is H2(T‖state), the search database key.
func (c *Context) Fingerprint(token, state string) *Element {
	return c.H2(Concat([]byte(token), []byte(state)))
}

// PRF returns f_i = H1(seed‖fileID‖i) mod r.
func (c *Context) PRF(n *big.Int, seed []byte, fileID string, i int) *big.Int {
	v := H1(n, Concat(seed, []byte(fileID), []byte(strconv.Itoa(i))))
	return v.Mod(v, c.order)
}
