/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package pbc

import (
	"math/big"
	"strings"
	"sync"

	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/Nik-U/pbc"
	"github.com/pkg/errors"
)

// TypeAParams describes the symmetric pairing every client and node
// embeds: a 512-bit base field q and a 160-bit group order
// r = 2^159 + 2^107 + 1.
const TypeAParams = `type a
q 8780710799663312522437781984754049815806883199414208211028653399266475630880222957078625179422662221423155858769582317459277713367317481324925129998224791
h 12016012264891146079388821366740534204802954401251311822919615131047207289359704531102844802183906537786776
r 730750818665451621361119245571504901405976559617
exp2 159
exp1 107
sign1 1
sign0 1
`

// Context is the immutable pairing context. It is built once and
// shared by pointer between all components.
type Context struct {
	desc    string
	pairing *pbc.Pairing
	order   *big.Int
	field   *big.Int
	g1Len   int
}

var (
	defaultCtx  *Context
	defaultErr  error
	defaultOnce sync.Once
)

// Default returns the process wide context for TypeAParams.
func Default() (*Context, error) {
	defaultOnce.Do(func() {
		defaultCtx, defaultErr = NewContext(TypeAParams)
	})
	return defaultCtx, defaultErr
}

// NewContext parses a Type-A pairing description.
func NewContext(desc string) (*Context, error) {
	fields, err := parseParams(desc)
	if err != nil {
		return nil, err
	}
	if fields["type"] != "a" {
		return nil, errors.Wrapf(protocol.ErrParameter, "unsupported pairing type: %q", fields["type"])
	}
	q, ok := new(big.Int).SetString(fields["q"], 10)
	if !ok {
		return nil, errors.Wrap(protocol.ErrParameter, "invalid base field prime")
	}
	r, ok := new(big.Int).SetString(fields["r"], 10)
	if !ok {
		return nil, errors.Wrap(protocol.ErrParameter, "invalid group order")
	}
	params, err := pbc.NewParamsFromString(desc)
	if err != nil {
		return nil, errors.Wrapf(protocol.ErrParameter, "pairing description: %v", err)
	}
	pairing := params.NewPairing()
	if !pairing.IsSymmetric() {
		return nil, errors.Wrap(protocol.ErrParameter, "pairing is not symmetric")
	}
	return &Context{
		desc:    desc,
		pairing: pairing,
		order:   r,
		field:   q,
		g1Len:   int(pairing.G1Length()),
	}, nil
}

func parseParams(desc string) (map[string]string, error) {
	var fields = make(map[string]string)
	for _, line := range strings.Split(desc, "\n") {
		kv := strings.Fields(line)
		if len(kv) == 0 {
			continue
		}
		if len(kv) != 2 {
			return nil, errors.Wrapf(protocol.ErrParameter, "malformed pairing line: %q", line)
		}
		fields[kv[0]] = kv[1]
	}
	for _, k := range []string{"type", "q", "r"} {
		if _, ok := fields[k]; !ok {
			return nil, errors.Wrapf(protocol.ErrParameter, "pairing description lacks %q", k)
		}
	}
	return fields, nil
}

// Description returns the pairing description the context was built from.
func (c *Context) Description() string {
	return c.desc
}

// Order returns a copy of the group order r.
func (c *Context) Order() *big.Int {
	return new(big.Int).Set(c.order)
}

// BaseField returns a copy of the base field prime q.
func (c *Context) BaseField() *big.Int {
	return new(big.Int).Set(c.field)
}

// G1Length is the byte length of a raw G1 encoding.
func (c *Context) G1Length() int {
	return c.g1Len
}
