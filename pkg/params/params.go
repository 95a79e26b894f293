/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package params

import (
	"math/big"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
)

// PublicParams are the public parameters PP = (N, g, μ) shared by
// client and node. The group order r is carried by the context.
type PublicParams struct {
	Ctx *pbc.Context
	N   *big.Int
	G   *pbc.Element
	Mu  *pbc.Element
}

// Setup generates fresh public parameters over the embedded pairing.
// securityBits may be 0 for the default level.
func Setup(ctx *pbc.Context, securityBits int) (*PublicParams, error) {
	if securityBits != 0 && securityBits != configs.SecurityBits {
		return nil, errors.Wrapf(protocol.ErrParameter, "unsupported security level: %d bits", securityBits)
	}
	return &PublicParams{
		Ctx: ctx,
		N:   Modulus(ctx),
		G:   ctx.RandomG1(),
		Mu:  ctx.RandomG1(),
	}, nil
}

// Modulus returns N = q·nextprime(q) where q is the base field prime.
// q is public, so N does not hide its factors.
func Modulus(ctx *pbc.Context) *big.Int {
	q := ctx.BaseField()
	return new(big.Int).Mul(q, nextPrime(q))
}

func nextPrime(n *big.Int) *big.Int {
	p := new(big.Int).Add(n, big.NewInt(1))
	if p.Bit(0) == 0 {
		p.Add(p, big.NewInt(1))
	}
	two := big.NewInt(2)
	for !p.ProbablyPrime(20) {
		p.Add(p, two)
	}
	return p
}

// Validate checks that the parameters belong to ctx.
func (pp *PublicParams) Validate() error {
	if pp == nil || pp.Ctx == nil || pp.N == nil || pp.G == nil || pp.Mu == nil {
		return errors.Wrap(protocol.ErrParameter, "incomplete public parameters")
	}
	if pp.N.Cmp(Modulus(pp.Ctx)) != 0 {
		return errors.Wrap(protocol.ErrParameter, "modulus N does not match the pairing")
	}
	if pp.G.Is1() || pp.Mu.Is1() {
		return errors.Wrap(protocol.ErrParameter, "generator is the identity")
	}
	return nil
}
