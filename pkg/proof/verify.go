/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"fmt"
	"math/big"

	"github.com/CESSProject/cess-vfsse/pkg/index"
	"github.com/CESSProject/cess-vfsse/pkg/params"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
)

func fail(format string, args ...interface{}) protocol.Verification {
	return protocol.Verification{OK: false, Reason: fmt.Sprintf(format, args...)}
}

// challenge returns ζ = ∏_{i<n} H2(ID_F‖i)^{f_i}.
func challenge(pp *params.PublicParams, seed []byte, fileID string, n int) *pbc.Element {
	ctx := pp.Ctx
	zeta := ctx.Identity()
	for i := 0; i < n; i++ {
		zeta = ctx.Mul(zeta, ctx.Exp(ctx.BlockHash(fileID, i), ctx.PRF(pp.N, seed, fileID, i)))
	}
	return zeta
}

// VerifyFileProof checks e(φ, g) == e(ζ · μ^ψ, pk) where n and pk are
// read from the index, not from the artifact.
func VerifyFileProof(pp *params.PublicParams, store *index.Store, fp *protocol.FileProof) (protocol.Verification, error) {
	ctx := pp.Ctx
	seed, err := pbc.DecodeHex(fp.Seed)
	if err != nil {
		return protocol.Verification{}, errors.Wrap(err, "seed")
	}
	phi, err := ctx.G1FromHex(fp.Proof.Phi)
	if err != nil {
		return protocol.Verification{}, errors.Wrap(err, "phi")
	}
	psi, err := ctx.ZrFromString(fp.Proof.Psi)
	if err != nil {
		return protocol.Verification{}, errors.Wrap(err, "psi")
	}

	var res protocol.Verification
	err = store.View(func(tx *index.Tx) error {
		entry, err := tx.Get(fp.FileID)
		if err != nil {
			return err
		}
		if !entry.Valid() {
			return errors.Wrapf(protocol.ErrState, "%s: %s", protocol.ERR_FileDeleted, fp.FileID)
		}
		if entry.BlockCount() == 0 {
			return errors.Wrapf(protocol.ErrState, "%s: %s", protocol.ERR_FileNoTags, fp.FileID)
		}
		pk, err := ctx.G1FromHex(entry.OwnerPK)
		if err != nil {
			return errors.Wrap(err, "owner PK")
		}
		zeta := challenge(pp, seed, fp.FileID, entry.BlockCount())
		lhs := ctx.Pair(phi, pp.G)
		rhs := ctx.Pair(ctx.Mul(zeta, ctx.Exp(pp.Mu, psi)), pk)
		if lhs.Equals(rhs) {
			res = protocol.Verification{OK: true}
		} else {
			res = fail("file proof of %s does not satisfy the pairing equation", fp.FileID)
		}
		return nil
	})
	return res, err
}

// VerifySearchProof checks a search artifact for the owner pk:
//
//	e(φ · ∏_t φ_t, g) == e(∏_t (ζ_t · H2(ID_t)) · μ^{Σ_t ψ_t} · H2(std‖T), pk)
//
// Block counts come from the live index. Artifacts that name deleted
// files or disagree between AS and PS fail verification; inputs that
// cannot be decoded are returned as errors.
func VerifySearchProof(pp *params.PublicParams, store *index.Store, pkHex string, sp *protocol.SearchProof) (protocol.Verification, error) {
	ctx := pp.Ctx
	pk, err := ctx.G1FromHex(pkHex)
	if err != nil {
		return protocol.Verification{}, errors.Wrap(err, "PK")
	}
	if sp.Token == "" || sp.Std == "" {
		return protocol.Verification{}, errors.Wrap(protocol.ErrFormat, "empty search token or state")
	}
	seed, err := pbc.DecodeHex(sp.Seed)
	if err != nil {
		return protocol.Verification{}, errors.Wrap(err, "seed")
	}
	if sp.Phi == "" {
		return fail("no chain link was visited"), nil
	}
	phi, err := ctx.G1FromHex(sp.Phi)
	if err != nil {
		return protocol.Verification{}, errors.Wrap(err, "phi")
	}
	type subProof struct {
		fileID string
		psi    *big.Int
		phi    *pbc.Element
	}
	subs := make([]subProof, len(sp.Proofs))
	for i, v := range sp.Proofs {
		subs[i].fileID = v.FileID
		if subs[i].psi, err = ctx.ZrFromString(v.Psi); err != nil {
			return protocol.Verification{}, errors.Wrapf(err, "PS[%d].psi_alpha", i)
		}
		if subs[i].phi, err = ctx.G1FromHex(v.Phi); err != nil {
			return protocol.Verification{}, errors.Wrapf(err, "PS[%d].phi_alpha", i)
		}
	}
	if len(sp.Files) != len(subs) {
		return fail("AS lists %d files, PS %d proofs", len(sp.Files), len(subs)), nil
	}
	for i, v := range subs {
		if sp.Files[i] != v.fileID {
			return fail("AS[%d] = %s but PS[%d] = %s", i, sp.Files[i], i, v.fileID), nil
		}
	}

	var res protocol.Verification
	err = store.View(func(tx *index.Tx) error {
		r := ctx.Order()
		lhs := phi
		rhs := ctx.StateHash(sp.Std, sp.Token)
		psi := new(big.Int)
		for _, v := range subs {
			entry, err := tx.Get(v.fileID)
			if err != nil {
				return err
			}
			if entry.OwnerPK != ctx.G1ToHex(pk) {
				return errors.Wrapf(protocol.ErrAuthorization, "%s: %s", protocol.ERR_PkMismatch, v.fileID)
			}
			if !entry.Valid() || entry.BlockCount() == 0 {
				res = fail("file %s is no longer valid", v.fileID)
				return nil
			}
			lhs = ctx.Mul(lhs, v.phi)
			rhs = ctx.Mul(rhs, challenge(pp, seed, v.fileID, entry.BlockCount()))
			rhs = ctx.Mul(rhs, ctx.FileHash(v.fileID))
			psi.Add(psi, v.psi)
			psi.Mod(psi, r)
		}
		rhs = ctx.Mul(rhs, ctx.Exp(pp.Mu, psi))
		if ctx.Pair(lhs, pp.G).Equals(ctx.Pair(rhs, pk)) {
			res = protocol.Verification{OK: true}
		} else {
			res = fail("search proof does not satisfy the pairing equation")
		}
		return nil
	})
	return res, err
}
