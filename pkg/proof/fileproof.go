/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/pkg/index"
	"github.com/CESSProject/cess-vfsse/pkg/params"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/CESSProject/cess-vfsse/pkg/tag"
	"github.com/pkg/errors"
)

// NewSeed draws a challenge seed.
func NewSeed() ([]byte, error) {
	seed := make([]byte, configs.SeedLength)
	_, err := rand.Read(seed)
	return seed, err
}

// genFileProof aggregates one file against seed:
//
//	ψ = Σ_i f_i · Σ_j c_ij  mod r
//	φ = ∏_i σ_i^{f_i}
//
// with f_i = H1(seed‖ID_F‖i) mod r. Sector values come from the stored
// ciphertext, so a changed byte changes ψ while φ stays.
func genFileProof(pp *params.PublicParams, seed []byte, entry *index.IndexEntry, blob []byte) (*big.Int, *pbc.Element, error) {
	if !entry.Valid() {
		return nil, nil, errors.Wrapf(protocol.ErrState, "%s: %s", protocol.ERR_FileDeleted, entry.FileID)
	}
	if entry.BlockCount() == 0 {
		return nil, nil, errors.Wrapf(protocol.ErrState, "%s: %s", protocol.ERR_FileNoTags, entry.FileID)
	}
	blocks, err := tag.Split(blob, entry.BlockSize, entry.SectorSize)
	if err != nil {
		return nil, nil, err
	}
	if len(blocks) != entry.BlockCount() {
		return nil, nil, errors.Wrapf(protocol.ErrState, "%s has %d blocks but %d tags", entry.FileID, len(blocks), entry.BlockCount())
	}

	ctx := pp.Ctx
	r := ctx.Order()
	psi := new(big.Int)
	phi := ctx.Identity()
	for i, v := range entry.AuthTags {
		sigma, err := ctx.G1FromHex(v)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "tag %d of %s", i, entry.FileID)
		}
		f := ctx.PRF(pp.N, seed, entry.FileID, i)
		m := tag.SectorSum(blocks[i], entry.SectorSize, r)
		psi.Add(psi, m.Mul(m, f))
		psi.Mod(psi, r)
		phi = ctx.Mul(phi, ctx.Exp(sigma, f))
	}
	return psi, phi, nil
}

// GetFileProof proves possession of one stored file under a fresh seed.
// Deleted files and files without tags are refused.
func GetFileProof(pp *params.PublicParams, store *index.Store, fileID string) (*protocol.FileProof, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	var fp *protocol.FileProof
	err = store.View(func(tx *index.Tx) error {
		entry, err := tx.Get(fileID)
		if err != nil {
			return err
		}
		if !entry.Valid() {
			return errors.Wrapf(protocol.ErrState, "%s: %s", protocol.ERR_FileDeleted, fileID)
		}
		if entry.BlockCount() == 0 {
			return errors.Wrapf(protocol.ErrState, "%s: %s", protocol.ERR_FileNoTags, fileID)
		}
		blob, err := tx.Blob(fileID)
		if err != nil {
			return err
		}
		psi, phi, err := genFileProof(pp, seed, entry, blob)
		if err != nil {
			return err
		}
		fp = &protocol.FileProof{
			FileID: fileID,
			Proof: protocol.FileProofBody{
				Psi: pbc.ZrToString(psi),
				Phi: pp.Ctx.G1ToHex(phi),
			},
			Seed: hex.EncodeToString(seed),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fp, nil
}
