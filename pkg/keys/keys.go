/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package keys

import (
	"crypto/aes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"os"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/pkg/params"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/CESSProject/cess-vfsse/pkg/utils"
	"github.com/pkg/errors"
)

const secretLength = 32

// KeyMaterial holds the client secrets. Only PK ever leaves the client.
type KeyMaterial struct {
	// master key of the search tokens
	MK []byte
	// signing scalar in Z_r
	SK *big.Int
	// file body encryption key
	EK []byte
	// PK = g^SK
	PK *pbc.Element

	pp *params.PublicParams
}

type keyFile struct {
	MK string `json:"mk"`
	SK string `json:"sk"`
	EK string `json:"ek"`
	PK string `json:"pk"`
}

// Generate draws fresh key material for pp.
func Generate(pp *params.PublicParams) (*KeyMaterial, error) {
	mk := make([]byte, secretLength)
	if _, err := rand.Read(mk); err != nil {
		return nil, err
	}
	ek := make([]byte, secretLength)
	if _, err := rand.Read(ek); err != nil {
		return nil, err
	}
	sk := pp.Ctx.RandomZr().BigInt()
	return &KeyMaterial{
		MK: mk,
		SK: sk,
		EK: ek,
		PK: pp.Ctx.Exp(pp.G, sk),
		pp: pp,
	}, nil
}

// Params returns the public parameters the keys belong to.
func (km *KeyMaterial) Params() *params.PublicParams {
	return km.pp
}

// PublicKey returns PK as hex.
func (km *KeyMaterial) PublicKey() string {
	return km.pp.Ctx.G1ToHex(km.PK)
}

// Sign returns x^SK.
func (km *KeyMaterial) Sign(x *pbc.Element) *pbc.Element {
	return km.pp.Ctx.Exp(x, km.SK)
}

// SearchToken deterministically encrypts w under MK, so the token of
// a keyword is stable across sessions.
func (km *KeyMaterial) SearchToken(w string) (string, error) {
	if w == "" {
		return "", errors.Wrap(protocol.ErrFormat, protocol.ERR_EmptyKeyword)
	}
	ct, err := utils.AesCbcEncrypt(km.MK, make([]byte, aes.BlockSize), []byte(w))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(ct), nil
}

// EncryptFile encrypts a file body under EK.
func (km *KeyMaterial) EncryptFile(plain []byte) ([]byte, error) {
	return utils.AesCbcEncrypt(km.EK, nil, plain)
}

// DecryptFile reverses EncryptFile.
func (km *KeyMaterial) DecryptFile(ciphertext []byte) ([]byte, error) {
	return utils.AesCbcDecrypt(km.EK, nil, ciphertext)
}

// SaveFile stores the key material readable by the owner only.
func (km *KeyMaterial) SaveFile(fpath string) error {
	buf, err := json.MarshalIndent(keyFile{
		MK: hex.EncodeToString(km.MK),
		SK: km.SK.String(),
		EK: hex.EncodeToString(km.EK),
		PK: km.PublicKey(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(fpath, buf, configs.KeyMode)
}

// LoadFile reads key material written by SaveFile and checks that
// PK matches SK under pp.
func LoadFile(pp *params.PublicParams, fpath string) (*KeyMaterial, error) {
	buf, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	var kf keyFile
	if err = json.Unmarshal(buf, &kf); err != nil {
		return nil, errors.Wrapf(protocol.ErrFormat, "key file: %v", err)
	}
	mk, err := pbc.DecodeHex(kf.MK)
	if err != nil {
		return nil, errors.Wrap(err, "mk")
	}
	ek, err := pbc.DecodeHex(kf.EK)
	if err != nil {
		return nil, errors.Wrap(err, "ek")
	}
	if len(mk) != secretLength || len(ek) != secretLength {
		return nil, errors.Wrap(protocol.ErrFormat, "secret keys must be 32 bytes")
	}
	sk, err := pp.Ctx.ZrFromString(kf.SK)
	if err != nil {
		return nil, errors.Wrap(err, "sk")
	}
	if sk.Sign() == 0 {
		return nil, errors.Wrap(protocol.ErrFormat, "sk is zero")
	}
	pk, err := pp.Ctx.G1FromHex(kf.PK)
	if err != nil {
		return nil, errors.Wrap(err, "pk")
	}
	if !pk.Equals(pp.Ctx.Exp(pp.G, sk)) {
		return nil, errors.Wrap(protocol.ErrParameter, "pk does not match sk under these parameters")
	}
	return &KeyMaterial{MK: mk, SK: sk, EK: ek, PK: pk, pp: pp}, nil
}
