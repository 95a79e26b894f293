/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package params

import (
	"encoding/json"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/CESSProject/cess-vfsse/pkg/utils"
	"github.com/pkg/errors"
)

const description = "vfsse public parameters (type a pairing, 160-bit order, 512-bit base field)"

type elementField struct {
	Hex    string `json:"hex"`
	Length int    `json:"length,omitempty"`
}

type publicParamsField struct {
	N  string          `json:"N"`
	G  json.RawMessage `json:"g"`
	Mu json.RawMessage `json:"mu"`
}

type paramsFile struct {
	Version      string            `json:"version"`
	CreatedAt    string            `json:"created_at"`
	Description  string            `json:"description"`
	PublicParams publicParamsField `json:"public_params"`
}

// Marshal encodes the parameters in the parameters file format.
func (pp *PublicParams) Marshal() ([]byte, error) {
	g, err := json.Marshal(elementField{Hex: pp.Ctx.G1ToHex(pp.G), Length: pp.Ctx.G1Length()})
	if err != nil {
		return nil, err
	}
	mu, err := json.Marshal(elementField{Hex: pp.Ctx.G1ToHex(pp.Mu), Length: pp.Ctx.G1Length()})
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(paramsFile{
		Version:     configs.ParamVersion,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Description: description,
		PublicParams: publicParamsField{
			N:  pp.N.String(),
			G:  g,
			Mu: mu,
		},
	}, "", "  ")
}

// Unmarshal parses a parameters file. Element fields may be
// {hex, length} objects, objects without length or bare hex strings.
// Nothing is returned unless every field validates.
func Unmarshal(ctx *pbc.Context, data []byte) (*PublicParams, error) {
	var pf paramsFile
	err := json.Unmarshal(data, &pf)
	if err != nil {
		return nil, errors.Wrapf(protocol.ErrParameter, "parameters file: %v", err)
	}
	if pf.PublicParams.N == "" {
		return nil, errors.Wrap(protocol.ErrParameter, "missing N")
	}
	n, ok := new(big.Int).SetString(strings.TrimSpace(pf.PublicParams.N), 10)
	if !ok || n.Sign() <= 0 {
		return nil, errors.Wrapf(protocol.ErrParameter, "invalid N: %q", pf.PublicParams.N)
	}
	g, err := decodeElement(ctx, "g", pf.PublicParams.G)
	if err != nil {
		return nil, err
	}
	mu, err := decodeElement(ctx, "mu", pf.PublicParams.Mu)
	if err != nil {
		return nil, err
	}
	pp := &PublicParams{Ctx: ctx, N: n, G: g, Mu: mu}
	if err = pp.Validate(); err != nil {
		return nil, err
	}
	return pp, nil
}

func decodeElement(ctx *pbc.Context, name string, raw json.RawMessage) (*pbc.Element, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.Wrapf(protocol.ErrParameter, "missing %s", name)
	}
	var field elementField
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		field.Hex = s
	} else if err = json.Unmarshal(raw, &field); err != nil {
		return nil, errors.Wrapf(protocol.ErrParameter, "%s: %v", name, err)
	}
	if field.Length == 0 {
		field.Length = len(field.Hex) / 2
	}
	b, err := pbc.DecodeHex(field.Hex)
	if err != nil {
		return nil, errors.Wrapf(protocol.ErrParameter, "%s: %v", name, err)
	}
	if len(b) != field.Length {
		return nil, errors.Wrapf(protocol.ErrParameter, "%s: length %d does not match declared %d", name, len(b), field.Length)
	}
	e, err := ctx.DecodeG1(b)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return e, nil
}

// SaveFile writes the parameters to fpath, replacing it atomically.
func (pp *PublicParams) SaveFile(fpath string) error {
	buf, err := pp.Marshal()
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(fpath, buf, configs.FileMode)
}

// LoadFile reads the parameters written by SaveFile.
func LoadFile(ctx *pbc.Context, fpath string) (*PublicParams, error) {
	buf, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(protocol.ErrParameter, "read %s: %v", fpath, err)
	}
	return Unmarshal(ctx, buf)
}
