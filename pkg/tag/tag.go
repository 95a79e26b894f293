/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package tag

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/pkg/keys"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
)

// Engine computes authentication tags, association tags and deletion
// tokens with the client's key material.
type Engine struct {
	km      *keys.KeyMaterial
	workers int
}

func NewEngine(km *keys.KeyMaterial, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{km: km, workers: workers}
}

// AuthTags computes σ_i = (H2(ID_F‖i) · μ^{Σ_j c_ij})^sk for every
// block of data. Blocks are tagged in parallel, the result keeps the
// block order.
func (e *Engine) AuthTags(fileID string, data []byte, blockSize, sectorSize int) ([]string, error) {
	if fileID == "" {
		return nil, errors.Wrap(protocol.ErrFormat, protocol.ERR_EmptyFileID)
	}
	blocks, err := Split(data, blockSize, sectorSize)
	if err != nil {
		return nil, err
	}
	pp := e.km.Params()
	ctx := pp.Ctx
	r := ctx.Order()

	tags := make([]string, len(blocks))
	jobs := make(chan int, len(blocks))
	for i := range blocks {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < e.workers && w < len(blocks); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				m := SectorSum(blocks[i], sectorSize, r)
				base := ctx.Mul(ctx.BlockHash(fileID, i), ctx.Exp(pp.Mu, m))
				tags[i] = ctx.G1ToHex(e.km.Sign(base))
			}
		}()
	}
	wg.Wait()
	return tags, nil
}

// KeywordEntry links fileID into the chain of the keyword with search
// token. cur is the state of this insert, prev the state of the
// previous insert of the keyword or empty for the first one.
//
//	Ti_bar = H2(T‖cur)
//	kt     = (H2(ID_F) · H2(cur‖T))^sk                  prev empty
//	kt     = (H2(ID_F) · H2(cur‖T) / H2(prev‖T))^sk     otherwise
//	ptr    = Enc(H3(cur), prev)
func (e *Engine) KeywordEntry(fileID, token, prev, cur string) (protocol.KeywordEntry, error) {
	var entry protocol.KeywordEntry
	if cur == "" || cur == prev {
		return entry, errors.Wrap(protocol.ErrState, "keyword state did not advance")
	}
	ctx := e.km.Params().Ctx
	base := ctx.Mul(ctx.FileHash(fileID), ctx.StateHash(cur, token))
	if prev != "" {
		base = ctx.Div(base, ctx.StateHash(prev, token))
	}
	ptr, err := SealPointer(cur, prev)
	if err != nil {
		return entry, err
	}
	entry.TiBar = ctx.G1ToHex(ctx.Fingerprint(token, cur))
	entry.Kt = ctx.G1ToHex(e.km.Sign(base))
	entry.Ptr = ptr
	return entry, nil
}

// DeletionToken returns del = H2(ID_F)^sk.
func (e *Engine) DeletionToken(fileID string) string {
	ctx := e.km.Params().Ctx
	return ctx.G1ToHex(e.km.Sign(ctx.FileHash(fileID)))
}

// NewState draws a fresh keyword state.
func NewState() (string, error) {
	buf := make([]byte, configs.StateLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
