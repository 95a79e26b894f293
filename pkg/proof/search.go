/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"encoding/hex"
	"sync"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/pkg/index"
	"github.com/CESSProject/cess-vfsse/pkg/params"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/CESSProject/cess-vfsse/pkg/tag"
	"github.com/pkg/errors"
)

// SearchResult is the artifact of a search plus traversal details that
// stay on the node.
type SearchResult struct {
	Proof protocol.SearchProof
	// fingerprints in visiting order
	Visited []string
	// the traversal stopped at MaxChainSteps
	Truncated bool
}

// Search walks the chain of token T backwards from state std. At every
// link the owner of the file must be the caller. Valid files yield a
// sub-proof under one seed per call; every visited link, valid or not,
// is multiplied into the global φ. A file is proven once even if a
// malformed chain revisits it. The traversal ends at a fingerprint
// miss, an empty or self-referencing pointer, or after MaxChainSteps.
//
// workers bounds the number of files proven at once. A single file's
// accumulation always runs on one goroutine.
func Search(pp *params.PublicParams, store *index.Store, req *protocol.SearchRequest, workers int) (*SearchResult, error) {
	ctx := pp.Ctx
	pk, err := ctx.G1FromHex(req.PK)
	if err != nil {
		return nil, errors.Wrap(err, "PK")
	}
	pkHex := ctx.G1ToHex(pk)
	if req.Token == "" || req.Std == "" {
		return nil, errors.Wrap(protocol.ErrFormat, "empty search token or state")
	}
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	var result *SearchResult
	err = store.View(func(tx *index.Tx) error {
		res := &SearchResult{
			Proof: protocol.SearchProof{
				Token:  req.Token,
				Std:    req.Std,
				Seed:   hex.EncodeToString(seed),
				Files:  make([]string, 0),
				Proofs: make([]protocol.FileSubProof, 0),
			},
		}
		var (
			cur     = req.Std
			phi     = ctx.Identity()
			entries = make([]*index.IndexEntry, 0)
			proven  = make(map[string]struct{})
		)
		for step := 0; ; step++ {
			if step == configs.MaxChainSteps {
				res.Truncated = true
				break
			}
			fp := ctx.G1ToHex(ctx.Fingerprint(req.Token, cur))
			link, ok := tx.Lookup(fp)
			if !ok {
				break
			}
			entry, err := tx.Get(link.FileID)
			if err != nil {
				return err
			}
			if entry.OwnerPK != pkHex {
				return errors.Wrapf(protocol.ErrAuthorization, "%s: %s", protocol.ERR_PkMismatch, link.FileID)
			}
			prev, err := tag.OpenPointer(cur, link.Pointer)
			if err != nil {
				return errors.Wrapf(err, "link %s", fp)
			}
			kt, err := ctx.G1FromHex(link.Tag)
			if err != nil {
				return errors.Wrapf(err, "association tag of %s", fp)
			}
			res.Visited = append(res.Visited, fp)
			phi = ctx.Mul(phi, kt)
			if _, ok := proven[entry.FileID]; !ok && link.State == protocol.StateValid && entry.Valid() {
				proven[entry.FileID] = struct{}{}
				res.Proof.Files = append(res.Proof.Files, entry.FileID)
				entries = append(entries, entry)
			}
			if prev == "" || prev == cur {
				break
			}
			cur = prev
		}
		if len(res.Visited) > 0 {
			res.Proof.Phi = ctx.G1ToHex(phi)
		}

		proofs, err := proveFiles(pp, tx, seed, entries, workers)
		if err != nil {
			return err
		}
		res.Proof.Proofs = proofs
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func proveFiles(pp *params.PublicParams, tx *index.Tx, seed []byte, entries []*index.IndexEntry, workers int) ([]protocol.FileSubProof, error) {
	var (
		proofs = make([]protocol.FileSubProof, len(entries))
		errs   = make([]error, len(entries))
		jobs   = make(chan int, len(entries))
		wg     sync.WaitGroup
	)
	for i := range entries {
		jobs <- i
	}
	close(jobs)
	for w := 0; w < workers && w < len(entries); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entry := entries[i]
				blob, err := tx.Blob(entry.FileID)
				if err != nil {
					errs[i] = err
					continue
				}
				psi, phi, err := genFileProof(pp, seed, entry, blob)
				if err != nil {
					errs[i] = err
					continue
				}
				proofs[i] = protocol.FileSubProof{
					FileID: entry.FileID,
					Psi:    pbc.ZrToString(psi),
					Phi:    pp.Ctx.G1ToHex(phi),
				}
			}
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return proofs, nil
}
