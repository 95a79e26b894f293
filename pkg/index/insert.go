/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package index

import (
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
)

// Insert adds a file, its tags and its keyword links. Every field is
// validated before the store is touched, and the entries are written
// to the database before they become visible.
func (s *Store) Insert(req *protocol.InsertRequest, blob []byte) error {
	if req == nil {
		return errors.Wrap(protocol.ErrFormat, protocol.ERR_NilRequest)
	}
	if req.FileID == "" {
		return errors.Wrap(protocol.ErrFormat, protocol.ERR_EmptyFileID)
	}
	if req.State != "" && req.State != protocol.StateValid {
		return errors.Wrapf(protocol.ErrFormat, "invalid file state: %q", req.State)
	}
	if req.BlockSize <= 0 || req.SectorSize <= 0 || req.BlockSize%req.SectorSize != 0 {
		return errors.Wrapf(protocol.ErrFormat, "invalid block/sector size %d/%d", req.BlockSize, req.SectorSize)
	}
	pk, err := s.ctx.G1FromHex(req.PK)
	if err != nil {
		return errors.Wrap(err, "PK")
	}
	n := (len(blob) + req.BlockSize - 1) / req.BlockSize
	if n == 0 {
		n = 1
	}
	if len(req.Tags) != n {
		return errors.Wrapf(protocol.ErrFormat, "%d tags for %d blocks", len(req.Tags), n)
	}
	tags := make([]string, len(req.Tags))
	for i, v := range req.Tags {
		e, err := s.ctx.G1FromHex(v)
		if err != nil {
			return errors.Wrapf(err, "TS_F[%d]", i)
		}
		tags[i] = s.ctx.G1ToHex(e)
	}

	slots := make([]KeywordSlot, len(req.Keywords))
	seen := make(map[string]struct{}, len(req.Keywords))
	for i, kw := range req.Keywords {
		fp, err := s.ctx.G1FromHex(kw.TiBar)
		if err != nil {
			return errors.Wrapf(err, "keywords[%d].Ti_bar", i)
		}
		kt, err := s.ctx.G1FromHex(kw.Kt)
		if err != nil {
			return errors.Wrapf(err, "keywords[%d].kt_wi", i)
		}
		if kw.Ptr != "" {
			if _, err = pbc.DecodeHex(kw.Ptr); err != nil {
				return errors.Wrapf(err, "keywords[%d].ptr_i", i)
			}
		}
		slots[i] = KeywordSlot{
			Pointer:     kw.Ptr,
			Tag:         s.ctx.G1ToHex(kt),
			Fingerprint: s.ctx.G1ToHex(fp),
		}
		if _, ok := seen[slots[i].Fingerprint]; ok {
			return errors.Wrapf(protocol.ErrFormat, "keywords[%d]: duplicate fingerprint", i)
		}
		seen[slots[i].Fingerprint] = struct{}{}
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.files[req.FileID]; ok {
		return errors.Wrapf(protocol.ErrState, "%s: %s", protocol.ERR_FileExists, req.FileID)
	}
	for _, slot := range slots {
		if _, ok := s.search[slot.Fingerprint]; ok {
			return errors.Wrap(protocol.ErrState, protocol.ERR_Fingerprint)
		}
	}

	entry := &IndexEntry{
		FileID:     req.FileID,
		OwnerPK:    s.ctx.G1ToHex(pk),
		State:      protocol.StateValid,
		AuthTags:   tags,
		Keywords:   slots,
		BlockSize:  req.BlockSize,
		SectorSize: req.SectorSize,
	}
	links := make([]*SearchIndexEntry, len(slots))
	for i, slot := range slots {
		links[i] = &SearchIndexEntry{
			Fingerprint: slot.Fingerprint,
			FileID:      req.FileID,
			Pointer:     slot.Pointer,
			State:       protocol.StateValid,
			Tag:         slot.Tag,
		}
	}
	blobs := map[string][]byte{req.FileID: append([]byte(nil), blob...)}
	return s.commit([]*IndexEntry{entry}, links, blobs)
}
