/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package index

import (
	"bytes"

	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
)

// Delete removes the file term H2(ID_F) from every association tag of
// the file by dividing it by del = H2(ID_F)^sk, marks the file and its
// chain links invalid and clears the authentication tags. del must
// verify against the owner's PK. The chain
// links themselves stay, so later searches still reach older files.
func (s *Store) Delete(req *protocol.DeleteRequest) error {
	if req == nil {
		return errors.Wrap(protocol.ErrFormat, protocol.ERR_NilRequest)
	}
	pk, err := s.ctx.G1FromHex(req.PK)
	if err != nil {
		return errors.Wrap(err, "PK")
	}
	raw, err := pbc.DecodeHex(req.Del)
	if err != nil {
		return errors.Wrap(err, "del")
	}
	if len(raw) == 0 || bytes.Equal(raw, make([]byte, len(raw))) {
		return errors.Wrap(protocol.ErrState, protocol.ERR_ZeroDivisor)
	}
	del, err := s.ctx.DecodeG1(raw)
	if err != nil {
		return errors.Wrap(err, "del")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	entry, ok := s.files[req.FileID]
	if !ok {
		return errors.Wrapf(protocol.ErrNotFound, "file %s", req.FileID)
	}
	if entry.OwnerPK != s.ctx.G1ToHex(pk) {
		return errors.Wrap(protocol.ErrAuthorization, protocol.ERR_PkMismatch)
	}
	if !entry.Valid() {
		return errors.Wrapf(protocol.ErrState, "%s: %s", protocol.ERR_FileDeleted, req.FileID)
	}
	// e(del, g) == e(H2(ID_F), pk)
	if !s.ctx.Pair(del, s.g).Equals(s.ctx.Pair(s.ctx.FileHash(req.FileID), pk)) {
		return errors.Wrap(protocol.ErrAuthorization, protocol.ERR_DelToken)
	}

	updated := entry.clone()
	links := make([]*SearchIndexEntry, len(updated.Keywords))
	for i, slot := range updated.Keywords {
		link, ok := s.search[slot.Fingerprint]
		if !ok || link.FileID != req.FileID {
			return errors.Wrapf(protocol.ErrNotFound, "chain link of %s keyword %d", req.FileID, i)
		}
		kt, err := s.ctx.G1FromHex(slot.Tag)
		if err != nil {
			return errors.Wrapf(err, "association tag %d", i)
		}
		tag := s.ctx.G1ToHex(s.ctx.Div(kt, del))
		updated.Keywords[i].Tag = tag
		links[i] = link.clone()
		links[i].Tag = tag
		links[i].State = protocol.StateInvalid
	}
	updated.State = protocol.StateInvalid
	updated.AuthTags = nil

	return s.commit([]*IndexEntry{updated}, links, nil)
}
