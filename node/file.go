/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"fmt"

	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/CESSProject/cess-vfsse/pkg/utils"
	"github.com/pkg/errors"
)

// Insert stores an encrypted file body together with its tags and
// keyword links.
func (n *Node) Insert(req *protocol.InsertRequest, blob []byte) (err error) {
	if req == nil {
		n.AddFailed()
		return errors.Wrap(protocol.ErrFormat, protocol.ERR_NilRequest)
	}
	defer func() {
		if e := recover(); e != nil {
			n.Log.Pnc(utils.RecoverError(e))
			err = errors.Errorf("insert %s: %v", req.FileID, e)
		}
	}()

	free, err := utils.GetDirFreeSpace(n.Ws.GetDbDir())
	if err != nil {
		n.Log.Insert("err", fmt.Sprintf("[GetDirFreeSpace] %v", err))
		return errors.Wrap(err, "[GetDirFreeSpace]")
	}
	if free < uint64(len(blob))*2 {
		n.AddFailed()
		n.Log.Insert("err", fmt.Sprintf("%s: %d bytes free, file is %d bytes", req.FileID, free, len(blob)))
		return errors.Errorf("insufficient space in workspace: %d bytes free", free)
	}

	if err = n.Store.Insert(req, blob); err != nil {
		n.AddFailed()
		n.Log.Insert("err", fmt.Sprintf("%s: %v", req.FileID, err))
		return err
	}
	n.AddInserted()
	n.Log.Insert("info", fmt.Sprintf("%s: %d tags, %d keywords, %d bytes", req.FileID, len(req.Tags), len(req.Keywords), len(blob)))
	return nil
}

// Delete invalidates a file with its deletion token.
func (n *Node) Delete(req *protocol.DeleteRequest) error {
	if req == nil {
		n.AddFailed()
		return errors.Wrap(protocol.ErrFormat, protocol.ERR_NilRequest)
	}
	if err := n.Store.Delete(req); err != nil {
		n.AddFailed()
		n.Log.Del("err", fmt.Sprintf("%s: %v", req.FileID, err))
		return err
	}
	n.AddDeleted()
	n.Log.Del("info", fmt.Sprintf("%s deleted", req.FileID))
	return nil
}

// GetFile returns the encrypted body of a valid file.
func (n *Node) GetFile(fileID string) ([]byte, error) {
	entry, err := n.Store.Get(fileID)
	if err != nil {
		return nil, err
	}
	if !entry.Valid() {
		return nil, errors.Wrapf(protocol.ErrState, "%s: %s", protocol.ERR_FileDeleted, fileID)
	}
	return n.Store.Blob(fileID)
}
