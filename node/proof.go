/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"fmt"

	"github.com/CESSProject/cess-vfsse/pkg/proof"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
)

func (n *Node) GetFileProof(fileID string) (*protocol.FileProof, error) {
	fp, err := proof.GetFileProof(n.Params, n.Store, fileID)
	if err != nil {
		n.AddFailed()
		n.Log.Proof("err", fmt.Sprintf("%s: %v", fileID, err))
		return nil, err
	}
	n.AddProved()
	n.Log.Proof("info", fmt.Sprintf("%s: proof generated", fileID))
	return fp, nil
}

func (n *Node) VerifyFileProof(fp *protocol.FileProof) (protocol.Verification, error) {
	res, err := proof.VerifyFileProof(n.Params, n.Store, fp)
	if err != nil {
		n.Log.Proof("err", fmt.Sprintf("%s: [VerifyFileProof] %v", fp.FileID, err))
		return res, err
	}
	if res.OK {
		n.Log.Proof("info", fmt.Sprintf("%s: proof verified", fp.FileID))
	} else {
		n.Log.Proof("err", fmt.Sprintf("%s: %s", fp.FileID, res.Reason))
	}
	return res, nil
}
