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
	"github.com/CESSProject/cess-vfsse/pkg/utils"
	"github.com/pkg/errors"
)

func (n *Node) Search(req *protocol.SearchRequest) (sp *protocol.SearchProof, err error) {
	defer func() {
		if e := recover(); e != nil {
			n.Log.Pnc(utils.RecoverError(e))
			sp, err = nil, errors.Errorf("search: %v", e)
		}
	}()
	res, err := proof.Search(n.Params, n.Store, req, n.workers())
	if err != nil {
		n.AddFailed()
		n.Log.Search("err", err.Error())
		return nil, err
	}
	n.AddSearched()
	if res.Truncated {
		n.Log.Search("err", fmt.Sprintf("chain walk stopped after %d links", len(res.Visited)))
	}
	n.Log.Search("info", fmt.Sprintf("visited %d links, %d valid files", len(res.Visited), len(res.Proof.Files)))
	return &res.Proof, nil
}

func (n *Node) VerifySearchProof(pk string, sp *protocol.SearchProof) (protocol.Verification, error) {
	res, err := proof.VerifySearchProof(n.Params, n.Store, pk, sp)
	if err != nil {
		n.Log.Search("err", fmt.Sprintf("[VerifySearchProof] %v", err))
		return res, err
	}
	if res.OK {
		n.Log.Search("info", fmt.Sprintf("search proof over %d files verified", len(sp.Files)))
	} else {
		n.Log.Search("err", fmt.Sprintf("search proof rejected: %s", res.Reason))
	}
	return res, nil
}
