/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package tag

import (
	"encoding/hex"

	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/CESSProject/cess-vfsse/pkg/utils"
	"github.com/pkg/errors"
)

// SealPointer encrypts the previous state of a chain under H3(cur),
// where cur is the state the link is stored at. The chain head has no
// previous state and gets the empty pointer.
func SealPointer(cur, prev string) (string, error) {
	if prev == "" {
		return "", nil
	}
	ct, err := utils.AesCbcEncrypt(pbc.H3([]byte(cur)), nil, []byte(prev))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(ct), nil
}

// OpenPointer recovers the previous state from a pointer stored at cur.
func OpenPointer(cur, ptr string) (string, error) {
	if ptr == "" {
		return "", nil
	}
	ct, err := pbc.DecodeHex(ptr)
	if err != nil {
		return "", err
	}
	prev, err := utils.AesCbcDecrypt(pbc.H3([]byte(cur)), nil, ct)
	if err != nil {
		return "", errors.Wrapf(protocol.ErrFormat, "pointer: %v", err)
	}
	return string(prev), nil
}
