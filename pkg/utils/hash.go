/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// CalcSHA256 returns the hex sha256 of data. It names files
// inserted without an explicit id.
func CalcSHA256(data []byte) (string, error) {
	if len(data) <= 0 {
		return "", errors.New("data is nil")
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
