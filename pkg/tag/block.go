/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package tag

import (
	"math/big"

	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
)

// Split cuts data into blocks of blockSize bytes, zero-padding the last
// one. Empty data gives a single zero block.
func Split(data []byte, blockSize, sectorSize int) ([][]byte, error) {
	if blockSize <= 0 || sectorSize <= 0 {
		return nil, errors.Wrap(protocol.ErrFormat, "block and sector size must be positive")
	}
	if blockSize%sectorSize != 0 {
		return nil, errors.Wrap(protocol.ErrFormat, "block length is not divisible by sector length")
	}
	n := len(data) / blockSize
	if len(data)%blockSize != 0 || n == 0 {
		n += 1
	}
	blocks := make([][]byte, n)
	for i := 0; i < n; i++ {
		block := make([]byte, blockSize)
		if i*blockSize < len(data) {
			copy(block, data[i*blockSize:])
		}
		blocks[i] = block
	}
	return blocks, nil
}

// SectorSum returns Σ_j c_j mod r over the sectors of a block, each
// sector read as a big-endian integer. μ^{SectorSum} equals
// ∏_j μ^{c_j} because μ has order r.
func SectorSum(block []byte, sectorSize int, r *big.Int) *big.Int {
	sum := new(big.Int)
	c := new(big.Int)
	for j := 0; j < len(block); j += sectorSize {
		end := j + sectorSize
		if end > len(block) {
			end = len(block)
		}
		c.SetBytes(block[j:end])
		sum.Add(sum, c)
	}
	return sum.Mod(sum, r)
}
