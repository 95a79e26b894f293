/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package configs

import (
	"os"
	"runtime"
)

const (
	// Name is the name of the program
	Name = "vfsse"
	// version
	Version = "v0.1.0 dev"
	// Description is the description of the program
	Description = "Verifiable forward-secure searchable encryption node"
	// NameSpace is the cached namespace
	NameSpaces = Name
)

const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
	// KeyMode is used for files holding client secrets
	KeyMode os.FileMode = 0600
)

// SysInit sets the number of cpu cores used by the program
// and returns it. 0 or a value above the available cores
// means 2/3 of all cores.
func SysInit(cpu uint32) int {
	num := runtime.NumCPU()
	if cpu == 0 || int(cpu) > num {
		num = num * 2 / 3
		if num < 1 {
			num = 1
		}
	} else {
		num = int(cpu)
	}
	runtime.GOMAXPROCS(num)
	return num
}
