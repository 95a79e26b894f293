/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package configs

const (
	// Default config file
	DefaultConfigFile = "conf.yaml"
	// Default workspace
	DefaultWorkspace = "./vfsse"
	// size of a data block covered by one authentication tag
	DefaultBlockSize = 4096
	// size of a sector inside a block
	DefaultSectorSize = 32
	// leveldb memory in MiB and open file handles
	DefaultCacheMemory  = 16
	DefaultCacheHandles = 32
)

const (
	// MaxChainSteps bounds a single search traversal
	MaxChainSteps = 1000
	// SecurityBits is the security level of the embedded pairing
	SecurityBits = 80
	// StateLength is the byte length of a fresh keyword state
	StateLength = 32
	// SeedLength is the byte length of a proof challenge seed
	SeedLength = 32
)

const (
	DbDir        = "db"
	LogDir       = "log"
	ClientDir    = "client"
	ParamsFile   = "params.json"
	KeysFile     = "keys.json"
	ParamVersion = "1.0"
)
