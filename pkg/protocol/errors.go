/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package protocol

import "github.com/pkg/errors"

// Error classes shared by client and node. Callers wrap them with
// errors.Wrapf and test them with errors.Is.
var (
	// malformed or missing public parameters, bad element length, identity element
	ErrParameter = errors.New("parameter error")
	// request public key does not own the record
	ErrAuthorization = errors.New("authorization error")
	// unknown file id or fingerprint
	ErrNotFound = errors.New("not found")
	// malformed hex or big integer string
	ErrFormat = errors.New("format error")
	// zero divisor, deleted file, file without tags
	ErrState = errors.New("state error")
)

const (
	ERR_PkMismatch   = "public key does not match the owner"
	ERR_FileDeleted  = "file has been deleted"
	ERR_FileNoTags   = "file has no authentication tags"
	ERR_ZeroDivisor  = "deletion token is zero"
	ERR_EmptyFileID  = "empty file id"
	ERR_FileExists   = "file id already exists"
	ERR_Fingerprint  = "fingerprint already indexed"
	ERR_EmptyKeyword = "empty keyword"
	ERR_DelToken     = "deletion token does not match the owner"
	ERR_NilRequest   = "nil request"
)
