/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package protocol

// Group elements are hex strings of their raw byte encoding,
// scalars are decimal strings.

type KeywordEntry struct {
	TiBar string `json:"Ti_bar"`
	Kt    string `json:"kt_wi"`
	Ptr   string `json:"ptr_i,omitempty"`
}

// InsertRequest is produced by the client for one file. The
// encrypted file body travels next to it.
type InsertRequest struct {
	PK       string         `json:"PK"`
	FileID   string         `json:"ID_F"`
	Tags     []string       `json:"TS_F"`
	State    string         `json:"state"`
	Keywords []KeywordEntry `json:"keywords"`
	// block and sector sizes the tags were computed with
	BlockSize  int `json:"block_size"`
	SectorSize int `json:"sector_size"`
}

type SearchRequest struct {
	PK    string `json:"PK"`
	Token string `json:"T"`
	Std   string `json:"std"`
}

type FileSubProof struct {
	FileID string `json:"ID_F"`
	Psi    string `json:"psi_alpha"`
	Phi    string `json:"phi_alpha"`
}

// SearchProof is the artifact returned by a search.
type SearchProof struct {
	Token  string         `json:"T"`
	Std    string         `json:"std"`
	Seed   string         `json:"seed"`
	Phi    string         `json:"phi"`
	Files  []string       `json:"AS"`
	Proofs []FileSubProof `json:"PS"`
}

type FileProofBody struct {
	Psi string `json:"psi"`
	Phi string `json:"phi"`
}

type FileProof struct {
	FileID string        `json:"ID_F"`
	Proof  FileProofBody `json:"FileProof"`
	Seed   string        `json:"seed"`
}

type DeleteRequest struct {
	FileID string `json:"ID_F"`
	PK     string `json:"PK"`
	Del    string `json:"del"`
}

// Verification is the outcome of a pairing check. A check that
// could not be computed is reported as an error instead.
type Verification struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

const (
	StateValid   = "valid"
	StateInvalid = "invalid"
)
