/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package index

import "github.com/CESSProject/cess-vfsse/pkg/protocol"

// KeywordSlot links one keyword of a file into its chain.
type KeywordSlot struct {
	// encrypted previous state, empty at the chain head
	Pointer string `json:"pointer"`
	// association tag kt_w (G1, hex)
	Tag string `json:"association_tag"`
	// Ti_bar = H2(T‖state) (G1, hex), key of the search database
	Fingerprint string `json:"fingerprint"`
}

// IndexEntry is kept for every stored file. Entries are never removed,
// a deletion only flips State and clears AuthTags.
type IndexEntry struct {
	FileID     string        `json:"file_id"`
	OwnerPK    string        `json:"owner_pk"`
	State      string        `json:"state"`
	AuthTags   []string      `json:"auth_tags"`
	Keywords   []KeywordSlot `json:"keywords"`
	BlockSize  int           `json:"block_size"`
	SectorSize int           `json:"sector_size"`
}

// SearchIndexEntry is the node side record of one chain link.
type SearchIndexEntry struct {
	Fingerprint string `json:"fingerprint"`
	FileID      string `json:"file_id"`
	Pointer     string `json:"pointer"`
	State       string `json:"state"`
	Tag         string `json:"association_tag"`
}

func (e *IndexEntry) Valid() bool {
	return e.State == protocol.StateValid
}

// BlockCount is the number of blocks still covered by tags.
func (e *IndexEntry) BlockCount() int {
	return len(e.AuthTags)
}

func (e *IndexEntry) clone() *IndexEntry {
	c := *e
	c.AuthTags = append([]string(nil), e.AuthTags...)
	c.Keywords = append([]KeywordSlot(nil), e.Keywords...)
	return &c
}

func (e *SearchIndexEntry) clone() *SearchIndexEntry {
	c := *e
	return &c
}
