/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFileAtomic writes data to a temporary file next to fpath and
// renames it over fpath, so readers see either the old or the new file.
func WriteFileAtomic(fpath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(fpath)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, filepath.Base(fpath)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)
	if _, err = f.Write(data); err != nil {
		f.Close()
		return errors.Wrapf(err, "[Write]")
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return errors.Wrapf(err, "[Sync]")
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, fpath)
}
