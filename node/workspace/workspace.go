/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CESSProject/cess-vfsse/configs"
	out "github.com/CESSProject/cess-vfsse/pkg/fout"
	"github.com/CESSProject/cess-vfsse/pkg/utils"
)

// free space below which a warning is printed
const minFreeSpace = 1 << 30

type Workspace interface {
	Build() error
	RemoveAndBuild() error
	Check() error
	GetRootDir() string
	GetDbDir() string
	GetLogDir() string
	GetClientDir() string
	GetParamsFile() string
	GetKeysFile() string
}

type workspace struct {
	rootDir    string
	dbDir      string
	logDir     string
	clientDir  string
	paramsFile string
	keysFile   string
}

var _ Workspace = (*workspace)(nil)

func NewWorkspace(ws string) Workspace {
	return &workspace{
		rootDir:    ws,
		dbDir:      filepath.Join(ws, configs.DbDir),
		logDir:     filepath.Join(ws, configs.LogDir),
		clientDir:  filepath.Join(ws, configs.ClientDir),
		paramsFile: filepath.Join(ws, configs.ParamsFile),
		keysFile:   filepath.Join(ws, configs.KeysFile),
	}
}

func (w *workspace) Check() error {
	dirfreeSpace, err := utils.GetDirFreeSpace(w.rootDir)
	if err != nil {
		return fmt.Errorf("check workspace: %v", err)
	}
	if dirfreeSpace < minFreeSpace {
		out.Warn("Your free space in workspace is less than 1GiB")
	}
	return nil
}

// RemoveAndBuild drops the databases and logs but keeps the parameter
// and key files.
func (w *workspace) RemoveAndBuild() error {
	if w.rootDir == "" {
		return fmt.Errorf("Please initialize the workspace first")
	}
	for _, dir := range []string{w.dbDir, w.logDir, w.clientDir} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return w.Build()
}

func (w *workspace) Build() error {
	if w.rootDir == "" {
		return fmt.Errorf("Please initialize the workspace first")
	}
	for _, dir := range []string{w.rootDir, w.dbDir, w.logDir, w.clientDir} {
		if err := os.MkdirAll(dir, configs.DirMode); err != nil {
			return err
		}
	}
	return nil
}

func (w *workspace) GetRootDir() string {
	return w.rootDir
}
func (w *workspace) GetDbDir() string {
	return w.dbDir
}
func (w *workspace) GetLogDir() string {
	return w.logDir
}
func (w *workspace) GetClientDir() string {
	return w.clientDir
}
func (w *workspace) GetParamsFile() string {
	return w.paramsFile
}
func (w *workspace) GetKeysFile() string {
	return w.keysFile
}
