/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package confile

import (
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const DefaultProfile = configs.DefaultConfigFile
const TempleteProfile = `app:
  # workspace
  workspace: "./vfsse"
  # number of cpus used, 0 means two thirds of all cores
  cores: 0
  # block length in bytes, a multiple of sectorsize
  blocksize: 4096
  # sector length in bytes
  sectorsize: 32

cache:
  # leveldb memory in MiB
  memory: 16
  # leveldb open file handles
  handles: 32`

type Confiler interface {
	Parse(fpath string) error
	ReadWorkspace() string
	ReadUseCpu() uint32
	ReadBlockSize() int
	ReadSectorSize() int
	ReadCacheMemory() int
	ReadCacheHandles() int
}

type App struct {
	Workspace  string `name:"workspace" toml:"workspace" yaml:"workspace"`
	Cores      uint32 `name:"cores" toml:"cores" yaml:"cores"`
	Blocksize  int    `name:"blocksize" toml:"blocksize" yaml:"blocksize"`
	Sectorsize int    `name:"sectorsize" toml:"sectorsize" yaml:"sectorsize"`
}

type Cache struct {
	Memory  int `name:"memory" toml:"memory" yaml:"memory"`
	Handles int `name:"handles" toml:"handles" yaml:"handles"`
}

type Confile struct {
	App   `yaml:"app"`
	Cache `yaml:"cache"`
}

var _ Confiler = (*Confile)(nil)

// NewConfigFile returns a configuration holding the defaults, so it is
// usable without a profile.
func NewConfigFile() *Confile {
	return &Confile{
		App: App{
			Workspace:  configs.DefaultWorkspace,
			Blocksize:  configs.DefaultBlockSize,
			Sectorsize: configs.DefaultSectorSize,
		},
		Cache: Cache{
			Memory:  configs.DefaultCacheMemory,
			Handles: configs.DefaultCacheHandles,
		},
	}
}

func (c *Confile) Parse(fpath string) error {
	fstat, err := os.Stat(fpath)
	if err != nil {
		return err
	}
	if fstat.IsDir() {
		return errors.Errorf("The '%v' is not a file", fpath)
	}
	v := viper.New()
	v.SetConfigFile(fpath)
	v.SetConfigType(path.Ext(fpath)[1:])

	err = v.ReadInConfig()
	if err != nil {
		return errors.Errorf("[ReadInConfig] %v", err)
	}
	err = v.Unmarshal(c)
	if err != nil {
		return errors.Errorf("[Unmarshal] %v", err)
	}
	return c.check()
}

func (c *Confile) check() error {
	if c.Workspace == "" {
		return errors.New("'workspace' can not be empty")
	}
	if c.Blocksize <= 0 || c.Sectorsize <= 0 {
		return errors.New("'blocksize' and 'sectorsize' must be positive")
	}
	if c.Blocksize%c.Sectorsize != 0 {
		return errors.Errorf("blocksize %d is not a multiple of sectorsize %d", c.Blocksize, c.Sectorsize)
	}
	if c.Cores > uint32(runtime.NumCPU()) {
		c.Cores = uint32(runtime.NumCPU())
	}
	if c.Memory < 0 || c.Handles < 0 {
		return errors.New("cache settings can not be negative")
	}
	return nil
}

func (c *Confile) SetCpuCores(cores int) {
	c.Cores = uint32(cores)
}

func (c *Confile) SetWorkspace(workspace string) error {
	fstat, err := os.Stat(workspace)
	if err != nil {
		err = os.MkdirAll(workspace, configs.DirMode)
		if err != nil {
			return err
		}
	} else {
		if !fstat.IsDir() {
			return fmt.Errorf("%s is not a directory", workspace)
		}
	}
	c.Workspace = workspace
	return nil
}

func (c *Confile) SetBlockSize(blocksize, sectorsize int) error {
	if blocksize <= 0 || sectorsize <= 0 || blocksize%sectorsize != 0 {
		return errors.Errorf("invalid block/sector size %d/%d", blocksize, sectorsize)
	}
	c.Blocksize = blocksize
	c.Sectorsize = sectorsize
	return nil
}

/////////////////////////////////////////////

func (c *Confile) ReadWorkspace() string {
	return c.Workspace
}

func (c *Confile) ReadUseCpu() uint32 {
	return c.Cores
}

func (c *Confile) ReadBlockSize() int {
	return c.Blocksize
}

func (c *Confile) ReadSectorSize() int {
	return c.Sectorsize
}

func (c *Confile) ReadCacheMemory() int {
	return c.Memory
}

func (c *Confile) ReadCacheHandles() int {
	return c.Handles
}
