/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package node

import (
	"fmt"
	"os"
	"runtime"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/node/workspace"
	"github.com/CESSProject/cess-vfsse/pkg/cache"
	"github.com/CESSProject/cess-vfsse/pkg/confile"
	"github.com/CESSProject/cess-vfsse/pkg/index"
	"github.com/CESSProject/cess-vfsse/pkg/logger"
	"github.com/CESSProject/cess-vfsse/pkg/params"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/pkg/errors"
)

type Node struct {
	Cfg    confile.Confiler
	Ws     workspace.Workspace
	Cach   cache.Cache
	Params *params.PublicParams
	Store  *index.Store
	Log    logger.Logger
	*RunningState
}

// New is used to build a node instance
func New() *Node {
	return &Node{
		RunningState: NewRunningState(),
	}
}

// Open prepares the workspace of cfg, loads the public parameters and
// the persisted index.
func Open(cfg confile.Confiler) (*Node, error) {
	var err error
	n := New()
	n.Cfg = cfg
	n.SetCpuCores(configs.SysInit(cfg.ReadUseCpu()))
	n.SetPID(os.Getpid())

	n.Ws = workspace.NewWorkspace(cfg.ReadWorkspace())
	if err = n.Ws.Build(); err != nil {
		return nil, errors.Wrap(err, "[Build workspace]")
	}

	ctx, err := pbc.Default()
	if err != nil {
		return nil, err
	}
	if _, err = os.Stat(n.Ws.GetParamsFile()); err != nil {
		return nil, errors.Wrapf(protocol.ErrNotFound, "public parameters %s, run setup first", n.Ws.GetParamsFile())
	}
	n.Params, err = params.LoadFile(ctx, n.Ws.GetParamsFile())
	if err != nil {
		return nil, err
	}

	n.Log, err = logger.NewStreams(n.Ws.GetLogDir())
	if err != nil {
		return nil, errors.Wrap(err, "[NewStreams]")
	}

	n.Cach, err = cache.NewCache(n.Ws.GetDbDir(), cfg.ReadCacheMemory(), cfg.ReadCacheHandles(), configs.NameSpaces)
	if err != nil {
		return nil, errors.Wrap(err, "[NewCache]")
	}

	n.Store = index.NewStore(ctx, n.Params.G, n.Cach)
	if err = n.Store.Load(); err != nil {
		n.Cach.Close()
		return nil, errors.Wrap(err, "[Load index]")
	}
	files, deleted, links := n.Store.Stat()
	n.Log.Log("info", fmt.Sprintf("index loaded: %d files, %d deleted, %d links", files, deleted, links))
	return n, nil
}

func (n *Node) Close() error {
	if n.Cach == nil {
		return nil
	}
	return n.Cach.Close()
}

// Compact reclaims the space of overwritten index records.
func (n *Node) Compact() error {
	err := n.Store.Compact()
	if err != nil {
		n.Log.Log("err", fmt.Sprintf("[Compact] %v", err))
		return err
	}
	n.Log.Log("info", "index database compacted")
	return nil
}

func (n *Node) workers() int {
	if v := n.GetCpuCores(); v > 0 {
		return v
	}
	return runtime.NumCPU()
}
