/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"encoding/json"
	"os"

	"github.com/CESSProject/cess-vfsse/client"
	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/node"
	"github.com/CESSProject/cess-vfsse/node/workspace"
	"github.com/CESSProject/cess-vfsse/pkg/cache"
	"github.com/CESSProject/cess-vfsse/pkg/confile"
	out "github.com/CESSProject/cess-vfsse/pkg/fout"
	"github.com/CESSProject/cess-vfsse/pkg/keys"
	"github.com/CESSProject/cess-vfsse/pkg/params"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/CESSProject/cess-vfsse/pkg/utils"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// buildConfigFile reads the profile given by --config, or starts from
// the defaults, and applies the command line overrides.
func buildConfigFile(cmd *cobra.Command) (*confile.Confile, error) {
	var cfg = confile.NewConfigFile()
	fpath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if fpath == "" {
		if _, err = os.Stat(confile.DefaultProfile); err == nil {
			fpath = confile.DefaultProfile
		}
	}
	if fpath != "" {
		if err = cfg.Parse(fpath); err != nil {
			return nil, err
		}
	}
	ws, err := cmd.Flags().GetString("ws")
	if err != nil {
		return nil, err
	}
	if ws != "" {
		if err = cfg.SetWorkspace(ws); err != nil {
			return nil, err
		}
	}
	cores, err := cmd.Flags().GetInt("cores")
	if err != nil {
		return nil, err
	}
	if cores > 0 {
		cfg.SetCpuCores(cores)
	}
	return cfg, nil
}

func loadParams(ws workspace.Workspace) (*params.PublicParams, error) {
	ctx, err := pbc.Default()
	if err != nil {
		return nil, err
	}
	pp, err := params.LoadFile(ctx, ws.GetParamsFile())
	if err != nil {
		return nil, errors.Wrap(err, "load public parameters, run setup first")
	}
	return pp, nil
}

func loadKeys(ws workspace.Workspace, pp *params.PublicParams) (*keys.KeyMaterial, error) {
	km, err := keys.LoadFile(pp, ws.GetKeysFile())
	if err != nil {
		return nil, errors.Wrap(err, "load keys, run keygen first")
	}
	return km, nil
}

// session is an opened node together with the local client.
type session struct {
	node   *node.Node
	client *client.Client
	cach   cache.Cache
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := buildConfigFile(cmd)
	if err != nil {
		return nil, err
	}
	n, err := node.Open(cfg)
	if err != nil {
		return nil, err
	}
	km, err := loadKeys(n.Ws, n.Params)
	if err != nil {
		n.Close()
		return nil, err
	}
	cach, err := cache.NewCache(n.Ws.GetClientDir(), cfg.ReadCacheMemory(), cfg.ReadCacheHandles(), configs.NameSpaces)
	if err != nil {
		n.Close()
		return nil, errors.Wrap(err, "[NewCache]")
	}
	return &session{
		node:   n,
		client: client.New(km, cach, cfg.ReadBlockSize(), cfg.ReadSectorSize(), n.GetCpuCores()),
		cach:   cach,
	}, nil
}

func (s *session) Close() {
	s.cach.Close()
	s.node.Close()
}

// fail closes the session and exits with an error.
func (s *session) fail(err error) {
	out.Err(err.Error())
	s.Close()
	os.Exit(1)
}

// displayKey shortens a hex encoded public key for tables.
func displayKey(pkHex string) string {
	b, err := pbc.DecodeHex(pkHex)
	if err != nil {
		return pkHex
	}
	return base58.Encode(b)
}

func writeArtifact(fpath string, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if fpath == "" {
		_, err = os.Stdout.Write(append(buf, '\n'))
		return err
	}
	return utils.WriteFileAtomic(fpath, buf, configs.FileMode)
}

func readArtifact(fpath string, v interface{}) error {
	buf, err := os.ReadFile(fpath)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(buf, v); err != nil {
		return errors.Wrapf(err, "parse %s", fpath)
	}
	return nil
}
