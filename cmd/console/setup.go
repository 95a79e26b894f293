/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"fmt"
	"os"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/node/workspace"
	out "github.com/CESSProject/cess-vfsse/pkg/fout"
	"github.com/CESSProject/cess-vfsse/pkg/keys"
	"github.com/CESSProject/cess-vfsse/pkg/params"
	"github.com/CESSProject/cess-vfsse/pkg/pbc"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const (
	setup_cmd        = "setup"
	setup_cmd_short  = "Generate the public parameters of a new workspace"
	keygen_cmd       = "keygen"
	keygen_cmd_short = "Generate the client key material"
)

var setupCmd = &cobra.Command{
	Use:                   setup_cmd,
	Short:                 setup_cmd_short,
	Run:                   setupCmdFunc,
	DisableFlagsInUseLine: true,
}

var keygenCmd = &cobra.Command{
	Use:                   keygen_cmd,
	Short:                 keygen_cmd_short,
	Run:                   keygenCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	setupCmd.Flags().BoolP("force", "f", false, "replace existing parameters and drop the index")
	keygenCmd.Flags().BoolP("force", "f", false, "replace existing keys")
	rootCmd.AddCommand(setupCmd, keygenCmd)
}

func setupCmdFunc(cmd *cobra.Command, args []string) {
	cfg, err := buildConfigFile(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	force, _ := cmd.Flags().GetBool("force")
	ws := workspace.NewWorkspace(cfg.ReadWorkspace())
	if _, err = os.Stat(ws.GetParamsFile()); err == nil {
		if !force {
			out.Err(ws.GetParamsFile() + " already exists, use --force to replace it")
			os.Exit(1)
		}
		// tags under the old parameters can no longer be verified
		err = ws.RemoveAndBuild()
	} else {
		err = ws.Build()
	}
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}

	ctx, err := pbc.Default()
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	pp, err := params.Setup(ctx, configs.SecurityBits)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	if err = pp.SaveFile(ws.GetParamsFile()); err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	out.Ok(ws.GetParamsFile())
}

func keygenCmdFunc(cmd *cobra.Command, args []string) {
	cfg, err := buildConfigFile(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	force, _ := cmd.Flags().GetBool("force")
	ws := workspace.NewWorkspace(cfg.ReadWorkspace())
	if _, err = os.Stat(ws.GetKeysFile()); err == nil && !force {
		out.Err(ws.GetKeysFile() + " already exists, use --force to replace it")
		os.Exit(1)
	}
	pp, err := loadParams(ws)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	km, err := keys.Generate(pp)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	if err = km.SaveFile(ws.GetKeysFile()); err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	if force {
		out.Warn("keyword states of the previous keys no longer match, reset the client database")
	}
	tw := table.NewWriter()
	tw.AppendRows([]table.Row{
		{"key file", ws.GetKeysFile()},
		{"public key", displayKey(km.PublicKey())},
	})
	fmt.Println(tw.Render())
}
