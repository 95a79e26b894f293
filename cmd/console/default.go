/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"os"
	"path/filepath"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/CESSProject/cess-vfsse/pkg/confile"
	out "github.com/CESSProject/cess-vfsse/pkg/fout"
	"github.com/spf13/cobra"
)

const (
	default_cmd       = "default"
	default_cmd_short = "Generate configuration file template"
)

var defaultCmd = &cobra.Command{
	Use:                   default_cmd,
	Short:                 default_cmd_short,
	Run:                   defaultCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(defaultCmd)
}

// defaultCmdFunc writes the configuration template to the current path
func defaultCmdFunc(cmd *cobra.Command, args []string) {
	pwd, err := os.Getwd()
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	fpath := filepath.Join(pwd, confile.DefaultProfile)
	if _, err = os.Stat(fpath); err == nil {
		out.Err(fpath + " already exists")
		os.Exit(1)
	}
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, configs.FileMode)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	defer f.Close()
	_, err = f.WriteString(confile.TempleteProfile)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	err = f.Sync()
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	out.Ok(fpath)
}
