/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"fmt"
	"os"

	out "github.com/CESSProject/cess-vfsse/pkg/fout"
	"github.com/CESSProject/cess-vfsse/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const (
	stat_cmd       = "stat"
	stat_cmd_short = "Show workspace and index information"
)

var statCmd = &cobra.Command{
	Use:                   stat_cmd,
	Short:                 stat_cmd_short,
	Run:                   statCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	statCmd.Flags().Bool("compact", false, "compact the index database before reporting")
	rootCmd.AddCommand(statCmd)
}

func statCmdFunc(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	defer s.Close()

	if compact, _ := cmd.Flags().GetBool("compact"); compact {
		if err = s.node.Compact(); err != nil {
			s.fail(err)
		}
		out.Ok("index database compacted")
	}

	files, deleted, links := s.node.Store.Stat()
	words, err := s.client.Keywords()
	if err != nil {
		s.fail(err)
	}
	dbSize, _ := utils.DirSize(s.node.Ws.GetDbDir())
	free, _ := utils.GetDirFreeSpace(s.node.Ws.GetRootDir())
	mem, _ := utils.GetSysMemAvailable()

	tw := table.NewWriter()
	tw.AppendRows([]table.Row{
		{"workspace", s.node.Ws.GetRootDir()},
		{"public key", displayKey(s.client.PublicKey())},
		{"files", files},
		{"deleted files", deleted},
		{"chain links", links},
		{"keywords", len(words)},
		{"database size", fmt.Sprintf("%d bytes", dbSize)},
		{"free space", fmt.Sprintf("%d bytes", free)},
		{"available memory", fmt.Sprintf("%d bytes", mem)},
		{"cpu cores", s.node.GetCpuCores()},
	})
	fmt.Println(tw.Render())
}
