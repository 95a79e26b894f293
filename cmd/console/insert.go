/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/CESSProject/cess-vfsse/configs"
	out "github.com/CESSProject/cess-vfsse/pkg/fout"
	"github.com/CESSProject/cess-vfsse/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const (
	insert_cmd       = "insert <file>"
	insert_cmd_short = "Encrypt, tag and store a file under keywords"
	get_cmd          = "get <file id>"
	get_cmd_short    = "Fetch and decrypt a stored file"
	delete_cmd       = "delete <file id>"
	delete_cmd_short = "Delete a file with its deletion token"
)

var insertCmd = &cobra.Command{
	Use:                   insert_cmd,
	Short:                 insert_cmd_short,
	Example:               configs.Name + " insert ./report.pdf -k finance,2024",
	Args:                  cobra.ExactArgs(1),
	Run:                   insertCmdFunc,
	DisableFlagsInUseLine: true,
}

var getCmd = &cobra.Command{
	Use:                   get_cmd,
	Short:                 get_cmd_short,
	Args:                  cobra.ExactArgs(1),
	Run:                   getCmdFunc,
	DisableFlagsInUseLine: true,
}

var deleteCmd = &cobra.Command{
	Use:                   delete_cmd,
	Short:                 delete_cmd_short,
	Args:                  cobra.ExactArgs(1),
	Run:                   deleteCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	insertCmd.Flags().StringP("id", "", "", "file id, the sha256 of the file by default")
	insertCmd.Flags().StringSliceP("keywords", "k", nil, "keyword list")
	getCmd.Flags().StringP("out", "o", "", "output path, the file id by default")
	rootCmd.AddCommand(insertCmd, getCmd, deleteCmd)
}

func insertCmdFunc(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	fileID, _ := cmd.Flags().GetString("id")
	if fileID == "" {
		if fileID, err = utils.CalcSHA256(data); err != nil {
			out.Err(err.Error())
			os.Exit(1)
		}
	}
	words, _ := cmd.Flags().GetStringSlice("keywords")
	for i := range words {
		words[i] = strings.TrimSpace(words[i])
	}

	s, err := openSession(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	defer s.Close()

	p, err := s.client.PrepareInsert(fileID, data, words)
	if err != nil {
		s.fail(err)
	}
	if err = s.node.Insert(p.Request, p.Blob); err != nil {
		s.fail(err)
	}
	if err = s.client.Commit(p); err != nil {
		s.fail(err)
	}
	tw := table.NewWriter()
	tw.AppendRows([]table.Row{
		{"file id", fileID},
		{"size", fmt.Sprintf("%d bytes", len(data))},
		{"blocks", len(p.Request.Tags)},
		{"keywords", strings.Join(words, ", ")},
	})
	fmt.Println(tw.Render())
}

func getCmdFunc(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	defer s.Close()

	blob, err := s.node.GetFile(args[0])
	if err != nil {
		s.fail(err)
	}
	plain, err := s.client.DecryptFile(blob)
	if err != nil {
		s.fail(err)
	}
	fpath, _ := cmd.Flags().GetString("out")
	if fpath == "" {
		fpath = args[0]
	}
	if err = utils.WriteFileAtomic(fpath, plain, configs.FileMode); err != nil {
		s.fail(err)
	}
	out.Ok(fpath)
}

func deleteCmdFunc(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	defer s.Close()

	req, err := s.client.DeleteRequest(args[0])
	if err != nil {
		s.fail(err)
	}
	if err = s.node.Delete(req); err != nil {
		s.fail(err)
	}
	out.Ok(args[0] + " deleted")
}
