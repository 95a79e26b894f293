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
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const (
	search_cmd        = "search <keyword>"
	search_cmd_short  = "Search a keyword and print the proof"
	vsearch_cmd       = "verify-search <proof file>"
	vsearch_cmd_short = "Verify a search proof"
)

var searchCmd = &cobra.Command{
	Use:                   search_cmd,
	Short:                 search_cmd_short,
	Args:                  cobra.ExactArgs(1),
	Run:                   searchCmdFunc,
	DisableFlagsInUseLine: true,
}

var verifySearchCmd = &cobra.Command{
	Use:                   vsearch_cmd,
	Short:                 vsearch_cmd_short,
	Args:                  cobra.ExactArgs(1),
	Run:                   verifySearchCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	searchCmd.Flags().StringP("out", "o", "", "write the proof to a file instead of stdout")
	verifySearchCmd.Flags().StringP("pk", "", "", "public key of the searcher in hex, the local key by default")
	rootCmd.AddCommand(searchCmd, verifySearchCmd)
}

func searchCmdFunc(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	defer s.Close()

	req, err := s.client.SearchRequest(args[0])
	if err != nil {
		s.fail(err)
	}
	sp, err := s.node.Search(req)
	if err != nil {
		s.fail(err)
	}
	fpath, _ := cmd.Flags().GetString("out")
	if err = writeArtifact(fpath, sp); err != nil {
		s.fail(err)
	}
	if fpath == "" {
		return
	}
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"#", "file id"})
	for i, v := range sp.Files {
		tw.AppendRow(table.Row{i + 1, v})
	}
	fmt.Println(tw.Render())
	out.Ok(fpath)
}

func verifySearchCmdFunc(cmd *cobra.Command, args []string) {
	var sp protocol.SearchProof
	if err := readArtifact(args[0], &sp); err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	s, err := openSession(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	defer s.Close()

	pk, _ := cmd.Flags().GetString("pk")
	if pk == "" {
		pk = s.client.PublicKey()
	}
	res, err := s.node.VerifySearchProof(pk, &sp)
	if err != nil {
		s.fail(err)
	}
	if !res.OK {
		out.Warn("search proof rejected: " + res.Reason)
		s.Close()
		os.Exit(1)
	}
	out.Ok(fmt.Sprintf("search proof over %d files verified", len(sp.Files)))
}
