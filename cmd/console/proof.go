/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"os"

	out "github.com/CESSProject/cess-vfsse/pkg/fout"
	"github.com/CESSProject/cess-vfsse/pkg/protocol"
	"github.com/spf13/cobra"
)

const (
	proof_cmd       = "proof <file id>"
	proof_cmd_short = "Prove possession of a stored file"
	vfile_cmd       = "verify-file <proof file>"
	vfile_cmd_short = "Verify a file proof"
)

var proofCmd = &cobra.Command{
	Use:                   proof_cmd,
	Short:                 proof_cmd_short,
	Args:                  cobra.ExactArgs(1),
	Run:                   proofCmdFunc,
	DisableFlagsInUseLine: true,
}

var verifyFileCmd = &cobra.Command{
	Use:                   vfile_cmd,
	Short:                 vfile_cmd_short,
	Args:                  cobra.ExactArgs(1),
	Run:                   verifyFileCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	proofCmd.Flags().StringP("out", "o", "", "write the proof to a file instead of stdout")
	rootCmd.AddCommand(proofCmd, verifyFileCmd)
}

func proofCmdFunc(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	defer s.Close()

	fp, err := s.node.GetFileProof(args[0])
	if err != nil {
		s.fail(err)
	}
	fpath, _ := cmd.Flags().GetString("out")
	if err = writeArtifact(fpath, fp); err != nil {
		s.fail(err)
	}
	if fpath != "" {
		out.Ok(fpath)
	}
}

func verifyFileCmdFunc(cmd *cobra.Command, args []string) {
	var fp protocol.FileProof
	if err := readArtifact(args[0], &fp); err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	s, err := openSession(cmd)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	defer s.Close()

	res, err := s.node.VerifyFileProof(&fp)
	if err != nil {
		s.fail(err)
	}
	if !res.OK {
		out.Warn("file proof rejected: " + res.Reason)
		s.Close()
		os.Exit(1)
	}
	out.Ok(fp.FileID + " file proof verified")
}
