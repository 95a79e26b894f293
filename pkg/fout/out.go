/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package out prints prompted status lines for the command line.
// Artifacts may be written to stdout, so prompts go to stderr.
package out

import (
	"fmt"
	"io"
	"os"
	"time"
)

const (
	HiRed    = 91
	HiGreen  = 92
	HiYellow = 93
)

const (
	OkPrompt   = "OK"
	WarnPrompt = "!!"
	ErrPrompt  = "XX"
)

var (
	// Writer receives every prompt line.
	Writer io.Writer = os.Stderr
	// Color is disabled when NO_COLOR is set.
	Color = os.Getenv("NO_COLOR") == ""
)

func Err(msg string) {
	line(HiRed, ErrPrompt, msg)
}

func Warn(msg string) {
	line(HiYellow, WarnPrompt, msg)
}

func Ok(msg string) {
	line(HiGreen, OkPrompt, msg)
}

func line(color int, prompt, msg string) {
	if Color {
		prompt = fmt.Sprintf("\x1b[0;%dm%s\x1b[0m", color, prompt)
	}
	fmt.Fprintln(Writer, prompt, time.Now().Format(time.DateTime), msg)
}
