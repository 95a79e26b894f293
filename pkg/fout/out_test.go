/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package out

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrompts(t *testing.T) {
	var buf bytes.Buffer
	w, c := Writer, Color
	Writer, Color = &buf, false
	defer func() { Writer, Color = w, c }()

	Ok("done")
	Warn("careful")
	Err("failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], OkPrompt+" "))
	assert.True(t, strings.HasSuffix(lines[0], " done"))
	assert.True(t, strings.HasPrefix(lines[1], WarnPrompt+" "))
	assert.True(t, strings.HasPrefix(lines[2], ErrPrompt+" "))
	assert.NotContains(t, buf.String(), "\x1b[")

	buf.Reset()
	Color = true
	Ok("done")
	assert.Contains(t, buf.String(), "\x1b[0;92mOK\x1b[0m")
}
