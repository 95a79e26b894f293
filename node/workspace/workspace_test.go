/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	ws := NewWorkspace(root)
	require.NoError(t, ws.Build())
	for _, dir := range []string{ws.GetDbDir(), ws.GetLogDir(), ws.GetClientDir()} {
		fstat, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, fstat.IsDir())
	}
	assert.Equal(t, filepath.Join(root, "params.json"), ws.GetParamsFile())
	assert.Equal(t, filepath.Join(root, "keys.json"), ws.GetKeysFile())
	assert.NoError(t, ws.Check())
}

func TestRemoveAndBuild(t *testing.T) {
	ws := NewWorkspace(t.TempDir())
	require.NoError(t, ws.Build())
	junk := filepath.Join(ws.GetDbDir(), "junk")
	require.NoError(t, os.WriteFile(junk, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(ws.GetParamsFile(), []byte("{}"), 0644))

	require.NoError(t, ws.RemoveAndBuild())
	_, err := os.Stat(junk)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(ws.GetParamsFile())
	assert.NoError(t, err)

	assert.Error(t, NewWorkspace("").Build())
}
