package confile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	confile := "./conf_test.yaml"
	c := NewConfigFile()
	err := c.Parse(confile)
	require.NoError(t, err)
	assert.Equal(t, "./vfsse_test", c.ReadWorkspace())
	assert.Equal(t, 64, c.ReadBlockSize())
	assert.Equal(t, 16, c.ReadSectorSize())
	assert.Equal(t, 16, c.ReadCacheMemory())
	assert.Equal(t, 32, c.ReadCacheHandles())
}

func TestParseTemplate(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), DefaultProfile)
	require.NoError(t, os.WriteFile(fpath, []byte(TempleteProfile), 0644))
	c := NewConfigFile()
	require.NoError(t, c.Parse(fpath))
	assert.Equal(t, 4096, c.ReadBlockSize())
	assert.Equal(t, 32, c.ReadSectorSize())
}

func TestParseRejects(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(fpath, []byte("app:\n  workspace: \"w\"\n  blocksize: 100\n  sectorsize: 32\n"), 0644))
	assert.Error(t, NewConfigFile().Parse(fpath))

	assert.Error(t, NewConfigFile().Parse(t.TempDir()))
	assert.Error(t, NewConfigFile().Parse(filepath.Join(t.TempDir(), "none.yaml")))
}
