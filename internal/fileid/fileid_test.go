package fileid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInode(t *testing.T) {
	t.Run("ReturnsStableIdentity", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		require.NoError(t, os.WriteFile(path, []byte("payload"), 0644))

		first, err := Inode(path)
		require.NoError(t, err)
		assert.NotZero(t, first)

		again, err := Inode(path)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})

	t.Run("DistinctFilesHaveDistinctIdentities", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a")
		b := filepath.Join(dir, "b")
		require.NoError(t, os.WriteFile(a, []byte("a"), 0644))
		require.NoError(t, os.WriteFile(b, []byte("b"), 0644))

		inodeA, err := Inode(a)
		require.NoError(t, err)
		inodeB, err := Inode(b)
		require.NoError(t, err)
		assert.NotEqual(t, inodeA, inodeB)
	})

	t.Run("FailsForMissingFile", func(t *testing.T) {
		_, err := Inode(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}

func TestSize(t *testing.T) {
	t.Run("ReturnsByteLength", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.bin")
		require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0644))

		size, err := Size(path)
		require.NoError(t, err)
		assert.Equal(t, uint64(4096), size)
	})

	t.Run("FailsForDirectory", func(t *testing.T) {
		_, err := Size(t.TempDir())
		assert.Error(t, err)
	})
}
