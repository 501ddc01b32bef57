package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	filename, written, err := storage.Save(strings.NewReader("imagedata"), ".webp")
	require.NoError(t, err)

	assert.Equal(t, int64(len("imagedata")), written)
	assert.True(t, strings.HasSuffix(filename, ".webp"))

	data, err := os.ReadFile(filepath.Join(storage.Root(), filename))
	require.NoError(t, err)
	assert.Equal(t, "imagedata", string(data))
}

func TestSaveUniqueNames(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	a, _, err := storage.Save(strings.NewReader("x"), ".jpg")
	require.NoError(t, err)
	b, _, err := storage.Save(strings.NewReader("x"), ".jpg")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDelete(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	filename, _, err := storage.Save(strings.NewReader("x"), ".webp")
	require.NoError(t, err)

	require.NoError(t, storage.Delete(filename))
	_, statErr := os.Stat(filepath.Join(storage.Root(), filename))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteStaysInsideRoot(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))

	storage, err := New(filepath.Join(dir, "images"))
	require.NoError(t, err)

	// traversal is reduced to the base name, which does not exist inside root
	err = storage.Delete("../outside.txt")
	assert.Error(t, err)

	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr)
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
