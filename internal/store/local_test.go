package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndList(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "part00000.csv", strings.NewReader("\"1\"|\"a\"\n")))
	require.NoError(t, s.Put(ctx, "part00002.csv", strings.NewReader("\"2\"|\"b\"\n")))
	require.NoError(t, s.Put(ctx, "other.txt", strings.NewReader("ignore")))

	names, err := s.List(ctx, "part")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"part00000.csv", "part00002.csv"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "part00000.csv"))
	require.NoError(t, err)
	assert.Equal(t, "\"1\"|\"a\"\n", string(data))
}

func TestLocalStoreListEmpty(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	names, err := s.List(context.Background(), "part")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tmp")
	_, err := NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStoreRequiresDirectory(t *testing.T) {
	_, err := NewLocalStore("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory is required")
}
