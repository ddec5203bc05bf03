package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "abc-photo.png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc-photo.png", url)

	got, err := os.ReadFile(filepath.Join(dir, "abc-photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}

func TestLocalStore_NoOverwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "uploads")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "a.png", strings.NewReader("one"))
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "a.png", strings.NewReader("two"))
	assert.Error(t, err)
}

func TestLocalStore_StaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "uploads")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../escape.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.png", url)
	assert.FileExists(t, filepath.Join(dir, "escape.png"))

	_, err = store.Save(context.Background(), ".hidden", strings.NewReader("x"))
	assert.Error(t, err)
}
