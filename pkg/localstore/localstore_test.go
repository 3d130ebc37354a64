package localstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UploadDeleteRoundTrip(t *testing.T) {
	root := t.TempDir()
	s, err := New(root, "properties", "http://localhost:8080/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Upload(ctx, "a1.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/properties/a1.png", url)

	data, err := os.ReadFile(filepath.Join(root, "properties", "a1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	key, ok := s.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "a1.png", key)

	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(root, "properties", "a1.png"))
	assert.True(t, os.IsNotExist(err))
	assert.Error(t, s.Delete(ctx, key))
}

func TestStore_RejectsDuplicateAndTraversal(t *testing.T) {
	s, err := New(t.TempDir(), "properties", "http://cdn")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Upload(ctx, "dup.jpg", strings.NewReader("1"), "")
	require.NoError(t, err)
	_, err = s.Upload(ctx, "dup.jpg", strings.NewReader("2"), "")
	assert.Error(t, err)

	_, err = s.Upload(ctx, "../escape.jpg", strings.NewReader("x"), "")
	assert.Error(t, err)
	assert.Error(t, s.Delete(ctx, "../../etc/passwd"))

	_, ok := s.KeyFromURL("http://elsewhere/properties/dup.jpg")
	assert.False(t, ok)

	_, err = New(t.TempDir(), "..", "http://cdn")
	assert.Error(t, err)
}
