package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewebb/backend/internal/domain"
)

func TestNewStore_CreatesCategoryDirs(t *testing.T) {
	root := t.TempDir()

	_, err := NewStore(root)
	require.NoError(t, err)

	for _, category := range domain.Categories() {
		info, err := os.Stat(filepath.Join(root, string(category)))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestStore_SaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(root)
	require.NoError(t, err)

	relPath, err := store.Save(domain.CategoryPublic, "doc.pdf", strings.NewReader("file content"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("public", "doc.pdf"), relPath)

	data, err := os.ReadFile(filepath.Join(root, relPath))
	require.NoError(t, err)
	assert.Equal(t, "file content", string(data))

	require.NoError(t, store.Remove(domain.CategoryPublic, "doc.pdf"))

	_, err = os.Stat(filepath.Join(root, relPath))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Save_RejectsDuplicate(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(domain.CategoryEulogy, "doc.pdf", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = store.Save(domain.CategoryEulogy, "doc.pdf", strings.NewReader("second"))
	assert.Error(t, err)
}

func TestStore_Remove_MissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	// 文件不存在不算错误
	assert.NoError(t, store.Remove(domain.CategoryPublic, "missing.pdf"))
}
