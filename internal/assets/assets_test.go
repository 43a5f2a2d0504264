package assets

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	public, err := store.Save(fileHeader(t, "cover.png", "pngbytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(public, PublicPrefix))
	assert.Equal(t, ".png", filepath.Ext(public))

	onDisk := filepath.Join(store.Dir, filepath.Base(public))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "pngbytes", string(data))

	require.NoError(t, store.Remove(public))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err), "removed file must be gone")
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(PublicPrefix+"never-existed.png"))
	assert.NoError(t, store.Remove(""))
}

func TestRemoveIgnoresTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(dir), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	require.NoError(t, store.Remove("/uploads/../victim.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err, "file outside the store dir must survive")
}
