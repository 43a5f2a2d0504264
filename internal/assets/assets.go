// Package assets ties uploaded image files to the lifetime of the records
// that reference them. The database is the source of truth for whether an
// image exists; the filesystem only holds the bytes.
package assets

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path uploads are served under.
const PublicPrefix = "/uploads/"

// Store persists uploaded files and removes them when their owning record
// goes away.
type Store interface {
	// Save writes the upload and returns its public path.
	Save(file *multipart.FileHeader) (string, error)
	// Remove deletes the file behind a public path. Removing a path that no
	// longer exists is a no-op, not an error.
	Remove(publicPath string) error
}

// DiskStore keeps uploads in a local directory.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return PublicPrefix + name, nil
}

func (s *DiskStore) Remove(publicPath string) error {
	if publicPath == "" {
		return nil
	}
	// path.Base strips the public prefix and any traversal an attacker
	// might have persisted.
	err := os.Remove(filepath.Join(s.Dir, path.Base(publicPath)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
