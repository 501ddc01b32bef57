// Package fs stores uploaded images on local disk under a single flat
// directory, named uuid + original extension so filenames are unguessable and
// collision-free.
package fs

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
)

type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// filepath.Clean prevents path traversal like "images/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

func (s *Storage) Root() string {
	return s.rootPath
}

// Save writes the file under a generated "uuid.ext" name and returns that
// name. ext must include the leading dot and is cleaned before use.
func (s *Storage) Save(fileData io.Reader, ext string) (string, int64, error) {
	filename := uuid.NewString() + filepath.Clean(ext)
	fullPath := filepath.Join(s.rootPath, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, fileData)
	if err != nil {
		os.Remove(fullPath) // best effort
		return "", 0, fmt.Errorf("failed to copy file data: %w", err)
	}

	return filename, written, nil
}

// Delete unlinks a stored file. The name is reduced to its base first so a
// crafted filename cannot reach outside the image directory.
func (s *Storage) Delete(filename string) error {
	safe := filepath.Base(filename)
	if safe == "." || safe == string(filepath.Separator) {
		return &internal_errors.ErrorWithStatusCode{Message: "Invalid filename", StatusCode: http.StatusBadRequest}
	}
	if err := os.Remove(filepath.Join(s.rootPath, safe)); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
