// Package storage persists order attachments under a configured local
// directory. Storage names are uuid-prefixed so concurrent uploads of the
// same client filename never overwrite each other.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUploadRejected means the attachment's extension is not on the
// allow-list.
var ErrUploadRejected = errors.New("attachment type not allowed")

// allowedExtensions is the attachment extension allow-list.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// AttachmentStore saves uploaded files under a single directory.
type AttachmentStore struct {
	dir string
}

// NewAttachmentStore creates the upload directory if needed and returns a
// store rooted there.
func NewAttachmentStore(dir string) (*AttachmentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &AttachmentStore{dir: dir}, nil
}

// Save validates and persists an uploaded file, returning the storage name
// to record on the order row.
func (s *AttachmentStore) Save(fh *multipart.FileHeader) (string, error) {
	name := SanitizeFilename(fh.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("extension %q: %w", ext, ErrUploadRejected)
	}

	storageName := uuid.New().String() + "_" + name

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, storageName))
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	return storageName, nil
}

// Remove deletes a stored attachment. Missing files are not an error: the
// row is already gone and that is all the caller cares about.
func (s *AttachmentStore) Remove(storageName string) error {
	if storageName == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, SanitizeFilename(storageName)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove attachment %s: %w", storageName, err)
	}
	return nil
}

// Path returns the on-disk path for a stored attachment.
func (s *AttachmentStore) Path(storageName string) string {
	return filepath.Join(s.dir, SanitizeFilename(storageName))
}

// SanitizeFilename strips any path components from a client-supplied
// filename and replaces every rune outside [a-zA-Z0-9._-] with an
// underscore, so the result is always safe to join under the upload dir.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		out = "attachment"
	}
	return out
}
