package storage_test

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"souq/internal/storage"

	"github.com/stretchr/testify/assert"
)

// fileHeader builds a real *multipart.FileHeader the same way fiber would
// hand one to a handler.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("attachment", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	assert.NoError(t, err)
	files := form.File["attachment"]
	assert.Len(t, files, 1)
	return files[0]
}

func TestAttachmentStore_SaveAndRemove(t *testing.T) {
	store, err := storage.NewAttachmentStore(t.TempDir())
	assert.NoError(t, err)

	name, err := store.Save(fileHeader(t, "quote.pdf", []byte("%PDF-1.4 test")))
	assert.NoError(t, err)
	assert.NotEqual(t, "quote.pdf", name)
	assert.Contains(t, name, "quote.pdf")

	data, err := os.ReadFile(store.Path(name))
	assert.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)

	assert.NoError(t, store.Remove(name))
	_, err = os.Stat(store.Path(name))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	assert.NoError(t, store.Remove(name))
}

func TestAttachmentStore_RejectsDisallowedExtension(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewAttachmentStore(dir)
	assert.NoError(t, err)

	for _, filename := range []string{"malware.exe", "notes.txt", "archive.tar.gz", "noextension"} {
		_, err := store.Save(fileHeader(t, filename, []byte("data")))
		assert.ErrorIs(t, err, storage.ErrUploadRejected, "filename %q should be rejected", filename)
	}

	// Nothing was written.
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAttachmentStore_CollidingNamesGetDistinctStorageNames(t *testing.T) {
	store, err := storage.NewAttachmentStore(t.TempDir())
	assert.NoError(t, err)

	first, err := store.Save(fileHeader(t, "quote.pdf", []byte("one")))
	assert.NoError(t, err)
	second, err := store.Save(fileHeader(t, "quote.pdf", []byte("two")))
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)

	one, _ := os.ReadFile(store.Path(first))
	two, _ := os.ReadFile(store.Path(second))
	assert.Equal(t, []byte("one"), one)
	assert.Equal(t, []byte("two"), two)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"quote.pdf":             "quote.pdf",
		"../../../etc/passwd":   "passwd",
		"..\\..\\evil.jpg":      "evil.jpg",
		"my invoice (1).png":    "my_invoice__1_.png",
		"عرض_سعر.pdf":           "_______.pdf",
		"":                      "attachment",
		"...":                   "attachment",
	}
	for in, want := range cases {
		assert.Equal(t, want, storage.SanitizeFilename(in), "input %q", in)
	}
}

func TestAttachmentStore_SanitizedSaveStaysInDir(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewAttachmentStore(dir)
	assert.NoError(t, err)

	name, err := store.Save(fileHeader(t, "../escape.png", []byte("img")))
	assert.NoError(t, err)

	// The stored file lives inside the upload dir, nowhere else.
	rel, err := filepath.Rel(dir, store.Path(name))
	assert.NoError(t, err)
	assert.False(t, filepath.IsAbs(rel))
	assert.NotContains(t, rel, "..")
}
