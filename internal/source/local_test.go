package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 "+name), 0o600))
	}
}

func TestIsSupported(t *testing.T) {
	tests := map[string]bool{
		"scan.pdf":        true,
		"SCAN.PDF":        true,
		"photo.jpeg":      true,
		"photo.JPG":       true,
		"page.png":        true,
		"notes.txt":       false,
		"archive.pdf.zip": false,
		"noext":           false,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, IsSupported(name))
		})
	}
}

func TestLocalSource_List(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.pdf", "a.PNG", "notes.txt", "2024/c.jpg")

	src, err := NewLocalSource(dir, nil)
	require.NoError(t, err)

	files, err := src.List(context.Background())
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "2024", "c.jpg"),
		filepath.Join(dir, "a.PNG"),
		filepath.Join(dir, "b.pdf"),
	}
	assert.Equal(t, want, files)
}

func TestLocalSource_ListCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.pdf")

	src, err := NewLocalSource(dir, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "wo-1.pdf", "notes.txt")

	src, err := NewLocalSource(dir, nil)
	require.NoError(t, err)

	doc, err := src.Fetch(context.Background(), filepath.Join(dir, "wo-1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "wo-1.pdf", doc.Name)
	assert.Equal(t, model.MediaTypePDF, doc.MediaType())
	assert.NotEmpty(t, doc.Data)

	_, err = src.Fetch(context.Background(), filepath.Join(dir, "notes.txt"))
	assert.ErrorIs(t, err, common.ErrInvalidDocument)

	_, err = src.Fetch(context.Background(), filepath.Join(dir, "missing.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLocalSource_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "file.pdf")

	_, err := NewLocalSource(filepath.Join(dir, "missing"), nil)
	assert.Error(t, err)

	_, err = NewLocalSource(filepath.Join(dir, "file.pdf"), nil)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
