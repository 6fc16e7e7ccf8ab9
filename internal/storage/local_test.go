package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUpload(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "/documents", nil)
	require.NoError(t, err)

	url, err := l.Upload(context.Background(), []byte("%PDF-1.4 test"), "attestation-20251210.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/documents/attestation-20251210.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "attestation-20251210.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))
}

func TestLocalUploadStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "/documents", nil)
	require.NoError(t, err)

	url, err := l.Upload(context.Background(), []byte("x"), "../../etc/passwd", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/documents/passwd", url)
	_, statErr := os.Stat(filepath.Join(dir, "passwd"))
	assert.NoError(t, statErr)
}

func TestLocalRejectsEmptyFilename(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "", nil)
	require.NoError(t, err)
	_, err = l.Upload(context.Background(), []byte("x"), "..", "application/pdf")
	assert.Error(t, err)
}
