package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)

	require.NoError(t, s.Save(context.Background(), "user-1/resume.pdf", "application/pdf", bytes.NewReader([]byte("%PDF-1.4"))))

	data, err := os.ReadFile(filepath.Join(dir, "user-1", "resume.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestLocalStorageStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)

	require.NoError(t, s.Save(context.Background(), "../../escape.pdf", "application/pdf", bytes.NewReader([]byte("x"))))
	_, err := os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.NoError(t, err)

	assert.Error(t, s.Save(context.Background(), "", "application/pdf", bytes.NewReader(nil)))
}

func TestNewResumeStorage(t *testing.T) {
	s, err := NewResumeStorage(context.Background(), &config.StorageConfig{Driver: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewResumeStorage(context.Background(), &config.StorageConfig{Driver: "gcs"})
	assert.Error(t, err)

	_, err = NewResumeStorage(context.Background(), &config.StorageConfig{Driver: "s3"})
	assert.Error(t, err)
}
