package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modresolve/pkg/filesystem"
	"github.com/arthur-debert/modresolve/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// WriteFiles populates fs with path -> content, creating parent directories.
func WriteFiles(t *testing.T, fs types.FS, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	}
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
