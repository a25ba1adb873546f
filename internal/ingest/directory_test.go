package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.png"))
	writeFile(t, filepath.Join(root, "b.JPG"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "sub", "c.jpeg"))
	writeFile(t, filepath.Join(root, ".hidden", "d.png"))
	writeFile(t, filepath.Join(root, ".dotfile.png"))

	var emitted []string
	results, stats, err := ScanDirectory(context.Background(), root, true, func(path string) error {
		emitted = append(emitted, path)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, emitted, 3)
	assert.Equal(t, uint32(3), stats.Matched)
	assert.Equal(t, uint32(0), stats.Failed)
	for _, r := range results {
		assert.Empty(t, r.Err)
	}
}

func TestScanDirectoryEmitErrorKeepsWalking(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.png"))
	writeFile(t, filepath.Join(root, "b.png"))

	calls := 0
	_, stats, err := ScanDirectory(context.Background(), root, true, func(string) error {
		calls++
		if calls == 1 {
			return errors.New("boom")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, uint32(1), stats.Failed)
}

func TestScanDirectoryEmptyRoot(t *testing.T) {
	_, _, err := ScanDirectory(context.Background(), "  ", true, func(string) error { return nil })
	assert.Error(t, err)
}

func TestScanDirectoryCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ScanDirectory(ctx, root, true, func(string) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
