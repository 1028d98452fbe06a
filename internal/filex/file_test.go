package filex_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firsgate/internal/filex"
)

func TestDirCache_Ensure(t *testing.T) {
	var c filex.DirCache
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, c.Ensure(dir))
	require.NoError(t, c.Ensure(dir))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestWriteLocked_ReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, filex.WriteLocked(path, []byte("first")))
	require.NoError(t, filex.WriteLocked(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp files must not linger")
	}
}

func TestWriteAtomic_MissingDir(t *testing.T) {
	err := filex.WriteAtomic(filepath.Join(t.TempDir(), "missing", "x"), []byte("x"))
	assert.Error(t, err)
}

func TestAppendLocked_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, filex.AppendLocked(path, []byte("line\n")))
		}()
	}
	wg.Wait()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(string(got), "line\n"))
}

func TestExistsAndWritable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	assert.False(t, filex.Exists(path))
	assert.False(t, filex.Exists(""))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	assert.True(t, filex.Exists(path))
	assert.False(t, filex.Exists(dir))

	assert.True(t, filex.Writable(dir))
	assert.False(t, filex.Writable(filepath.Join(dir, "nope")))
}
