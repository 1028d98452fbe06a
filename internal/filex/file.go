// Package filex provides locked, crash-safe file writes shared by the
// artifact store, the invoice index, and the log file sink.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// DirCache creates directories at most once per process.
type DirCache struct {
	seen sync.Map
}

// Ensure creates dir and its parents unless it was already ensured.
func (c *DirCache) Ensure(dir string) error {
	if _, ok := c.seen.Load(dir); ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	c.seen.Store(dir, struct{}{})
	return nil
}

// LockPath returns the sidecar lock file guarding path.
func LockPath(path string) string {
	return path + ".lock"
}

// WithLock runs fn while holding an exclusive OS-level lock on lockPath.
func WithLock(lockPath string, fn func() error) error {
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", lockPath, err)
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

// WriteAtomic replaces path with data. The content is written to a temporary
// file in the same directory and renamed over path, so readers never observe
// a partial file.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming %s: %w", tmpName, err)
	}
	return nil
}

// WriteLocked writes path atomically while holding its sidecar lock.
func WriteLocked(path string, data []byte) error {
	return WithLock(LockPath(path), func() error {
		return WriteAtomic(path, data)
	})
}

// AppendLocked appends data to path while holding its sidecar lock.
func AppendLocked(path string, data []byte) error {
	return WithLock(LockPath(path), func() error {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return fmt.Errorf("appending to %s: %w", path, err)
		}
		return f.Close()
	})
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Writable reports whether dir exists and a file can be created in it.
func Writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
