// Package local stores signing artifacts on the local filesystem.
package local

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"firsgate/internal/config"
	"firsgate/internal/domain"
	"firsgate/internal/filex"
	"firsgate/internal/irn"
)

const (
	extJSON      = ".json"
	extEncrypted = ".txt"
	extQR        = ".png"
	dirLockName  = ".lock"
)

// Store writes the JSON, encrypted, and QR artifacts of each signing event
// under three base directories. New files are written flat into the base
// directory; lookups also search one level of bucket subfolders.
type Store struct {
	jsonDir      string
	encryptedDir string
	qrDir        string
	qrSize       int
	dirs         filex.DirCache
}

// NewStore creates a Store over the configured artifact directories.
func NewStore(paths config.PathsConfig) *Store {
	return &Store{
		jsonDir:      paths.JSON,
		encryptedDir: paths.Encrypted,
		qrDir:        paths.QRCodes,
		qrSize:       DefaultQRSize,
	}
}

// Dirs returns the artifact base directories.
func (s *Store) Dirs() []string {
	return []string{s.jsonDir, s.encryptedDir, s.qrDir}
}

// SaveJSON writes the pretty-printed invoice document for signedIRN.
func (s *Store) SaveJSON(signedIRN string, inv domain.Invoice) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(inv); err != nil {
		return "", fmt.Errorf("local.SaveJSON: encoding invoice: %v: %w", err, domain.ErrStorage)
	}
	path, err := s.write(s.jsonDir, signedIRN, extJSON, bytes.TrimRight(buf.Bytes(), "\n"))
	if err != nil {
		return "", fmt.Errorf("local.SaveJSON: %w", err)
	}
	return path, nil
}

// SaveEncrypted writes the Base64 ciphertext for signedIRN.
func (s *Store) SaveEncrypted(signedIRN, encrypted string) (string, error) {
	path, err := s.write(s.encryptedDir, signedIRN, extEncrypted, []byte(encrypted))
	if err != nil {
		return "", fmt.Errorf("local.SaveEncrypted: %w", err)
	}
	return path, nil
}

// GenerateQR renders encrypted as a QR code PNG for signedIRN.
func (s *Store) GenerateQR(signedIRN, encrypted string) (string, error) {
	png, err := RenderQR(encrypted, s.qrSize)
	if err != nil {
		return "", fmt.Errorf("local.GenerateQR: %w", err)
	}
	path, err := s.write(s.qrDir, signedIRN, extQR, png)
	if err != nil {
		return "", fmt.Errorf("local.GenerateQR: %v: %w", err, domain.ErrQRGeneration)
	}
	return path, nil
}

func (s *Store) write(dir, signedIRN, ext string, data []byte) (string, error) {
	name := irn.Sanitize(signedIRN)
	if name == "" {
		return "", fmt.Errorf("empty file name for %q: %w", signedIRN, domain.ErrStorage)
	}
	if err := s.dirs.Ensure(dir); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrStorage)
	}
	path := filepath.Join(dir, name+ext)
	err := filex.WithLock(filepath.Join(dir, dirLockName), func() error {
		return filex.WriteAtomic(path, data)
	})
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrStorage)
	}
	return path, nil
}

// FindJSONPath locates the invoice document for signedIRN.
func (s *Store) FindJSONPath(signedIRN string) (string, bool) {
	return find(s.jsonDir, irn.Sanitize(signedIRN)+extJSON)
}

// FindEncryptedPath locates the ciphertext file for signedIRN.
func (s *Store) FindEncryptedPath(signedIRN string) (string, bool) {
	return find(s.encryptedDir, irn.Sanitize(signedIRN)+extEncrypted)
}

// FindQRPath locates the QR image for signedIRN.
func (s *Store) FindQRPath(signedIRN string) (string, bool) {
	return find(s.qrDir, irn.Sanitize(signedIRN)+extQR)
}

func find(base, name string) (string, bool) {
	if name == "" || name == extJSON || name == extEncrypted || name == extQR {
		return "", false
	}
	direct := filepath.Join(base, name)
	if filex.Exists(direct) {
		return direct, true
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		candidate := filepath.Join(base, e.Name(), name)
		if filex.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}
