package local

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"firsgate/internal/domain"
	"firsgate/internal/irn"
)

const createdLayout = "2006-01-02T15:04:05Z"

// Download opens the artifact of the requested type for signedIRN.
func (s *Store) Download(signedIRN string, t domain.DownloadType) (*domain.Download, error) {
	name := irn.Sanitize(signedIRN)
	switch t {
	case domain.DownloadTXT:
		path, ok := s.FindEncryptedPath(name)
		if !ok {
			return nil, fmt.Errorf("local.Download: encrypted file for %s: %w", name, domain.ErrFileNotFound)
		}
		return openFile(path, &domain.Download{
			FileName:     name + extEncrypted,
			ContentType:  "text/plain",
			Disposition:  domain.DispositionAttachment,
			CacheControl: "private, max-age=3600",
		})
	case domain.DownloadQR:
		path, ok := s.FindQRPath(name)
		if !ok {
			return nil, fmt.Errorf("local.Download: QR code file for %s: %w", name, domain.ErrFileNotFound)
		}
		return openFile(path, &domain.Download{
			FileName:     name + extQR,
			ContentType:  "image/png",
			Disposition:  domain.DispositionInline,
			CacheControl: "public, max-age=86400",
		})
	case domain.DownloadBoth:
		data, err := s.Bundle(name)
		if err != nil {
			return nil, fmt.Errorf("local.Download: %w", err)
		}
		return &domain.Download{
			FileName:    name + "_package.zip",
			ContentType: "application/zip",
			Disposition: domain.DispositionAttachment,
			Size:        int64(len(data)),
			Body:        io.NopCloser(bytes.NewReader(data)),
		}, nil
	case domain.DownloadJSON:
		meta, err := s.Metadata(name)
		if err != nil {
			return nil, fmt.Errorf("local.Download: %w", err)
		}
		data, err := json.MarshalIndent(meta, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("local.Download: encoding metadata: %w", err)
		}
		return &domain.Download{
			FileName:    name + extJSON,
			ContentType: "application/json",
			Disposition: domain.DispositionInline,
			Size:        int64(len(data)),
			Body:        io.NopCloser(bytes.NewReader(data)),
		}, nil
	default:
		return nil, fmt.Errorf("local.Download: %q: %w", t, domain.ErrInvalidDownloadType)
	}
}

func openFile(path string, d *domain.Download) (*domain.Download, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("local.Download: opening %s: %v: %w", path, err, domain.ErrFileNotFound)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("local.Download: stat %s: %w", path, err)
	}
	d.Size = fi.Size()
	d.Body = f
	return d, nil
}

// Bundle zips the encrypted and QR artifacts of signedIRN. Both must exist.
func (s *Store) Bundle(signedIRN string) ([]byte, error) {
	name := irn.Sanitize(signedIRN)
	encPath, encOK := s.FindEncryptedPath(name)
	qrPath, qrOK := s.FindQRPath(name)
	if !encOK || !qrOK {
		return nil, fmt.Errorf("local.Bundle: one or more files not found for %s: %w", name, domain.ErrFileNotFound)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct{ src, dst string }{
		{encPath, name + "_encrypted.txt"},
		{qrPath, name + "_qr.png"},
	}
	for _, e := range entries {
		if err := addZipEntry(zw, e.src, e.dst); err != nil {
			_ = zw.Close()
			return nil, fmt.Errorf("local.Bundle: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("local.Bundle: closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

func addZipEntry(zw *zip.Writer, src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %v: %w", src, err, domain.ErrFileNotFound)
	}
	w, err := zw.Create(dst)
	if err != nil {
		return fmt.Errorf("adding %s: %w", dst, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

// Metadata describes whichever artifacts of signedIRN are present. The
// encrypted file entry carries the ciphertext itself.
func (s *Store) Metadata(signedIRN string) (*domain.ArtifactMetadata, error) {
	name := irn.Sanitize(signedIRN)
	meta := &domain.ArtifactMetadata{IRN: name}

	if path, ok := s.FindEncryptedPath(name); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("local.Metadata: reading %s: %w", path, err)
		}
		file, err := describe(path)
		if err != nil {
			return nil, fmt.Errorf("local.Metadata: %w", err)
		}
		file.Data = string(data)
		meta.EncryptedFile = file
	}
	if path, ok := s.FindQRPath(name); ok {
		file, err := describe(path)
		if err != nil {
			return nil, fmt.Errorf("local.Metadata: %w", err)
		}
		meta.QRFile = file
	}
	return meta, nil
}

func describe(path string) (*domain.ArtifactFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &domain.ArtifactFile{
		Path:    filepath.Base(filepath.Dir(path)) + "/" + filepath.Base(path),
		Size:    fi.Size(),
		Created: fi.ModTime().UTC().Format(createdLayout),
	}, nil
}
