package local_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firsgate/internal/config"
	"firsgate/internal/domain"
	"firsgate/internal/storage/local"
	"firsgate/internal/testutil"
)

const signedIRN = testutil.SampleIRN + ".1761264000"

func newStore(t *testing.T) (*local.Store, config.PathsConfig) {
	t.Helper()
	root := t.TempDir()
	paths := config.PathsConfig{
		JSON:      filepath.Join(root, "json"),
		Encrypted: filepath.Join(root, "encrypted"),
		QRCodes:   filepath.Join(root, "qrcodes"),
	}
	return local.NewStore(paths), paths
}

func TestStore_SaveAndFind(t *testing.T) {
	store, paths := newStore(t)

	jsonPath, err := store.SaveJSON(signedIRN, testutil.ValidInvoice(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.JSON, signedIRN+".json"), jsonPath)

	encPath, err := store.SaveEncrypted(signedIRN, "Y2lwaGVydGV4dA==")
	require.NoError(t, err)

	got, ok := store.FindEncryptedPath(signedIRN)
	require.True(t, ok)
	assert.Equal(t, encPath, got)

	data, err := os.ReadFile(encPath)
	require.NoError(t, err)
	assert.Equal(t, "Y2lwaGVydGV4dA==", string(data))

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var inv map[string]any
	require.NoError(t, json.Unmarshal(raw, &inv))
	assert.Equal(t, testutil.SampleIRN, inv["irn"])

	found, ok := store.FindJSONPath(signedIRN)
	require.True(t, ok)
	assert.Equal(t, jsonPath, found)
}

func TestStore_FindSearchesBucketFolders(t *testing.T) {
	store, paths := newStore(t)

	bucket := filepath.Join(paths.Encrypted, "2025-10")
	require.NoError(t, os.MkdirAll(bucket, 0o755))
	legacy := filepath.Join(bucket, signedIRN+".txt")
	require.NoError(t, os.WriteFile(legacy, []byte("abc"), 0o644))

	got, ok := store.FindEncryptedPath(signedIRN)
	require.True(t, ok)
	assert.Equal(t, legacy, got)

	_, ok = store.FindQRPath(signedIRN)
	assert.False(t, ok)
}

func TestStore_SanitizesFileNames(t *testing.T) {
	store, paths := newStore(t)

	path, err := store.SaveEncrypted("../../etc/"+signedIRN, "x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.Encrypted, "etc"+signedIRN+".txt"), path)

	_, err = store.SaveEncrypted("/\\", "x")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestStore_GenerateQR(t *testing.T) {
	store, _ := newStore(t)

	path, err := store.GenerateQR(signedIRN, "U29tZSBlbmNyeXB0ZWQgcGF5bG9hZA==")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRenderQR_EmptyContent(t *testing.T) {
	_, err := local.RenderQR("", local.DefaultQRSize)
	assert.ErrorIs(t, err, domain.ErrQRGeneration)
}

func TestStore_Bundle(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Bundle(signedIRN)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	_, err = store.SaveEncrypted(signedIRN, "cipher")
	require.NoError(t, err)

	_, err = store.Bundle(signedIRN)
	assert.ErrorIs(t, err, domain.ErrFileNotFound, "QR still missing")

	_, err = store.GenerateQR(signedIRN, "cipher")
	require.NoError(t, err)

	data, err := store.Bundle(signedIRN)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{signedIRN + "_encrypted.txt", signedIRN + "_qr.png"}, names)
}

func TestStore_Download(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.SaveEncrypted(signedIRN, "cipher")
	require.NoError(t, err)
	_, err = store.GenerateQR(signedIRN, "cipher")
	require.NoError(t, err)

	tests := []struct {
		typ         domain.DownloadType
		fileName    string
		contentType string
		disposition string
	}{
		{domain.DownloadTXT, signedIRN + ".txt", "text/plain", domain.DispositionAttachment},
		{domain.DownloadQR, signedIRN + ".png", "image/png", domain.DispositionInline},
		{domain.DownloadBoth, signedIRN + "_package.zip", "application/zip", domain.DispositionAttachment},
		{domain.DownloadJSON, signedIRN + ".json", "application/json", domain.DispositionInline},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			d, err := store.Download(signedIRN, tt.typ)
			require.NoError(t, err)
			defer d.Body.Close()

			assert.Equal(t, tt.fileName, d.FileName)
			assert.Equal(t, tt.contentType, d.ContentType)
			assert.Equal(t, tt.disposition, d.Disposition)

			body, err := io.ReadAll(d.Body)
			require.NoError(t, err)
			assert.EqualValues(t, len(body), d.Size)
		})
	}

	_, err = store.Download(signedIRN, domain.DownloadType("pdf"))
	assert.ErrorIs(t, err, domain.ErrInvalidDownloadType)
}

func TestStore_DownloadMissing(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Download(signedIRN, domain.DownloadQR)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	_, err = store.Download(signedIRN, domain.DownloadTXT)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestStore_Metadata(t *testing.T) {
	store, _ := newStore(t)

	meta, err := store.Metadata(signedIRN)
	require.NoError(t, err)
	assert.Nil(t, meta.EncryptedFile)
	assert.Nil(t, meta.QRFile)

	_, err = store.SaveEncrypted(signedIRN, "cipher")
	require.NoError(t, err)

	meta, err = store.Metadata(signedIRN)
	require.NoError(t, err)
	require.NotNil(t, meta.EncryptedFile)
	assert.Equal(t, "encrypted/"+signedIRN+".txt", meta.EncryptedFile.Path)
	assert.Equal(t, "cipher", meta.EncryptedFile.Data)
	assert.EqualValues(t, 6, meta.EncryptedFile.Size)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`, meta.EncryptedFile.Created)
}
