package domain

import (
	"fmt"
	"io"
	"strings"
)

// DownloadType selects which artifact a download returns.
type DownloadType string

const (
	DownloadQR   DownloadType = "qr"
	DownloadTXT  DownloadType = "txt"
	DownloadBoth DownloadType = "both"
	DownloadJSON DownloadType = "json"
)

// ParseDownloadType validates a download type query value. Empty means qr.
func ParseDownloadType(s string) (DownloadType, error) {
	switch t := DownloadType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return DownloadQR, nil
	case DownloadQR, DownloadTXT, DownloadBoth, DownloadJSON:
		return t, nil
	default:
		return "", fmt.Errorf("download type %q: %w", s, ErrInvalidDownloadType)
	}
}

// Disposition values for downloaded artifacts.
const (
	DispositionInline     = "inline"
	DispositionAttachment = "attachment"
)

// Download is a streamable artifact with the headers needed to serve it.
type Download struct {
	FileName     string
	ContentType  string
	Disposition  string
	CacheControl string
	Size         int64
	Body         io.ReadCloser
}

// ArtifactFile describes one stored artifact in download metadata.
type ArtifactFile struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Created string `json:"created"`
	Data    string `json:"data,omitempty"`
}

// ArtifactMetadata is the json download view of a signed invoice's artifacts.
type ArtifactMetadata struct {
	IRN           string        `json:"irn"`
	EncryptedFile *ArtifactFile `json:"encrypted_file,omitempty"`
	QRFile        *ArtifactFile `json:"qr_file,omitempty"`
}
