package s3

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"firsgate/internal/irn"
	"firsgate/internal/port"
)

var contentTypes = map[string]string{
	".json": "application/json",
	".txt":  "text/plain",
	".png":  "image/png",
}

// Archiver mirrors signing artifacts into object storage under
// {prefix}/{YYYY-MM}/{file name}, bucketed by invoice issue date.
type Archiver struct {
	store  port.ObjectStorage
	prefix string
	now    func() time.Time
}

// NewArchiver creates an Archiver writing through store.
func NewArchiver(store port.ObjectStorage, prefix string) *Archiver {
	return &Archiver{store: store, prefix: prefix, now: time.Now}
}

// Key returns the object key for a local artifact path.
func (a *Archiver) Key(issueDate, localPath string) string {
	return path.Join(a.prefix, irn.DateFolder(issueDate, a.now()), filepath.Base(localPath))
}

// Archive uploads every non-empty path. It attempts all of them and returns
// the joined failures.
func (a *Archiver) Archive(ctx context.Context, issueDate string, paths ...string) ([]string, error) {
	var (
		keys []string
		errs []error
	)
	for _, p := range paths {
		if p == "" {
			continue
		}
		key, err := a.upload(ctx, issueDate, p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		keys = append(keys, key)
	}
	return keys, errors.Join(errs...)
}

func (a *Archiver) upload(ctx context.Context, issueDate, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("archiver.Upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("archiver.Upload: %w", err)
	}

	ct, ok := contentTypes[filepath.Ext(localPath)]
	if !ok {
		ct = "application/octet-stream"
	}
	key := a.Key(issueDate, localPath)
	if _, err := a.store.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        f,
		ContentType: ct,
		Size:        info.Size(),
	}); err != nil {
		return "", fmt.Errorf("archiver.Upload %s: %w", key, err)
	}
	return key, nil
}
