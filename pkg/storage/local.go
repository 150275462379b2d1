package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes files under a directory served as static content.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (l *LocalUploader) Upload(ctx context.Context, file File) (string, error) {
	key := objectKey(file.Name)
	path := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file.Reader); err != nil {
		os.Remove(path) // do not leave partial files behind
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return l.baseURL + "/" + key, nil
}
