// Package storage provides the media upload collaborator: it accepts a file
// stream and returns a durable public reference.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// File is an uploaded file stream plus the metadata the backends need.
type File struct {
	Reader      io.Reader
	Name        string
	Size        int64
	ContentType string
}

// Uploader stores a file and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
}

// objectKey spreads uploads by date and makes collisions impossible.
func objectKey(name string) string {
	d := time.Now()
	return fmt.Sprintf("%d/%02d/%02d/%s-%s", d.Year(), d.Month(), d.Day(), uuid.New(), name)
}
