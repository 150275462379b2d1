package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// ImageNormalizer wraps an Uploader and downscales images so oversized
// avatars and cover images never reach the backing store at full size.
// Non-image files pass through untouched.
type ImageNormalizer struct {
	next    Uploader
	maxEdge int
}

func NewImageNormalizer(next Uploader, maxEdge int) *ImageNormalizer {
	return &ImageNormalizer{next: next, maxEdge: maxEdge}
}

func (n *ImageNormalizer) Upload(ctx context.Context, file File) (string, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return n.next.Upload(ctx, file)
	}

	img, err := imaging.Decode(file.Reader, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decoding image %s: %w", file.Name, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > n.maxEdge || bounds.Dy() > n.maxEdge {
		img = imaging.Fit(img, n.maxEdge, n.maxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encoding image %s: %w", file.Name, err)
	}

	normalized := File{
		Reader:      &buf,
		Name:        jpegName(file.Name),
		Size:        int64(buf.Len()),
		ContentType: "image/jpeg",
	}
	return n.next.Upload(ctx, normalized)
}

func jpegName(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name + ".jpg"
}
