package domain

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// storagePathMarker precedes the object path in a storage download URL.
const storagePathMarker = "/o/"

// ImageStorage deletes stored event images (infrastructure port).
type ImageStorage interface {
	// Delete removes the object at path. A missing object is not an error.
	Delete(ctx context.Context, path string) error
}

// StoragePath extracts the object path from a storage download URL such as
// https://storage.example/v0/b/bucket/o/event_images%2Fabc.jpg?alt=media.
// It returns an empty path when the URL does not address a stored object.
func StoragePath(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}
	raw := u.EscapedPath()
	idx := strings.Index(raw, storagePathMarker)
	if idx == -1 {
		return "", nil
	}
	p := raw[idx+len(storagePathMarker):]
	if q := strings.IndexByte(p, '?'); q != -1 {
		p = p[:q]
	}
	path, err := url.PathUnescape(p)
	if err != nil {
		return "", fmt.Errorf("decode storage path: %w", err)
	}
	return path, nil
}
