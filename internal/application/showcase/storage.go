package showcase

import (
	"context"
	"io"
)

// ImageStorage stores project cover images and returns the public URL
// they will be served under.
type ImageStorage interface {
	// Save writes the image and returns its public URL.
	// filename is the client-supplied name, used only for its extension.
	Save(ctx context.Context, filename string, contentType string, r io.Reader, size int64) (string, error)

	// Remove deletes a previously stored image by its public URL.
	// Removing an unknown URL is not an error.
	Remove(ctx context.Context, publicURL string) error
}
