// Package images abstracts the external media host that stores employee
// photos. The service keeps only the durable URL returned after an upload.
package images

import "context"

// Object describes one stored image: the provider-side key used for
// deletion and the durable public URL persisted with the employee record.
type Object struct {
	Key string
	URL string
}

// Store uploads a local file to the media host and returns a durable
// reference. Delete removes a previously uploaded object; it exists so that
// a failed persist after a successful upload can be compensated instead of
// leaving an orphaned remote object.
type Store interface {
	Upload(ctx context.Context, localPath string) (*Object, error)
	Delete(ctx context.Context, key string) error
}
