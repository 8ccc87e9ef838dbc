package storage

import (
	"io"

	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("blob not found")
	ErrBadKey   = errors.New("invalid blob key")
)

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
	URL(key string) string // path the HTTP layer serves the blob under
}
