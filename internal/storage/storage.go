package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Load when the document has never been written.
var ErrNotExist = errors.New("document does not exist")

// Store persists whole named JSON documents. Save overwrites the previous
// version; there are no partial writes.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}
