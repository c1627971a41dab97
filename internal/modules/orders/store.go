package orders

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("order not found")

// Store is the append-only order persistence boundary. Implementations must
// keep appended records durable and retrievable by Stripe session ID.
type Store interface {
	Append(ctx context.Context, o OrderRecord) error
	FindBySessionID(ctx context.Context, sessionID string) (OrderRecord, error)
	All(ctx context.Context) ([]OrderRecord, error)
}
