package domain

import "context"

// TxManager runs fn inside one atomic store transaction. The context
// handed to fn carries the transaction and must be the one passed to
// repository calls made within it.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
