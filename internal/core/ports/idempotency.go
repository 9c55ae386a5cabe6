package ports

import "context"

// IdempotencyStore remembers which resource a client-supplied
// Idempotency-Key produced. scope keeps keys of different users and
// resource kinds apart.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (id int64, found bool, err error)
	Remember(ctx context.Context, scope, key string, id int64) error
}
