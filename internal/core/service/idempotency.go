package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/ports"
)

// idempotency wraps an optional IdempotencyStore. Store failures are logged
// and otherwise ignored: a broken cache must not block writes.
type idempotency struct {
	store  ports.IdempotencyStore
	logger zerolog.Logger
}

// lookup returns the id remembered for key, if any.
func (i idempotency) lookup(ctx context.Context, scope, key string) (int64, bool) {
	if i.store == nil || key == "" {
		return 0, false
	}
	id, found, err := i.store.Lookup(ctx, scope, key)
	if err != nil {
		i.logger.Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed")
		return 0, false
	}
	return id, found
}

func (i idempotency) remember(ctx context.Context, scope, key string, id int64) {
	if i.store == nil || key == "" {
		return
	}
	if err := i.store.Remember(ctx, scope, key, id); err != nil {
		i.logger.Warn().Err(err).Str("scope", scope).Int64("id", id).Msg("idempotency remember failed")
	}
}
