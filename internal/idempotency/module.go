package idempotency

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/coffeeshop/internal/config"
)

// Module provides the idempotency key store.
var Module = fx.Provide(func(cfg *config.Config, logger *slog.Logger) *Store {
	return NewStore(cfg.IdempotencyTTL, logger)
})
