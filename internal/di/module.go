package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/coffeeshop/internal/app"
	"github.com/polkiloo/coffeeshop/internal/config"
	"github.com/polkiloo/coffeeshop/internal/idempotency"
	"github.com/polkiloo/coffeeshop/internal/logger"
	"github.com/polkiloo/coffeeshop/internal/metrics"
	"github.com/polkiloo/coffeeshop/internal/server/http/router"
	"github.com/polkiloo/coffeeshop/internal/storage/memory"
	"github.com/polkiloo/coffeeshop/internal/usecase"
)

// Module composes the whole service graph. opts are appended last so tests
// can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		memory.Module,
		usecase.Module,
		idempotency.Module,
		metrics.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
