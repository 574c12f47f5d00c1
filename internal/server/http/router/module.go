package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/coffeeshop/internal/app"
	"github.com/polkiloo/coffeeshop/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.CoffeeShopFacade) handlers.CoffeeShopFacade { return f }),
	fx.Provide(Setup),
)
