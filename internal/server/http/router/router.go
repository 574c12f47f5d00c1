package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/coffeeshop/internal/config"
	"github.com/polkiloo/coffeeshop/internal/idempotency"
	"github.com/polkiloo/coffeeshop/internal/metrics"
	"github.com/polkiloo/coffeeshop/internal/server/http/handlers"
	"github.com/polkiloo/coffeeshop/internal/server/http/middleware"
)

// Params lists router dependencies.
type Params struct {
	fx.In

	Facade  handlers.CoffeeShopFacade
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.Recovery(p.Logger))
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Metrics(p.Metrics))
	engine.Use(cors.New(corsConfig(p.Config.CORSOrigins)))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	drinkHandler := handlers.NewDrinkHandler(p.Facade, p.Logger)
	orderHandler := handlers.NewOrderHandler(p.Facade, p.Logger)
	healthHandler := handlers.NewHealthHandler()
	limiter := middleware.NewRateLimiter(p.Config.RateLimit, p.Config.RateWindow)

	engine.GET("/health", healthHandler.Health)
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	api := engine.Group("/api")
	api.Use(limiter.Middleware())

	api.GET("/drinks", drinkHandler.List)
	api.GET("/drinks/:id", drinkHandler.Get)

	api.GET("/orders", orderHandler.List)
	api.GET("/orders/stats", orderHandler.Stats)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/orders", orderHandler.Create)
	api.POST("/orders/:id/change-status", orderHandler.ChangeStatus)

	engine.NoRoute(handlers.RouteNotFound)

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Encoding", "Accept-Encoding", idempotency.HeaderKey},
		ExposeHeaders: []string{"Retry-After", "Idempotent-Replayed"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
