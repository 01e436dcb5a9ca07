package app

import (
	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/contracts"
	gatewayhttp "github.com/apistry/contract-gateway/internal/http"
	"github.com/apistry/contract-gateway/internal/http/handlers"
	"github.com/apistry/contract-gateway/internal/http/middleware"
	"github.com/apistry/contract-gateway/internal/observability"
	"github.com/apistry/contract-gateway/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, store *contracts.Store) *gin.Engine {
	log.Info("Wiring handlers...")
	contractHandler := handlers.NewContractHandler(log, store, metrics, cfg.FrontendSpecFile, cfg.BackendSpecFile)

	return gatewayhttp.NewRouter(gatewayhttp.RouterConfig{
		Log:     log,
		Metrics: metrics,

		ContractHandler:  contractHandler,
		SpecIndexHandler: handlers.NewSpecIndexHandler(log, store),
		VersionHandler:   handlers.NewVersionHandler(log, store),
		HealthHandler:    handlers.NewHealthHandler(ServiceName, Version),

		GlobalLimiter:    middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
		AggregateLimiter: middleware.NewRateLimiter(cfg.AggregateRateLimitMax, cfg.AggregateRateLimitWindow),
	})
}
