// Package http assembles the gateway's HTTP surface: middleware chain,
// route table and server lifecycle.
package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/http/handlers"
	"github.com/apistry/contract-gateway/internal/http/middleware"
	"github.com/apistry/contract-gateway/internal/http/response"
	"github.com/apistry/contract-gateway/internal/observability"
	"github.com/apistry/contract-gateway/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	ContractHandler  *handlers.ContractHandler
	SpecIndexHandler *handlers.SpecIndexHandler
	VersionHandler   *handlers.VersionHandler
	HealthHandler    *handlers.HealthHandler

	GlobalLimiter    *middleware.RateLimiter
	AggregateLimiter *middleware.RateLimiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(cfg.Log))
	r.Use(middleware.AttachRequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(middleware.Metrics(cfg.Metrics))
	if cfg.GlobalLimiter != nil {
		r.Use(cfg.GlobalLimiter.Middleware(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.VersionHandler != nil {
		r.GET("/versions", cfg.VersionHandler.GetVersions)
	}
	if cfg.SpecIndexHandler != nil {
		r.GET("/specs", cfg.SpecIndexHandler.ListSpecs)
	}

	if cfg.ContractHandler != nil {
		// The two aggregate documents are the heaviest, most fetched
		// resources and carry their own stricter quota.
		aggregate := r.Group("/")
		if cfg.AggregateLimiter != nil {
			aggregate.Use(cfg.AggregateLimiter.Middleware(cfg.Metrics))
		}
		aggregate.GET("/frontend/openapi.json", cfg.ContractHandler.FrontendOpenAPI)
		aggregate.GET("/backend/openapi.json", cfg.ContractHandler.BackendOpenAPI)

		r.GET("/openapi/:fileName", cfg.ContractHandler.GetOpenAPI)
		r.GET("/asyncapi/:fileName", cfg.ContractHandler.GetAsyncAPI)
		r.GET("/protobuf/:fileName", cfg.ContractHandler.GetProtobuf)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.CodeRouteNotFound,
			fmt.Errorf("no route for %s %s", c.Request.Method, c.Request.URL.Path))
	})

	return r
}
