package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/contracts"
	"github.com/apistry/contract-gateway/internal/observability"
	"github.com/apistry/contract-gateway/internal/platform/logger"
)

const ServiceName = "contract-gateway"

// Version is stamped at build time via -ldflags.
var Version = "dev"

type App struct {
	Log     *logger.Logger
	Cfg     Config
	Metrics *observability.Metrics
	Store   *contracts.Store
	Router  *gin.Engine
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	metrics := observability.NewMetrics()

	store := contracts.NewStore(contracts.StoreConfig{
		OpenAPIRoot:  cfg.OpenAPIDir,
		AsyncAPIRoot: cfg.AsyncAPIDir,
		ProtobufRoot: cfg.ProtobufDir,
		ManifestPath: cfg.VersionManifest,
	})

	router := wireRouter(log, cfg, metrics, store)

	return &App{
		Log:     log,
		Cfg:     cfg,
		Metrics: metrics,
		Store:   store,
		Router:  router,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
