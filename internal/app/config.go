package app

import (
	"path/filepath"
	"time"

	"github.com/apistry/contract-gateway/internal/platform/logger"
	"github.com/apistry/contract-gateway/internal/utils"
)

type Config struct {
	Port string

	SpecRoot        string
	OpenAPIDir      string
	AsyncAPIDir     string
	ProtobufDir     string
	VersionManifest string

	FrontendSpecFile string
	BackendSpecFile  string

	RateLimitMax             int
	RateLimitWindow          time.Duration
	AggregateRateLimitMax    int
	AggregateRateLimitWindow time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	specRoot := utils.GetEnv("SPEC_ROOT", "./specs", log)
	return Config{
		Port: utils.GetEnv("PORT", "8080", log),

		SpecRoot:        specRoot,
		OpenAPIDir:      filepath.Join(specRoot, "openapi"),
		AsyncAPIDir:     filepath.Join(specRoot, "asyncapi"),
		ProtobufDir:     filepath.Join(specRoot, "protobuf"),
		VersionManifest: utils.GetEnv("VERSION_MANIFEST", filepath.Join(specRoot, "versions.yaml"), log),

		FrontendSpecFile: utils.GetEnv("FRONTEND_SPEC_FILE", "backend-frontend-api-v1.yaml", log),
		BackendSpecFile:  utils.GetEnv("BACKEND_SPEC_FILE", "backend-internal-api-v1.yaml", log),

		RateLimitMax:             utils.GetEnvAsInt("RATE_LIMIT_MAX", 100, log),
		RateLimitWindow:          time.Duration(utils.GetEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 900, log)) * time.Second,
		AggregateRateLimitMax:    utils.GetEnvAsInt("AGGREGATE_RATE_LIMIT_MAX", 10, log),
		AggregateRateLimitWindow: time.Duration(utils.GetEnvAsInt("AGGREGATE_RATE_LIMIT_WINDOW_SECONDS", 60, log)) * time.Second,
	}
}
