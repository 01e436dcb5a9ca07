package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/contracts"
	"github.com/apistry/contract-gateway/internal/http/response"
	"github.com/apistry/contract-gateway/internal/platform/logger"
)

type SpecIndex struct {
	OpenAPI    []string          `json:"openapi"`
	AsyncAPI   []string          `json:"asyncapi"`
	Protobuf   []string          `json:"protobuf"`
	Aggregates map[string]string `json:"aggregates"`
	Endpoints  map[string]string `json:"endpoints"`
}

// SpecIndexHandler enumerates every contract resource the gateway exposes.
type SpecIndexHandler struct {
	log   *logger.Logger
	store *contracts.Store
}

func NewSpecIndexHandler(log *logger.Logger, store *contracts.Store) *SpecIndexHandler {
	return &SpecIndexHandler{log: log, store: store}
}

func (h *SpecIndexHandler) ListSpecs(c *gin.Context) {
	index := SpecIndex{
		Aggregates: map[string]string{
			"frontend": "/frontend/openapi.json",
			"backend":  "/backend/openapi.json",
		},
		Endpoints: map[string]string{
			"health":   "/health",
			"metrics":  "/metrics",
			"versions": "/versions",
		},
	}

	for _, category := range contracts.Categories {
		names, err := h.store.List(category)
		if err != nil {
			h.log.Error("contract directory listing failed", "category", category, "error", err)
			response.Error(c, http.StatusInternalServerError, response.CodeDirectoryListError, err)
			return
		}
		paths := make([]string, 0, len(names))
		for _, name := range names {
			paths = append(paths, "/"+string(category)+"/"+name)
		}
		switch category {
		case contracts.CategoryOpenAPI:
			index.OpenAPI = paths
		case contracts.CategoryAsyncAPI:
			index.AsyncAPI = paths
		case contracts.CategoryProtobuf:
			index.Protobuf = paths
		}
	}

	response.OK(c, index)
}
