package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/contracts"
	"github.com/apistry/contract-gateway/internal/http/response"
	"github.com/apistry/contract-gateway/internal/platform/logger"
)

// VersionHandler serves the externally maintained version manifest.
type VersionHandler struct {
	log   *logger.Logger
	store *contracts.Store
}

func NewVersionHandler(log *logger.Logger, store *contracts.Store) *VersionHandler {
	return &VersionHandler{log: log, store: store}
}

func (h *VersionHandler) GetVersions(c *gin.Context) {
	manifest, err := h.store.Manifest()
	if err != nil {
		h.log.Error("version manifest unavailable", "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeVersionManifestError, err)
		return
	}
	response.OK(c, manifest)
}
