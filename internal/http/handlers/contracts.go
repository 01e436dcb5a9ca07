package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/contracts"
	"github.com/apistry/contract-gateway/internal/http/response"
	"github.com/apistry/contract-gateway/internal/observability"
	"github.com/apistry/contract-gateway/internal/platform/logger"
)

const (
	contentTypeYAML  = "application/yaml"
	contentTypeProto = "text/plain; charset=utf-8"
)

// ContractHandler serves named contract files and the two fixed aggregate
// documents. Rendering is a pure function of the stored bytes and the Accept
// header.
type ContractHandler struct {
	log          *logger.Logger
	store        *contracts.Store
	metrics      *observability.Metrics
	frontendFile string
	backendFile  string
}

func NewContractHandler(log *logger.Logger, store *contracts.Store, metrics *observability.Metrics, frontendFile, backendFile string) *ContractHandler {
	return &ContractHandler{
		log:          log,
		store:        store,
		metrics:      metrics,
		frontendFile: frontendFile,
		backendFile:  backendFile,
	}
}

func (h *ContractHandler) GetOpenAPI(c *gin.Context) {
	h.serveNamed(c, contracts.CategoryOpenAPI)
}

func (h *ContractHandler) GetAsyncAPI(c *gin.Context) {
	h.serveNamed(c, contracts.CategoryAsyncAPI)
}

func (h *ContractHandler) GetProtobuf(c *gin.Context) {
	h.serveNamed(c, contracts.CategoryProtobuf)
}

// FrontendOpenAPI serves the fixed frontend aggregate document as JSON.
func (h *ContractHandler) FrontendOpenAPI(c *gin.Context) {
	h.serveAggregate(c, h.frontendFile)
}

// BackendOpenAPI serves the fixed backend aggregate document as JSON.
func (h *ContractHandler) BackendOpenAPI(c *gin.Context) {
	h.serveAggregate(c, h.backendFile)
}

func (h *ContractHandler) serveNamed(c *gin.Context, category contracts.Category) {
	name := c.Param("fileName")
	if err := contracts.ValidateFileName(category, name); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidFileName, err)
		return
	}

	data, err := h.store.Read(category, name)
	if err != nil {
		h.respondReadError(c, category, name, err)
		return
	}

	if !category.Structured() {
		h.metrics.ContractDownloaded(string(category), name)
		c.Data(http.StatusOK, contentTypeProto, data)
		return
	}

	if wantsYAML(c.GetHeader("Accept")) {
		h.metrics.ContractDownloaded(string(category), name)
		c.Data(http.StatusOK, contentTypeYAML, data)
		return
	}

	doc, err := contracts.DecodeDocument(data)
	if err != nil {
		h.log.Error("contract file failed to parse", "category", category, "file", name, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeContractParseError, err)
		return
	}
	h.metrics.ContractDownloaded(string(category), name)
	c.JSON(http.StatusOK, doc)
}

// serveAggregate skips client-name validation: the file name is fixed at
// startup, so the trust boundary differs from the named routes.
func (h *ContractHandler) serveAggregate(c *gin.Context, name string) {
	data, err := h.store.Read(contracts.CategoryOpenAPI, name)
	if err != nil {
		h.respondReadError(c, contracts.CategoryOpenAPI, name, err)
		return
	}
	doc, err := contracts.DecodeDocument(data)
	if err != nil {
		h.log.Error("aggregate document failed to parse", "file", name, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeContractParseError, err)
		return
	}
	h.metrics.ContractDownloaded(string(contracts.CategoryOpenAPI), name)
	c.JSON(http.StatusOK, doc)
}

func (h *ContractHandler) respondReadError(c *gin.Context, category contracts.Category, name string, err error) {
	switch {
	case errors.Is(err, contracts.ErrInvalidFileName):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidFileName, err)
	case errors.Is(err, contracts.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeContractNotFound, err)
	default:
		h.log.Error("contract read failed", "category", category, "file", name, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, err)
	}
}

// wantsYAML is the whole negotiation: only two representations exist.
func wantsYAML(accept string) bool {
	return strings.Contains(accept, contentTypeYAML)
}
