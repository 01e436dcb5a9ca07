package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the envelope's code field.
const (
	CodeInvalidFileName      = "InvalidFileName"
	CodeContractNotFound     = "ContractNotFound"
	CodeContractParseError   = "ContractParseError"
	CodeVersionManifestError = "VersionManifestError"
	CodeDirectoryListError   = "DirectoryListError"
	CodeRateLimitExceeded    = "RateLimitExceeded"
	CodeRouteNotFound        = "RouteNotFound"
	CodeInternalError        = "InternalError"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

type RateLimitEnvelope struct {
	Error             APIError `json:"error"`
	RequestID         string   `json:"request_id,omitempty"`
	RetryAfterSeconds int      `json:"retry_after_seconds"`
}

func Error(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
		RequestID: c.GetString("request_id"),
	})
}

// RetryLater renders a 429 with a machine-readable retry hint.
func RetryLater(c *gin.Context, retryAfterSeconds int) {
	c.JSON(http.StatusTooManyRequests, RateLimitEnvelope{
		Error: APIError{
			Message: "rate limit exceeded, retry later",
			Code:    CodeRateLimitExceeded,
		},
		RequestID:         c.GetString("request_id"),
		RetryAfterSeconds: retryAfterSeconds,
	})
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
