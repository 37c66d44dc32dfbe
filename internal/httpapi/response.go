package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextgen-2026/futureforged"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes err in the error envelope. Pipeline errors map to a
// status by kind; anything else is a 500 with a generic message.
func RespondError(c *gin.Context, err error) {
	status, apiErr := errorResponse(err)
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: apiErr})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func errorResponse(err error) (int, APIError) {
	kind := futureforged.KindOf(err)
	reason := futureforged.ReasonOf(err)
	apiErr := APIError{Code: string(kind), Reason: string(reason)}
	if kind == "" {
		apiErr.Code = "internal"
		apiErr.Message = "unknown error"
		return http.StatusInternalServerError, apiErr
	}
	apiErr.Message = err.Error()

	switch kind {
	case futureforged.InvalidProfile:
		return http.StatusBadRequest, apiErr
	case futureforged.ConfigurationError:
		return http.StatusServiceUnavailable, apiErr
	case futureforged.ProviderError:
		switch reason {
		case futureforged.ReasonQuotaExceeded:
			return http.StatusTooManyRequests, apiErr
		case futureforged.ReasonCanceled:
			return http.StatusGatewayTimeout, apiErr
		}
		return http.StatusBadGateway, apiErr
	default:
		return http.StatusBadGateway, apiErr
	}
}
