package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`

	// Populated for technician conflicts so the caller can act.
	ConflictingRefs []string `json:"conflicting_refs,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromDomain maps the engine's error taxonomy onto HTTP statuses:
// validation 400, not-found 404, slot/technician conflicts 409,
// lock contention 503 (retryable).
func FromDomain(c *gin.Context, err error) {
	e := domain.AsError(err)
	if e == nil {
		Internal(c, "internal_error", "unexpected error")
		return
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindSlotUnavailable, domain.KindConflict:
		status = http.StatusConflict
	case domain.KindConcurrency:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HTTPError{
		Code:            e.Code,
		Message:         e.Message,
		ConflictingRefs: e.ConflictingRefs,
	})
}
