package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipregistry/internal/domain/apperr"
	"github.com/guttosm/shipregistry/internal/domain/dto"
	"github.com/guttosm/shipregistry/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into JSON responses.
//
// Mapping:
//   - apperr.ErrBadRequest -> 400 (field set for validation errors)
//   - apperr.ErrNotFound   -> 404
//   - anything else        -> 500, details hidden from the client
//
// Nothing is written if the handler already produced a response.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status, body := Classify(err)
	if status == http.StatusInternalServerError {
		rid, _ := c.Get(RequestIDKey)
		logger.L().Error().Err(err).Str("request_id", toString(rid)).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, body)
}

// Classify maps an error to its HTTP status and response body.
func Classify(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, apperr.ErrBadRequest):
		resp := dto.NewErrorResponse(err.Error(), nil)
		resp.Field = apperr.FieldOf(err)
		return http.StatusBadRequest, resp
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, dto.NewErrorResponse(err.Error(), nil)
	default:
		return http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil)
	}
}

// AbortWithError writes a standardized error body with the given status and
// stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
