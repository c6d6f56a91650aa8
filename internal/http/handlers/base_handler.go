// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"caravan/internal/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeAppError maps apperr kinds to statuses. Anything else is logged and
// reported as a bare 500.
func writeAppError(c *gin.Context, log *zap.Logger, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		writeError(c, http.StatusBadRequest, apperr.Message(err, "invalid request"))
	case apperr.KindNotFound, apperr.KindRouteNotFound:
		writeError(c, http.StatusNotFound, apperr.Message(err, "not found"))
	default:
		_ = c.Error(err)
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
