package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-customers/internal/domain"
)

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorEnvelope struct {
	Success bool        `json:"success"`
	Error   errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, successEnvelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorEnvelope{Success: false, Error: errorDetail{Message: message}})
}

// writeError maps use-case errors onto HTTP statuses. Storage and other
// unexpected failures are logged and hidden behind a generic 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		respondError(c, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
