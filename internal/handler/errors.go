package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"estate/internal/model"
)

// respondError maps a service error to a status code. Anything that is not
// a known domain error is treated as an infrastructure failure the client
// may retry.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Not found"})
	case errors.Is(err, model.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Referenced property does not exist"})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "Invalid email or password"})
	case errors.Is(err, model.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "Session expired"})
	case errors.Is(err, model.ErrInvalidSession):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "Invalid session"})
	case errors.Is(err, model.ErrDuplicate):
		c.JSON(http.StatusConflict, model.ErrorResponse{Error: "Already exists"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:     "Service temporarily unavailable, please try again",
			Retryable: true,
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + err.Error()})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, model.ErrorResponse{Error: what + " not found"})
}
