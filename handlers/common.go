package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/omarmohsen179/advanced-habit-tracker/middleware"
	"github.com/omarmohsen179/advanced-habit-tracker/services"
	"github.com/omarmohsen179/advanced-habit-tracker/utils"
)

func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return id, ok
}

// parseID parses a numeric path parameter. A malformed id is treated like
// a missing resource, same as an unknown one.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// serviceError maps service sentinels onto the HTTP error taxonomy.
func serviceError(c *gin.Context, handler string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrUnknownTag):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tag id"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Completion already exists for this habit and date"})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already exists"})
	default:
		utils.Logger.Error("handler_error",
			zap.String("handler", handler),
			zap.Error(err),
		)
		utils.ErrorCount.WithLabelValues(handler, "internal").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
