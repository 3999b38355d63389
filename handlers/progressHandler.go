package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarmohsen179/advanced-habit-tracker/services"
)

// GetProgress returns per-habit completion totals for the authenticated
// user, one entry per habit in listing order.
func GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := services.ComputeProgress(userID)
	if err != nil {
		serviceError(c, "progress", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
