package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home is the only application endpoint that works without a token.
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Smart Habit Tracker API!",
		"status":  "success",
	})
}
