package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarmohsen179/advanced-habit-tracker/models"
	"github.com/omarmohsen179/advanced-habit-tracker/services"
	"github.com/omarmohsen179/advanced-habit-tracker/utils"
)

func ListCompletions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	completions, err := services.ListCompletions(userID)
	if err != nil {
		serviceError(c, "list_completions", err)
		return
	}
	c.JSON(http.StatusOK, completions)
}

func CreateCompletion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.CompletionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	completion, err := services.CreateCompletion(userID, input)
	if err != nil {
		serviceError(c, "create_completion", err)
		return
	}

	utils.CompletionCount.WithLabelValues("direct").Inc()
	c.JSON(http.StatusCreated, completion)
}

func GetCompletion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	completion, err := services.GetCompletion(userID, id)
	if err != nil {
		serviceError(c, "get_completion", err)
		return
	}
	c.JSON(http.StatusOK, completion)
}

func UpdateCompletion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input models.CompletionUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	completion, err := services.UpdateCompletion(userID, id, input)
	if err != nil {
		serviceError(c, "update_completion", err)
		return
	}
	c.JSON(http.StatusOK, completion)
}

func DeleteCompletion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := services.DeleteCompletion(userID, id); err != nil {
		serviceError(c, "delete_completion", err)
		return
	}
	c.Status(http.StatusNoContent)
}
