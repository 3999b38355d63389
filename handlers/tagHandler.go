package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarmohsen179/advanced-habit-tracker/models"
	"github.com/omarmohsen179/advanced-habit-tracker/services"
)

func ListTags(c *gin.Context) {
	tags, err := services.ListTags()
	if err != nil {
		serviceError(c, "list_tags", err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func CreateTag(c *gin.Context) {
	var input models.TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	tag, err := services.CreateTag(input.Name)
	if err != nil {
		serviceError(c, "create_tag", err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func GetTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tag, err := services.GetTag(id)
	if err != nil {
		serviceError(c, "get_tag", err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func UpdateTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input models.TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	tag, err := services.UpdateTag(id, input.Name)
	if err != nil {
		serviceError(c, "update_tag", err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func DeleteTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := services.DeleteTag(id); err != nil {
		serviceError(c, "delete_tag", err)
		return
	}
	c.Status(http.StatusNoContent)
}
