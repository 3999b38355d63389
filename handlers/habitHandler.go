package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/omarmohsen179/advanced-habit-tracker/models"
	"github.com/omarmohsen179/advanced-habit-tracker/services"
	"github.com/omarmohsen179/advanced-habit-tracker/utils"
)

var validate = validator.New()

func ListHabits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	habits, err := services.ListHabits(userID, c.Query("tag"))
	if err != nil {
		serviceError(c, "list_habits", err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func CreateHabit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.HabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	habit, err := services.CreateHabit(userID, input)
	if err != nil {
		serviceError(c, "create_habit", err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

func GetHabit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	habit, err := services.GetHabit(userID, id)
	if err != nil {
		serviceError(c, "get_habit", err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// UpdateHabit serves PUT and PATCH alike: fields absent from the body are
// left as they are.
func UpdateHabit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input models.HabitUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	habit, err := services.UpdateHabit(userID, id, input)
	if err != nil {
		serviceError(c, "update_habit", err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func DeleteHabit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := services.DeleteHabit(userID, id); err != nil {
		serviceError(c, "delete_habit", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CompleteHabit marks the habit done for today. Calling it twice on the
// same day reuses the existing row.
func CompleteHabit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	completion, created, err := services.CompleteHabit(userID, id, models.Today())
	if err != nil {
		serviceError(c, "complete_habit", err)
		return
	}

	utils.CompletionCount.WithLabelValues("complete").Inc()
	utils.Logger.Info("habit_completed",
		zap.Uint("user_id", userID),
		zap.Uint("habit_id", id),
		zap.Uint("completion_id", completion.ID),
		zap.Bool("created", created),
	)
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

func GetStreak(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	streak, err := services.ComputeStreak(userID, id, models.Today())
	if err != nil {
		serviceError(c, "get_streak", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}
