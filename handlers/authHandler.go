package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/omarmohsen179/advanced-habit-tracker/models"
	"github.com/omarmohsen179/advanced-habit-tracker/services"
	"github.com/omarmohsen179/advanced-habit-tracker/utils"
)

func Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	user, err := services.RegisterUser(input)
	if err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
			return
		}
		serviceError(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	user, err := services.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.Logger.Warn("login_failed", zap.String("username", input.Username))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		serviceError(c, "login", err)
		return
	}

	access, refresh, err := services.IssueTokenPair(user)
	if err != nil {
		serviceError(c, "login", err)
		return
	}

	utils.Logger.Info("user_logged_in", zap.Uint("user_id", user.ID))
	c.JSON(http.StatusOK, gin.H{
		"access":  access,
		"refresh": refresh,
	})
}

func Refresh(c *gin.Context) {
	var input models.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Refresh == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	access, err := services.RefreshAccessToken(input.Refresh)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefresh) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
			return
		}
		serviceError(c, "refresh", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

// Logout deliberately reports every failure the same way: a missing field,
// a garbage token and an already-revoked token are all one 400.
func Logout(c *gin.Context) {
	var input models.RefreshInput
	_ = c.ShouldBindJSON(&input)

	if err := services.Logout(input.Refresh); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingRefresh):
			utils.Logger.Warn("logout_missing_refresh")
		case errors.Is(err, services.ErrInvalidRefresh):
			utils.Logger.Warn("logout_invalid_refresh")
		default:
			utils.Logger.Error("logout_failed", zap.Error(err))
		}
		c.Status(http.StatusBadRequest)
		return
	}

	c.Status(http.StatusResetContent)
}
