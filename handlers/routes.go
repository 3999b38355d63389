package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/omarmohsen179/advanced-habit-tracker/middleware"
)

// RegisterRoutes wires the full resource surface onto r. Paths keep
// trailing slashes to stay drop-in compatible with existing clients of
// the API.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/", Home)

	auth := r.Group("/auth")
	{
		auth.POST("/register/", Register)
		auth.POST("/login/", Login)
		auth.POST("/token/refresh/", Refresh)
		auth.POST("/logout/", middleware.AuthMiddleware(), Logout)
	}

	api := r.Group("/", middleware.AuthMiddleware())
	{
		api.GET("/tags/", ListTags)
		api.POST("/tags/", CreateTag)
		api.GET("/tags/:id/", GetTag)
		api.PUT("/tags/:id/", UpdateTag)
		api.PATCH("/tags/:id/", UpdateTag)
		api.DELETE("/tags/:id/", DeleteTag)

		api.GET("/habits/", ListHabits)
		api.POST("/habits/", CreateHabit)
		api.GET("/habits/:id/", GetHabit)
		api.PUT("/habits/:id/", UpdateHabit)
		api.PATCH("/habits/:id/", UpdateHabit)
		api.DELETE("/habits/:id/", DeleteHabit)
		api.POST("/habits/:id/complete/", CompleteHabit)
		api.GET("/habits/:id/streak/", GetStreak)

		api.GET("/completions/", ListCompletions)
		api.POST("/completions/", CreateCompletion)
		api.GET("/completions/:id/", GetCompletion)
		api.PUT("/completions/:id/", UpdateCompletion)
		api.PATCH("/completions/:id/", UpdateCompletion)
		api.DELETE("/completions/:id/", DeleteCompletion)

		api.GET("/progress/", GetProgress)
	}
}
