package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/collabhub/internal/handlers"
)

func registerUserRoutes(api *gin.RouterGroup, userHandler *handlers.UserHandler, requireAuth gin.HandlerFunc) {
	users := api.Group("/users", requireAuth)
	{
		users.GET("", userHandler.List)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.GET("/recommendations/projects", userHandler.Recommendations)
		users.GET("/:id", userHandler.Get)
	}
}
