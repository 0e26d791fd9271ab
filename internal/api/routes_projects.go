package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/collabhub/internal/handlers"
)

func registerProjectRoutes(api *gin.RouterGroup, projectHandler *handlers.ProjectHandler, requireAuth gin.HandlerFunc) {
	projects := api.Group("/projects")
	{
		projects.GET("", projectHandler.List)
		projects.GET("/trending/popular", projectHandler.Trending)
		projects.GET("/:id", projectHandler.Get)
		projects.POST("", requireAuth, projectHandler.Create)
		projects.POST("/:id/save", requireAuth, projectHandler.ToggleSave)
	}
}
