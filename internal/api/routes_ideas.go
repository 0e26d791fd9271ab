package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/collabhub/internal/handlers"
)

func registerIdeaRoutes(api *gin.RouterGroup, ideaHandler *handlers.IdeaHandler) {
	ideas := api.Group("/ideas")
	{
		ideas.GET("/domains", ideaHandler.Domains)
		ideas.POST("/curated", ideaHandler.Curated)
		ideas.POST("/suggest", ideaHandler.Suggest)
	}
}
