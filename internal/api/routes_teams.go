package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/collabhub/internal/handlers"
)

func registerTeamRoutes(api *gin.RouterGroup, teamHandler *handlers.TeamHandler, requireAuth gin.HandlerFunc) {
	teams := api.Group("/teams")
	{
		teams.GET("", teamHandler.List)
		teams.GET("/:id", teamHandler.Get)
		teams.POST("", requireAuth, teamHandler.Create)
		teams.POST("/:id/join", requireAuth, teamHandler.Join)
		teams.POST("/:id/requests/:requestId/:action", requireAuth, teamHandler.ResolveRequest)
	}
}
