package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/collabhub/internal/handlers"
)

func registerAuthRoutes(api *gin.RouterGroup, authHandler *handlers.AuthHandler, requireAuth gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.GET("/me", requireAuth, authHandler.Me)
	}
}
