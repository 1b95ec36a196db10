package routes

import (
	"net/http"
	"time"

	"bookview/handlers"
	"bookview/middleware"
	"bookview/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the chat widget endpoints. The chatbot and
// document downloads require the caller's bearer credential.
func RegisterChatRoutes(r *gin.Engine, ch *handlers.ChatHandler) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.BearerAuthMiddleware())
		api.POST("/sessions", ch.CreateSession)
		api.GET("/sessions/:id", ch.GetSession)
		api.POST("/sessions/:id/messages", ch.SendMessage)
		api.POST("/sessions/:id/documents", ch.DownloadDocument)
		api.GET("/sessions/:id/documents/:docID", ch.ViewDocument)
		api.POST("/sessions/:id/appointments", ch.OpenAppointments)
		api.DELETE("/sessions/:id", ch.DeleteSession)
	}
}

// RegisterLandingRoutes registers the search-and-map panel endpoints. The
// catalogs are public, so no credential is required.
func RegisterLandingRoutes(r *gin.Engine, lh *handlers.LandingHandler) {
	api := r.Group("/api/landing")
	{
		api.POST("/sessions", lh.CreateSession)
		api.GET("/sessions/:id", lh.GetSession)
		api.POST("/sessions/:id/category", lh.SelectCategory)
		api.POST("/sessions/:id/search", lh.Search)
		api.POST("/sessions/:id/selection", lh.SelectPin)
		api.DELETE("/sessions/:id/selection", lh.ClearSelection)
		api.POST("/sessions/:id/details", lh.ViewDetails)
		api.DELETE("/sessions/:id", lh.DeleteSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint reporting the last
// snapshot taken by the background monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, ch *handlers.ChatHandler, lh *handlers.LandingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, ch)
	RegisterLandingRoutes(r, lh)
	RegisterHealthRoute(r)
}
