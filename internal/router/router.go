package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/backend/internal/api"
	"github.com/recipeshare/backend/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *api.AuthHandler
	Recipe   *api.RecipeHandler
	Favorite *api.FavoriteHandler
	Profile  *api.ProfileHandler
}

// Setup configures the application routes. Each handler owns its own
// route group and auth requirements.
func Setup(h Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)
	h.Recipe.RegisterRoutes(v1)
	h.Favorite.RegisterRoutes(v1)
	h.Profile.RegisterRoutes(v1)

	return router
}
