package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/service"
)

type FavoriteHandler struct {
	favorites service.IFavoriteService
	auth      service.IAuthService
}

func NewFavoriteHandler(favorites service.IFavoriteService, auth service.IAuthService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, auth: auth}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/favorites", middleware.AuthMiddlewareWithNotice(h.auth, "please log in to view favorites"), h.ListFavorites)
}

// ListFavorites returns both the id set and the full recipe rows so a
// client can render the favorites page with a single request.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	ids, err := h.favorites.ListFavoriteIDs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch favorites"})
		return
	}

	recipes, err := h.favorites.ListFavoriteRecipes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_ids": ids,
		"recipes":    recipes,
	})
}
