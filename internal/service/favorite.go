package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
)

// FavoriteService handles the user/recipe bookmark pairs.
type FavoriteService struct {
	db *gorm.DB
}

// Ensure FavoriteService implements IFavoriteService
var _ IFavoriteService = (*FavoriteService)(nil)

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// ListFavoriteIDs returns the ids of the recipes the user has favorited.
func (s *FavoriteService) ListFavoriteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var favorites []models.Favorite
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(favorites))
	for i, fav := range favorites {
		ids[i] = fav.RecipeID
	}
	return ids, nil
}

// ListFavoriteRecipes returns the recipe rows matching the user's favorite
// set. An empty set short-circuits without a second query.
func (s *FavoriteService) ListFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	ids, err := s.ListFavoriteIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}

	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Favorite adds the (user, recipe) pair. Repeating is a no-op, so a
// double-submitted toggle never duplicates the pair.
func (s *FavoriteService) Favorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	return s.db.WithContext(ctx).Where(models.Favorite{UserID: userID, RecipeID: recipeID}).FirstOrCreate(&fav).Error
}

// Unfavorite removes the (user, recipe) pair; removing an absent pair is
// not an error.
func (s *FavoriteService) Unfavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{}).Error
}
