package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
)

var (
	ErrNotOwner         = errors.New("only the recipe owner may modify it")
	ErrEmptyIngredients = errors.New("a recipe needs at least one ingredient")
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns all recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe inserts a recipe row. The caller is expected to have
// uploaded the image already; image_url and user_id must be set.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if len(recipe.Ingredients) == 0 {
		return ErrEmptyIngredients
	}
	return s.db.WithContext(ctx).Create(recipe).Error
}

// UpdateRecipe updates title, description and ingredients of an owned
// recipe. The image and owner never change. The ownership check runs
// before any mutating query.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID uuid.UUID, title, description string, ingredients []string) (*models.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, ErrEmptyIngredients
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrNotOwner
	}

	recipe.Title = title
	recipe.Description = description
	recipe.Ingredients = models.StringArray(ingredients)
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe deletes an owned recipe by id.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	if recipe.UserID != userID {
		return ErrNotOwner
	}
	return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error
}
