package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	// Register creates the account and its profile row. A profile insert
	// failure is reported through profileErr while the signup itself still
	// succeeds; err is non-nil only when no account was created.
	Register(ctx context.Context, email, password string) (user *models.User, profileErr error, err error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpsertAvatar(ctx context.Context, userID uuid.UUID, email, avatarURL string) (*models.Profile, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	UpdateRecipe(ctx context.Context, id, userID uuid.UUID, title, description string, ingredients []string) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error
}

// IFavoriteService defines the interface for favorite operations
type IFavoriteService interface {
	ListFavoriteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	Favorite(ctx context.Context, userID, recipeID uuid.UUID) error
	Unfavorite(ctx context.Context, userID, recipeID uuid.UUID) error
}

// IStorageService defines the interface for blob storage operations
type IStorageService interface {
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) error
	PublicURL(bucket, key string) string
	RecipeImageBucket() string
	AvatarBucket() string
}

// SessionStore tracks revoked session tokens until their natural expiry.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
