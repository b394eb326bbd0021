package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipeshare/backend/internal/models"
)

// ProfileService handles profile reads and the avatar upsert.
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves the profile keyed by account id.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertAvatar writes the profile row (id, email, avatar_url), creating it
// when missing. Signup normally creates the row, but its insert is a soft
// fail, so the upsert also repairs an account left without one.
func (s *ProfileService) UpsertAvatar(ctx context.Context, userID uuid.UUID, email, avatarURL string) (*models.Profile, error) {
	profile := models.Profile{
		ID:        userID,
		Email:     email,
		AvatarURL: &avatarURL,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "avatar_url", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
