package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/service"
)

type ProfileHandler struct {
	profiles service.IProfileService
	auth     service.IAuthService
	storage  service.IStorageService
}

func NewProfileHandler(profiles service.IProfileService, auth service.IAuthService, storage service.IStorageService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: auth, storage: storage}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile", middleware.AuthMiddleware(h.auth))
	{
		profile.GET("", h.GetProfile)
		profile.POST("/avatar", h.UploadAvatar)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadAvatar stores the image first and only then writes the profile
// row, so a failed upload never leaves a dangling avatar URL. The profile
// row is upserted so accounts whose signup-time profile insert failed
// still end up with one.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "an avatar file is required"})
		return
	}

	user, err := h.auth.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session account no longer exists"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar upload"})
		return
	}
	defer func() { _ = src.Close() }()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	bucket := h.storage.AvatarBucket()
	key := service.AvatarObjectName(userID, file.Filename)
	if err := h.storage.Upload(c.Request.Context(), bucket, key, contentType, src); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error uploading avatar"})
		return
	}

	avatarURL := h.storage.PublicURL(bucket, key)
	profile, err := h.profiles.UpsertAvatar(c.Request.Context(), userID, user.Email, avatarURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
