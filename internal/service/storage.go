package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/recipeshare/backend/config"
)

// StorageService handles blob uploads to the two application buckets and
// derives the public URLs that recipe and profile rows reference. Blob
// content is never re-read or validated here.
type StorageService struct {
	s3cfg *config.S3Config
	log   *logrus.Entry
}

// Ensure StorageService implements IStorageService
var _ IStorageService = (*StorageService)(nil)

func NewStorageService(s3cfg *config.S3Config) *StorageService {
	return &StorageService{
		s3cfg: s3cfg,
		log:   logrus.WithField("service", "storage"),
	}
}

// Upload stores a blob under the given key.
func (s *StorageService) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) error {
	_, err := s.s3cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to bucket %s: %w", bucket, err)
	}

	s.log.WithFields(logrus.Fields{"bucket": bucket, "key": key}).Info("uploaded object")
	return nil
}

// PublicURL derives the public URL of an uploaded object.
func (s *StorageService) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}

func (s *StorageService) RecipeImageBucket() string {
	return s.s3cfg.RecipeImageBucket
}

func (s *StorageService) AvatarBucket() string {
	return s.s3cfg.AvatarBucket
}

// RecipeObjectName derives a collision-resistant object name for a recipe
// image from the upload time and the original filename.
func RecipeObjectName(filename string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(filename))
}

// AvatarObjectName derives a collision-resistant object name for an avatar
// from the owner id, the upload time and the original file's extension.
func AvatarObjectName(userID uuid.UUID, filename string) string {
	return fmt.Sprintf("%s-%d%s", userID, time.Now().UnixMilli(), filepath.Ext(filename))
}
