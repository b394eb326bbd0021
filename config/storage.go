package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the S3 client and the two application buckets:
// recipe images and profile avatars.
type S3Config struct {
	Client            *s3.Client
	RecipeImageBucket string
	AvatarBucket      string
}

// NewS3Config initializes the S3 client from the AWS environment.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		Client:            s3.NewFromConfig(awsCfg),
		RecipeImageBucket: cfg.RecipeImageBucket,
		AvatarBucket:      cfg.AvatarBucket,
	}, nil
}

// SetupBucketPolicies applies public-read policies so uploaded objects are
// reachable through their public URLs.
func (s *S3Config) SetupBucketPolicies(ctx context.Context) error {
	for _, bucket := range []string{s.RecipeImageBucket, s.AvatarBucket} {
		policy := `{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Sid": "PublicReadGetObject",
				"Effect": "Allow",
				"Principal": "*",
				"Action": "s3:GetObject",
				"Resource": "arn:aws:s3:::` + bucket + `/*"
			}
		]
	}`
		_, err := s.Client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
			Bucket: aws.String(bucket),
			Policy: aws.String(policy),
		})
		if err != nil {
			return fmt.Errorf("failed to set policy on bucket %s: %w", bucket, err)
		}
	}
	return nil
}
