package maintenance

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/medikita/platform/internal/config"
)

// storageBuckets are the object-storage buckets the platform serves media
// from.
var storageBuckets = []string{
	"product-images",
	"article-covers",
	"partner-logos",
}

// NewStorageClient builds an S3 client for the configured S3-compatible
// endpoint.
func NewStorageClient(cfg config.StorageConfig) (*s3.Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage endpoint and credentials are required")
	}

	creds := aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     cfg.AccessKey,
			SecretAccessKey: cfg.SecretKey,
		}, nil
	})

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  creds,
		BaseEndpoint: aws.String(cfg.Endpoint),
		UsePathStyle: true,
	})
	return client, nil
}

// BucketCreator is the slice of the S3 API bucket provisioning needs.
type BucketCreator interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// ProvisionBuckets creates each platform bucket, tolerating buckets that
// already exist.
func ProvisionBuckets(ctx context.Context, client BucketCreator, logger *zap.Logger) error {
	for _, bucket := range storageBuckets {
		_, err := client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(bucket),
		})
		if err != nil {
			var owned *types.BucketAlreadyOwnedByYou
			var exists *types.BucketAlreadyExists
			if errors.As(err, &owned) || errors.As(err, &exists) {
				logger.Info("bucket already provisioned", zap.String("bucket", bucket))
				continue
			}
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		logger.Info("bucket created", zap.String("bucket", bucket))
	}
	return nil
}
