package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medikita/platform/internal/config"
)

type fakeBucketAPI struct {
	created []string
	errs    map[string]error
}

func (f *fakeBucketAPI) CreateBucket(_ context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	name := *params.Bucket
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	f.created = append(f.created, name)
	return &s3.CreateBucketOutput{}, nil
}

func TestProvisionBucketsCreatesAll(t *testing.T) {
	api := &fakeBucketAPI{}
	err := ProvisionBuckets(context.Background(), api, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"product-images", "article-covers", "partner-logos"}, api.created)
}

func TestProvisionBucketsToleratesExisting(t *testing.T) {
	api := &fakeBucketAPI{errs: map[string]error{
		"product-images": &types.BucketAlreadyOwnedByYou{},
		"article-covers": &types.BucketAlreadyExists{},
	}}
	err := ProvisionBuckets(context.Background(), api, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"partner-logos"}, api.created)
}

func TestProvisionBucketsSurfacesFailure(t *testing.T) {
	api := &fakeBucketAPI{errs: map[string]error{
		"article-covers": errors.New("access denied"),
	}}
	err := ProvisionBuckets(context.Background(), api, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "article-covers")
	assert.Equal(t, []string{"product-images"}, api.created)
}

func TestNewStorageClientRequiresCredentials(t *testing.T) {
	_, err := NewStorageClient(config.StorageConfig{Endpoint: "http://localhost:9000"})
	require.Error(t, err)

	client, err := NewStorageClient(config.StorageConfig{
		Endpoint:  "http://localhost:9000",
		Region:    "ap-southeast-1",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
