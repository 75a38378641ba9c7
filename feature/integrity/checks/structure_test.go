package checks

import (
	"context"
	"testing"

	"listing-media/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func closedChannel(objects ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objects))
	for _, o := range objects {
		ch <- o
	}
	close(ch)
	return ch
}

func TestCheckStructure(t *testing.T) {
	prefixes := []string{"listings", "/staging/"}

	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "media").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "media", prefixes)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "media").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "media", mock.Anything).Return(closedChannel())

		missing, err := CheckStructure(context.Background(), mockClient, "media", prefixes)
		assert.NoError(t, err)
		assert.Equal(t, prefixes, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "media").Return(true, nil)
		for _, key := range []string{"listings/", "staging/"} {
			key := key
			mockClient.On("ListObjects", mock.Anything, "media", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == key
			})).Return(closedChannel(minio.ObjectInfo{Key: key + "2026/"}))
		}

		missing, err := CheckStructure(context.Background(), mockClient, "media", prefixes)
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("List Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "media").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "media", mock.Anything).Return(closedChannel(minio.ObjectInfo{Err: assert.AnError}))

		_, err := CheckStructure(context.Background(), mockClient, "media", prefixes)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestFixStructure(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "media", "listings/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), mockClient, "media", zap.NewNop(), []string{"listings"})
	assert.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}
