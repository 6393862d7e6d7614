package checks

import (
	"context"
	"testing"

	"doc-browser/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// emptyListing returns a closed object channel.
func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

// listingWith returns a channel holding one object per key.
func listingWith(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "documents").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "documents")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "documents").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "documents", mock.Anything).Return(emptyListing())

		missing, err := CheckStructure(context.Background(), mockClient, "documents")
		assert.NoError(t, err)
		assert.Len(t, missing, len(RequiredPrefixes))
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "documents").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "documents", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "content/"
		})).Return(listingWith("content/doc1.pdf"))
		mockClient.On("ListObjects", mock.Anything, "documents", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "manifest/"
		})).Return(listingWith("manifest/drive_manifest.json"))

		missing, err := CheckStructure(context.Background(), mockClient, "documents")
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestFixStructure(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "documents", "content/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), mockClient, "documents", zap.NewNop(), []string{"content"})
	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}
