package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"doc-browser/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RequiredPrefixes lists the bucket prefixes the sync pipeline writes to.
var RequiredPrefixes = []string{
	"content", "manifest",
}

// CheckStructure returns a list of missing prefixes.
func CheckStructure(ctx context.Context, client storage.Client, bucket string) ([]string, error) {
	var missing []string

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, prefix := range RequiredPrefixes {
		prefixPath := prefix
		if !strings.HasSuffix(prefixPath, "/") {
			prefixPath += "/"
		}

		opts := minio.ListObjectsOptions{
			Prefix:    prefixPath,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for range client.ListObjects(ctx, bucket, opts) {
			found = true
			break
		}

		if !found {
			missing = append(missing, prefix)
		}
	}

	return missing, nil
}

// FixStructure creates the missing prefixes.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, prefix := range missing {
		prefixPath := prefix
		if !strings.HasSuffix(prefixPath, "/") {
			prefixPath += "/"
		}

		_, err := client.PutObject(ctx, bucket, prefixPath, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create prefix", zap.String("prefix", prefix), zap.Error(err))
			return err
		}
		logger.Info("Created missing prefix", zap.String("prefix", prefix))
	}
	return nil
}
