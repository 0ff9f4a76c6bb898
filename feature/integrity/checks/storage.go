package checks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"genedb/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes the publish bucket.
type StorageReport struct {
	Bucket string   `json:"bucket"`
	Exists bool     `json:"exists"`
	Runs   []string `json:"runs"`
}

// CheckStorage reports whether the bucket exists and which runs are published
// under prefix.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report := &StorageReport{Bucket: bucket, Exists: exists, Runs: []string{}}
	if !exists {
		return report, nil
	}

	root := storage.ObjectKey(prefix)
	if root != "" {
		root += "/"
	}
	opts := minio.ListObjectsOptions{Prefix: root, Recursive: false}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", root, obj.Err)
		}
		// run folders come back as common prefixes
		if !strings.HasSuffix(obj.Key, "/") {
			continue
		}
		report.Runs = append(report.Runs, strings.TrimSuffix(strings.TrimPrefix(obj.Key, root), "/"))
	}
	sort.Strings(report.Runs)
	return report, nil
}

// FixStorage creates the bucket when it is missing.
func FixStorage(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Bucket ready", zap.String("bucket", bucket))
	return nil
}
