package repodb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"genedb/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Publisher uploads build outputs to object storage.
type Publisher struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
}

// NewPublisher creates a publisher for the configured bucket.
func NewPublisher(client storage.Client, cfg storage.Config, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, cfg: cfg, logger: logger}
}

// Publish uploads files under <prefix>/<runID>/<path relative to root> and
// returns the object keys. A previous upload of the same run is replaced.
func (p *Publisher) Publish(ctx context.Context, runID, root string, files []string) ([]string, error) {
	if err := storage.EnsureBucket(ctx, p.client, p.cfg.Bucket, p.cfg.Region); err != nil {
		return nil, err
	}

	runPrefix := storage.ObjectKey(p.cfg.Prefix, runID) + "/"
	removed, err := storage.ClearPrefix(ctx, p.client, p.cfg.Bucket, runPrefix)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		p.logger.Info("Replaced previous upload", zap.String("prefix", runPrefix), zap.Int("objects", removed))
	}

	keys := make([]string, 0, len(files))
	for _, file := range files {
		rel, err := filepath.Rel(root, file)
		if err != nil {
			return keys, fmt.Errorf("failed to resolve %s against %s: %w", file, root, err)
		}
		key := storage.ObjectKey(p.cfg.Prefix, runID, filepath.ToSlash(rel))
		if err := p.upload(ctx, file, key); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}

	p.logger.Info("Published outputs",
		zap.String("bucket", p.cfg.Bucket),
		zap.String("run_id", runID),
		zap.Int("objects", len(keys)),
	)
	return keys, nil
}

func (p *Publisher) upload(ctx context.Context, file, key string) error {
	fh, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", file, err)
	}

	_, err = p.client.PutObject(ctx, p.cfg.Bucket, key, fh, info.Size(), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
