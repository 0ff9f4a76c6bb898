// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so build outputs can be published to AWS S3 or
// a self-hosted MinIO instance. The Client interface keeps the surface small
// enough to mock in tests (see core/storage/mocks).
//
// # Operations
//
//   - EnsureBucket: creates the target bucket on first publish.
//   - ClearPrefix: removes a previous publication of the same run.
//   - ObjectKey: builds object keys from a prefix, run ID and relative path.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	err = storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region)
package storage
