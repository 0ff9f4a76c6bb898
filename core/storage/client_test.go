package storage_test

import (
	"context"
	"errors"
	"testing"

	"genedb/core/storage"
	"genedb/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "genedb",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "genedb").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "genedb", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Create", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "genedb").Return(false, nil)
		m.On("MakeBucket", ctx, "genedb", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "genedb", "eu-west-1"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "genedb").Return(false, errors.New("denied"))

		err := storage.EnsureBucket(ctx, m, "genedb", "")
		assert.ErrorContains(t, err, "denied")
	})
}

func TestClearPrefix(t *testing.T) {
	ctx := context.Background()

	m := new(mocks.Client)
	m.On("ListObjects", ctx, "genedb", mock.Anything).Return(mocks.Objects("runs/r1/a.gff", "runs/r1/a.pep"))
	m.On("RemoveObjects", ctx, "genedb", mock.Anything, mock.Anything).Return(nil)

	n, err := storage.ClearPrefix(ctx, m, "genedb", "runs/r1/")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "runs/r1/ecoli/ecoli.genedb.gff", storage.ObjectKey("runs", "r1", "ecoli/ecoli.genedb.gff"))
	assert.Equal(t, "r1/x", storage.ObjectKey("", "r1", "x"))
}
