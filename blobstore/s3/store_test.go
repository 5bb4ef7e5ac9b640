package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-avital/tablemap/blobstore"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	client := s3.NewFromConfig(cfg)

	// Create a unique prefix for this test run
	prefix := fmt.Sprintf("test-tablemap-%d/", time.Now().UnixNano())
	store := NewStore(client, bucket, prefix)

	t.Run("Put and Get", func(t *testing.T) {
		name := "people.ssv"
		data := []byte("firstname;lastname;profession;alive\nJohn;Snow;Knower of Nothing;\n")

		require.NoError(t, store.Put(ctx, name, data))

		// List
		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, names, name)

		// Exists
		ok, err := store.Exists(ctx, name)
		require.NoError(t, err)
		assert.True(t, ok)

		// Get
		rc, err := store.Get(ctx, name)
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, data, got)

		// Clean up
		require.NoError(t, store.Delete(ctx, name))

		ok, err = store.Exists(ctx, name)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "nonexistent.ssv")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
