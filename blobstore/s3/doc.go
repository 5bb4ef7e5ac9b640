// Package s3 provides an Amazon S3 implementation of the blobstore.Store
// interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//	client := s3.NewFromConfig(cfg) // aws-sdk-go-v2/service/s3
//
//	store := s3blob.NewStore(client, "my-bucket", "tables/")
//	repo := ssv.NewRepository(store)
//
// # Features
//
//   - Multipart uploads via the s3 transfer manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
