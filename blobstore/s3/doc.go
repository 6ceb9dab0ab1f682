// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", "glassgen/")
//	if err != nil {
//	    return err
//	}
//	net, err := surrogate.Load(ctx, store, "models/tg.json.zst")
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads for large exports (s3/manager)
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
