// Package blobstore provides the storage abstraction for property datasets,
// surrogate model artifacts, coefficient tables and result exports.
//
// BlobStore is the interface for reading and writing whole named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local file system
//   - MemoryStore: in-process map, for tests and embedding
//   - s3.Store: Amazon S3 (aws-sdk-go-v2)
//   - minio.Store: MinIO and other S3-compatible services
//
// Missing blobs are reported with an error satisfying errors.Is(err, ErrNotFound).
package blobstore
