package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains blob storage abstractions for object stores
// (S3-compatible). Implementations must avoid using local disk and rely on
// streaming I/O only.

// ErrBlobNotFound is returned when no blob exists under the requested key.
// Implementations map their backend-specific not-found responses to this
// sentinel so callers can use errors.Is.
var ErrBlobNotFound = errors.New("blob not found")

// PutObjectOptions define optional parameters for uploading blobs.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a blob in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// BlobStore is a reusable, S3-compatible blob storage client interface.
// Methods use context and streaming readers/writers; no local disk is used.
type BlobStore interface {
	// Put uploads a blob under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves a blob's content as a streaming reader alongside its info.
	// Returns ErrBlobNotFound if no blob exists under key.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes a blob by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the
	// blob without credentials. Returns ErrBlobNotFound for unknown keys.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
