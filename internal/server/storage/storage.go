// Package storage defines the object-storage backend contract and the
// caller that retries a backend operation once after a forced credential
// refresh.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Object identifies a stored object or an unfinished multipart upload.
type Object struct {
	ID   string
	Name string
}

// UploadTarget is a single-use destination for one upload request. Token is
// sent as the Authorization header when the backend needs one; presigned
// URLs leave it empty. Name is the object name the client uploads as.
type UploadTarget struct {
	URL        string
	Token      string
	Name       string
	PartNumber int
}

// Backend is an object-storage API. Every operation except AuthorizeAccount
// takes the bearer token obtained from it.
type Backend interface {
	AuthorizeAccount(ctx context.Context) (string, error)
	StartLargeFile(ctx context.Context, token, name string) (Object, error)
	GetUploadTarget(ctx context.Context, token, name string) (UploadTarget, error)
	GetUploadPartTarget(ctx context.Context, token string, obj Object, partNumber int) (UploadTarget, error)
	FinishLargeFile(ctx context.Context, token string, obj Object, checksums []string) error
	CancelLargeFile(ctx context.Context, token string, obj Object) error
	DeleteFileVersion(ctx context.Context, token string, obj Object) error
	GetDownloadAuthorization(ctx context.Context, token, pathPrefix string, ttl time.Duration) (string, error)
	// DownloadURL builds the client-facing URL for path with a grant.
	DownloadURL(path, grant string) string
}

// BackendError is a non-success response from the backend, kept verbatim.
type BackendError struct {
	Op      string
	Status  int
	Code    string
	Message string
	// AuthExpired marks responses that reject the bearer token.
	AuthExpired bool
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %d %s: %s", e.Op, e.Status, e.Code, e.Message)
}

// Is lets callers match a BackendError against common.ErrStorageAuthExpired
// or common.ErrStorageBackend.
func (e *BackendError) Is(target error) bool {
	switch target {
	case common.ErrStorageAuthExpired:
		return e.AuthExpired
	case common.ErrStorageBackend:
		return !e.AuthExpired
	}
	return false
}

// ClientError reports a 4xx response other than an expired token.
func (e *BackendError) ClientError() bool {
	return !e.AuthExpired && e.Status >= 400 && e.Status < 500
}
