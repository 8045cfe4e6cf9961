// Package files is the metadata store for file records. Every write that
// must happen at most once is a conditional update, so concurrent duplicate
// requests settle on the first writer without explicit locks.
package files

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

type Repository interface {
	// GetByID returns common.ErrorNotFound when no record exists.
	GetByID(ctx context.Context, id string) (*models.File, error)

	// CreateIfAbsent inserts f unless a record with the same id exists and
	// returns the stored record either way.
	CreateIfAbsent(ctx context.Context, f *models.File) (*models.File, error)

	// SetStorageObjectID assigns the object id only while it is still
	// null and reports whether this call assigned it.
	SetStorageObjectID(ctx context.Context, id, objectID string) (bool, error)

	// MarkUploaded sets parts_uploaded and uploaded_at only while
	// uploaded_at is null and reports whether this call set them.
	MarkUploaded(ctx context.Context, id string, parts int, at time.Time) (bool, error)

	// SetDownloadGrant stores the grant unconditionally (last writer wins).
	SetDownloadGrant(ctx context.Context, id, token string, expiresAt time.Time) error

	// Delete removes the record; deleting an absent record is not an error.
	Delete(ctx context.Context, id string) error
}
