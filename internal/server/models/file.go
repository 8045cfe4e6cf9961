// Package models defines server-side data models persisted in the database.
package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// UploadState is the lifecycle position of a File, derived from its fields.
type UploadState string

const (
	StateNew              UploadState = "new"
	StateMultipartStarted UploadState = "multipart_started"
	StateUploaded         UploadState = "uploaded"
)

// Envelope is the client-side encryption envelope of a file. The server
// stores it as given and never decrypts it.
type Envelope struct {
	KeyCipher string
	KeyNonce  string
}

// File describes server-side metadata for one logical file. The encrypted
// content itself lives in object storage.
type File struct {
	// ID is the composite owner + name identity, see FileID.
	ID      string
	OwnerID string
	Name    string

	// StorageObjectID is the backend id of the stored object or of the
	// unfinished multipart upload. Empty until assigned, never reassigned.
	StorageObjectID string

	TotalParts    int
	PartsUploaded int
	SizeBytes     int64
	Envelope      Envelope

	UploadedAt *time.Time

	DownloadToken          string
	DownloadTokenExpiresAt time.Time

	CreatedAt time.Time
}

// ValidateName accepts only relative slash-separated names without empty,
// "." or ".." segments, so every file has one spelling and one storage path.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty file name", common.ErrValidation)
	}
	for _, seg := range strings.Split(name, "/") {
		switch seg {
		case "", ".", "..":
			return fmt.Errorf("%w: file name %q is not canonical", common.ErrValidation, name)
		}
	}
	return nil
}

// FileID builds the record identity of ownerID's file called name. The
// owner is escaped so the first "|" always ends it.
func FileID(ownerID, name string) string {
	return url.PathEscape(ownerID) + "|" + name
}

// StoragePath is the object name used in the storage bucket. The owner is
// a single path segment.
func StoragePath(ownerID, name string) string {
	return url.PathEscape(ownerID) + "/" + name
}

// NewFile builds a record in StateNew.
func NewFile(ownerID, name string, sizeBytes int64, parts int, env Envelope, now time.Time) *File {
	if parts < 1 {
		parts = 1
	}
	return &File{
		ID:         FileID(ownerID, name),
		OwnerID:    ownerID,
		Name:       name,
		TotalParts: parts,
		SizeBytes:  sizeBytes,
		Envelope:   env,
		CreatedAt:  now,
	}
}

// Path returns the object name of the file in the storage bucket.
func (f *File) Path() string {
	return StoragePath(f.OwnerID, f.Name)
}

// State reports where the record is in the upload lifecycle. Parts being
// PUT by clients are not tracked, so a multipart upload stays in
// StateMultipartStarted until it is finalized.
func (f *File) State() UploadState {
	switch {
	case f.UploadedAt != nil:
		return StateUploaded
	case f.StorageObjectID != "" && f.IsMultipart():
		return StateMultipartStarted
	default:
		return StateNew
	}
}

func (f *File) IsMultipart() bool {
	return f.TotalParts > 1
}

func (f *File) IsUploaded() bool {
	return f.UploadedAt != nil
}

// NeedsMultipartStart is true for a multipart file whose backend upload has
// not been started yet.
func (f *File) NeedsMultipartStart() bool {
	return f.IsMultipart() && f.StorageObjectID == "" && !f.IsUploaded()
}

// AssignStorageObject sets the storage object id once. Assigning the same
// id again is a no-op; a different id fails with ErrObjectAlreadyAssigned.
func (f *File) AssignStorageObject(id string) error {
	switch f.StorageObjectID {
	case "":
		f.StorageObjectID = id
		return nil
	case id:
		return nil
	default:
		return common.ErrObjectAlreadyAssigned
	}
}

// MarkUploaded records completion of all parts at the given time. It
// reports false and changes nothing if the file was already finalized.
func (f *File) MarkUploaded(at time.Time) bool {
	if f.UploadedAt != nil {
		return false
	}
	t := at
	f.UploadedAt = &t
	f.PartsUploaded = f.TotalParts
	return true
}

// DownloadGrantValid reports whether the cached download grant can still
// be handed out at now.
func (f *File) DownloadGrantValid(now time.Time) bool {
	return f.DownloadToken != "" && f.DownloadTokenExpiresAt.After(now)
}

// SetDownloadGrant replaces the cached download grant.
func (f *File) SetDownloadGrant(token string, expiresAt time.Time) {
	f.DownloadToken = token
	f.DownloadTokenExpiresAt = expiresAt
}
