package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophvault/internal/server/storage"
)

// InitiateRequest starts (or resumes) the upload of one file.
type InitiateRequest struct {
	OwnerID   string
	DeviceID  string
	Name      string
	SizeBytes int64
	Parts     int
	Envelope  models.Envelope
}

// UploadService drives a file record through NEW, MULTIPART_STARTED and
// UPLOADED. Duplicate requests are absorbed by the conditional writes of
// the files repository, not by locks.
type UploadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	quota       *QuotaGate
	backend     storage.Backend
	caller      *storage.Caller
	logger      logging.Logger
	now         func() time.Time
}

func NewUploadService(db *sql.DB, m repomanager.RepositoryManager, quota *QuotaGate,
	backend storage.Backend, caller *storage.Caller, logger logging.Logger) *UploadService {
	return &UploadService{
		db:          db,
		repomanager: m,
		quota:       quota,
		backend:     backend,
		caller:      caller,
		logger:      logger.With("module", "uploads"),
		now:         time.Now,
	}
}

// Initiate checks the quota, looks up or creates the record and, for a
// multipart file, starts the backend upload once. A caller that loses the
// race to store the object id cancels its own backend upload and returns
// the winner's record.
func (s *UploadService) Initiate(ctx context.Context, req InitiateRequest) (*models.File, error) {
	if err := models.ValidateName(req.Name); err != nil {
		return nil, err
	}
	if _, err := s.quota.Check(ctx, req.OwnerID, req.DeviceID, req.SizeBytes); err != nil {
		return nil, err
	}

	repo := s.repomanager.Files(s.db)

	f, err := repo.CreateIfAbsent(ctx, models.NewFile(req.OwnerID, req.Name, req.SizeBytes, req.Parts, req.Envelope, s.now()))
	if err != nil {
		return nil, fmt.Errorf("error creating file record: %w", err)
	}
	if !f.NeedsMultipartStart() {
		return f, nil
	}

	obj, err := storage.Call(ctx, s.caller, "start_large_file", func(ctx context.Context, token string) (storage.Object, error) {
		return s.backend.StartLargeFile(ctx, token, f.Path())
	})
	if err != nil {
		return nil, err
	}

	assigned, err := repo.SetStorageObjectID(ctx, f.ID, obj.ID)
	if err != nil {
		return nil, fmt.Errorf("error storing object id: %w", err)
	}
	if !assigned {
		s.cancelOrphan(ctx, obj)
		return s.get(ctx, repo, f.ID)
	}

	if err := f.AssignStorageObject(obj.ID); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "multipart upload started", "file_id", f.ID, "object_id", obj.ID, "parts", f.TotalParts)
	return f, nil
}

func (s *UploadService) cancelOrphan(ctx context.Context, obj storage.Object) {
	_, err := storage.Call(ctx, s.caller, "cancel_large_file", func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, s.backend.CancelLargeFile(ctx, token, obj)
	})
	if err != nil {
		s.logger.Warn(ctx, "failed to cancel orphaned multipart upload", "object_id", obj.ID, "error", err)
		return
	}
	s.logger.Info(ctx, "cancelled orphaned multipart upload", "object_id", obj.ID)
}

// PartUploadTarget returns a fresh upload URL. Multipart files get a URL for
// partNumber (1-based); single-part files get a whole-object URL and
// partNumber is ignored. URLs are never cached.
func (s *UploadService) PartUploadTarget(ctx context.Context, ownerID, name string, partNumber int) (storage.UploadTarget, error) {
	if err := models.ValidateName(name); err != nil {
		return storage.UploadTarget{}, err
	}
	f, err := s.get(ctx, s.repomanager.Files(s.db), models.FileID(ownerID, name))
	if err != nil {
		return storage.UploadTarget{}, err
	}

	var target storage.UploadTarget
	if f.IsMultipart() {
		if f.StorageObjectID == "" {
			return storage.UploadTarget{}, fmt.Errorf("%w: multipart upload not started", common.ErrFileNotAvailable)
		}
		if partNumber < 1 || partNumber > f.TotalParts {
			return storage.UploadTarget{}, fmt.Errorf("%w: part %d out of range 1..%d", common.ErrValidation, partNumber, f.TotalParts)
		}
		obj := storage.Object{ID: f.StorageObjectID, Name: f.Path()}
		target, err = storage.Call(ctx, s.caller, "get_upload_part_url", func(ctx context.Context, token string) (storage.UploadTarget, error) {
			return s.backend.GetUploadPartTarget(ctx, token, obj, partNumber)
		})
	} else {
		target, err = storage.Call(ctx, s.caller, "get_upload_url", func(ctx context.Context, token string) (storage.UploadTarget, error) {
			return s.backend.GetUploadTarget(ctx, token, f.Path())
		})
	}
	if err != nil {
		return storage.UploadTarget{}, err
	}

	target.Name = f.Path()
	return target, nil
}

// Finalize commits the upload. For a multipart file the backend finish call
// is made with checksums in part order; if it fails on a record that is
// already finalized the failure is the expected answer to a duplicate and
// is dropped. A single-part file is committed by the client's own upload,
// so objectID (the id the backend returned to the client) is recorded
// instead.
func (s *UploadService) Finalize(ctx context.Context, ownerID, name string, checksums []string, objectID string) (*models.File, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}
	repo := s.repomanager.Files(s.db)

	f, err := s.get(ctx, repo, models.FileID(ownerID, name))
	if err != nil {
		return nil, err
	}

	if f.IsMultipart() {
		if err := s.finishMultipart(ctx, f, checksums); err != nil {
			return nil, err
		}
	} else {
		if err := s.assignSinglePart(ctx, repo, f, objectID); err != nil {
			return nil, err
		}
	}

	marked, err := repo.MarkUploaded(ctx, f.ID, f.TotalParts, s.now())
	if err != nil {
		return nil, fmt.Errorf("error marking file uploaded: %w", err)
	}
	if marked {
		s.logger.Info(ctx, "upload finalized", "file_id", f.ID, "parts", f.TotalParts)
	}
	return s.get(ctx, repo, f.ID)
}

func (s *UploadService) finishMultipart(ctx context.Context, f *models.File, checksums []string) error {
	if f.StorageObjectID == "" {
		return fmt.Errorf("%w: multipart upload not started", common.ErrFileNotAvailable)
	}
	if !f.IsUploaded() && len(checksums) != f.TotalParts {
		return fmt.Errorf("%w: %d checksums for %d parts", common.ErrValidation, len(checksums), f.TotalParts)
	}

	obj := storage.Object{ID: f.StorageObjectID, Name: f.Path()}
	_, err := storage.Call(ctx, s.caller, "finish_large_file", func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, s.backend.FinishLargeFile(ctx, token, obj, checksums)
	})
	if err == nil {
		return nil
	}
	if f.IsUploaded() {
		s.logger.Debug(ctx, "ignoring finish error for finalized file", "file_id", f.ID, "error", err)
		return nil
	}
	return err
}

func (s *UploadService) assignSinglePart(ctx context.Context, repo files.Repository, f *models.File, objectID string) error {
	if objectID == "" {
		if f.StorageObjectID != "" {
			return nil
		}
		return fmt.Errorf("%w: object id is required for a single-part upload", common.ErrValidation)
	}
	if f.StorageObjectID == objectID {
		return nil
	}
	if err := f.AssignStorageObject(objectID); err != nil {
		return err
	}
	assigned, err := repo.SetStorageObjectID(ctx, f.ID, objectID)
	if err != nil {
		return fmt.Errorf("error storing object id: %w", err)
	}
	if assigned {
		return nil
	}

	// another finalize stored its id between our read and write
	cur, err := s.get(ctx, repo, f.ID)
	if err != nil {
		return err
	}
	if cur.StorageObjectID != objectID {
		return common.ErrObjectAlreadyAssigned
	}
	return nil
}

// Delete removes the stored object and then the record. A missing record
// is not an error, and a record without an object only loses its metadata.
// An unfinished multipart upload is cancelled instead of deleted.
func (s *UploadService) Delete(ctx context.Context, ownerID, name string) error {
	if err := models.ValidateName(name); err != nil {
		return err
	}
	repo := s.repomanager.Files(s.db)

	f, err := repo.GetByID(ctx, models.FileID(ownerID, name))
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error loading file: %w", err)
	}

	if f.StorageObjectID != "" {
		obj := storage.Object{ID: f.StorageObjectID, Name: f.Path()}
		op, call := "delete_file_version", s.backend.DeleteFileVersion
		if f.State() == models.StateMultipartStarted {
			op, call = "cancel_large_file", s.backend.CancelLargeFile
		}
		_, err := storage.Call(ctx, s.caller, op, func(ctx context.Context, token string) (struct{}, error) {
			return struct{}{}, call(ctx, token, obj)
		})
		if err != nil {
			return err
		}
	}

	if err := repo.Delete(ctx, f.ID); err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}
	s.logger.Info(ctx, "file deleted", "file_id", f.ID)
	return nil
}

func (s *UploadService) get(ctx context.Context, repo files.Repository, id string) (*models.File, error) {
	f, err := repo.GetByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading file: %w", err)
	}
	return f, nil
}
