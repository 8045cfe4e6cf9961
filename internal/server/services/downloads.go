package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/server/metrics"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophvault/internal/server/storage"
)

// DownloadLink is what a client needs to fetch and decrypt a file.
type DownloadLink struct {
	URL       string
	ExpiresAt time.Time
	Envelope  models.Envelope
}

// DownloadService hands out download grants, reusing the one stored on the
// record until it expires.
type DownloadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	backend     storage.Backend
	caller      *storage.Caller
	ttl         time.Duration
	logger      logging.Logger
	metrics     *metrics.Collector
	now         func() time.Time
}

func NewDownloadService(db *sql.DB, m repomanager.RepositoryManager, backend storage.Backend, caller *storage.Caller,
	ttl time.Duration, logger logging.Logger, mc *metrics.Collector) *DownloadService {
	return &DownloadService{
		db:          db,
		repomanager: m,
		backend:     backend,
		caller:      caller,
		ttl:         ttl,
		logger:      logger.With("module", "downloads"),
		metrics:     mc,
		now:         time.Now,
	}
}

// GetDownloadURL fails with common.ErrFileNotAvailable when the file does
// not exist or was never finalized. A new grant is stored unconditionally;
// concurrent regenerations each hold a valid grant, so the last write wins.
func (s *DownloadService) GetDownloadURL(ctx context.Context, ownerID, name string) (*DownloadLink, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}
	repo := s.repomanager.Files(s.db)

	f, err := repo.GetByID(ctx, models.FileID(ownerID, name))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrFileNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("error loading file: %w", err)
	}
	if !f.IsUploaded() {
		return nil, fmt.Errorf("%w: upload not finalized", common.ErrFileNotAvailable)
	}

	now := s.now()
	if f.DownloadGrantValid(now) {
		s.metrics.DownloadGrant("cache")
		return s.link(f), nil
	}

	grant, err := storage.Call(ctx, s.caller, "get_download_authorization", func(ctx context.Context, token string) (string, error) {
		return s.backend.GetDownloadAuthorization(ctx, token, f.Path(), s.ttl)
	})
	if err != nil {
		return nil, err
	}

	expiresAt := now.Add(s.ttl)
	if err := repo.SetDownloadGrant(ctx, f.ID, grant, expiresAt); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: deleted", common.ErrFileNotAvailable)
		}
		return nil, fmt.Errorf("error storing download grant: %w", err)
	}
	f.SetDownloadGrant(grant, expiresAt)

	s.metrics.DownloadGrant("backend")
	s.logger.Debug(ctx, "download grant issued", "file_id", f.ID, "expires_at", expiresAt)
	return s.link(f), nil
}

func (s *DownloadService) link(f *models.File) *DownloadLink {
	return &DownloadLink{
		URL:       s.backend.DownloadURL(f.Path(), f.DownloadToken),
		ExpiresAt: f.DownloadTokenExpiresAt,
		Envelope:  f.Envelope,
	}
}
