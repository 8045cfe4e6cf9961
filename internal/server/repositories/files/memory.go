package files

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

// MemoryRepository keeps records in process memory with the same
// conditional-write semantics as PostgresRepository.
type MemoryRepository struct {
	mu    sync.Mutex
	files map[string]models.File
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{files: make(map[string]models.File)}
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (r *MemoryRepository) CreateIfAbsent(_ context.Context, f *models.File) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.files[f.ID]
	if !ok {
		stored = *f
		r.files[f.ID] = stored
	}
	return &stored, nil
}

func (r *MemoryRepository) SetStorageObjectID(_ context.Context, id, objectID string) (bool, error) {
	return r.update(id, func(f *models.File) bool {
		if f.StorageObjectID != "" {
			return false
		}
		f.StorageObjectID = objectID
		return true
	}), nil
}

func (r *MemoryRepository) MarkUploaded(_ context.Context, id string, parts int, at time.Time) (bool, error) {
	return r.update(id, func(f *models.File) bool {
		if f.UploadedAt != nil {
			return false
		}
		t := at
		f.UploadedAt = &t
		f.PartsUploaded = parts
		return true
	}), nil
}

func (r *MemoryRepository) SetDownloadGrant(_ context.Context, id, token string, expiresAt time.Time) error {
	found := r.update(id, func(f *models.File) bool {
		f.SetDownloadGrant(token, expiresAt)
		return true
	})
	if !found {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, id)
	return nil
}

// update applies fn to the stored record and saves it when fn reports a
// change. It returns false when the record is absent or fn declined.
func (r *MemoryRepository) update(id string, fn func(f *models.File) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]
	if !ok || !fn(&f) {
		return false
	}
	r.files[id] = f
	return true
}
