package credentials

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

// MemoryRepository is the single-process stand-in for the shared row.
type MemoryRepository struct {
	mu   sync.Mutex
	rows map[string]models.Credential
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[string]models.Credential)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (*models.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) Claim(_ context.Context, key string, now, staleBefore time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.rows[key]
	if ok && c.State == models.CredentialRefreshing && !c.ClaimedAt.Before(staleBefore) {
		return false, nil
	}
	if !ok {
		c = models.Credential{Key: key, UpdatedAt: now}
	}
	c.State = models.CredentialRefreshing
	c.ClaimedAt = now
	r.rows[key] = c
	return true, nil
}

func (r *MemoryRepository) Save(_ context.Context, key, token string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[key] = models.Credential{Key: key, Token: token, State: models.CredentialIdle, UpdatedAt: now}
	return nil
}

func (r *MemoryRepository) Release(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[key]
	if !ok {
		return nil
	}
	c.State = models.CredentialIdle
	c.ClaimedAt = time.Time{}
	r.rows[key] = c
	return nil
}
