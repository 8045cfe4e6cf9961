package plans

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

// MemoryRepository serves plans from process memory. Put* methods stand in
// for the billing and device registration writers.
type MemoryRepository struct {
	mu      sync.RWMutex
	plans   map[string]models.Plan
	usage   map[string]models.Usage
	devices map[string]models.Device
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		plans:   make(map[string]models.Plan),
		usage:   make(map[string]models.Usage),
		devices: make(map[string]models.Device),
	}
}

func (r *MemoryRepository) PutPlan(p models.Plan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[p.OwnerID] = p
}

func (r *MemoryRepository) PutUsage(u models.Usage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usage[u.OwnerID] = u
}

func (r *MemoryRepository) PutDevice(d models.Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[d.OwnerID+"/"+d.ID] = d
}

func (r *MemoryRepository) GetPlan(_ context.Context, ownerID string) (*models.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[ownerID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) GetUsage(_ context.Context, ownerID string) (*models.Usage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.usage[ownerID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetDevice(_ context.Context, ownerID, deviceID string) (*models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[ownerID+"/"+deviceID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &d, nil
}
