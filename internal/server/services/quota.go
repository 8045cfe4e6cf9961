// Package services holds the upload and download orchestration: the quota
// gate, the upload state machine and the download grant cache.
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
)

// QuotaGate admits an upload only if the owner's plan is current, the
// device is registered and the candidate size fits. It never writes.
type QuotaGate struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	metrics     *metrics.Collector
	now         func() time.Time
}

func NewQuotaGate(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, mc *metrics.Collector) *QuotaGate {
	return &QuotaGate{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "quota"),
		metrics:     mc,
		now:         time.Now,
	}
}

// Check returns the snapshot the decision was based on. deviceID may be
// empty when the caller did not identify its device.
func (g *QuotaGate) Check(ctx context.Context, ownerID, deviceID string, candidateBytes int64) (*models.QuotaSnapshot, error) {
	snap, err := g.check(ctx, ownerID, deviceID, candidateBytes)
	if err != nil {
		if reason := denialReason(err); reason != "" {
			g.metrics.QuotaDenied(reason)
			g.logger.Info(ctx, "upload denied", "owner_id", ownerID, "reason", reason, "bytes", candidateBytes)
		}
		return snap, err
	}
	return snap, nil
}

func (g *QuotaGate) check(ctx context.Context, ownerID, deviceID string, candidateBytes int64) (*models.QuotaSnapshot, error) {
	repo := g.repomanager.Plans(g.db)

	plan, err := repo.GetPlan(ctx, ownerID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading plan: %w", err)
	}

	snap := &models.QuotaSnapshot{
		LimitBytes:  plan.LimitBytes,
		DeviceLimit: plan.DeviceLimit,
		ExpiresAt:   plan.ExpiresAt,
	}

	if !plan.ExpiresAt.IsZero() && !plan.ExpiresAt.After(g.now()) {
		return snap, fmt.Errorf("%w: expired at %s", common.ErrPlanExpired, plan.ExpiresAt.Format(time.RFC3339))
	}

	if deviceID != "" {
		device, err := repo.GetDevice(ctx, ownerID, deviceID)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return snap, common.ErrDeviceNotRegistered
		case err != nil:
			return snap, fmt.Errorf("error loading device: %w", err)
		case !device.Active:
			return snap, fmt.Errorf("%w: device is inactive", common.ErrDeviceNotRegistered)
		}
	}

	usage, err := repo.GetUsage(ctx, ownerID)
	if errors.Is(err, common.ErrorNotFound) {
		return snap, common.ErrUsageUnavailable
	}
	if err != nil {
		return snap, fmt.Errorf("error loading usage: %w", err)
	}
	snap.UsedBytes = usage.UsedBytes

	if candidateBytes > snap.Remaining() {
		return snap, fmt.Errorf("%w: %d bytes requested, %d remaining", common.ErrQuotaExceeded, candidateBytes, snap.Remaining())
	}
	return snap, nil
}

func denialReason(err error) string {
	switch {
	case errors.Is(err, common.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, common.ErrPlanExpired):
		return "plan_expired"
	case errors.Is(err, common.ErrPlanNotFound):
		return "plan_not_found"
	case errors.Is(err, common.ErrUsageUnavailable):
		return "usage_unavailable"
	case errors.Is(err, common.ErrDeviceNotRegistered):
		return "device_not_registered"
	}
	return ""
}
