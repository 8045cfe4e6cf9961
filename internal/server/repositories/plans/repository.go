// Package plans reads the owner's plan, usage and devices. The rows are
// maintained by billing and device registration; this package never
// writes them.
package plans

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

type Repository interface {
	// GetPlan returns common.ErrorNotFound when the owner has no plan.
	GetPlan(ctx context.Context, ownerID string) (*models.Plan, error)
	// GetUsage returns common.ErrorNotFound when no usage row exists.
	GetUsage(ctx context.Context, ownerID string) (*models.Usage, error)
	// GetDevice returns common.ErrorNotFound when the device is not
	// registered to the owner.
	GetDevice(ctx context.Context, ownerID, deviceID string) (*models.Device, error)
}
