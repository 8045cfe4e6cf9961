package plans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetPlan(ctx context.Context, ownerID string) (*models.Plan, error) {
	query := `SELECT user_id, limit_bytes, devices, expires_at FROM plans WHERE user_id=$1`

	var p models.Plan
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&p.OwnerID, &p.LimitBytes, &p.DeviceLimit, &p.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select plan: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) GetUsage(ctx context.Context, ownerID string) (*models.Usage, error) {
	query := `SELECT user_id, used_bytes FROM storage_usage WHERE user_id=$1`

	var u models.Usage
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&u.OwnerID, &u.UsedBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select usage: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepository) GetDevice(ctx context.Context, ownerID, deviceID string) (*models.Device, error) {
	query := `SELECT id, user_id, status = 'active' FROM devices WHERE id=$1 AND user_id=$2`

	var d models.Device
	err := r.db.QueryRowContext(ctx, query, deviceID, ownerID).Scan(&d.ID, &d.OwnerID, &d.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select device: %w", err)
	}
	return &d, nil
}
