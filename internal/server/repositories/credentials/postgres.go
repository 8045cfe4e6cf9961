package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Get(ctx context.Context, key string) (*models.Credential, error) {
	query := `SELECT key, value, state, claimed_at, updated_at FROM server_credentials WHERE key=$1`

	var (
		c         models.Credential
		claimedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, key).Scan(&c.Key, &c.Token, &c.State, &claimedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select credential: %w", err)
	}
	if claimedAt.Valid {
		c.ClaimedAt = claimedAt.Time
	}
	return &c, nil
}

func (r *PostgresRepository) Claim(ctx context.Context, key string, now, staleBefore time.Time) (bool, error) {
	query := `
		INSERT INTO server_credentials (key, value, state, claimed_at, updated_at)
		VALUES ($1, '', 1, $2, $2)
		ON CONFLICT (key) DO UPDATE SET state = 1, claimed_at = EXCLUDED.claimed_at
		WHERE server_credentials.state = 0 OR server_credentials.claimed_at < $3`

	return dbx.ExecAffected(ctx, r.db, query, key, now, staleBefore)
}

func (r *PostgresRepository) Save(ctx context.Context, key, token string, now time.Time) error {
	query := `UPDATE server_credentials SET value=$2, state=0, claimed_at=NULL, updated_at=$3 WHERE key=$1`
	if _, err := r.db.ExecContext(ctx, query, key, token, now); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Release(ctx context.Context, key string) error {
	query := `UPDATE server_credentials SET state=0, claimed_at=NULL WHERE key=$1`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to release credential: %w", err)
	}
	return nil
}
