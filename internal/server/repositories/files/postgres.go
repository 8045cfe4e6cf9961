package files

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

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectFile = `SELECT id, user_id, name, storage_object_id, parts, parts_uploaded, size,
		key_cipher, key_nonce, uploaded_at, download_token, download_expires_at, created_at
		FROM files WHERE id=$1`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	var (
		f          models.File
		objectID   sql.NullString
		uploadedAt sql.NullTime
		token      sql.NullString
		expiresAt  sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, selectFile, id).Scan(
		&f.ID, &f.OwnerID, &f.Name, &objectID, &f.TotalParts, &f.PartsUploaded, &f.SizeBytes,
		&f.Envelope.KeyCipher, &f.Envelope.KeyNonce, &uploadedAt, &token, &expiresAt, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select file: %w", err)
	}

	f.StorageObjectID = objectID.String
	if uploadedAt.Valid {
		t := uploadedAt.Time
		f.UploadedAt = &t
	}
	f.DownloadToken = token.String
	if expiresAt.Valid {
		f.DownloadTokenExpiresAt = expiresAt.Time
	}

	return &f, nil
}

func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, f *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (id, user_id, name, parts, size, key_cipher, key_nonce, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query,
		f.ID, f.OwnerID, f.Name, f.TotalParts, f.SizeBytes, f.Envelope.KeyCipher, f.Envelope.KeyNonce, f.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert file: %w", err)
	}

	return r.GetByID(ctx, f.ID)
}

func (r *PostgresRepository) SetStorageObjectID(ctx context.Context, id, objectID string) (bool, error) {
	query := `UPDATE files SET storage_object_id=$2 WHERE id=$1 AND storage_object_id IS NULL`
	return dbx.ExecAffected(ctx, r.db, query, id, objectID)
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, id string, parts int, at time.Time) (bool, error) {
	query := `UPDATE files SET parts_uploaded=$2, uploaded_at=$3 WHERE id=$1 AND uploaded_at IS NULL`
	return dbx.ExecAffected(ctx, r.db, query, id, parts, at)
}

func (r *PostgresRepository) SetDownloadGrant(ctx context.Context, id, token string, expiresAt time.Time) error {
	query := `UPDATE files SET download_token=$2, download_expires_at=$3 WHERE id=$1`
	changed, err := dbx.ExecAffected(ctx, r.db, query, id, token, expiresAt)
	if err != nil {
		return err
	}
	if !changed {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
