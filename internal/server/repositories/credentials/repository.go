// Package credentials persists the object-storage credential shared by all
// server instances, together with its refresh claim.
package credentials

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the row does not exist yet.
	Get(ctx context.Context, key string) (*models.Credential, error)

	// Claim moves the row to refreshing when it is idle or its claim was
	// taken before staleBefore, creating it if needed. It reports whether
	// the caller now holds the claim.
	Claim(ctx context.Context, key string, now, staleBefore time.Time) (bool, error)

	// Save stores a fresh token and returns the row to idle.
	Save(ctx context.Context, key, token string, now time.Time) error

	// Release returns the row to idle and keeps the previous token.
	Release(ctx context.Context, key string) error
}
