package models

import "time"

// CredentialState is the refresh state of a shared credential row.
type CredentialState int

const (
	CredentialIdle       CredentialState = 0
	CredentialRefreshing CredentialState = 1
)

// Credential is the persisted object-storage bearer token shared by all
// server instances.
type Credential struct {
	Key       string
	Token     string
	State     CredentialState
	ClaimedAt time.Time
	UpdatedAt time.Time
}

// ClaimExpired reports whether a refresh claim is older than ttl at now and
// can be taken over.
func (c *Credential) ClaimExpired(now time.Time, ttl time.Duration) bool {
	return c.State == CredentialRefreshing && !c.ClaimedAt.After(now.Add(-ttl))
}
