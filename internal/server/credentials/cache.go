// Package credentials caches the object-storage bearer token and makes sure
// only one refresh reaches the authorization endpoint at a time.
//
// Cache coordinates goroutines of one process. SharedCache coordinates
// several server instances through a database row with a claim that
// expires, so a crashed claimant cannot block refreshes forever.
package credentials

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/server/metrics"
)

// Policy decides what a caller gets when it asks for a refresh while
// another one is in flight.
type Policy string

const (
	// PolicyWait blocks until the running refresh finishes and returns its
	// result.
	PolicyWait Policy = "wait"
	// PolicyStale returns the previous token at once. Callers that have no
	// previous token wait as with PolicyWait.
	PolicyStale Policy = "stale"
)

const defaultRefreshTimeout = 30 * time.Second

// Authorizer exchanges the account key for a bearer token.
type Authorizer interface {
	AuthorizeAccount(ctx context.Context) (string, error)
}

type flight struct {
	done  chan struct{}
	token string
	err   error
}

type Cache struct {
	auth    Authorizer
	policy  Policy
	timeout time.Duration
	logger  logging.Logger
	metrics *metrics.Collector

	mu       sync.Mutex
	token    string
	inflight *flight
}

func NewCache(auth Authorizer, policy Policy, timeout time.Duration, logger logging.Logger, m *metrics.Collector) *Cache {
	if timeout <= 0 {
		timeout = defaultRefreshTimeout
	}
	return &Cache{
		auth:    auth,
		policy:  policy,
		timeout: timeout,
		logger:  logger.With("module", "credentials", "scope", "local"),
		metrics: m,
	}
}

// Get returns the cached token, refreshing it first when forceRefresh is
// set or nothing is cached yet.
func (c *Cache) Get(ctx context.Context, forceRefresh bool) (string, error) {
	c.mu.Lock()
	if !forceRefresh && c.token != "" {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}

	if f := c.inflight; f != nil {
		if c.policy == PolicyStale && c.token != "" {
			token := c.token
			c.mu.Unlock()
			return token, nil
		}
		c.mu.Unlock()
		return c.wait(ctx, f)
	}

	f := &flight{done: make(chan struct{})}
	c.inflight = f
	c.mu.Unlock()

	c.refresh(ctx, f)
	return f.token, f.err
}

func (c *Cache) wait(ctx context.Context, f *flight) (string, error) {
	select {
	case <-f.done:
		return f.token, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// refresh runs detached from the caller's cancellation so that waiters are
// not failed by one impatient caller; the refresh timeout still bounds it.
func (c *Cache) refresh(ctx context.Context, f *flight) {
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	token, err := c.auth.AuthorizeAccount(actx)

	c.mu.Lock()
	if err == nil {
		c.token = token
		f.token = token
	} else {
		f.err = fmt.Errorf("%w: %v", common.ErrCredentialUnavailable, err)
	}
	c.inflight = nil
	c.mu.Unlock()
	close(f.done)

	if err != nil {
		c.metrics.CredentialRefresh("error")
		c.logger.Warn(ctx, "storage credential refresh failed", "error", err)
		return
	}
	c.metrics.CredentialRefresh("ok")
	c.logger.Info(ctx, "storage credential refreshed")
}
