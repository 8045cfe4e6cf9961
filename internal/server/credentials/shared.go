package credentials

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/server/metrics"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	credrepo "github.com/dmitrijs2005/gophvault/internal/server/repositories/credentials"
)

type SharedOptions struct {
	Key          string
	Policy       Policy
	ClaimTTL     time.Duration
	PollInterval time.Duration
	Timeout      time.Duration
}

// SharedCache keeps the token in a database row shared by all instances.
// The last token seen is also kept in memory so plain reads do not touch
// the database.
type SharedCache struct {
	repo    credrepo.Repository
	auth    Authorizer
	opts    SharedOptions
	logger  logging.Logger
	metrics *metrics.Collector
	now     func() time.Time

	mu    sync.Mutex
	token string
}

func NewSharedCache(repo credrepo.Repository, auth Authorizer, opts SharedOptions, logger logging.Logger, m *metrics.Collector) *SharedCache {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultRefreshTimeout
	}
	if opts.ClaimTTL <= 0 {
		opts.ClaimTTL = opts.Timeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 250 * time.Millisecond
	}
	return &SharedCache{
		repo:    repo,
		auth:    auth,
		opts:    opts,
		logger:  logger.With("module", "credentials", "scope", "shared", "key", opts.Key),
		metrics: m,
		now:     time.Now,
	}
}

func (s *SharedCache) Get(ctx context.Context, forceRefresh bool) (string, error) {
	local := s.cached()
	if !forceRefresh && local != "" {
		return local, nil
	}

	start := s.now()
	row, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	// another instance may already have replaced the token we hold
	if row != nil && row.Token != "" && (!forceRefresh || row.Token != local) {
		s.remember(row.Token)
		return row.Token, nil
	}

	stale := local
	if stale == "" && row != nil {
		stale = row.Token
	}

	for {
		now := s.now()
		won, err := s.repo.Claim(ctx, s.opts.Key, now, now.Add(-s.opts.ClaimTTL))
		if err != nil {
			return "", fmt.Errorf("%w: claim: %v", common.ErrCredentialUnavailable, err)
		}
		if won {
			return s.refreshClaimed(ctx, stale)
		}

		if s.opts.Policy == PolicyStale && stale != "" {
			return stale, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.opts.PollInterval):
		}

		row, err = s.load(ctx)
		if err != nil {
			return "", err
		}
		if row == nil || row.State == models.CredentialRefreshing {
			continue
		}
		if row.Token != "" && (row.Token != stale || !row.UpdatedAt.Before(start)) {
			s.remember(row.Token)
			return row.Token, nil
		}
		return "", fmt.Errorf("%w: refresh by another instance failed", common.ErrCredentialUnavailable)
	}
}

// refreshClaimed runs with the claim held. A token that changed since stale
// was stored by an instance that finished just before we claimed, so it is
// adopted instead of refreshing again.
func (s *SharedCache) refreshClaimed(ctx context.Context, stale string) (string, error) {
	row, err := s.load(ctx)
	if err == nil && row != nil && row.Token != "" && row.Token != stale {
		if rerr := s.repo.Release(ctx, s.opts.Key); rerr != nil {
			s.logger.Error(ctx, "failed to release credential claim", "error", rerr)
		}
		s.remember(row.Token)
		return row.Token, nil
	}
	return s.refresh(ctx)
}

func (s *SharedCache) refresh(ctx context.Context) (string, error) {
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.Timeout)
	defer cancel()

	token, err := s.auth.AuthorizeAccount(actx)
	if err != nil {
		if rerr := s.repo.Release(actx, s.opts.Key); rerr != nil {
			s.logger.Error(ctx, "failed to release credential claim", "error", rerr)
		}
		s.metrics.CredentialRefresh("error")
		s.logger.Warn(ctx, "storage credential refresh failed", "error", err)
		return "", fmt.Errorf("%w: %v", common.ErrCredentialUnavailable, err)
	}

	if err := s.repo.Save(actx, s.opts.Key, token, s.now()); err != nil {
		// other instances will reclaim after the claim expires
		s.logger.Error(ctx, "failed to store refreshed credential", "error", err)
	}
	s.remember(token)
	s.metrics.CredentialRefresh("ok")
	s.logger.Info(ctx, "storage credential refreshed")
	return token, nil
}

// load returns nil, nil when the row does not exist yet.
func (s *SharedCache) load(ctx context.Context) (*models.Credential, error) {
	row, err := s.repo.Get(ctx, s.opts.Key)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", common.ErrCredentialUnavailable, err)
	}
	return row, nil
}

func (s *SharedCache) cached() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *SharedCache) remember(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
