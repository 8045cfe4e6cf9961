package storage

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/server/metrics"
)

// TokenSource hands out the current bearer token. forceRefresh asks for a
// token newer than the one that just failed.
type TokenSource interface {
	Get(ctx context.Context, forceRefresh bool) (string, error)
}

// Caller runs backend operations with a per-attempt timeout.
type Caller struct {
	tokens  TokenSource
	timeout time.Duration
	logger  logging.Logger
	metrics *metrics.Collector
}

func NewCaller(tokens TokenSource, timeout time.Duration, logger logging.Logger, m *metrics.Collector) *Caller {
	return &Caller{
		tokens:  tokens,
		timeout: timeout,
		logger:  logger.With("module", "storage"),
		metrics: m,
	}
}

// Call runs fn with the cached token. If the backend rejects the token, Call
// forces one refresh and runs fn exactly once more; the second result is
// returned as is. Timeouts and other failures are never retried here.
func Call[T any](ctx context.Context, c *Caller, op string, fn func(ctx context.Context, token string) (T, error)) (T, error) {
	var zero T

	token, err := c.tokens.Get(ctx, false)
	if err != nil {
		return zero, err
	}

	res, err := attempt(ctx, c, op, token, fn)
	if err == nil || !errors.Is(err, common.ErrStorageAuthExpired) {
		return res, err
	}

	c.logger.Info(ctx, "storage token rejected, refreshing", "op", op, "error", err)
	c.metrics.AuthRetry(op)

	token, err = c.tokens.Get(ctx, true)
	if err != nil {
		return zero, err
	}
	return attempt(ctx, c, op, token, fn)
}

func attempt[T any](ctx context.Context, c *Caller, op, token string, fn func(ctx context.Context, token string) (T, error)) (T, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	res, err := fn(ctx, token)
	c.metrics.StorageCall(op, outcome(err))
	return res, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrStorageAuthExpired):
		return "auth_expired"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
