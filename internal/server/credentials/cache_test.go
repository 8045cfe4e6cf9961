package credentials

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthorizer returns "tok-<n>" for the n-th call. When gate is set each
// call signals entered and blocks until gate is closed.
type stubAuthorizer struct {
	calls   atomic.Int32
	entered chan struct{}
	gate    chan struct{}
	err     error
}

func (a *stubAuthorizer) AuthorizeAccount(ctx context.Context) (string, error) {
	n := a.calls.Add(1)
	if a.entered != nil {
		a.entered <- struct{}{}
	}
	if a.gate != nil {
		<-a.gate
	}
	if a.err != nil {
		return "", a.err
	}
	return fmt.Sprintf("tok-%d", n), nil
}

func TestCache_GetWithoutTokenRefreshesOnce(t *testing.T) {
	auth := &stubAuthorizer{}
	c := NewCache(auth, PolicyWait, time.Second, logging.Nop{}, nil)

	tok, err := c.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	tok, err = c.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, int32(1), auth.calls.Load())
}

func TestCache_ConcurrentForcedRefreshIsSingleFlight(t *testing.T) {
	const n = 16
	auth := &stubAuthorizer{entered: make(chan struct{}, n), gate: make(chan struct{})}
	c := NewCache(auth, PolicyWait, time.Second, logging.Nop{}, nil)

	var wg sync.WaitGroup
	tokens := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = c.Get(context.Background(), true)
		}(i)
	}

	<-auth.entered
	// the refresh stays blocked in the authorizer while the others arrive
	require.Never(t, func() bool { return auth.calls.Load() > 1 }, 50*time.Millisecond, time.Millisecond)
	close(auth.gate)
	wg.Wait()

	assert.Equal(t, int32(1), auth.calls.Load())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "tok-1", tokens[i])
	}
}

func TestCache_FailureReachesWaitersAndReleasesFlight(t *testing.T) {
	auth := &stubAuthorizer{entered: make(chan struct{}, 2), gate: make(chan struct{}), err: errors.New("401 bad key")}
	c := NewCache(auth, PolicyWait, time.Second, logging.Nop{}, nil)

	winner := make(chan error, 1)
	go func() {
		_, err := c.Get(context.Background(), true)
		winner <- err
	}()
	<-auth.entered

	waiter := make(chan error, 1)
	go func() {
		_, err := c.Get(context.Background(), true)
		waiter <- err
	}()
	require.Never(t, func() bool { return auth.calls.Load() > 1 }, 50*time.Millisecond, time.Millisecond)
	close(auth.gate)

	require.ErrorIs(t, <-winner, common.ErrCredentialUnavailable)
	waiterErr := <-waiter
	require.ErrorIs(t, waiterErr, common.ErrCredentialUnavailable)
	assert.NotErrorIs(t, waiterErr, common.ErrStorageAuthExpired)
	assert.Equal(t, int32(1), auth.calls.Load())

	// the failed flight does not stick; the next call refreshes again
	auth.err = nil
	tok, err := c.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
}

func TestCache_StalePolicyReturnsPreviousToken(t *testing.T) {
	auth := &stubAuthorizer{}
	c := NewCache(auth, PolicyStale, time.Second, logging.Nop{}, nil)

	_, err := c.Get(context.Background(), true)
	require.NoError(t, err)

	auth.entered = make(chan struct{}, 1)
	auth.gate = make(chan struct{})

	result := make(chan string, 1)
	go func() {
		tok, _ := c.Get(context.Background(), true)
		result <- tok
	}()
	<-auth.entered

	tok, err := c.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	close(auth.gate)
	assert.Equal(t, "tok-2", <-result)
	assert.Equal(t, int32(2), auth.calls.Load())
}

func TestCache_WaiterHonoursContext(t *testing.T) {
	auth := &stubAuthorizer{entered: make(chan struct{}, 1), gate: make(chan struct{})}
	c := NewCache(auth, PolicyWait, time.Second, logging.Nop{}, nil)

	go func() { _, _ = c.Get(context.Background(), true) }()
	<-auth.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Get(ctx, true)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(auth.gate)
	require.Eventually(t, func() bool {
		tok, err := c.Get(context.Background(), false)
		return err == nil && tok == "tok-1"
	}, 2*time.Second, time.Millisecond)
}

func TestCache_RefreshSurvivesCallerCancel(t *testing.T) {
	auth := &ctxAuthorizer{}
	c := NewCache(auth, PolicyWait, time.Second, logging.Nop{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tok, err := c.Get(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
}

type ctxAuthorizer struct{}

func (ctxAuthorizer) AuthorizeAccount(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("refresh must be bounded")
	}
	return "fresh", nil
}
