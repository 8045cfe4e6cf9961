package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/server/credentials"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophvault/internal/server/storage"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeBackend counts calls per operation. Errors queued in failures are
// returned one per call, in order.
type fakeBackend struct {
	mu       sync.Mutex
	calls    map[string]int
	failures map[string][]error
	tokens   []string
	nextID   int

	// startBarrier, when set, holds StartLargeFile until it is released.
	startBarrier *sync.WaitGroup
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(map[string]int), failures: make(map[string][]error)}
}

func (b *fakeBackend) record(op, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
	b.tokens = append(b.tokens, op+":"+token)
	if q := b.failures[op]; len(q) > 0 {
		b.failures[op] = q[1:]
		return q[0]
	}
	return nil
}

func (b *fakeBackend) fail(op string, errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = append(b.failures[op], errs...)
}

func (b *fakeBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *fakeBackend) AuthorizeAccount(context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["authorize_account"]++
	return fmt.Sprintf("acct-%d", b.calls["authorize_account"]), nil
}

func (b *fakeBackend) StartLargeFile(_ context.Context, token, name string) (storage.Object, error) {
	if b.startBarrier != nil {
		b.startBarrier.Done()
		b.startBarrier.Wait()
	}
	if err := b.record("start_large_file", token); err != nil {
		return storage.Object{}, err
	}
	b.mu.Lock()
	b.nextID++
	id := fmt.Sprintf("large-%d", b.nextID)
	b.mu.Unlock()
	return storage.Object{ID: id, Name: name}, nil
}

func (b *fakeBackend) GetUploadTarget(_ context.Context, token, name string) (storage.UploadTarget, error) {
	if err := b.record("get_upload_url", token); err != nil {
		return storage.UploadTarget{}, err
	}
	return storage.UploadTarget{URL: "https://pod/upload/" + name, Token: "upload-tok"}, nil
}

func (b *fakeBackend) GetUploadPartTarget(_ context.Context, token string, obj storage.Object, part int) (storage.UploadTarget, error) {
	if err := b.record("get_upload_part_url", token); err != nil {
		return storage.UploadTarget{}, err
	}
	return storage.UploadTarget{URL: "https://pod/part/" + obj.ID, Token: "part-tok", PartNumber: part}, nil
}

func (b *fakeBackend) FinishLargeFile(_ context.Context, token string, _ storage.Object, _ []string) error {
	return b.record("finish_large_file", token)
}

func (b *fakeBackend) CancelLargeFile(_ context.Context, token string, _ storage.Object) error {
	return b.record("cancel_large_file", token)
}

func (b *fakeBackend) DeleteFileVersion(_ context.Context, token string, _ storage.Object) error {
	return b.record("delete_file_version", token)
}

func (b *fakeBackend) GetDownloadAuthorization(_ context.Context, token, _ string, _ time.Duration) (string, error) {
	if err := b.record("get_download_authorization", token); err != nil {
		return "", err
	}
	return fmt.Sprintf("grant-%d", b.count("get_download_authorization")), nil
}

func (b *fakeBackend) DownloadURL(path, grant string) string {
	return "https://dl/file/vault/" + path + "?Authorization=" + grant
}

func authExpired(op string) error {
	return &storage.BackendError{Op: op, Status: http.StatusUnauthorized, Code: "expired_auth_token", AuthExpired: true}
}

func badRequest(op, msg string) error {
	return &storage.BackendError{Op: op, Status: http.StatusBadRequest, Code: "bad_request", Message: msg}
}

type fixture struct {
	rm        *repomanager.MemoryRepositoryManager
	backend   *fakeBackend
	quota     *QuotaGate
	uploads   *UploadService
	downloads *DownloadService
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	rm := repomanager.NewMemoryRepositoryManager()
	rm.PlanStore().PutPlan(models.Plan{OwnerID: "u1", LimitBytes: 1000, DeviceLimit: 3, ExpiresAt: epoch.AddDate(1, 0, 0)})
	rm.PlanStore().PutUsage(models.Usage{OwnerID: "u1", UsedBytes: 500})
	rm.PlanStore().PutDevice(models.Device{ID: "d1", OwnerID: "u1", Active: true})

	backend := newFakeBackend()
	cache := credentials.NewCache(backend, credentials.PolicyWait, time.Second, logging.Nop{}, nil)
	caller := storage.NewCaller(cache, time.Second, logging.Nop{}, nil)

	f := &fixture{rm: rm, backend: backend, now: epoch}
	clock := func() time.Time { return f.now }

	f.quota = NewQuotaGate(nil, rm, logging.Nop{}, nil)
	f.quota.now = clock
	f.uploads = NewUploadService(nil, rm, f.quota, backend, caller, logging.Nop{})
	f.uploads.now = clock
	f.downloads = NewDownloadService(nil, rm, backend, caller, time.Hour, logging.Nop{}, nil)
	f.downloads.now = clock
	return f
}

func (f *fixture) record(t *testing.T, name string) *models.File {
	t.Helper()
	rec, err := f.rm.Files(nil).GetByID(context.Background(), models.FileID("u1", name))
	if err != nil {
		t.Fatalf("load record %q: %v", name, err)
	}
	return rec
}
