package grpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
	"github.com/dmitrijs2005/gophvault/internal/server/credentials"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophvault/internal/server/services"
	"github.com/dmitrijs2005/gophvault/internal/server/storage"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "test-secret"

// stubBackend is a storage.Backend with one queued error per operation.
type stubBackend struct {
	mu     sync.Mutex
	calls  map[string]int
	errs   map[string]error
	nextID int
}

func newStubBackend() *stubBackend {
	return &stubBackend{calls: make(map[string]int), errs: make(map[string]error)}
}

func (b *stubBackend) hit(op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
	err := b.errs[op]
	delete(b.errs, op)
	return err
}

func (b *stubBackend) failNext(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errs[op] = err
}

func (b *stubBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *stubBackend) AuthorizeAccount(context.Context) (string, error) {
	return "acct", b.hit("authorize_account")
}

func (b *stubBackend) StartLargeFile(_ context.Context, _, name string) (storage.Object, error) {
	if err := b.hit("start_large_file"); err != nil {
		return storage.Object{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	return storage.Object{ID: fmt.Sprintf("large-%d", b.nextID), Name: name}, nil
}

func (b *stubBackend) GetUploadTarget(_ context.Context, _, name string) (storage.UploadTarget, error) {
	if err := b.hit("get_upload_url"); err != nil {
		return storage.UploadTarget{}, err
	}
	return storage.UploadTarget{URL: "https://pod/upload", Token: "upload-tok"}, nil
}

func (b *stubBackend) GetUploadPartTarget(_ context.Context, _ string, obj storage.Object, part int) (storage.UploadTarget, error) {
	if err := b.hit("get_upload_part_url"); err != nil {
		return storage.UploadTarget{}, err
	}
	return storage.UploadTarget{URL: "https://pod/part/" + obj.ID, Token: "part-tok", PartNumber: part}, nil
}

func (b *stubBackend) FinishLargeFile(context.Context, string, storage.Object, []string) error {
	return b.hit("finish_large_file")
}

func (b *stubBackend) CancelLargeFile(context.Context, string, storage.Object) error {
	return b.hit("cancel_large_file")
}

func (b *stubBackend) DeleteFileVersion(context.Context, string, storage.Object) error {
	return b.hit("delete_file_version")
}

func (b *stubBackend) GetDownloadAuthorization(context.Context, string, string, time.Duration) (string, error) {
	if err := b.hit("get_download_authorization"); err != nil {
		return "", err
	}
	return "grant", nil
}

func (b *stubBackend) DownloadURL(path, grant string) string {
	return "https://dl/file/vault/" + path + "?Authorization=" + grant
}

type harness struct {
	backend *stubBackend
	plans   interface {
		PutPlan(models.Plan)
		PutUsage(models.Usage)
		PutDevice(models.Device)
	}
	client pb.VaultClient
	conn   *grpc.ClientConn
}

// newHarness serves a GRPCServer over an in-memory listener. Owner u1 has a
// 1000 byte plan with 500 bytes used and one active device d1.
func newHarness(t *testing.T) *harness {
	t.Helper()

	rm := repomanager.NewMemoryRepositoryManager()
	plans := rm.PlanStore()
	plans.PutPlan(models.Plan{OwnerID: "u1", LimitBytes: 1000, DeviceLimit: 3, ExpiresAt: time.Now().AddDate(1, 0, 0)})
	plans.PutUsage(models.Usage{OwnerID: "u1", UsedBytes: 500})
	plans.PutDevice(models.Device{ID: "d1", OwnerID: "u1", Active: true})

	backend := newStubBackend()
	cache := credentials.NewCache(backend, credentials.PolicyWait, time.Second, logging.Nop{}, nil)
	caller := storage.NewCaller(cache, time.Second, logging.Nop{}, nil)

	quota := services.NewQuotaGate(nil, rm, logging.Nop{}, nil)
	uploads := services.NewUploadService(nil, rm, quota, backend, caller, logging.Nop{})
	downloads := services.NewDownloadService(nil, rm, backend, caller, time.Hour, logging.Nop{}, nil)

	srv, err := NewGRPCServer("bufnet", logging.Nop{}, uploads, downloads, testSecret)
	if err != nil {
		t.Fatalf("NewGRPCServer error: %v", err)
	}

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufnet: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})

	return &harness{backend: backend, plans: plans, client: pb.NewVaultClient(conn), conn: conn}
}

// authed returns a context carrying an access token for ownerID and the
// given device id.
func authed(t *testing.T, ownerID, deviceID string) context.Context {
	t.Helper()
	tok, err := auth.GenerateToken(ownerID, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return metadata.AppendToOutgoingContext(context.Background(),
		common.AccessTokenHeaderName, tok,
		common.DeviceIDHeaderName, deviceID,
	)
}

func badRequest(op, msg string) error {
	return &storage.BackendError{Op: op, Status: http.StatusBadRequest, Code: "bad_request", Message: msg}
}
