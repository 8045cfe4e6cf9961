// Package server initializes and runs the gophvault server: it opens the
// metadata store, builds the storage backend and its credential cache, and
// runs the gRPC endpoint next to the metrics endpoint until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/server/config"
	"github.com/dmitrijs2005/gophvault/internal/server/credentials"
	"github.com/dmitrijs2005/gophvault/internal/server/metrics"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophvault/internal/server/services"
	"github.com/dmitrijs2005/gophvault/internal/server/storage"
	"github.com/dmitrijs2005/gophvault/internal/server/storage/b2"
	"github.com/dmitrijs2005/gophvault/internal/server/storage/s3store"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gophvault/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	metrics *metrics.Collector
	grpc    *gs.GRPCServer
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.NewJSON(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, rm, err := openRepositories(ctx, c)
	if err != nil {
		return nil, err
	}

	backend, err := newBackend(ctx, c)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("storage backend init error: %w", err)
	}

	mc := metrics.New()
	tokens := newTokenSource(c, db, rm, backend, logger, mc)
	caller := storage.NewCaller(tokens, c.StorageCallTimeout, logger, mc)

	quota := services.NewQuotaGate(db, rm, logger, mc)
	us := services.NewUploadService(db, rm, quota, backend, caller, logger)
	ds := services.NewDownloadService(db, rm, backend, caller, c.DownloadGrantTTL, logger, mc)

	g, err := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ds, c.SecretKey)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, metrics: mc, grpc: g}, nil
}

// openRepositories returns a nil *sql.DB together with in-memory
// repositories when the DSN is config.MemoryDSN.
func openRepositories(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == config.MemoryDSN {
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, rm, nil
}

func newBackend(ctx context.Context, c *config.Config) (storage.Backend, error) {
	switch c.StorageBackend {
	case config.BackendS3:
		return s3store.New(ctx, s3store.Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	case config.BackendB2:
		return b2.New(b2.Config{
			KeyID:       c.B2KeyID,
			Key:         c.B2Key,
			APIURL:      c.B2APIURL,
			DownloadURL: c.B2DownloadURL,
			BucketID:    c.B2BucketID,
			BucketName:  c.B2BucketName,
		}, &http.Client{Timeout: c.StorageCallTimeout}), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// newTokenSource keeps the account token in memory, or in the
// server_credentials table when instances share it.
func newTokenSource(c *config.Config, db *sql.DB, rm repomanager.RepositoryManager, auth credentials.Authorizer,
	logger logging.Logger, mc *metrics.Collector) storage.TokenSource {
	policy := credentials.Policy(c.CredentialPolicy)

	if c.CredentialScope == config.CredentialScopeShared {
		return credentials.NewSharedCache(rm.Credentials(db), auth, credentials.SharedOptions{
			Key:          c.StorageBackend + "_account_token",
			Policy:       policy,
			ClaimTTL:     c.CredentialClaimTTL,
			PollInterval: c.CredentialPollInterval,
			Timeout:      c.StorageCallTimeout,
		}, logger, mc)
	}

	return credentials.NewCache(auth, policy, c.StorageCallTimeout, logger, mc)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) runMetricsServer(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           app.metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is cancelled, a termination signal arrives or one of
// the servers fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage_backend", app.config.StorageBackend, "credential_scope", app.config.CredentialScope)

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.grpc.Run(ctx)
	})

	if app.config.MetricsAddr != "" {
		g.Go(func() error {
			return app.runMetricsServer(ctx)
		})
	}

	err := g.Wait()
	closeDB(app.db)
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}
