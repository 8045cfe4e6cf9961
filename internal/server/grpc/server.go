// Package grpc exposes the upload and download services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophvault/internal/logging"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"github.com/dmitrijs2005/gophvault/internal/server/services"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	pb.UnimplementedVaultServer
	address   string
	uploads   *services.UploadService
	downloads *services.DownloadService
	logger    logging.Logger
	jwtSecret []byte
	validate  *validator.Validate
	health    *health.Server
}

func NewGRPCServer(a string, l logging.Logger, us *services.UploadService, ds *services.DownloadService, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		uploads:   us,
		downloads: ds,
		jwtSecret: []byte(secretKey),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		health:    health.NewServer(),
	}, nil
}

// newServer creates the gRPC server with the interceptor chain and the vault
// and health services registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestInterceptor, s.accessTokenInterceptor))

	pb.RegisterVaultServer(srv, s)
	healthgrpc.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(pb.Vault_ServiceDesc.ServiceName, healthgrpc.HealthCheckResponse_SERVING)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
