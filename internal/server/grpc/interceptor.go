package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	ownerIDKey   ctxKey = "ownerID"
	deviceIDKey  ctxKey = "deviceID"
	requestIDKey ctxKey = "requestID"
)

func ownerIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ownerIDKey).(string)
	return v
}

func deviceIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(deviceIDKey).(string)
	return v
}

func requestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// requestInterceptor tags every call with a request id and logs its outcome.
func (s *GRPCServer) requestInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	requestID := uuid.NewString()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{
		"request_id", requestID,
		"method", info.FullMethod,
		"code", code.String(),
		"duration", time.Since(start),
	}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "request served", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "request failed", append(args, "error", err)...)
	default:
		s.logger.Info(ctx, "request rejected", append(args, "error", err)...)
	}

	return resp, err
}

// accessTokenInterceptor authenticates every vault method. Other services
// (health) are served without a token.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !strings.HasPrefix(info.FullMethod, "/"+pb.Vault_ServiceDesc.ServiceName+"/") {
		return handler(ctx, req)
	}

	accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	ownerID, err := auth.GetOwnerIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	ctx = context.WithValue(ctx, ownerIDKey, ownerID)
	ctx = context.WithValue(ctx, deviceIDKey, firstMetadata(ctx, common.DeviceIDHeaderName))

	return handler(ctx, req)
}
