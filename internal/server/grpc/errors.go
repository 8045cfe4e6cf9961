package grpc

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/storage"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// toStatus converts a service error into a gRPC status. Errors reported by
// the storage backend keep their message verbatim and carry the backend
// HTTP status in the storage-status trailer.
func toStatus(ctx context.Context, err error) error {
	var be *storage.BackendError
	if errors.As(err, &be) {
		_ = grpc.SetTrailer(ctx, metadata.Pairs(common.StorageStatusTrailerName, strconv.Itoa(be.Status)))
		if be.ClientError() {
			return status.Error(codes.InvalidArgument, be.Message)
		}
		return status.Error(codes.Unavailable, be.Message)
	}

	var verr validator.ValidationErrors
	switch {
	case errors.As(err, &verr), errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrQuotaExceeded):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, common.ErrPlanNotFound),
		errors.Is(err, common.ErrPlanExpired),
		errors.Is(err, common.ErrUsageUnavailable),
		errors.Is(err, common.ErrDeviceNotRegistered),
		errors.Is(err, common.ErrFileNotAvailable),
		errors.Is(err, common.ErrObjectAlreadyAssigned):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrFileNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "storage call timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	case errors.Is(err, common.ErrCredentialUnavailable):
		return status.Error(codes.Unavailable, "storage credential unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
