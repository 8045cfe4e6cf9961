package grpc

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"quota", common.ErrQuotaExceeded, codes.ResourceExhausted},
		{"plan expired", common.ErrPlanExpired, codes.FailedPrecondition},
		{"usage", common.ErrUsageUnavailable, codes.FailedPrecondition},
		{"not available", fmt.Errorf("load: %w", common.ErrFileNotAvailable), codes.FailedPrecondition},
		{"not found", common.ErrFileNotFound, codes.NotFound},
		{"validation", fmt.Errorf("%w: part 9", common.ErrValidation), codes.InvalidArgument},
		{"timeout", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"credential", fmt.Errorf("%w: boom", common.ErrCredentialUnavailable), codes.Unavailable},
		{"auth expired twice", &storage.BackendError{Status: http.StatusUnauthorized, AuthExpired: true}, codes.Unavailable},
		{"backend 5xx", &storage.BackendError{Status: http.StatusServiceUnavailable}, codes.Unavailable},
		{"backend 4xx", fmt.Errorf("call: %w", &storage.BackendError{Status: http.StatusBadRequest, Message: "bad name"}), codes.InvalidArgument},
		{"object assigned", common.ErrObjectAlreadyAssigned, codes.FailedPrecondition},
		{"other", fmt.Errorf("boom"), codes.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, status.Code(toStatus(context.Background(), tc.err)))
		})
	}
}

func TestToStatus_BackendMessageVerbatim(t *testing.T) {
	err := toStatus(context.Background(), &storage.BackendError{Op: "finish_large_file", Status: http.StatusServiceUnavailable, Message: "service busy"})
	st, _ := status.FromError(err)
	assert.Equal(t, "service busy", st.Message())
}
