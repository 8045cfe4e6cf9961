package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaGate_CandidateAgainstRemaining(t *testing.T) {
	f := newFixture(t)

	_, err := f.quota.Check(context.Background(), "u1", "", 600)
	require.ErrorIs(t, err, common.ErrQuotaExceeded)

	snap, err := f.quota.Check(context.Background(), "u1", "", 400)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), snap.LimitBytes)
	assert.Equal(t, int64(500), snap.UsedBytes)
	assert.Equal(t, int64(500), snap.Remaining())

	_, err = f.quota.Check(context.Background(), "u1", "", 500)
	require.NoError(t, err, "exactly the remaining bytes fit")
}

func TestQuotaGate_Denials(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(f *fixture)
		owner  string
		device string
		want   error
	}{
		{
			name:  "no plan",
			owner: "nobody",
			want:  common.ErrPlanNotFound,
		},
		{
			name: "plan expired",
			setup: func(f *fixture) {
				f.rm.PlanStore().PutPlan(models.Plan{OwnerID: "u1", LimitBytes: 1000, ExpiresAt: epoch.Add(-time.Second)})
			},
			owner: "u1",
			want:  common.ErrPlanExpired,
		},
		{
			name: "expires exactly now",
			setup: func(f *fixture) {
				f.rm.PlanStore().PutPlan(models.Plan{OwnerID: "u1", LimitBytes: 1000, ExpiresAt: epoch})
			},
			owner: "u1",
			want:  common.ErrPlanExpired,
		},
		{
			name: "no usage row",
			setup: func(f *fixture) {
				f.rm.PlanStore().PutPlan(models.Plan{OwnerID: "u2", LimitBytes: 1000})
			},
			owner: "u2",
			want:  common.ErrUsageUnavailable,
		},
		{
			name:   "unknown device",
			owner:  "u1",
			device: "d9",
			want:   common.ErrDeviceNotRegistered,
		},
		{
			name: "inactive device",
			setup: func(f *fixture) {
				f.rm.PlanStore().PutDevice(models.Device{ID: "d2", OwnerID: "u1", Active: false})
			},
			owner:  "u1",
			device: "d2",
			want:   common.ErrDeviceNotRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.quota.Check(context.Background(), tt.owner, tt.device, 1)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestQuotaGate_RegisteredDevicePasses(t *testing.T) {
	f := newFixture(t)

	_, err := f.quota.Check(context.Background(), "u1", "d1", 10)
	require.NoError(t, err)
}
