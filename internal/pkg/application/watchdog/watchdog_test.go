package watchdog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/handshake"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/matryer/is"
)

func TestSweepExpiresTokens(t *testing.T) {
	is := is.New(t)

	c := &handshake.CoordinatorMock{
		ExpireStaleTokensFunc: func(ctx context.Context) (int64, error) {
			return 2, nil
		},
	}
	s := &storage.StoreMock{
		QueryDevicesFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Device], error) {
			return types.Collection[types.Device]{
				Data: []types.Device{
					{DeviceID: "a1b2c3d4e5", Settings: types.DefaultSettings(), LastSeen: time.Now().UTC().Add(-24 * time.Hour)},
				},
			}, nil
		},
	}

	w := New(c, s, slog.Default(), time.Hour).(*watchdogImpl)
	w.sweep(context.Background())

	is.Equal(1, len(c.ExpireStaleTokensCalls()))
	is.Equal(1, len(s.QueryDevicesCalls()))
}

func TestStartAndStop(t *testing.T) {
	is := is.New(t)

	c := &handshake.CoordinatorMock{
		ExpireStaleTokensFunc: func(ctx context.Context) (int64, error) {
			return 0, nil
		},
	}
	s := &storage.StoreMock{
		QueryDevicesFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Device], error) {
			return types.Collection[types.Device]{}, nil
		},
	}

	w := New(c, s, slog.Default(), 10*time.Millisecond)
	w.Start()

	time.Sleep(50 * time.Millisecond)
	w.Stop()

	is.True(len(c.ExpireStaleTokensCalls()) >= 1)
}
