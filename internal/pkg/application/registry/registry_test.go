package registry

import (
	"context"
	"testing"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func newMessenger() *messaging.MsgContextMock {
	return &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}
}

func TestRegisterNewDevice(t *testing.T) {
	is := is.New(t)

	var stored types.Device

	s := &storage.StoreMock{
		AddDeviceFunc: func(ctx context.Context, device types.Device) (bool, error) {
			stored = device
			return true, nil
		},
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return stored, nil
		},
	}
	m := newMessenger()

	svc := New(s, m, nil)

	result, err := svc.Register(context.Background(), "alice", "a1b2c3d4e5", "", "hardware_tracker")
	is.NoErr(err)
	is.Equal(RegistrationCreated, result.Status)
	is.Equal("Device a1b2c3", result.Device.Name)
	is.Equal("alice", result.Device.Owner)
	is.Equal(types.DefaultSettings(), result.Device.Settings)
	is.Equal(1, len(m.PublishOnTopicCalls()))
	is.Equal("device.registered", m.PublishOnTopicCalls()[0].Message.TopicName())
}

func TestRegisterSameOwnerIsIdempotent(t *testing.T) {
	is := is.New(t)

	s := &storage.StoreMock{
		AddDeviceFunc: func(ctx context.Context, device types.Device) (bool, error) {
			return false, nil
		},
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return types.Device{DeviceID: "a1b2c3d4e5", Owner: "alice", Name: "mine"}, nil
		},
	}
	m := newMessenger()

	svc := New(s, m, nil)

	result, err := svc.Register(context.Background(), "alice", "a1b2c3d4e5", "", "")
	is.NoErr(err)
	is.Equal(RegistrationAlreadyOwned, result.Status)
	is.Equal("mine", result.Device.Name)
	is.Equal(0, len(m.PublishOnTopicCalls()))
}

func TestRegisterOtherOwnerConflicts(t *testing.T) {
	is := is.New(t)

	s := &storage.StoreMock{
		AddDeviceFunc: func(ctx context.Context, device types.Device) (bool, error) {
			return false, nil
		},
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return types.Device{DeviceID: "a1b2c3d4e5", Owner: "bob"}, nil
		},
	}

	svc := New(s, newMessenger(), nil)

	result, err := svc.Register(context.Background(), "alice", "a1b2c3d4e5", "", "")
	is.NoErr(err)
	is.Equal(RegistrationConflict, result.Status)
}

func TestRegisterClaimsOwnerlessDevice(t *testing.T) {
	is := is.New(t)

	owner := ""

	s := &storage.StoreMock{
		AddDeviceFunc: func(ctx context.Context, device types.Device) (bool, error) {
			return false, nil
		},
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return types.Device{DeviceID: "a1b2c3d4e5", Owner: owner, Name: "Device a1b2c3"}, nil
		},
		ClaimDeviceFunc: func(ctx context.Context, deviceID string, o string) (bool, error) {
			owner = o
			return true, nil
		},
	}
	m := newMessenger()

	svc := New(s, m, nil)

	result, err := svc.Register(context.Background(), "alice", "a1b2c3d4e5", "", "")
	is.NoErr(err)
	is.Equal(RegistrationCreated, result.Status)
	is.Equal("alice", result.Device.Owner)
	is.Equal(1, len(m.PublishOnTopicCalls()))
}

func TestRegisterRejectsBadDeviceID(t *testing.T) {
	is := is.New(t)

	svc := New(&storage.StoreMock{}, newMessenger(), nil)

	_, err := svc.Register(context.Background(), "alice", "", "", "")
	is.Equal(ErrInvalidDeviceID, err)

	_, err = svc.Register(context.Background(), "alice", "a-device-id-that-is-too-long", "", "")
	is.Equal(ErrInvalidDeviceID, err)
}

func TestEnsureDeviceProvisionsUnknown(t *testing.T) {
	is := is.New(t)

	provisioned := false

	s := &storage.StoreMock{
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			if !provisioned {
				return types.Device{}, storage.ErrNoRows
			}
			return types.Device{DeviceID: "a1b2c3d4e5", Name: "Device a1b2c3", Settings: types.DefaultSettings()}, nil
		},
		AddDeviceFunc: func(ctx context.Context, device types.Device) (bool, error) {
			provisioned = true
			return true, nil
		},
	}

	svc := New(s, newMessenger(), nil)

	d, err := svc.EnsureDevice(context.Background(), "a1b2c3d4e5")
	is.NoErr(err)
	is.Equal("Device a1b2c3", d.Name)
	is.Equal("", d.Owner) // provisioned devices have no owner until registered

	added := s.AddDeviceCalls()
	is.Equal(1, len(added))
	is.Equal("", added[0].Device.Owner)
}

func TestUpdateSettingsRejectsOutOfRange(t *testing.T) {
	is := is.New(t)

	svc := New(&storage.StoreMock{}, newMessenger(), nil)

	_, err := svc.UpdateSettings(context.Background(), "a1b2c3d4e5", types.DeviceSettings{SleepInterval: 0, SendInterval: 1, Satellites: 5})
	is.Equal(ErrInvalidSettings, err)

	_, err = svc.UpdateSettings(context.Background(), "a1b2c3d4e5", types.DeviceSettings{SleepInterval: 3601, SendInterval: 1, Satellites: 5})
	is.Equal(ErrInvalidSettings, err)
}

func TestUpdateSettings(t *testing.T) {
	is := is.New(t)

	var stored types.DeviceSettings

	s := &storage.StoreMock{
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			return types.Device{DeviceID: "a1b2c3d4e5", Settings: types.DefaultSettings()}, nil
		},
		UpdateSettingsFunc: func(ctx context.Context, deviceID string, settings types.DeviceSettings) error {
			stored = settings
			return nil
		},
	}

	svc := New(s, newMessenger(), nil)

	updated, err := svc.UpdateSettings(context.Background(), "a1b2c3d4e5", types.DeviceSettings{SleepInterval: 300, SendInterval: 5, Satellites: 8})
	is.NoErr(err)
	is.Equal(300, updated.SleepInterval)
	is.Equal(updated, stored)
}
